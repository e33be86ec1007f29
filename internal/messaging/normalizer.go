// Package messaging sits between the gateway and the dialogue engine:
// it normalizes inconsistent webhook payloads into canonical inbound
// messages and composes abstract reply plans back into gateway sends.
package messaging

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/imobiliariaxyz/bot-corretor/internal/conversation"
	"github.com/imobiliariaxyz/bot-corretor/internal/observability/metrics"
	"github.com/imobiliariaxyz/bot-corretor/pkg/logging"
)

// MaxAudioBytes is the default cap on voice-note size. Anything larger
// is marked too large instead of being fetched into memory.
const MaxAudioBytes = 25 << 20

// MediaResolver retrieves media bytes the webhook did not inline.
type MediaResolver interface {
	FetchMedia(ctx context.Context, url string) ([]byte, error)
	LookupMedia(ctx context.Context, messageID string) ([]byte, string, error)
}

// Normalizer converts raw webhook data into canonical inbound messages.
type Normalizer struct {
	media         MediaResolver
	maxAudioBytes int64
	logger        *logging.Logger
	metrics       *metrics.BotMetrics
}

// NormalizerConfig collects Normalizer collaborators. Media may be nil;
// audio that needs fetching is then marked unavailable.
type NormalizerConfig struct {
	Media         MediaResolver
	MaxAudioBytes int64
	Logger        *logging.Logger
	Metrics       *metrics.BotMetrics
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	if cfg.MaxAudioBytes <= 0 {
		cfg.MaxAudioBytes = MaxAudioBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Normalizer{
		media:         cfg.Media,
		maxAudioBytes: cfg.MaxAudioBytes,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
	}
}

// Normalize extracts every message record from a webhook data payload.
// Group chatter and records with no usable sender are dropped; an
// unsupported content type still yields a record, flagged unrecognized,
// so callers can count it before discarding.
func (n *Normalizer) Normalize(ctx context.Context, data json.RawMessage) ([]conversation.Inbound, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var raw rawData
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("messaging: decode webhook data: %w", err)
	}

	records := n.collectRecords(raw)
	inbound := make([]conversation.Inbound, 0, len(records))
	for _, record := range records {
		msg, ok := n.normalizeRecord(ctx, record)
		if !ok {
			continue
		}
		n.metrics.ObserveNormalized(string(msg.Kind))
		inbound = append(inbound, msg)
	}
	return inbound, nil
}

// collectRecords flattens the data shape zoo into a uniform record list.
func (n *Normalizer) collectRecords(raw rawData) []rawRecord {
	if len(raw.Messages) > 0 {
		return raw.Messages
	}
	if raw.Key != nil {
		return []rawRecord{raw.rawRecord}
	}
	if raw.RemoteJid != "" {
		// flat fragment: no key block, sender at the top level
		record := rawRecord{
			Key:      &rawKey{RemoteJid: raw.RemoteJid},
			PushName: raw.PushName,
			Message:  raw.Message,
		}
		if record.Message == nil && (raw.Conversation != "" || raw.AudioMessage != nil) {
			record.Message = &rawMessage{
				Conversation: raw.Conversation,
				AudioMessage: raw.AudioMessage,
			}
		}
		return []rawRecord{record}
	}
	if raw.Conversation != "" || raw.AudioMessage != nil {
		// partial record: message fields only, sender unknown
		n.logger.Warn("webhook data carried message fields without a sender, dropping")
	}
	return nil
}

func (n *Normalizer) normalizeRecord(ctx context.Context, record rawRecord) (conversation.Inbound, bool) {
	if record.Key == nil || record.Key.RemoteJid == "" {
		return conversation.Inbound{}, false
	}
	if strings.Contains(record.Key.RemoteJid, "@g.us") {
		n.logger.Debug("ignoring group message", "remote_jid", record.Key.RemoteJid)
		return conversation.Inbound{}, false
	}

	msg := conversation.Inbound{
		SenderID:  record.Key.RemoteJid,
		PushName:  record.PushName,
		MessageID: record.Key.ID,
		FromSelf:  record.Key.FromMe,
		Kind:      conversation.KindUnrecognized,
	}
	if msg.MessageID == "" {
		msg.MessageID = synthesizeMessageID()
	}
	if record.Message == nil {
		return msg, true
	}

	content := record.Message
	switch {
	case content.Conversation != "":
		msg.Kind = conversation.KindText
		msg.Text = content.Conversation
	case content.ExtendedTextMessage != nil && content.ExtendedTextMessage.Text != "":
		msg.Kind = conversation.KindText
		msg.Text = content.ExtendedTextMessage.Text
	case content.AudioMessage != nil:
		msg.Kind = conversation.KindAudio
		msg.Audio = n.resolveAudio(ctx, msg.MessageID, content.AudioMessage)
	case content.ListResponseMessage != nil:
		msg.Kind = conversation.KindListSelection
		msg.SelectionID = content.ListResponseMessage.SingleSelectReply.SelectedRowID
	case content.ButtonsResponseMessage != nil:
		msg.Kind = conversation.KindButtonSelection
		msg.SelectionID = content.ButtonsResponseMessage.SelectedButtonID
	case content.LocationMessage != nil:
		msg.Kind = conversation.KindLocation
		msg.Latitude = content.LocationMessage.DegreesLatitude
		msg.Longitude = content.LocationMessage.DegreesLongitude
	}
	return msg, true
}

// resolveAudio materializes voice-note bytes, preferring inline base64,
// then the download URL, then a gateway lookup by message id. Failures
// and oversized payloads never abort the turn; the engine apologizes.
func (n *Normalizer) resolveAudio(ctx context.Context, messageID string, audio *rawAudio) *conversation.AudioPayload {
	payload := &conversation.AudioPayload{MimeType: audio.Mimetype}

	if declared, err := audio.FileLength.Int64(); err == nil && declared > n.maxAudioBytes {
		n.logger.Warn("voice note exceeds size limit",
			"message_id", messageID,
			"declared_bytes", declared,
		)
		payload.TooLarge = true
		return payload
	}

	data, mimeType, err := n.fetchAudio(ctx, messageID, audio)
	if err != nil {
		n.logger.Warn("failed to resolve voice note",
			"message_id", messageID,
			"error", err.Error(),
		)
		payload.Unavailable = true
		return payload
	}
	if int64(len(data)) > n.maxAudioBytes {
		payload.TooLarge = true
		return payload
	}
	if payload.MimeType == "" {
		payload.MimeType = mimeType
	}
	payload.Data = data
	return payload
}

func (n *Normalizer) fetchAudio(ctx context.Context, messageID string, audio *rawAudio) ([]byte, string, error) {
	if audio.Base64 != "" {
		data, err := base64.StdEncoding.DecodeString(audio.Base64)
		if err != nil {
			return nil, "", fmt.Errorf("messaging: decode inline audio: %w", err)
		}
		return data, audio.Mimetype, nil
	}
	if n.media == nil {
		return nil, "", fmt.Errorf("messaging: no media resolver configured")
	}
	if audio.URL != "" {
		data, err := n.media.FetchMedia(ctx, audio.URL)
		return data, audio.Mimetype, err
	}
	return n.media.LookupMedia(ctx, messageID)
}

func synthesizeMessageID() string {
	return fmt.Sprintf("synth-%d-%s", time.Now().UnixMilli(), uuid.NewString())
}
