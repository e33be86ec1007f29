package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/imobiliariaxyz/bot-corretor/internal/conversation"
	"github.com/imobiliariaxyz/bot-corretor/internal/observability/metrics"
	"github.com/imobiliariaxyz/bot-corretor/pkg/logging"
)

var handlerTracer = otel.Tracer("corretor.internal.messaging")

// TurnHandler consumes one canonical inbound message.
type TurnHandler interface {
	HandleMessage(ctx context.Context, msg conversation.Inbound) error
}

// WebhookHandler receives gateway callbacks. It always acknowledges
// with 200 once the envelope decodes; per-message failures are logged
// and counted, never surfaced to the gateway, which would retry the
// whole batch otherwise.
type WebhookHandler struct {
	normalizer *Normalizer
	engine     TurnHandler
	instance   string
	logger     *logging.Logger
	metrics    *metrics.BotMetrics
}

// WebhookHandlerConfig collects WebhookHandler collaborators.
type WebhookHandlerConfig struct {
	Normalizer *Normalizer
	Engine     TurnHandler
	Instance   string
	Logger     *logging.Logger
	Metrics    *metrics.BotMetrics
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(cfg WebhookHandlerConfig) *WebhookHandler {
	if cfg.Normalizer == nil {
		panic("messaging: WebhookHandlerConfig.Normalizer is required")
	}
	if cfg.Engine == nil {
		panic("messaging: WebhookHandlerConfig.Engine is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &WebhookHandler{
		normalizer: cfg.Normalizer,
		engine:     cfg.Engine,
		instance:   cfg.Instance,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var envelope WebhookEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		h.logger.Warn("webhook body is not valid JSON", "error", err.Error())
		h.metrics.ObserveInbound("unknown", "bad_request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "invalid payload"})
		return
	}

	event := normalizeEventName(envelope.Event)
	ctx, span := handlerTracer.Start(r.Context(), "webhook.receive",
		trace.WithAttributes(
			attribute.String("webhook.event", event),
			attribute.String("webhook.instance", envelope.Instance),
		),
	)
	defer span.End()

	if h.instance != "" && envelope.Instance != "" && envelope.Instance != h.instance {
		h.logger.Debug("ignoring webhook for foreign instance",
			"event", event,
			"instance", envelope.Instance,
		)
		h.metrics.ObserveInbound(event, "ignored")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	switch event {
	case "messages.upsert":
		h.handleMessages(ctx, envelope.Data)
	case "connection.update":
		h.logger.Info("gateway connection update", "data", string(envelope.Data))
	case "qrcode.updated":
		h.logger.Info("gateway qr code updated, pairing required")
	default:
		h.logger.Debug("unhandled webhook event", "event", event)
	}

	h.metrics.ObserveInbound(event, "processed")
	h.metrics.ObserveWebhookLatency(event, time.Since(started).Seconds())
	writeJSON(w, http.StatusOK, map[string]string{"status": "processed"})
}

func (h *WebhookHandler) handleMessages(ctx context.Context, data json.RawMessage) {
	inbound, err := h.normalizer.Normalize(ctx, data)
	if err != nil {
		h.logger.Warn("failed to normalize webhook data", "error", err.Error())
		return
	}
	for _, msg := range inbound {
		if err := h.engine.HandleMessage(ctx, msg); err != nil {
			h.logger.Error("failed to handle inbound message",
				"sender_id", msg.SenderID,
				"message_id", msg.MessageID,
				"kind", string(msg.Kind),
				"error", err.Error(),
			)
		}
	}
}

// normalizeEventName maps gateway event spellings (MESSAGES_UPSERT,
// messages.upsert) onto one canonical form.
func normalizeEventName(event string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(event)), "_", ".")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
