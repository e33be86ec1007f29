package messaging

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imobiliariaxyz/bot-corretor/internal/conversation"
)

type fakeMedia struct {
	fetchData  []byte
	fetchErr   error
	lookupData []byte
	lookupMime string
	lookupErr  error
	fetchCalls int
}

func (f *fakeMedia) FetchMedia(ctx context.Context, url string) ([]byte, error) {
	f.fetchCalls++
	return f.fetchData, f.fetchErr
}

func (f *fakeMedia) LookupMedia(ctx context.Context, messageID string) ([]byte, string, error) {
	return f.lookupData, f.lookupMime, f.lookupErr
}

func normalizeOne(t *testing.T, n *Normalizer, data string) conversation.Inbound {
	t.Helper()
	msgs, err := n.Normalize(context.Background(), json.RawMessage(data))
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	return msgs[0]
}

// The same logical text message arrives in several payload shapes; all
// of them must produce an identical canonical message.
func TestNormalizeIsShapeIndependent(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{})

	direct := `{
		"key": {"remoteJid": "5548999990000@s.whatsapp.net", "fromMe": false, "id": "MSG1"},
		"pushName": "Maria",
		"message": {"conversation": "quero comprar"}
	}`
	array := fmt.Sprintf(`{"messages": [%s]}`, direct)
	flat := `{
		"remoteJid": "5548999990000@s.whatsapp.net",
		"pushName": "Maria",
		"message": {"conversation": "quero comprar"}
	}`

	fromDirect := normalizeOne(t, n, direct)
	fromArray := normalizeOne(t, n, array)
	fromFlat := normalizeOne(t, n, flat)

	for _, msg := range []conversation.Inbound{fromDirect, fromArray, fromFlat} {
		assert.Equal(t, "5548999990000@s.whatsapp.net", msg.SenderID)
		assert.Equal(t, "Maria", msg.PushName)
		assert.Equal(t, conversation.KindText, msg.Kind)
		assert.Equal(t, "quero comprar", msg.Text)
	}
	assert.Equal(t, "MSG1", fromDirect.MessageID)
	assert.Equal(t, "MSG1", fromArray.MessageID)
	assert.NotEmpty(t, fromFlat.MessageID, "flat fragments get a synthesized id")
}

func TestNormalizeExtendedText(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{})

	msg := normalizeOne(t, n, `{
		"key": {"remoteJid": "554899@s.whatsapp.net", "id": "M1"},
		"message": {"extendedTextMessage": {"text": "casa na praia"}}
	}`)

	assert.Equal(t, conversation.KindText, msg.Kind)
	assert.Equal(t, "casa na praia", msg.Text)
}

func TestNormalizeDropsGroupMessages(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{})

	msgs, err := n.Normalize(context.Background(), json.RawMessage(`{
		"key": {"remoteJid": "123456-789@g.us", "id": "M1"},
		"message": {"conversation": "oi pessoal"}
	}`))

	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestNormalizeUnsupportedContentIsFlagged(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{})

	msg := normalizeOne(t, n, `{
		"key": {"remoteJid": "554899@s.whatsapp.net", "id": "M1"},
		"message": {"stickerMessage": {"url": "https://example.com/sticker"}}
	}`)

	assert.Equal(t, conversation.KindUnrecognized, msg.Kind)
}

func TestNormalizeListAndButtonSelections(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{})

	list := normalizeOne(t, n, `{
		"key": {"remoteJid": "554899@s.whatsapp.net", "id": "M1"},
		"message": {"listResponseMessage": {"title": "Comprar Imóvel", "singleSelectReply": {"selectedRowId": "buy"}}}
	}`)
	button := normalizeOne(t, n, `{
		"key": {"remoteJid": "554899@s.whatsapp.net", "id": "M2"},
		"message": {"buttonsResponseMessage": {"selectedButtonId": "buy_house", "selectedDisplayText": "Casa"}}
	}`)

	assert.Equal(t, conversation.KindListSelection, list.Kind)
	assert.Equal(t, "buy", list.SelectionID)
	assert.Equal(t, conversation.KindButtonSelection, button.Kind)
	assert.Equal(t, "buy_house", button.SelectionID)
}

func TestNormalizeLocation(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{})

	msg := normalizeOne(t, n, `{
		"key": {"remoteJid": "554899@s.whatsapp.net", "id": "M1"},
		"message": {"locationMessage": {"degreesLatitude": -27.5969, "degreesLongitude": -48.5495}}
	}`)

	assert.Equal(t, conversation.KindLocation, msg.Kind)
	assert.InDelta(t, -27.5969, msg.Latitude, 0.0001)
	assert.InDelta(t, -48.5495, msg.Longitude, 0.0001)
}

func TestNormalizeAudioInlineBase64(t *testing.T) {
	audio := []byte("ogg-bytes")
	n := NewNormalizer(NormalizerConfig{})

	msg := normalizeOne(t, n, fmt.Sprintf(`{
		"key": {"remoteJid": "554899@s.whatsapp.net", "id": "M1"},
		"message": {"audioMessage": {"base64": %q, "mimetype": "audio/ogg"}}
	}`, base64.StdEncoding.EncodeToString(audio)))

	require.Equal(t, conversation.KindAudio, msg.Kind)
	require.NotNil(t, msg.Audio)
	assert.Equal(t, audio, msg.Audio.Data)
	assert.Equal(t, "audio/ogg", msg.Audio.MimeType)
	assert.False(t, msg.Audio.Unavailable)
}

func TestNormalizeAudioFetchesByURL(t *testing.T) {
	media := &fakeMedia{fetchData: []byte("downloaded")}
	n := NewNormalizer(NormalizerConfig{Media: media})

	msg := normalizeOne(t, n, `{
		"key": {"remoteJid": "554899@s.whatsapp.net", "id": "M1"},
		"message": {"audioMessage": {"url": "https://gateway/media/1.ogg", "mimetype": "audio/ogg"}}
	}`)

	require.NotNil(t, msg.Audio)
	assert.Equal(t, []byte("downloaded"), msg.Audio.Data)
	assert.Equal(t, 1, media.fetchCalls)
}

func TestNormalizeAudioFallsBackToLookup(t *testing.T) {
	media := &fakeMedia{lookupData: []byte("looked-up"), lookupMime: "audio/ogg"}
	n := NewNormalizer(NormalizerConfig{Media: media})

	msg := normalizeOne(t, n, `{
		"key": {"remoteJid": "554899@s.whatsapp.net", "id": "M1"},
		"message": {"audioMessage": {}}
	}`)

	require.NotNil(t, msg.Audio)
	assert.Equal(t, []byte("looked-up"), msg.Audio.Data)
	assert.Equal(t, "audio/ogg", msg.Audio.MimeType)
}

func TestNormalizeAudioFetchFailureMarksUnavailable(t *testing.T) {
	media := &fakeMedia{fetchErr: errors.New("gateway down")}
	n := NewNormalizer(NormalizerConfig{Media: media})

	msg := normalizeOne(t, n, `{
		"key": {"remoteJid": "554899@s.whatsapp.net", "id": "M1"},
		"message": {"audioMessage": {"url": "https://gateway/media/1.ogg"}}
	}`)

	require.NotNil(t, msg.Audio)
	assert.True(t, msg.Audio.Unavailable)
	assert.Nil(t, msg.Audio.Data)
}

func TestNormalizeAudioDeclaredSizeOverLimitSkipsFetch(t *testing.T) {
	media := &fakeMedia{fetchData: []byte("should not be fetched")}
	n := NewNormalizer(NormalizerConfig{Media: media})

	msg := normalizeOne(t, n, fmt.Sprintf(`{
		"key": {"remoteJid": "554899@s.whatsapp.net", "id": "M1"},
		"message": {"audioMessage": {"url": "https://gateway/media/1.ogg", "fileLength": "%d"}}
	}`, MaxAudioBytes+1))

	require.NotNil(t, msg.Audio)
	assert.True(t, msg.Audio.TooLarge)
	assert.Zero(t, media.fetchCalls)
}

func TestNormalizeAudioResolvedSizeOverLimit(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{MaxAudioBytes: 4})

	msg := normalizeOne(t, n, fmt.Sprintf(`{
		"key": {"remoteJid": "554899@s.whatsapp.net", "id": "M1"},
		"message": {"audioMessage": {"base64": %q}}
	}`, base64.StdEncoding.EncodeToString([]byte("five!"))))

	require.NotNil(t, msg.Audio)
	assert.True(t, msg.Audio.TooLarge)
	assert.Nil(t, msg.Audio.Data)
}

func TestNormalizeFromSelfIsPreserved(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{})

	msg := normalizeOne(t, n, `{
		"key": {"remoteJid": "554899@s.whatsapp.net", "fromMe": true, "id": "M1"},
		"message": {"conversation": "resposta do bot"}
	}`)

	assert.True(t, msg.FromSelf)
}

func TestNormalizeEmptyAndInvalidData(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{})

	msgs, err := n.Normalize(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	_, err = n.Normalize(context.Background(), json.RawMessage(`not json`))
	assert.Error(t, err)
}
