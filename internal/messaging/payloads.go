package messaging

import "encoding/json"

// WebhookEnvelope is the outer shape of every gateway callback.
type WebhookEnvelope struct {
	Event    string          `json:"event"`
	Instance string          `json:"instance"`
	Data     json.RawMessage `json:"data"`
}

// rawKey identifies a message within a chat.
type rawKey struct {
	RemoteJid string `json:"remoteJid"`
	FromMe    bool   `json:"fromMe"`
	ID        string `json:"id"`
}

// rawAudio is a voice-note fragment. The gateway sometimes inlines the
// bytes as base64 and sometimes only provides a download URL.
type rawAudio struct {
	URL        string      `json:"url"`
	Base64     string      `json:"base64"`
	Mimetype   string      `json:"mimetype"`
	FileLength json.Number `json:"fileLength"`
	Seconds    int         `json:"seconds"`
}

// rawMessage is the union of message content shapes the gateway emits.
type rawMessage struct {
	Conversation        string `json:"conversation"`
	ExtendedTextMessage *struct {
		Text string `json:"text"`
	} `json:"extendedTextMessage"`
	AudioMessage        *rawAudio `json:"audioMessage"`
	ListResponseMessage *struct {
		Title             string `json:"title"`
		SingleSelectReply struct {
			SelectedRowID string `json:"selectedRowId"`
		} `json:"singleSelectReply"`
	} `json:"listResponseMessage"`
	ButtonsResponseMessage *struct {
		SelectedButtonID string `json:"selectedButtonId"`
		SelectedDisplay  string `json:"selectedDisplayText"`
	} `json:"buttonsResponseMessage"`
	LocationMessage *struct {
		DegreesLatitude  float64 `json:"degreesLatitude"`
		DegreesLongitude float64 `json:"degreesLongitude"`
		Name             string  `json:"name"`
		Address          string  `json:"address"`
	} `json:"locationMessage"`
}

// rawRecord is one message entry as it appears inside data or inside a
// data.messages array.
type rawRecord struct {
	Key      *rawKey     `json:"key"`
	PushName string      `json:"pushName"`
	Message  *rawMessage `json:"message"`
}

// rawData tolerates every data shape seen in the wild: a single record,
// a messages array, a flat fragment keyed by remoteJid, and partial
// records carrying message fields at the top level.
type rawData struct {
	rawRecord
	Messages  []rawRecord `json:"messages"`
	RemoteJid string      `json:"remoteJid"`

	Conversation string    `json:"conversation"`
	AudioMessage *rawAudio `json:"audioMessage"`
}
