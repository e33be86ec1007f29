package conversation

// MessageKind discriminates the canonical inbound payload.
type MessageKind string

const (
	KindText            MessageKind = "text"
	KindAudio           MessageKind = "audio"
	KindListSelection   MessageKind = "list_selection"
	KindButtonSelection MessageKind = "button_selection"
	KindLocation        MessageKind = "location"
	KindUnrecognized    MessageKind = "unrecognized"
)

// AudioPayload carries resolved voice-note bytes. Unavailable is set
// when the payload could not be retrieved; TooLarge when it exceeded
// the size limit. Data is nil in either case.
type AudioPayload struct {
	Data        []byte
	MimeType    string
	Unavailable bool
	TooLarge    bool
}

// Inbound is the canonical, shape-independent representation of one
// received message. Downstream code never sees the raw webhook union.
type Inbound struct {
	SenderID  string
	PushName  string
	MessageID string
	FromSelf  bool
	Kind      MessageKind

	Text        string
	Audio       *AudioPayload
	SelectionID string
	Latitude    float64
	Longitude   float64
}
