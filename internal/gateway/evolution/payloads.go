package evolution

// Request and response shapes for the Evolution API endpoints the bot
// uses. Field names follow the gateway's JSON contract.

// TextRequest sends plain text to a chat.
type TextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
	Delay  int    `json:"delay,omitempty"`
}

// ButtonOption is one tappable reply button.
type ButtonOption struct {
	Type        string `json:"type"`
	DisplayText string `json:"displayText"`
	ID          string `json:"id"`
}

// ButtonsRequest sends a short button menu.
type ButtonsRequest struct {
	Number      string         `json:"number"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Footer      string         `json:"footer,omitempty"`
	Buttons     []ButtonOption `json:"buttons"`
}

// ListRow is one selectable row of a list section.
type ListRow struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	RowID       string `json:"rowId"`
}

// ListSection groups rows under a heading.
type ListSection struct {
	Title string    `json:"title"`
	Rows  []ListRow `json:"rows"`
}

// ListRequest sends a sectioned selection list.
type ListRequest struct {
	Number      string        `json:"number"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ButtonText  string        `json:"buttonText"`
	FooterText  string        `json:"footerText,omitempty"`
	Sections    []ListSection `json:"sections"`
}

// MediaRequest sends an image, video or document by URL.
type MediaRequest struct {
	Number    string `json:"number"`
	MediaType string `json:"mediatype"`
	Media     string `json:"media"`
	Caption   string `json:"caption,omitempty"`
}

// LocationRequest sends a location pin.
type LocationRequest struct {
	Number    string  `json:"number"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// SendResponse is the gateway's acknowledgment of an outbound send.
type SendResponse struct {
	Key struct {
		RemoteJid string `json:"remoteJid"`
		FromMe    bool   `json:"fromMe"`
		ID        string `json:"id"`
	} `json:"key"`
	Status string `json:"status"`
}

// InstanceState reports the WhatsApp connection state of an instance.
type InstanceState struct {
	Instance struct {
		InstanceName string `json:"instanceName"`
		State        string `json:"state"`
	} `json:"instance"`
}

// ConnectResponse carries the pairing QR code when the instance is not
// yet connected.
type ConnectResponse struct {
	PairingCode string `json:"pairingCode,omitempty"`
	Code        string `json:"code,omitempty"`
	Base64      string `json:"base64,omitempty"`
}

// MediaPayload is the decoded body of a getBase64FromMediaMessage call.
type MediaPayload struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimetype"`
	Size     int    `json:"size,omitempty"`
}
