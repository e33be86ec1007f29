package conversation

import "context"

// Reply is one abstract outbound action in a reply plan. The composer
// decides how each action is realized against the gateway.
type Reply interface {
	isReply()
}

// TextReply sends plain text.
type TextReply struct {
	Text string
}

// Button is one tappable option in a ButtonsReply.
type Button struct {
	ID    string
	Label string
}

// ButtonsReply sends a short button menu.
type ButtonsReply struct {
	Title       string
	Description string
	Buttons     []Button
}

// ListRow is one selectable row in a ListReply section.
type ListRow struct {
	ID          string
	Title       string
	Description string
}

// ListSection groups rows under a heading.
type ListSection struct {
	Title string
	Rows  []ListRow
}

// ListReply sends a sectioned selection list.
type ListReply struct {
	Title       string
	Description string
	ButtonText  string
	Sections    []ListSection
}

// ImageReply sends an image by URL with a caption.
type ImageReply struct {
	URL     string
	Caption string
}

// LocationReply sends a location pin.
type LocationReply struct {
	Latitude  float64
	Longitude float64
	Name      string
	Address   string
}

func (TextReply) isReply()     {}
func (ButtonsReply) isReply()  {}
func (ListReply) isReply()     {}
func (ImageReply) isReply()    {}
func (LocationReply) isReply() {}

// Dispatcher realizes an ordered reply plan against the gateway.
// Implementations pace consecutive sends and degrade rich formats to
// plain text when the gateway rejects them.
type Dispatcher interface {
	Dispatch(ctx context.Context, to string, plan []Reply) error
}
