// Package messaging is the narrow client for the chat platform: outbound
// reply/push delivery, payload types, and webhook signature verification.
// Game logic never sees the wire format.
package messaging

// Message is an outbound message payload. The closed set below covers
// everything the responder produces; the client maps each to the platform
// wire format.
type Message interface {
	isMessage()
}

// TextMessage is a plain text reply. QuickReplies, when present, render as
// one-tap suggestion buttons that send their label back as text.
type TextMessage struct {
	Text         string
	QuickReplies []string
}

// CardMessage is a single visual card: hero image, title, and body lines.
type CardMessage struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
	Buttons  []Button
}

// GridMessage is the 3x3 album view. Tiles render in order, three per row.
type GridMessage struct {
	Title string
	Tiles []GridTile
}

// GridTile is one cell of a GridMessage. Locked tiles show a placeholder
// image and send TapText when tapped.
type GridTile struct {
	ImageURL string
	Label    string
	TapText  string
}

// Button is a tappable action on a CardMessage. When URL is set the button
// opens it; otherwise tapping sends Text back as a message.
type Button struct {
	Label string
	Text  string
	URL   string
}

func (TextMessage) isMessage() {}
func (CardMessage) isMessage() {}
func (GridMessage) isMessage() {}
