package messaging

import "encoding/json"

// Event types delivered to the webhook.
const (
	EventTypeMessage = "message"
	EventTypeFollow  = "follow"

	MessageTypeText = "text"
)

// Event is one inbound webhook event. A delivery carries a batch of these.
type Event struct {
	Type       string        `json:"type"`
	ReplyToken string        `json:"replyToken"`
	Source     EventSource   `json:"source"`
	Message    *EventMessage `json:"message,omitempty"`
	Timestamp  int64         `json:"timestamp"`
}

// EventSource identifies the sender.
type EventSource struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// EventMessage is the message payload of a message event.
type EventMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// WebhookBody is the envelope of one webhook delivery.
type WebhookBody struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

// ParseWebhookBody decodes a webhook delivery body.
func ParseWebhookBody(body []byte) (*WebhookBody, error) {
	var parsed WebhookBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}
