package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

// Replier sends outbound messages. Reply consumes the reply token bound to
// the inciting event; Push addresses a player directly for out-of-band
// notifications.
type Replier interface {
	Reply(ctx context.Context, replyToken string, messages []Message) error
	Push(ctx context.Context, playerID string, messages []Message) error
}

// Client is the HTTP implementation of Replier. The bearer token is fetched
// and refreshed through the platform's OAuth2 client-credentials endpoint.
type Client struct {
	apiBaseURL string
	httpClient *http.Client
}

// NewClient creates a messaging client. tokenURL is the platform's OAuth2
// token endpoint; channelID/channelKey are the client credentials.
func NewClient(apiBaseURL, tokenURL, channelID, channelKey string) *Client {
	cc := clientcredentials.Config{
		ClientID:     channelID,
		ClientSecret: channelKey,
		TokenURL:     tokenURL,
	}

	httpClient := cc.Client(context.Background())
	httpClient.Timeout = 10 * time.Second

	return &Client{
		apiBaseURL: apiBaseURL,
		httpClient: httpClient,
	}
}

// Reply sends messages using a reply token
func (c *Client) Reply(ctx context.Context, replyToken string, messages []Message) error {
	payload := map[string]interface{}{
		"replyToken": replyToken,
		"messages":   encodeMessages(messages),
	}
	return c.post(ctx, "/message/reply", payload)
}

// Push sends messages addressed by player id
func (c *Client) Push(ctx context.Context, playerID string, messages []Message) error {
	payload := map[string]interface{}{
		"to":       playerID,
		"messages": encodeMessages(messages),
	}
	return c.post(ctx, "/message/push", payload)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("messaging API returned status %d", resp.StatusCode)
	}
	return nil
}

// encodeMessages maps payload types to the platform wire format.
func encodeMessages(messages []Message) []map[string]interface{} {
	encoded := make([]map[string]interface{}, 0, len(messages))
	for _, m := range messages {
		switch msg := m.(type) {
		case TextMessage:
			encoded = append(encoded, encodeText(msg))
		case CardMessage:
			encoded = append(encoded, encodeCard(msg))
		case GridMessage:
			encoded = append(encoded, encodeGrid(msg))
		}
	}
	return encoded
}

func encodeText(msg TextMessage) map[string]interface{} {
	out := map[string]interface{}{
		"type": "text",
		"text": msg.Text,
	}
	if len(msg.QuickReplies) > 0 {
		items := make([]map[string]interface{}, 0, len(msg.QuickReplies))
		for _, label := range msg.QuickReplies {
			items = append(items, map[string]interface{}{
				"type": "action",
				"action": map[string]string{
					"type":  "message",
					"label": label,
					"text":  label,
				},
			})
		}
		out["quickReply"] = map[string]interface{}{"items": items}
	}
	return out
}

func encodeCard(msg CardMessage) map[string]interface{} {
	contents := map[string]interface{}{
		"type":     "card",
		"title":    msg.Title,
		"subtitle": msg.Subtitle,
		"body":     msg.Body,
		"imageUrl": msg.ImageURL,
	}
	if len(msg.Buttons) > 0 {
		buttons := make([]map[string]string, 0, len(msg.Buttons))
		for _, b := range msg.Buttons {
			button := map[string]string{"label": b.Label}
			if b.URL != "" {
				button["uri"] = b.URL
			} else {
				button["text"] = b.Text
			}
			buttons = append(buttons, button)
		}
		contents["buttons"] = buttons
	}
	return map[string]interface{}{
		"type":     "template",
		"altText":  msg.Title,
		"contents": contents,
	}
}

func encodeGrid(msg GridMessage) map[string]interface{} {
	tiles := make([]map[string]string, 0, len(msg.Tiles))
	for _, tile := range msg.Tiles {
		tiles = append(tiles, map[string]string{
			"imageUrl": tile.ImageURL,
			"label":    tile.Label,
			"tapText":  tile.TapText,
		})
	}
	return map[string]interface{}{
		"type":    "template",
		"altText": msg.Title,
		"contents": map[string]interface{}{
			"type":    "grid",
			"title":   msg.Title,
			"columns": 3,
			"tiles":   tiles,
		},
	}
}
