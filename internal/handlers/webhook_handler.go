package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"sync"

	"cardquest/internal/bot"
	"cardquest/internal/messaging"
	"cardquest/internal/service"
)

// WebhookHandler receives event batches from the messaging platform,
// verifies their signature, and runs each event through the game.
type WebhookHandler struct {
	game          *service.GameService
	responder     *bot.Responder
	replier       messaging.Replier
	channelSecret string
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(game *service.GameService, responder *bot.Responder, replier messaging.Replier, channelSecret string) *WebhookHandler {
	return &WebhookHandler{
		game:          game,
		responder:     responder,
		replier:       replier,
		channelSecret: channelSecret,
	}
}

// HandleWebhook processes one webhook delivery. Events in a batch are
// independent and handled concurrently; the response is sent after all of
// them finish so the platform sees delivery errors.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed", "", nil)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read body", "webhook body read failed", err)
		return
	}

	if !messaging.ValidateSignature(h.channelSecret, r.Header.Get("X-Signature"), body) {
		respondWithError(w, http.StatusForbidden, "Invalid signature", "", nil)
		return
	}

	webhook, err := messaging.ParseWebhookBody(body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid webhook body", "webhook parse failed", err)
		return
	}

	var wg sync.WaitGroup
	for _, event := range webhook.Events {
		wg.Add(1)
		go func(event messaging.Event) {
			defer wg.Done()
			h.handleEvent(r.Context(), event)
		}(event)
	}
	wg.Wait()

	w.WriteHeader(http.StatusOK)
}

// handleEvent runs one platform event through the game and replies.
func (h *WebhookHandler) handleEvent(ctx context.Context, event messaging.Event) {
	playerID := event.Source.UserID
	if playerID == "" {
		return
	}

	// Anything that is not a text message gets the canned instructions:
	// stickers, images, and the follow event when a user adds the bot.
	if event.Type != messaging.EventTypeMessage || event.Message == nil || event.Message.Type != messaging.MessageTypeText {
		if err := h.replier.Reply(ctx, event.ReplyToken, h.responder.InstructionMessages()); err != nil {
			log.Printf("failed to send instructions to %s: %v", playerID, err)
		}
		return
	}

	outcome, err := h.game.HandleMessage(ctx, playerID, event.Message.Text)
	if err != nil {
		log.Printf("failed to handle message from %s: %v", playerID, err)
	}

	messages := h.responder.Render(outcome)
	if messages == nil {
		return
	}

	if err := h.replier.Reply(ctx, event.ReplyToken, messages); err != nil {
		log.Printf("failed to reply to %s: %v", playerID, err)
		return
	}

	// A completed album gets a congratulation after the album view. The
	// reply token is spent, so this goes out as a push.
	if view, ok := outcome.(bot.AlbumView); ok && view.Complete {
		if err := h.replier.Push(ctx, playerID, h.responder.CompletionMessages()); err != nil {
			log.Printf("failed to push completion to %s: %v", playerID, err)
		}
	}
}
