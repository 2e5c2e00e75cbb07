package bot

import (
	"fmt"

	"cardquest/internal/messaging"
	"cardquest/internal/models"
)

const helpText = "Enter a question code (e.g. Q1) to start answering,\n" +
	"or open the game menu and pick a feature."

const lockedTileImageURL = "https://static.cardquest.example/tiles/locked.png"
const completionImageURL = "https://static.cardquest.example/tiles/complete.png"

// Responder turns game outcomes into outbound message payloads. Every
// outcome type maps to exactly one deterministic template; dynamic data is
// interpolated verbatim.
type Responder struct{}

// NewResponder creates a responder
func NewResponder() *Responder {
	return &Responder{}
}

// Render produces the messages for an outcome. A nil slice means reply with
// nothing (silent drop).
func (r *Responder) Render(outcome Outcome) []messaging.Message {
	switch o := outcome.(type) {
	case QuestionPresented:
		return questionMessages(o.Question, "")

	case QuestionAlreadyCompleted:
		return text("You have already completed this question. Try another one!")

	case QuestionNotFound:
		return text(fmt.Sprintf("No question found for code \"%s\".", o.Code))

	case AnswerCorrect:
		msgs := text(fmt.Sprintf("Correct! +%d points.", o.Points))
		if o.Question.ExplainText != "" {
			msgs = append(msgs, messaging.CardMessage{
				Title:    fmt.Sprintf("About %s", o.Question.Code),
				Body:     o.Question.ExplainText,
				ImageURL: o.Question.ExplainImageURL,
				Buttons:  explainButtons(o.Question),
			})
		}
		return msgs

	case AnswerIncorrect:
		return questionMessages(o.Question, "Wrong answer, try again!\n\n")

	case NoActiveQuestion:
		return text("No question in progress. Enter a question code (e.g. Q1) to start.")

	case CardDrawn:
		return []messaging.Message{messaging.CardMessage{
			Title:    fmt.Sprintf("You drew %s!", o.Card.Name),
			Subtitle: fmt.Sprintf("Rarity: %s", o.Card.Rarity),
			Body:     o.Card.Description,
			ImageURL: o.Card.ImageURL,
		}}

	case InsufficientPoints:
		return text(fmt.Sprintf("Current score: %d points. You need %d points to draw a card.", o.Balance, o.Cost))

	case AlbumComplete:
		return []messaging.Message{completionMessage()}

	case NoCardsRemaining:
		return text("No cards left to draw. Your collection is complete!")

	case AlbumView:
		// Completion is pushed out-of-band after the album reply; see the
		// webhook handler.
		return []messaging.Message{albumMessage(o.Entries)}

	case CardDetail:
		return []messaging.Message{messaging.CardMessage{
			Title:    o.Card.Name,
			Subtitle: fmt.Sprintf("Rarity: %s", o.Card.Rarity),
			Body:     o.Card.Description,
			ImageURL: o.Card.ImageURL,
		}}

	case CardLocked:
		return text(fmt.Sprintf("You haven't unlocked \"%s\" yet. Go draw some cards!", o.Card.Name))

	case CardNotFound:
		return text("Couldn't find that card.")

	case RecordView:
		return text(fmt.Sprintf("Your game record:\nCorrect answers: %d\nCurrent score: %d points",
			o.Record.CorrectAnswers, o.Record.Score))

	case NoRecord:
		return text("No game record found yet. Answer a question first!")

	case DrawPrompt:
		return []messaging.Message{messaging.CardMessage{
			Title: "Card Draw",
			Body:  fmt.Sprintf("Current score: %d points.", o.Balance),
			Buttons: []messaging.Button{
				{Label: fmt.Sprintf("Spend %d points to draw", o.Cost), Text: KeywordDraw},
			},
		}}

	case RewardRedeemed:
		return []messaging.Message{messaging.CardMessage{
			Title:    fmt.Sprintf("You won: %s", o.Reward.Name),
			Body:     fmt.Sprintf("%s\nPickup code: %s", o.Reward.Description, o.Code),
			Subtitle: "Show this code at the front desk.",
		}}

	case Help:
		return text(helpText)

	case Silent:
		return nil

	case TryAgainLater:
		return text("Something went wrong, please try again later.")
	}

	return text(helpText)
}

// InstructionMessages is the canned response for non-text messages and
// platform lifecycle events (e.g. a user adding the bot).
func (r *Responder) InstructionMessages() []messaging.Message {
	return text(helpText)
}

// CompletionMessages is the album-completion congratulation. It is pushed
// out-of-band after an album view, never sent as a reply.
func (r *Responder) CompletionMessages() []messaging.Message {
	return []messaging.Message{completionMessage()}
}

func text(s string) []messaging.Message {
	return []messaging.Message{messaging.TextMessage{Text: s}}
}

// questionMessages renders a question with its options as quick replies.
// The stored option order is preserved.
func questionMessages(q models.Question, prefix string) []messaging.Message {
	return []messaging.Message{messaging.TextMessage{
		Text:         fmt.Sprintf("%sQuestion (%s): %s", prefix, q.Code, q.Text),
		QuickReplies: q.Options,
	}}
}

func explainButtons(q models.Question) []messaging.Button {
	if q.ExplainLinkURL == "" {
		return nil
	}
	return []messaging.Button{{Label: "Learn more", URL: q.ExplainLinkURL}}
}

// albumMessage builds the album grid. Owned tiles show the card thumbnail
// and open the detail view; locked tiles show a placeholder and send the
// locked-card sentinel, which the bot answers with silence.
func albumMessage(entries []models.AlbumEntry) messaging.GridMessage {
	tiles := make([]messaging.GridTile, 0, len(entries))
	for _, entry := range entries {
		if entry.Owned {
			tiles = append(tiles, messaging.GridTile{
				ImageURL: entry.Card.ThumbnailURL,
				Label:    entry.Card.Name,
				TapText:  fmt.Sprintf("VIEW %s", entry.Card.Name),
			})
		} else {
			tiles = append(tiles, messaging.GridTile{
				ImageURL: lockedTileImageURL,
				Label:    "?",
				TapText:  KeywordLockedCard,
			})
		}
	}
	return messaging.GridMessage{Title: "My Card Album", Tiles: tiles}
}

func completionMessage() messaging.CardMessage {
	return messaging.CardMessage{
		Title:    "Congratulations!",
		Body:     "You completed the card album. Tap a button to see more activities.",
		ImageURL: completionImageURL,
		Buttons: []messaging.Button{
			{Label: "Share your feedback", URL: "https://forms.cardquest.example/feedback"},
			{Label: "Follow us", URL: "https://instagram.com/cardquest.example"},
		},
	}
}
