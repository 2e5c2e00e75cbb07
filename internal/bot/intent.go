// Package bot holds the conversation layer: intent classification of inbound
// text and rendering of game outcomes into outbound messages.
package bot

import (
	"regexp"
	"strings"
)

// Keyword commands, matched against the trimmed, upper-cased message text.
// These come from the rich-menu buttons, so the exact strings are stable.
const (
	KeywordDraw   = "DRAW"
	KeywordAlbum  = "ALBUM"
	KeywordRedeem = "REDEEM"
	KeywordRecord = "RECORD"
	KeywordHelp   = "HELP"

	// Sent by the locked tiles in the album grid; deliberately answered
	// with silence.
	KeywordLockedCard = "CARD LOCKED"
)

var (
	questionCodeRe = regexp.MustCompile(`^Q\d+$`)
	viewCardRe     = regexp.MustCompile(`(?i)^VIEW\s+(.+)$`)
)

// Intent is the classified meaning of one inbound message. It is a closed
// set; GameService dispatches over it with a type switch.
type Intent interface {
	isIntent()

	// ResetsSession reports whether this intent abandons any half-answered
	// quiz as a side effect.
	ResetsSession() bool
}

// DrawIntent requests a card draw.
type DrawIntent struct{}

// AlbumIntent requests the album grid view.
type AlbumIntent struct{}

// RedeemIntent requests a reward redemption (or the draw prompt, depending
// on configuration).
type RedeemIntent struct{}

// RecordIntent requests the player's game record.
type RecordIntent struct{}

// HelpIntent requests the instruction text.
type HelpIntent struct{}

// LockedCardIntent is the click-through from a locked album tile. It clears
// session state but produces no reply.
type LockedCardIntent struct{}

// ViewCardIntent requests the detail view of a card by name.
type ViewCardIntent struct {
	Name string
}

// QuestionIntent starts (or re-enters) a question by code.
type QuestionIntent struct {
	Code string
}

// AnswerIntent submits the message text as an answer to the pending question.
type AnswerIntent struct {
	Text string
}

// FallbackIntent is anything that matched nothing with no quiz in progress.
type FallbackIntent struct{}

func (DrawIntent) isIntent()       {}
func (AlbumIntent) isIntent()      {}
func (RedeemIntent) isIntent()     {}
func (RecordIntent) isIntent()     {}
func (HelpIntent) isIntent()       {}
func (LockedCardIntent) isIntent() {}
func (ViewCardIntent) isIntent()   {}
func (QuestionIntent) isIntent()   {}
func (AnswerIntent) isIntent()     {}
func (FallbackIntent) isIntent()   {}

func (DrawIntent) ResetsSession() bool       { return true }
func (AlbumIntent) ResetsSession() bool      { return true }
func (RedeemIntent) ResetsSession() bool     { return true }
func (RecordIntent) ResetsSession() bool     { return true }
func (HelpIntent) ResetsSession() bool       { return true }
func (LockedCardIntent) ResetsSession() bool { return true }
func (ViewCardIntent) ResetsSession() bool   { return false }
func (QuestionIntent) ResetsSession() bool   { return false }
func (AnswerIntent) ResetsSession() bool     { return false }
func (FallbackIntent) ResetsSession() bool   { return false }

// Classify maps one raw message to an intent. Keyword and pattern intents
// win over AnswerIntent even with a quiz in progress, so a reset keyword or
// a new question code always interrupts rather than being recorded as a
// wrong answer.
func Classify(raw string, hasPendingQuestion bool) Intent {
	trimmed := strings.TrimSpace(raw)
	upper := strings.ToUpper(trimmed)

	switch upper {
	case KeywordDraw:
		return DrawIntent{}
	case KeywordAlbum:
		return AlbumIntent{}
	case KeywordRedeem:
		return RedeemIntent{}
	case KeywordRecord:
		return RecordIntent{}
	case KeywordHelp:
		return HelpIntent{}
	case KeywordLockedCard:
		return LockedCardIntent{}
	}

	// Card names keep their original casing; only the VIEW prefix is
	// case-insensitive.
	if m := viewCardRe.FindStringSubmatch(trimmed); m != nil {
		return ViewCardIntent{Name: strings.TrimSpace(m[1])}
	}

	if questionCodeRe.MatchString(upper) {
		return QuestionIntent{Code: upper}
	}

	if hasPendingQuestion {
		return AnswerIntent{Text: trimmed}
	}

	return FallbackIntent{}
}
