package service

import (
	"context"

	"cardquest/internal/bot"
	"cardquest/internal/session"
)

// GameService is the single entry point for inbound player messages. It
// classifies the text against the pending-question state and dispatches to
// the quiz and economy engines.
type GameService struct {
	quiz     *QuizService
	economy  *EconomyService
	sessions session.Store
}

// NewGameService creates a game service
func NewGameService(quiz *QuizService, economy *EconomyService, sessions session.Store) *GameService {
	return &GameService{
		quiz:     quiz,
		economy:  economy,
		sessions: sessions,
	}
}

// HandleMessage processes one inbound text message from a player and returns
// the outcome to render. A nil error with a TryAgainLater outcome never
// happens; store failures return the error alongside TryAgainLater so the
// caller can log it.
func (s *GameService) HandleMessage(ctx context.Context, playerID, text string) (bot.Outcome, error) {
	pending, err := s.sessions.Get(ctx, playerID)
	if err != nil {
		return bot.TryAgainLater{}, err
	}

	intent := bot.Classify(text, pending != "")

	// Menu commands abandon any half-answered question before dispatch, so a
	// stale session never swallows the next plain-text message.
	if intent.ResetsSession() && pending != "" {
		if err := s.sessions.Clear(ctx, playerID); err != nil {
			return bot.TryAgainLater{}, err
		}
	}

	switch it := intent.(type) {
	case bot.QuestionIntent:
		return s.quiz.PresentQuestion(ctx, playerID, it.Code)
	case bot.AnswerIntent:
		return s.quiz.SubmitAnswer(ctx, playerID, it.Text)
	case bot.DrawIntent:
		return s.economy.DrawCard(ctx, playerID)
	case bot.AlbumIntent:
		return s.economy.Album(ctx, playerID)
	case bot.ViewCardIntent:
		return s.economy.ViewCard(ctx, playerID, it.Name)
	case bot.RedeemIntent:
		return s.economy.Redeem(ctx, playerID)
	case bot.RecordIntent:
		return s.economy.Record(ctx, playerID)
	case bot.HelpIntent:
		return bot.Help{}, nil
	case bot.LockedCardIntent:
		return bot.Silent{}, nil
	default:
		return bot.Help{}, nil
	}
}
