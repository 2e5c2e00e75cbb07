package service

import (
	"context"
	"strings"

	"cardquest/internal/bot"
	"cardquest/internal/session"
)

// QuizService runs the question/answer state machine: presenting questions,
// validating answers against the pending question, logging every attempt,
// and crediting points on success.
type QuizService struct {
	questions QuestionStore
	attempts  AttemptStore
	players   PlayerStore
	sessions  session.Store

	correctPoints int
}

// NewQuizService creates a quiz service. correctPoints is credited per
// correct answer.
func NewQuizService(questions QuestionStore, attempts AttemptStore, players PlayerStore, sessions session.Store, correctPoints int) *QuizService {
	return &QuizService{
		questions:     questions,
		attempts:      attempts,
		players:       players,
		sessions:      sessions,
		correctPoints: correctPoints,
	}
}

// PresentQuestion looks up a question by code and records it as the
// player's pending question, overwriting any prior one. A question the
// player has already answered correctly is not re-presented.
func (s *QuizService) PresentQuestion(ctx context.Context, playerID, code string) (bot.Outcome, error) {
	completed, err := s.attempts.HasCorrectAttempt(playerID, code)
	if err != nil {
		return bot.TryAgainLater{}, err
	}
	if completed {
		return bot.QuestionAlreadyCompleted{Code: code}, nil
	}

	question, err := s.questions.GetQuestionByCode(code)
	if err != nil {
		return bot.TryAgainLater{}, err
	}
	if question == nil {
		return bot.QuestionNotFound{Code: code}, nil
	}

	if err := s.sessions.Set(ctx, playerID, question.Code); err != nil {
		return bot.TryAgainLater{}, err
	}

	return bot.QuestionPresented{Question: *question}, nil
}

// SubmitAnswer validates an answer against the player's pending question.
// Every submission is appended to the attempt log. A correct answer clears
// the pending question and credits points; a wrong answer keeps the
// pending question so the same question is re-presented.
func (s *QuizService) SubmitAnswer(ctx context.Context, playerID, answer string) (bot.Outcome, error) {
	code, err := s.sessions.Get(ctx, playerID)
	if err != nil {
		return bot.TryAgainLater{}, err
	}
	if code == "" {
		return bot.NoActiveQuestion{}, nil
	}

	question, err := s.questions.GetQuestionByCode(code)
	if err != nil {
		return bot.TryAgainLater{}, err
	}
	if question == nil {
		// Question deleted externally since it was presented. Drop the
		// stale session and ask for a fresh code.
		s.sessions.Clear(ctx, playerID)
		return bot.NoActiveQuestion{}, nil
	}

	correct := answersEqual(answer, question.CorrectAnswer)

	if _, err := s.attempts.RecordAttempt(playerID, question.Code, strings.TrimSpace(answer), correct); err != nil {
		return bot.TryAgainLater{}, err
	}

	if !correct {
		return bot.AnswerIncorrect{Question: *question}, nil
	}

	if err := s.sessions.Clear(ctx, playerID); err != nil {
		return bot.TryAgainLater{}, err
	}
	if err := s.players.CreditScore(playerID, s.correctPoints); err != nil {
		return bot.TryAgainLater{}, err
	}

	return bot.AnswerCorrect{Question: *question, Points: s.correctPoints}, nil
}

// HasPendingQuestion reports whether the player has a quiz in progress
func (s *QuizService) HasPendingQuestion(ctx context.Context, playerID string) bool {
	code, err := s.sessions.Get(ctx, playerID)
	return err == nil && code != ""
}

// answersEqual compares answer text to the stored correct answer: trimmed
// and case-insensitive. Question codes are already upper-cased at
// classification, so the whole input surface is case-insensitive.
func answersEqual(answer, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(correct))
}
