package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardquest/internal/bot"
	"cardquest/internal/models"
	"cardquest/internal/session"
)

func newQuizFixture(t *testing.T) (*QuizService, *fakeStore, session.Store) {
	t.Helper()
	store := newFakeStore()
	store.questions["Q1"] = models.Question{
		ID:            1,
		Code:          "Q1",
		Text:          "What is the capital of Japan?",
		Options:       []string{"Tokyo", "Osaka", "Kyoto", "Sapporo"},
		CorrectAnswer: "Tokyo",
		ExplainText:   "Tokyo has been the capital since 1868.",
	}
	sessions := session.NewMemoryStore(time.Minute)
	t.Cleanup(sessions.Close)
	return NewQuizService(store, store, store, sessions, 10), store, sessions
}

func TestPresentQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("known code sets the pending question", func(t *testing.T) {
		quiz, _, sessions := newQuizFixture(t)

		outcome, err := quiz.PresentQuestion(ctx, "user-1", "Q1")
		require.NoError(t, err)

		presented, ok := outcome.(bot.QuestionPresented)
		require.True(t, ok, "got %T", outcome)
		assert.Equal(t, "Q1", presented.Question.Code)

		pending, err := sessions.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Q1", pending)
	})

	t.Run("unknown code", func(t *testing.T) {
		quiz, _, sessions := newQuizFixture(t)

		outcome, err := quiz.PresentQuestion(ctx, "user-1", "Q99")
		require.NoError(t, err)
		assert.Equal(t, bot.QuestionNotFound{Code: "Q99"}, outcome)

		pending, err := sessions.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, pending, "a failed lookup must not set a session")
	})

	t.Run("already answered correctly", func(t *testing.T) {
		quiz, store, _ := newQuizFixture(t)
		_, err := store.RecordAttempt("user-1", "Q1", "Tokyo", true)
		require.NoError(t, err)

		outcome, err := quiz.PresentQuestion(ctx, "user-1", "Q1")
		require.NoError(t, err)
		assert.Equal(t, bot.QuestionAlreadyCompleted{Code: "Q1"}, outcome)
	})

	t.Run("new code overwrites the pending question", func(t *testing.T) {
		quiz, store, sessions := newQuizFixture(t)
		store.questions["Q2"] = models.Question{ID: 2, Code: "Q2", Text: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4"}

		_, err := quiz.PresentQuestion(ctx, "user-1", "Q1")
		require.NoError(t, err)
		_, err = quiz.PresentQuestion(ctx, "user-1", "Q2")
		require.NoError(t, err)

		pending, err := sessions.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Q2", pending)
	})
}

func TestSubmitAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("no quiz in progress", func(t *testing.T) {
		quiz, store, _ := newQuizFixture(t)

		outcome, err := quiz.SubmitAnswer(ctx, "user-1", "Tokyo")
		require.NoError(t, err)
		assert.Equal(t, bot.NoActiveQuestion{}, outcome)
		assert.Empty(t, store.attempts, "nothing to log without a pending question")
	})

	t.Run("wrong answer re-presents the question and logs the attempt", func(t *testing.T) {
		quiz, store, sessions := newQuizFixture(t)
		_, err := quiz.PresentQuestion(ctx, "user-1", "Q1")
		require.NoError(t, err)

		outcome, err := quiz.SubmitAnswer(ctx, "user-1", "Osaka")
		require.NoError(t, err)

		incorrect, ok := outcome.(bot.AnswerIncorrect)
		require.True(t, ok, "got %T", outcome)
		assert.Equal(t, "Q1", incorrect.Question.Code)

		require.Len(t, store.attempts, 1)
		assert.Equal(t, "Osaka", store.attempts[0].AnswerText)
		assert.False(t, store.attempts[0].IsCorrect)

		pending, err := sessions.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Q1", pending, "the pending question survives a wrong answer")

		assert.Nil(t, store.players["user-1"], "a wrong answer must not create a player")
	})

	t.Run("correct answer credits points and clears the session", func(t *testing.T) {
		quiz, store, sessions := newQuizFixture(t)
		_, err := quiz.PresentQuestion(ctx, "user-1", "Q1")
		require.NoError(t, err)

		outcome, err := quiz.SubmitAnswer(ctx, "user-1", "Tokyo")
		require.NoError(t, err)

		correct, ok := outcome.(bot.AnswerCorrect)
		require.True(t, ok, "got %T", outcome)
		assert.Equal(t, 10, correct.Points)
		assert.Equal(t, "Q1", correct.Question.Code)

		require.NotNil(t, store.players["user-1"], "the first correct answer creates the player")
		assert.Equal(t, 10, store.players["user-1"].Score)

		pending, err := sessions.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("answer comparison is trimmed and case-insensitive", func(t *testing.T) {
		quiz, store, _ := newQuizFixture(t)
		_, err := quiz.PresentQuestion(ctx, "user-1", "Q1")
		require.NoError(t, err)

		outcome, err := quiz.SubmitAnswer(ctx, "user-1", "  tokyo ")
		require.NoError(t, err)

		_, ok := outcome.(bot.AnswerCorrect)
		require.True(t, ok, "got %T", outcome)

		require.Len(t, store.attempts, 1)
		assert.Equal(t, "tokyo", store.attempts[0].AnswerText, "the log keeps the trimmed submission, not the canonical answer")
		assert.True(t, store.attempts[0].IsCorrect)
	})

	t.Run("question deleted after presentation", func(t *testing.T) {
		quiz, store, sessions := newQuizFixture(t)
		_, err := quiz.PresentQuestion(ctx, "user-1", "Q1")
		require.NoError(t, err)
		delete(store.questions, "Q1")

		outcome, err := quiz.SubmitAnswer(ctx, "user-1", "Tokyo")
		require.NoError(t, err)
		assert.Equal(t, bot.NoActiveQuestion{}, outcome)

		pending, err := sessions.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, pending, "the stale session is dropped")
	})

	t.Run("repeated correct answers keep crediting only once per presentation", func(t *testing.T) {
		quiz, store, _ := newQuizFixture(t)
		_, err := quiz.PresentQuestion(ctx, "user-1", "Q1")
		require.NoError(t, err)
		_, err = quiz.SubmitAnswer(ctx, "user-1", "Tokyo")
		require.NoError(t, err)

		// The session is cleared, so a second submission is an orphan.
		outcome, err := quiz.SubmitAnswer(ctx, "user-1", "Tokyo")
		require.NoError(t, err)
		assert.Equal(t, bot.NoActiveQuestion{}, outcome)
		assert.Equal(t, 10, store.players["user-1"].Score)
	})
}

func TestHasPendingQuestion(t *testing.T) {
	ctx := context.Background()
	quiz, _, _ := newQuizFixture(t)

	assert.False(t, quiz.HasPendingQuestion(ctx, "user-1"))

	_, err := quiz.PresentQuestion(ctx, "user-1", "Q1")
	require.NoError(t, err)
	assert.True(t, quiz.HasPendingQuestion(ctx, "user-1"))
}
