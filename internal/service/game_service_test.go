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

func newGameFixture(t *testing.T) (*GameService, *fakeStore, session.Store) {
	t.Helper()
	store := newFakeStore()
	store.questions["Q1"] = models.Question{
		ID:            1,
		Code:          "Q1",
		Text:          "What is the capital of Japan?",
		Options:       []string{"Tokyo", "Osaka", "Kyoto", "Sapporo"},
		CorrectAnswer: "Tokyo",
	}
	store.cards = []models.Card{
		{ID: 1, Name: "Ember Fox"},
		{ID: 2, Name: "Tide Turtle"},
	}
	sessions := session.NewMemoryStore(time.Minute)
	t.Cleanup(sessions.Close)

	quiz := NewQuizService(store, store, store, sessions, 10)
	economy := NewEconomyService(store, store, store, store, 10, 20, false)
	return NewGameService(quiz, economy, sessions), store, sessions
}

func TestHandleMessageDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("question code starts a quiz", func(t *testing.T) {
		game, _, _ := newGameFixture(t)

		outcome, err := game.HandleMessage(ctx, "user-1", "q1")
		require.NoError(t, err)

		presented, ok := outcome.(bot.QuestionPresented)
		require.True(t, ok, "got %T", outcome)
		assert.Equal(t, "Q1", presented.Question.Code)
	})

	t.Run("plain text with a pending question is an answer", func(t *testing.T) {
		game, store, _ := newGameFixture(t)
		_, err := game.HandleMessage(ctx, "user-1", "Q1")
		require.NoError(t, err)

		outcome, err := game.HandleMessage(ctx, "user-1", "Osaka")
		require.NoError(t, err)

		_, ok := outcome.(bot.AnswerIncorrect)
		require.True(t, ok, "got %T", outcome)
		require.Len(t, store.attempts, 1)
	})

	t.Run("plain text without a pending question gets help", func(t *testing.T) {
		game, store, _ := newGameFixture(t)

		outcome, err := game.HandleMessage(ctx, "user-1", "hello there")
		require.NoError(t, err)
		assert.Equal(t, bot.Help{}, outcome)
		assert.Empty(t, store.attempts, "stray text must not enter the answer log")
	})

	t.Run("menu command abandons a pending question", func(t *testing.T) {
		game, store, sessions := newGameFixture(t)
		store.players["user-1"] = &models.Player{ID: 1, PlayerID: "user-1", Score: 25}
		_, err := game.HandleMessage(ctx, "user-1", "Q1")
		require.NoError(t, err)

		outcome, err := game.HandleMessage(ctx, "user-1", "DRAW")
		require.NoError(t, err)

		_, ok := outcome.(bot.CardDrawn)
		require.True(t, ok, "got %T", outcome)

		pending, err := sessions.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, pending, "DRAW must clear the pending question")

		// The keyword itself is never treated as an answer.
		assert.Empty(t, store.attempts)
	})

	t.Run("keyword matching ignores case and padding", func(t *testing.T) {
		game, _, _ := newGameFixture(t)

		outcome, err := game.HandleMessage(ctx, "user-1", "  album ")
		require.NoError(t, err)

		_, ok := outcome.(bot.AlbumView)
		require.True(t, ok, "got %T", outcome)
	})

	t.Run("locked card tile is answered with silence", func(t *testing.T) {
		game, _, _ := newGameFixture(t)
		_, err := game.HandleMessage(ctx, "user-1", "Q1")
		require.NoError(t, err)

		outcome, err := game.HandleMessage(ctx, "user-1", "CARD LOCKED")
		require.NoError(t, err)
		assert.Equal(t, bot.Silent{}, outcome)

		// It still resets the session like any other menu tap.
		outcome, err = game.HandleMessage(ctx, "user-1", "Tokyo")
		require.NoError(t, err)
		assert.Equal(t, bot.Help{}, outcome)
	})

	t.Run("view command resolves cards mid-quiz without resetting", func(t *testing.T) {
		game, _, sessions := newGameFixture(t)
		_, err := game.HandleMessage(ctx, "user-1", "Q1")
		require.NoError(t, err)

		outcome, err := game.HandleMessage(ctx, "user-1", "view Ember Fox")
		require.NoError(t, err)

		_, ok := outcome.(bot.CardLocked)
		require.True(t, ok, "got %T", outcome)

		pending, err := sessions.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Q1", pending, "VIEW must not abandon the quiz")
	})

	t.Run("new question code interrupts a pending one", func(t *testing.T) {
		game, store, sessions := newGameFixture(t)
		store.questions["Q2"] = models.Question{ID: 2, Code: "Q2", Text: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4"}
		_, err := game.HandleMessage(ctx, "user-1", "Q1")
		require.NoError(t, err)

		outcome, err := game.HandleMessage(ctx, "user-1", "Q2")
		require.NoError(t, err)

		presented, ok := outcome.(bot.QuestionPresented)
		require.True(t, ok, "got %T", outcome)
		assert.Equal(t, "Q2", presented.Question.Code)

		pending, err := sessions.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Q2", pending)
		assert.Empty(t, store.attempts, "the second code must not be logged as an answer to the first")
	})

	t.Run("help and record keywords", func(t *testing.T) {
		game, store, _ := newGameFixture(t)

		outcome, err := game.HandleMessage(ctx, "user-1", "HELP")
		require.NoError(t, err)
		assert.Equal(t, bot.Help{}, outcome)

		outcome, err = game.HandleMessage(ctx, "user-1", "RECORD")
		require.NoError(t, err)
		assert.Equal(t, bot.NoRecord{}, outcome)

		store.players["user-1"] = &models.Player{ID: 1, PlayerID: "user-1", Score: 20}
		outcome, err = game.HandleMessage(ctx, "user-1", "RECORD")
		require.NoError(t, err)
		view, ok := outcome.(bot.RecordView)
		require.True(t, ok, "got %T", outcome)
		assert.Equal(t, 20, view.Record.Score)
	})
}

func TestHandleMessageStoreFailure(t *testing.T) {
	ctx := context.Background()
	game, store, _ := newGameFixture(t)
	store.err = assert.AnError

	outcome, err := game.HandleMessage(ctx, "user-1", "RECORD")
	require.Error(t, err)
	assert.Equal(t, bot.TryAgainLater{}, outcome)
}
