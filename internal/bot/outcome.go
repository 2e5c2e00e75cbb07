package bot

import "cardquest/internal/models"

// Outcome is the result of dispatching one intent through the game engines.
// Each variant maps to exactly one message template in the responder.
type Outcome interface {
	isOutcome()
}

// QuestionPresented carries a question to answer next.
type QuestionPresented struct {
	Question models.Question
}

// QuestionAlreadyCompleted means the player has already answered this
// question correctly. Informational, not an error.
type QuestionAlreadyCompleted struct {
	Code string
}

// QuestionNotFound means no question exists for the entered code.
type QuestionNotFound struct {
	Code string
}

// AnswerCorrect reports a correct answer and the points credited.
type AnswerCorrect struct {
	Question models.Question
	Points   int
}

// AnswerIncorrect re-presents the same question for another attempt.
type AnswerIncorrect struct {
	Question models.Question
}

// NoActiveQuestion means an answer arrived with no quiz in progress.
type NoActiveQuestion struct{}

// CardDrawn reports a successful draw.
type CardDrawn struct {
	Card models.Card
}

// InsufficientPoints means the balance is below the required cost.
type InsufficientPoints struct {
	Balance int
	Cost    int
}

// AlbumComplete means the player owns every card in the catalog.
type AlbumComplete struct{}

// NoCardsRemaining means the unowned set is empty even though the owned
// count is below the configured album size (the catalog shrank).
type NoCardsRemaining struct{}

// AlbumView carries the full catalog annotated with ownership.
type AlbumView struct {
	Entries  []models.AlbumEntry
	Complete bool
}

// CardDetail is the unlocked detail view of an owned card.
type CardDetail struct {
	Card models.Card
}

// CardLocked means the player viewed a card they have not drawn yet.
type CardLocked struct {
	Card models.Card
}

// CardNotFound means no catalog card has the requested name.
type CardNotFound struct {
	Name string
}

// RecordView carries the player's game record.
type RecordView struct {
	Record models.PlayerRecord
}

// NoRecord means the player has no game record yet.
type NoRecord struct{}

// DrawPrompt invites the player to spend points on a draw. Produced by the
// redeem command when the rewards track is disabled.
type DrawPrompt struct {
	Balance int
	Cost    int
}

// RewardRedeemed reports a reward granted with its pickup code.
type RewardRedeemed struct {
	Reward models.Reward
	Code   string
}

// Help is the instruction text.
type Help struct{}

// Silent produces no reply at all. Used for the locked-card click-through.
type Silent struct{}

// TryAgainLater is the generic store-failure reply.
type TryAgainLater struct{}

func (QuestionPresented) isOutcome()        {}
func (QuestionAlreadyCompleted) isOutcome() {}
func (QuestionNotFound) isOutcome()         {}
func (AnswerCorrect) isOutcome()            {}
func (AnswerIncorrect) isOutcome()          {}
func (NoActiveQuestion) isOutcome()         {}
func (CardDrawn) isOutcome()                {}
func (InsufficientPoints) isOutcome()       {}
func (AlbumComplete) isOutcome()            {}
func (NoCardsRemaining) isOutcome()         {}
func (AlbumView) isOutcome()                {}
func (CardDetail) isOutcome()               {}
func (CardLocked) isOutcome()               {}
func (CardNotFound) isOutcome()             {}
func (RecordView) isOutcome()               {}
func (NoRecord) isOutcome()                 {}
func (DrawPrompt) isOutcome()               {}
func (RewardRedeemed) isOutcome()           {}
func (Help) isOutcome()                     {}
func (Silent) isOutcome()                   {}
func (TryAgainLater) isOutcome()            {}
