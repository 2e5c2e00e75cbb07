package service

import "cardquest/internal/models"

// Narrow store interfaces consumed by the game engines. The repository
// structs satisfy them; tests substitute in-memory fakes.

// QuestionStore reads the question catalog.
type QuestionStore interface {
	GetQuestionByCode(code string) (*models.Question, error)
}

// AttemptStore is the append-only answer log.
type AttemptStore interface {
	RecordAttempt(playerID, questionCode, answerText string, isCorrect bool) (*models.AnswerAttempt, error)
	HasCorrectAttempt(playerID, questionCode string) (bool, error)
	CountCorrectAttempts(playerID string) (int, error)
}

// PlayerStore reads and mutates player balances. CreditScore must be
// atomic (upsert); DebitScore must be conditional on a sufficient balance.
type PlayerStore interface {
	GetPlayer(playerID string) (*models.Player, error)
	CreditScore(playerID string, points int) error
}

// CardStore reads the card catalog and ownership, and performs the
// transactional grant+debit.
type CardStore interface {
	ListCards() ([]models.Card, error)
	GetCardByName(name string) (*models.Card, error)
	GetOwnedCardIDs(playerID string) (map[int64]bool, error)
	OwnsCard(playerID string, cardID int64) (bool, error)
	GrantCardAndDebit(playerID string, cardID int64, cost int) (bool, error)
}

// RewardStore reads the reward list and performs the transactional
// redeem+debit.
type RewardStore interface {
	ListRewards() ([]models.Reward, error)
	RedeemAndDebit(playerID string, rewardID int64, redemptionCode string, cost int) (bool, error)
}
