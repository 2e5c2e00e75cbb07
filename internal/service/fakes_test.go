package service

import (
	"time"

	"cardquest/internal/models"
)

// fakeStore is an in-memory implementation of every engine store interface.
// Setting err makes all methods fail with it.
type fakeStore struct {
	questions   map[string]models.Question
	attempts    []models.AnswerAttempt
	players     map[string]*models.Player
	cards       []models.Card
	owned       map[string]map[int64]bool
	rewards     []models.Reward
	redemptions []models.Redemption

	err error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		questions: make(map[string]models.Question),
		players:   make(map[string]*models.Player),
		owned:     make(map[string]map[int64]bool),
	}
}

func (f *fakeStore) GetQuestionByCode(code string) (*models.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	q, ok := f.questions[code]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (f *fakeStore) RecordAttempt(playerID, questionCode, answerText string, isCorrect bool) (*models.AnswerAttempt, error) {
	if f.err != nil {
		return nil, f.err
	}
	attempt := models.AnswerAttempt{
		ID:           int64(len(f.attempts) + 1),
		PlayerID:     playerID,
		QuestionCode: questionCode,
		AnswerText:   answerText,
		IsCorrect:    isCorrect,
		CreatedAt:    time.Now(),
	}
	f.attempts = append(f.attempts, attempt)
	return &attempt, nil
}

func (f *fakeStore) HasCorrectAttempt(playerID, questionCode string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, a := range f.attempts {
		if a.PlayerID == playerID && a.QuestionCode == questionCode && a.IsCorrect {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CountCorrectAttempts(playerID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	seen := make(map[string]bool)
	for _, a := range f.attempts {
		if a.PlayerID == playerID && a.IsCorrect {
			seen[a.QuestionCode] = true
		}
	}
	return len(seen), nil
}

func (f *fakeStore) GetPlayer(playerID string) (*models.Player, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.players[playerID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) CreditScore(playerID string, points int) error {
	if f.err != nil {
		return f.err
	}
	if p, ok := f.players[playerID]; ok {
		p.Score += points
		return nil
	}
	f.players[playerID] = &models.Player{
		ID:       int64(len(f.players) + 1),
		PlayerID: playerID,
		Score:    points,
	}
	return nil
}

// debit mirrors the conditional SQL debit: it only succeeds when the player
// exists with a sufficient balance.
func (f *fakeStore) debit(playerID string, cost int) bool {
	p, ok := f.players[playerID]
	if !ok || p.Score < cost {
		return false
	}
	p.Score -= cost
	return true
}

func (f *fakeStore) ListCards() ([]models.Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cards, nil
}

func (f *fakeStore) GetCardByName(name string) (*models.Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.cards {
		if c.Name == name {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetOwnedCardIDs(playerID string) (map[int64]bool, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[int64]bool, len(f.owned[playerID]))
	for id := range f.owned[playerID] {
		out[id] = true
	}
	return out, nil
}

func (f *fakeStore) OwnsCard(playerID string, cardID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.owned[playerID][cardID], nil
}

func (f *fakeStore) GrantCardAndDebit(playerID string, cardID int64, cost int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if !f.debit(playerID, cost) {
		return false, nil
	}
	if f.owned[playerID] == nil {
		f.owned[playerID] = make(map[int64]bool)
	}
	f.owned[playerID][cardID] = true
	return true, nil
}

func (f *fakeStore) ListRewards() ([]models.Reward, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rewards, nil
}

func (f *fakeStore) RedeemAndDebit(playerID string, rewardID int64, redemptionCode string, cost int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if !f.debit(playerID, cost) {
		return false, nil
	}
	f.redemptions = append(f.redemptions, models.Redemption{
		ID:             int64(len(f.redemptions) + 1),
		PlayerID:       playerID,
		RewardID:       rewardID,
		RedemptionCode: redemptionCode,
		CreatedAt:      time.Now(),
	})
	return true, nil
}
