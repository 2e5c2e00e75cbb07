package service

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"cardquest/internal/bot"
	"cardquest/internal/models"
)

// DrawState classifies a draw attempt. It is a pure function of the
// balance, ownership count, catalog size, and unowned-set size at call
// time; there is no persisted in-progress draw.
type DrawState int

const (
	DrawEligible DrawState = iota
	DrawInsufficientPoints
	DrawAlreadyComplete
	DrawNoCardsRemaining
)

// EvaluateDraw returns the draw state for the given snapshot.
func EvaluateDraw(balance, ownedCount, catalogSize, unownedSize, cost int) DrawState {
	if balance < cost {
		return DrawInsufficientPoints
	}
	if catalogSize > 0 && ownedCount >= catalogSize {
		return DrawAlreadyComplete
	}
	// Distinct from the count check: the two can diverge when the catalog
	// shrinks after cards were granted.
	if unownedSize == 0 {
		return DrawNoCardsRemaining
	}
	return DrawEligible
}

// EconomyService manages point balances, card draws, the album, and the
// optional rewards track.
type EconomyService struct {
	cards    CardStore
	rewards  RewardStore
	players  PlayerStore
	attempts AttemptStore

	drawCost       int
	redeemCost     int
	rewardsEnabled bool
}

// NewEconomyService creates an economy service
func NewEconomyService(cards CardStore, rewards RewardStore, players PlayerStore, attempts AttemptStore, drawCost, redeemCost int, rewardsEnabled bool) *EconomyService {
	return &EconomyService{
		cards:          cards,
		rewards:        rewards,
		players:        players,
		attempts:       attempts,
		drawCost:       drawCost,
		redeemCost:     redeemCost,
		rewardsEnabled: rewardsEnabled,
	}
}

// Balance returns the player's stored score, or 0 without a record. A read
// never creates a record.
func (s *EconomyService) Balance(ctx context.Context, playerID string) (int, error) {
	player, err := s.players.GetPlayer(playerID)
	if err != nil {
		return 0, err
	}
	if player == nil {
		return 0, nil
	}
	return player.Score, nil
}

// DrawCard draws one card uniformly at random from the player's unowned
// set, granting it and debiting the draw cost in a single transaction.
func (s *EconomyService) DrawCard(ctx context.Context, playerID string) (bot.Outcome, error) {
	balance, err := s.Balance(ctx, playerID)
	if err != nil {
		return bot.TryAgainLater{}, err
	}

	catalog, err := s.cards.ListCards()
	if err != nil {
		return bot.TryAgainLater{}, err
	}
	owned, err := s.cards.GetOwnedCardIDs(playerID)
	if err != nil {
		return bot.TryAgainLater{}, err
	}

	unowned := make([]models.Card, 0, len(catalog))
	for _, card := range catalog {
		if !owned[card.ID] {
			unowned = append(unowned, card)
		}
	}

	switch EvaluateDraw(balance, len(owned), len(catalog), len(unowned), s.drawCost) {
	case DrawInsufficientPoints:
		return bot.InsufficientPoints{Balance: balance, Cost: s.drawCost}, nil
	case DrawAlreadyComplete:
		return bot.AlbumComplete{}, nil
	case DrawNoCardsRemaining:
		return bot.NoCardsRemaining{}, nil
	}

	card := unowned[rand.Intn(len(unowned))]

	// The conditional debit inside the transaction re-checks the balance,
	// so a concurrent draw cannot overspend.
	granted, err := s.cards.GrantCardAndDebit(playerID, card.ID, s.drawCost)
	if err != nil {
		return bot.TryAgainLater{}, err
	}
	if !granted {
		return bot.InsufficientPoints{Balance: balance, Cost: s.drawCost}, nil
	}

	return bot.CardDrawn{Card: card}, nil
}

// Album returns the full catalog annotated with ownership, and whether the
// collection is complete.
func (s *EconomyService) Album(ctx context.Context, playerID string) (bot.Outcome, error) {
	catalog, err := s.cards.ListCards()
	if err != nil {
		return bot.TryAgainLater{}, err
	}
	owned, err := s.cards.GetOwnedCardIDs(playerID)
	if err != nil {
		return bot.TryAgainLater{}, err
	}

	entries := make([]models.AlbumEntry, 0, len(catalog))
	complete := len(catalog) > 0
	for _, card := range catalog {
		has := owned[card.ID]
		if !has {
			complete = false
		}
		entries = append(entries, models.AlbumEntry{Card: card, Owned: has})
	}

	return bot.AlbumView{Entries: entries, Complete: complete}, nil
}

// CollectionComplete reports whether the player owns every catalog card
func (s *EconomyService) CollectionComplete(ctx context.Context, playerID string) (bool, error) {
	catalog, err := s.cards.ListCards()
	if err != nil {
		return false, err
	}
	if len(catalog) == 0 {
		return false, nil
	}
	owned, err := s.cards.GetOwnedCardIDs(playerID)
	if err != nil {
		return false, err
	}
	for _, card := range catalog {
		if !owned[card.ID] {
			return false, nil
		}
	}
	return true, nil
}

// ViewCard resolves a card by exact name. Owned cards get the detail view;
// unowned cards get a locked notice.
func (s *EconomyService) ViewCard(ctx context.Context, playerID, name string) (bot.Outcome, error) {
	card, err := s.cards.GetCardByName(name)
	if err != nil {
		return bot.TryAgainLater{}, err
	}
	if card == nil {
		return bot.CardNotFound{Name: name}, nil
	}

	owns, err := s.cards.OwnsCard(playerID, card.ID)
	if err != nil {
		return bot.TryAgainLater{}, err
	}
	if !owns {
		return bot.CardLocked{Card: *card}, nil
	}
	return bot.CardDetail{Card: *card}, nil
}

// Redeem runs the rewards track: a random reward is granted and the redeem
// cost debited transactionally. With the rewards track disabled, the
// command instead answers with the draw prompt (or the insufficient-points
// notice below the draw threshold).
func (s *EconomyService) Redeem(ctx context.Context, playerID string) (bot.Outcome, error) {
	balance, err := s.Balance(ctx, playerID)
	if err != nil {
		return bot.TryAgainLater{}, err
	}

	if !s.rewardsEnabled {
		if balance < s.drawCost {
			return bot.InsufficientPoints{Balance: balance, Cost: s.drawCost}, nil
		}
		return bot.DrawPrompt{Balance: balance, Cost: s.drawCost}, nil
	}

	if balance < s.redeemCost {
		return bot.InsufficientPoints{Balance: balance, Cost: s.redeemCost}, nil
	}

	rewards, err := s.rewards.ListRewards()
	if err != nil {
		return bot.TryAgainLater{}, err
	}
	if len(rewards) == 0 {
		return bot.InsufficientPoints{Balance: balance, Cost: s.redeemCost}, nil
	}

	reward := rewards[rand.Intn(len(rewards))]
	code := uuid.New().String()[:8]

	redeemed, err := s.rewards.RedeemAndDebit(playerID, reward.ID, code, s.redeemCost)
	if err != nil {
		return bot.TryAgainLater{}, err
	}
	if !redeemed {
		return bot.InsufficientPoints{Balance: balance, Cost: s.redeemCost}, nil
	}

	return bot.RewardRedeemed{Reward: reward, Code: code}, nil
}

// Record returns the player's game record: distinct correct answers and
// current score.
func (s *EconomyService) Record(ctx context.Context, playerID string) (bot.Outcome, error) {
	player, err := s.players.GetPlayer(playerID)
	if err != nil {
		return bot.TryAgainLater{}, err
	}
	if player == nil {
		return bot.NoRecord{}, nil
	}

	correct, err := s.attempts.CountCorrectAttempts(playerID)
	if err != nil {
		return bot.TryAgainLater{}, err
	}

	return bot.RecordView{Record: models.PlayerRecord{
		CorrectAnswers: correct,
		Score:          player.Score,
	}}, nil
}
