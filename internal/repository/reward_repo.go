package repository

import (
	"fmt"

	"cardquest/internal/database"
	"cardquest/internal/models"
)

// RewardRepository handles database operations for the rewards track
type RewardRepository struct {
	db *database.DB
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(db *database.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

// ListRewards retrieves the fixed reward list
func (r *RewardRepository) ListRewards() ([]models.Reward, error) {
	query := "SELECT id, name, COALESCE(description, '') FROM rewards ORDER BY id"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	defer rows.Close()

	var rewards []models.Reward
	for rows.Next() {
		var reward models.Reward
		if err := rows.Scan(&reward.ID, &reward.Name, &reward.Description); err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rewards = append(rewards, reward)
	}

	return rewards, rows.Err()
}

// RedeemAndDebit records a redemption and debits the cost in one
// transaction. Returns false without redeeming when the balance is below
// the cost.
func (r *RewardRepository) RedeemAndDebit(playerID string, rewardID int64, redemptionCode string, cost int) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin redemption transaction: %w", err)
	}

	debited, err := debitScore(tx, playerID, cost)
	if err != nil {
		tx.Rollback()
		return false, err
	}
	if !debited {
		tx.Rollback()
		return false, nil
	}

	insert := "INSERT INTO reward_redemptions (player_id, reward_id, redemption_code) VALUES (?, ?, ?)"
	if _, err := tx.Exec(insert, playerID, rewardID, redemptionCode); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to record redemption: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit redemption: %w", err)
	}
	return true, nil
}

// CountRedemptions returns how many rewards a player has redeemed
func (r *RewardRepository) CountRedemptions(playerID string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM reward_redemptions WHERE player_id = ?"
	err := r.db.QueryRow(query, playerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count redemptions: %w", err)
	}
	return count, nil
}
