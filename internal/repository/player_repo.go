package repository

import (
	"database/sql"
	"fmt"

	"cardquest/internal/database"
	"cardquest/internal/models"
)

// PlayerRepository handles database operations for player game records
type PlayerRepository struct {
	db *database.DB
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetPlayer retrieves a player by chat user id, or nil if none exists.
// A read never creates a record.
func (r *PlayerRepository) GetPlayer(playerID string) (*models.Player, error) {
	query := `
		SELECT id, player_id, score, created_at, updated_at
		FROM players
		WHERE player_id = ?
	`
	player := &models.Player{}
	err := r.db.QueryRow(query, playerID).Scan(
		&player.ID,
		&player.PlayerID,
		&player.Score,
		&player.CreatedAt,
		&player.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// CreditScore adds points to a player's score, creating the record with the
// given score if none exists. The upsert is a single atomic statement, so
// concurrent credits for the same player cannot lose updates.
func (r *PlayerRepository) CreditScore(playerID string, points int) error {
	_, err := r.db.Exec(r.db.Dialect.ScoreUpsertQuery(), playerID, points)
	if err != nil {
		return fmt.Errorf("failed to credit score: %w", err)
	}
	return nil
}

// DebitScore subtracts points from a player's score. The score >= points
// precondition is part of the UPDATE, so the balance can never go negative
// under concurrent debits. Returns false when the precondition fails.
func (r *PlayerRepository) DebitScore(playerID string, points int) (bool, error) {
	return debitScore(r.db, playerID, points)
}

// debitScore runs the conditional debit on a DB or Tx.
func debitScore(dbtx database.DBTX, playerID string, points int) (bool, error) {
	query := `
		UPDATE players
		SET score = score - ?, updated_at = CURRENT_TIMESTAMP
		WHERE player_id = ? AND score >= ?
	`
	result, err := dbtx.Exec(query, points, playerID, points)
	if err != nil {
		return false, fmt.Errorf("failed to debit score: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check debit result: %w", err)
	}
	return affected == 1, nil
}
