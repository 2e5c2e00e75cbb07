package repository

import (
	"database/sql"
	"fmt"

	"cardquest/internal/database"
	"cardquest/internal/models"
)

// CardRepository handles database operations for the card catalog and ownership
type CardRepository struct {
	db *database.DB
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *database.DB) *CardRepository {
	return &CardRepository{db: db}
}

// ListCards retrieves the full card catalog
func (r *CardRepository) ListCards() ([]models.Card, error) {
	query := `
		SELECT id, name, rarity, COALESCE(description, ''), COALESCE(image_url, ''), COALESCE(thumbnail_url, '')
		FROM cards
		ORDER BY id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var card models.Card
		if err := rows.Scan(&card.ID, &card.Name, &card.Rarity, &card.Description, &card.ImageURL, &card.ThumbnailURL); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}

// GetCardByName retrieves a card by exact name match, or nil if none exists
func (r *CardRepository) GetCardByName(name string) (*models.Card, error) {
	query := `
		SELECT id, name, rarity, COALESCE(description, ''), COALESCE(image_url, ''), COALESCE(thumbnail_url, '')
		FROM cards
		WHERE name = ?
	`
	card := &models.Card{}
	err := r.db.QueryRow(query, name).Scan(
		&card.ID, &card.Name, &card.Rarity, &card.Description, &card.ImageURL, &card.ThumbnailURL,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return card, nil
}

// GetOwnedCardIDs retrieves the set of card ids a player owns
func (r *CardRepository) GetOwnedCardIDs(playerID string) (map[int64]bool, error) {
	query := "SELECT card_id FROM player_cards WHERE player_id = ?"
	rows, err := r.db.Query(query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owned cards: %w", err)
	}
	defer rows.Close()

	owned := make(map[int64]bool)
	for rows.Next() {
		var cardID int64
		if err := rows.Scan(&cardID); err != nil {
			return nil, fmt.Errorf("failed to scan owned card: %w", err)
		}
		owned[cardID] = true
	}

	return owned, rows.Err()
}

// OwnsCard reports whether the player owns the given card
func (r *CardRepository) OwnsCard(playerID string, cardID int64) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM player_cards WHERE player_id = ? AND card_id = ?"
	err := r.db.QueryRow(query, playerID, cardID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check ownership: %w", err)
	}
	return count > 0, nil
}

// GrantCardAndDebit grants a card and debits the draw cost in one
// transaction. Returns false without granting when the player's balance is
// below the cost; the conditional debit guards the race between the
// eligibility check and the draw.
func (r *CardRepository) GrantCardAndDebit(playerID string, cardID int64, cost int) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin draw transaction: %w", err)
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

	insert := "INSERT INTO player_cards (player_id, card_id) VALUES (?, ?)"
	if _, err := tx.Exec(insert, playerID, cardID); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to grant card: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit draw: %w", err)
	}
	return true, nil
}

// CreateCard inserts a new card into the catalog
func (r *CardRepository) CreateCard(card *models.Card) (*models.Card, error) {
	query := `
		INSERT INTO cards (name, rarity, description, image_url, thumbnail_url)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, card.Name, card.Rarity, card.Description, card.ImageURL, card.ThumbnailURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	created := *card
	created.ID = id
	return &created, nil
}
