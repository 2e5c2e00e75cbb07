package repository

import (
	"fmt"
	"time"

	"cardquest/internal/database"
	"cardquest/internal/models"
)

// AnswerRepository handles the append-only answer attempt log
type AnswerRepository struct {
	db *database.DB
}

// NewAnswerRepository creates a new answer repository
func NewAnswerRepository(db *database.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// RecordAttempt appends one attempt row. Called for every submission,
// correct or not.
func (r *AnswerRepository) RecordAttempt(playerID, questionCode, answerText string, isCorrect bool) (*models.AnswerAttempt, error) {
	query := `
		INSERT INTO answers (player_id, question_code, answer_text, is_correct)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, playerID, questionCode, answerText, isCorrect)
	if err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	return &models.AnswerAttempt{
		ID:           id,
		PlayerID:     playerID,
		QuestionCode: questionCode,
		AnswerText:   answerText,
		IsCorrect:    isCorrect,
		CreatedAt:    time.Now(),
	}, nil
}

// HasCorrectAttempt reports whether the player has ever answered the given
// question correctly
func (r *AnswerRepository) HasCorrectAttempt(playerID, questionCode string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM answers WHERE player_id = ? AND question_code = ? AND is_correct = " +
		r.db.Dialect.BoolValue(true)
	err := r.db.QueryRow(query, playerID, questionCode).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check attempts: %w", err)
	}
	return count > 0, nil
}

// CountCorrectAttempts returns how many distinct questions the player has
// answered correctly
func (r *AnswerRepository) CountCorrectAttempts(playerID string) (int, error) {
	var count int
	query := "SELECT COUNT(DISTINCT question_code) FROM answers WHERE player_id = ? AND is_correct = " +
		r.db.Dialect.BoolValue(true)
	err := r.db.QueryRow(query, playerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count correct attempts: %w", err)
	}
	return count, nil
}

// GetAttempts retrieves the attempt log for a player, newest first
func (r *AnswerRepository) GetAttempts(playerID string, limit int) ([]models.AnswerAttempt, error) {
	query := `
		SELECT id, player_id, question_code, answer_text, is_correct, created_at
		FROM answers
		WHERE player_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.AnswerAttempt
	for rows.Next() {
		var a models.AnswerAttempt
		if err := rows.Scan(&a.ID, &a.PlayerID, &a.QuestionCode, &a.AnswerText, &a.IsCorrect, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}
