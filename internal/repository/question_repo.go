package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"cardquest/internal/database"
	"cardquest/internal/models"
)

// QuestionRepository handles database operations for quiz questions
type QuestionRepository struct {
	db *database.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetQuestionByCode retrieves a question by its code, or nil if none exists
func (r *QuestionRepository) GetQuestionByCode(code string) (*models.Question, error) {
	query := `
		SELECT id, code, text, options, correct_answer,
		       COALESCE(explain_text, ''), COALESCE(explain_image_url, ''), COALESCE(explain_link_url, ''),
		       sort_order, created_at
		FROM questions
		WHERE code = ?
	`
	question := &models.Question{}
	var optionsJSON string

	err := r.db.QueryRow(query, code).Scan(
		&question.ID,
		&question.Code,
		&question.Text,
		&optionsJSON,
		&question.CorrectAnswer,
		&question.ExplainText,
		&question.ExplainImageURL,
		&question.ExplainLinkURL,
		&question.SortOrder,
		&question.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	if err := json.Unmarshal([]byte(optionsJSON), &question.Options); err != nil {
		return nil, fmt.Errorf("failed to decode options for %s: %w", code, err)
	}

	return question, nil
}

// ListQuestions retrieves all questions ordered by sort order
func (r *QuestionRepository) ListQuestions() ([]models.Question, error) {
	query := `
		SELECT id, code, text, options, correct_answer,
		       COALESCE(explain_text, ''), COALESCE(explain_image_url, ''), COALESCE(explain_link_url, ''),
		       sort_order, created_at
		FROM questions
		ORDER BY sort_order, code
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var question models.Question
		var optionsJSON string
		err := rows.Scan(
			&question.ID,
			&question.Code,
			&question.Text,
			&optionsJSON,
			&question.CorrectAnswer,
			&question.ExplainText,
			&question.ExplainImageURL,
			&question.ExplainLinkURL,
			&question.SortOrder,
			&question.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(optionsJSON), &question.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options for %s: %w", question.Code, err)
		}
		questions = append(questions, question)
	}

	return questions, rows.Err()
}

// CreateQuestion inserts a new question into the catalog
func (r *QuestionRepository) CreateQuestion(q *models.Question) (*models.Question, error) {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}

	query := `
		INSERT INTO questions (code, text, options, correct_answer, explain_text, explain_image_url, explain_link_url, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		q.Code, q.Text, string(options), q.CorrectAnswer,
		q.ExplainText, q.ExplainImageURL, q.ExplainLinkURL, q.SortOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	created := *q
	created.ID = id
	created.CreatedAt = time.Now()
	return &created, nil
}
