package models

import "time"

// Question is a quiz question addressed by a short code (e.g. "Q1").
// Options preserve their stored order; CorrectAnswer equals exactly one option.
type Question struct {
	ID              int64
	Code            string
	Text            string
	Options         []string
	CorrectAnswer   string
	ExplainText     string
	ExplainImageURL string
	ExplainLinkURL  string
	SortOrder       int
	CreatedAt       time.Time
}

// AnswerAttempt is one row in the append-only attempt log. Every submission
// is recorded, correct or not; rows are never mutated or deleted.
type AnswerAttempt struct {
	ID           int64
	PlayerID     string
	QuestionCode string
	AnswerText   string
	IsCorrect    bool
	CreatedAt    time.Time
}
