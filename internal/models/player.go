package models

import "time"

// Player is a chat user's game record. Created lazily on the first correct
// answer; Score never goes below zero (enforced by the conditional debit).
type Player struct {
	ID        int64
	PlayerID  string
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayerRecord summarizes a player's history for the record view.
type PlayerRecord struct {
	CorrectAnswers int
	Score          int
}
