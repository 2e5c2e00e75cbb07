package models

import "time"

// Admin is an operator account for the management API.
type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
