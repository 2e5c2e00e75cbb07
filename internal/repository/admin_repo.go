package repository

import (
	"database/sql"
	"fmt"
	"time"

	"cardquest/internal/database"
	"cardquest/internal/models"
)

// AdminRepository handles database operations for operator accounts
type AdminRepository struct {
	db *database.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *database.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetAdminByEmail retrieves an admin by email address, or nil if none exists
func (r *AdminRepository) GetAdminByEmail(email string) (*models.Admin, error) {
	query := "SELECT id, email, password_hash, created_at FROM admins WHERE email = ?"
	admin := &models.Admin{}
	err := r.db.QueryRow(query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return admin, nil
}

// CreateAdmin inserts a new operator account
func (r *AdminRepository) CreateAdmin(email, passwordHash string) (*models.Admin, error) {
	query := "INSERT INTO admins (email, password_hash) VALUES (?, ?)"
	id, err := r.db.ExecReturningID(query, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return &models.Admin{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}
