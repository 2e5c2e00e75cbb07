package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cardquest/internal/models"
	"cardquest/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AdminStore reads and creates operator accounts.
type AdminStore interface {
	GetAdminByEmail(email string) (*models.Admin, error)
	CreateAdmin(email, passwordHash string) (*models.Admin, error)
}

// AuthService authenticates operators for the management API and issues
// short-lived bearer tokens.
type AuthService struct {
	admins    AdminStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(admins AdminStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		admins:    admins,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Login verifies the operator's credentials and returns a signed token
func (s *AuthService) Login(email, password string) (string, error) {
	admin, err := s.admins.GetAdminByEmail(email)
	if err != nil {
		return "", fmt.Errorf("failed to get admin: %w", err)
	}
	if admin == nil {
		return "", ErrInvalidCredentials
	}

	if !security.CheckPassword(password, admin.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   admin.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks a bearer token and returns the operator email it
// was issued to.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// EnsureBootstrapAdmin creates the configured operator account on first
// startup. An existing account with the same email is left untouched.
func (s *AuthService) EnsureBootstrapAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.admins.GetAdminByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to check bootstrap admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}
	if _, err := s.admins.CreateAdmin(email, hash); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	log.Printf("Created bootstrap admin account: %s", email)
	return nil
}
