package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"cardquest/internal/security"
	"cardquest/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const AdminContextKey ContextKey = "admin"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	rateLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, rateLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		rateLimiter: rateLimiter,
	}
}

// RequireAdmin validates the bearer token on management API requests
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing bearer token", "", nil)
			return
		}

		email, err := m.authService.ValidateToken(token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), AdminContextKey, email)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects clients that exceed the per-IP request limit
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.rateLimiter.Allow(ip) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// AdminFromContext retrieves the authenticated operator email, or ""
func AdminFromContext(ctx context.Context) string {
	email, _ := ctx.Value(AdminContextKey).(string)
	return email
}
