package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"cardquest/internal/bot"
	"cardquest/internal/config"
	"cardquest/internal/database"
	"cardquest/internal/handlers"
	"cardquest/internal/messaging"
	"cardquest/internal/repository"
	"cardquest/internal/security"
	"cardquest/internal/service"
	"cardquest/internal/session"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Seed the question catalog, card catalog and reward list on first run
	if err := db.SeedGameData(); err != nil {
		log.Printf("Warning: Failed to seed game data: %v", err)
	}

	// Pending-question state: Redis when configured, in-process otherwise
	sessions := newSessionStore(cfg)
	if closer, ok := sessions.(interface{ Close() }); ok {
		defer closer.Close()
	}

	// Initialize repositories
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	cardRepo := repository.NewCardRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Initialize services
	quizService := service.NewQuizService(questionRepo, answerRepo, playerRepo, sessions, cfg.CorrectPoints)
	economyService := service.NewEconomyService(cardRepo, rewardRepo, playerRepo, answerRepo, cfg.DrawCost, cfg.RedeemCost, cfg.RewardsEnabled)
	gameService := service.NewGameService(quizService, economyService, sessions)
	authService := service.NewAuthService(adminRepo, cfg.AdminJWTSecret, cfg.AdminTokenTTL)

	if err := authService.EnsureBootstrapAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("Warning: Failed to create bootstrap admin: %v", err)
	}

	// Outbound messaging client
	replier := messaging.NewClient(cfg.MessagingAPIURL, cfg.ChannelTokenURL, cfg.ChannelID, cfg.ChannelKey)

	// Initialize handlers
	rateLimiter := security.NewRateLimiter(60, time.Minute)
	middleware := handlers.NewMiddleware(authService, rateLimiter)
	webhookHandler := handlers.NewWebhookHandler(gameService, bot.NewResponder(), replier, cfg.ChannelSecret)
	adminHandler := handlers.NewAdminHandler(authService, questionRepo, cardRepo, rewardRepo)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("POST /webhook", webhookHandler.HandleWebhook)

	mux.HandleFunc("POST /admin/login", middleware.RateLimit(adminHandler.Login))
	mux.HandleFunc("/admin/questions", middleware.RequireAdmin(adminHandler.Questions))
	mux.HandleFunc("/admin/cards", middleware.RequireAdmin(adminHandler.Cards))
	mux.HandleFunc("/admin/rewards", middleware.RequireAdmin(adminHandler.Rewards))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.Logging(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine for graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// newSessionStore picks the pending-question store implementation. With
// REDIS_ADDR set, sessions survive restarts and are shared across
// replicas; otherwise a single-process in-memory store is used.
func newSessionStore(cfg *config.Config) session.Store {
	if cfg.RedisAddr == "" {
		log.Printf("Using in-memory session store (TTL %s)", cfg.SessionTTL)
		return session.NewMemoryStore(cfg.SessionTTL)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	log.Printf("Using Redis session store at %s (TTL %s)", cfg.RedisAddr, cfg.SessionTTL)
	return session.NewRedisStore(client, cfg.SessionTTL)
}
