package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabaseURL  string
	DatabasePath string

	MigrationsPath string

	// Messaging platform credentials
	ChannelSecret   string
	ChannelID       string
	ChannelKey      string
	ChannelTokenURL string
	MessagingAPIURL string

	// Game economy knobs
	CorrectPoints  int
	DrawCost       int
	RedeemCost     int
	RewardsEnabled bool

	// Pending-question session state
	SessionTTL time.Duration
	RedisAddr  string

	// Admin management API
	AdminJWTSecret string
	AdminTokenTTL  time.Duration
	AdminEmail     string
	AdminPassword  string

	// Operational email (AWS SES)
	AWSRegion         string
	SESFromEmail      string
	SESFromName       string
	BackupReportEmail string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:   getEnv("PORT", "8080"),
		DatabaseType: getEnv("DATABASE_TYPE", "sqlite"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		DatabasePath: getEnv("DB_PATH", "./cardquest.db"),

		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		ChannelSecret:   getEnv("CHANNEL_SECRET", ""),
		ChannelID:       getEnv("CHANNEL_ID", ""),
		ChannelKey:      getEnv("CHANNEL_KEY", ""),
		ChannelTokenURL: getEnv("CHANNEL_TOKEN_URL", ""),
		MessagingAPIURL: getEnv("MESSAGING_API_URL", ""),

		CorrectPoints:  getEnvInt("CORRECT_POINTS", 10),
		DrawCost:       getEnvInt("DRAW_COST", 10),
		RedeemCost:     getEnvInt("REDEEM_COST", 20),
		RewardsEnabled: getEnvBool("REWARDS_ENABLED", false),

		SessionTTL: getEnvDuration("SESSION_TTL", 30*time.Minute),
		RedisAddr:  getEnv("REDIS_ADDR", ""),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		AdminTokenTTL:  getEnvDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),

		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "CardQuest"),
		BackupReportEmail: getEnv("BACKUP_REPORT_EMAIL", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvBool reads a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
