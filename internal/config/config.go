package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Database
	DatabaseURL string

	// JWT issued by the identity provider
	JWTSecret string

	// Legacy local-only data (JSON directory or SQLite file) imported on first start
	LegacyDataPath string
	LegacyOwnerID  string

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Cache
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// Localization
	DefaultLocale string

	// Validation
	MinDueDate time.Time

	// Form settings (requiredFields / enabledFeatures)
	SettingsFile string
	Form         FormSettings

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		LegacyDataPath: getEnv("LEGACY_DATA_PATH", ""),
		LegacyOwnerID:  getEnv("LEGACY_OWNER_ID", ""),
		WorkerCount:    getEnvAsInt("WORKER_COUNT", 3),
		AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		CacheTTL:       getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		DefaultLocale:  getEnv("DEFAULT_LOCALE", "es"),
		SettingsFile:   getEnv("APP_SETTINGS_FILE", ""),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
	}

	minDue, err := time.Parse("2006-01-02", getEnv("MIN_DUE_DATE", "2000-01-01"))
	if err != nil {
		return nil, fmt.Errorf("MIN_DUE_DATE must be a YYYY-MM-DD date: %w", err)
	}
	cfg.MinDueDate = minDue

	form, err := LoadFormSettings(cfg.SettingsFile)
	if err != nil {
		return nil, err
	}
	cfg.Form = form

	// Validate required configuration
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool reads an environment variable as boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration reads an environment variable as a time.Duration ("30s", "5m")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
