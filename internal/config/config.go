package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store drivers
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Persistence
	StoreDriver string
	DatabaseURL string
	DataPath    string

	// Billing
	DefaultRate float64

	// JWT / operator login
	JWTSecret            string
	JWTExpirationHours   int
	OperatorUsername     string
	OperatorPasswordHash string

	// Storage (backups, exports)
	StoragePath string

	// Background Workers
	WorkerCount         int
	BackupIntervalHours int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		StoreDriver:          strings.ToLower(getEnv("STORE_DRIVER", StoreFile)),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		DataPath:             getEnv("DATA_PATH", "./data"),
		DefaultRate:          getEnvAsFloat("DEFAULT_RATE", 1500),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTExpirationHours:   getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		OperatorUsername:     getEnv("OPERATOR_USERNAME", "admin"),
		OperatorPasswordHash: getEnv("OPERATOR_PASSWORD_HASH", ""),
		StoragePath:          getEnv("STORAGE_PATH", "./storage"),
		WorkerCount:          getEnvAsInt("WORKER_COUNT", 2),
		BackupIntervalHours:  getEnvAsInt("BACKUP_INTERVAL_HOURS", 24),
		AllowedOrigins:       getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:            getEnv("SENTRY_DSN", ""),
	}

	// Validate required configuration
	switch cfg.StoreDriver {
	case StoreMemory, StoreFile:
	case StorePostgres, StoreSQLite:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for STORE_DRIVER=%s", cfg.StoreDriver)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.DefaultRate <= 0 {
		return nil, fmt.Errorf("DEFAULT_RATE must be greater than 0")
	}

	if cfg.IsProduction() {
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		if cfg.OperatorPasswordHash == "" {
			return nil, fmt.Errorf("OPERATOR_PASSWORD_HASH is required in production")
		}
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AuthEnabled reports whether protected routes require an operator token
func (c *Config) AuthEnabled() bool {
	return c.OperatorPasswordHash != ""
}

// getEnv reads an environment variable or returns a default value when unset or empty
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
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

// getEnvAsFloat reads an environment variable as float
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
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
