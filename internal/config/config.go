// Package config handles loading and validating configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the server.
type Config struct {
	// HTTP
	ListenAddr string

	// Database
	PostgresDSN   string // empty = in-memory stores
	ClickhouseDSN string // empty = snapshot archiving disabled

	// Cache
	RedisAddr     string // empty = no-op cache
	RedisPassword string
	RedisDB       int
	CacheBaseTTL  time.Duration

	// Refresh job
	RefreshInterval  time.Duration
	RefreshBatchSize int

	// Metrics
	MetricsEnabled bool

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables with fallback to .env file.
// Priority order: Environment variables > .env file > hardcoded defaults
func Load() (*Config, error) {
	// Attempt to load .env file (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		PostgresDSN:   getEnv("POSTGRES_DSN", ""),
		ClickhouseDSN: getEnv("CLICKHOUSE_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheBaseTTL:  time.Duration(getEnvInt("CACHE_BASE_TTL_SECONDS", 120)) * time.Second,

		RefreshInterval:  time.Duration(getEnvInt("REFRESH_INTERVAL_SECONDS", 300)) * time.Second,
		RefreshBatchSize: getEnvInt("REFRESH_BATCH_SIZE", 200),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("LISTEN_ADDR is required")
	}

	if c.CacheBaseTTL <= 0 {
		return fmt.Errorf("CACHE_BASE_TTL_SECONDS must be positive")
	}

	if c.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL_SECONDS must be positive")
	}

	if c.RefreshBatchSize < 1 {
		return fmt.Errorf("REFRESH_BATCH_SIZE must be at least 1")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as an integer or returns a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as a boolean or returns a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
