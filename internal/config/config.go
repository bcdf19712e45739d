package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Redis    RedisConfig
	Workflow WorkflowConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// WorkflowConfig holds character workflow configuration
type WorkflowConfig struct {
	// UnfinishedTTL is how long an abandoned in-progress character is
	// kept before it expires. Submitted characters never expire.
	UnfinishedTTL time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Workflow: WorkflowConfig{
			UnfinishedTTL: time.Duration(getEnvAsIntOrDefault("CHARGEN_UNFINISHED_TTL_DAYS", 30)) * 24 * time.Hour,
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
