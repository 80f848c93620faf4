// Package config provides configuration loading and validation from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel          string // debug, info, warn, error
	ListenAddr        string // Server listen address (e.g., ":8080")
	MetricsListenAddr string // Metrics listener address (e.g., "localhost:9090")
	DatabasePath      string // SQLite database path

	RedisAddr     string // Redis address for the KV cache (e.g., "localhost:6379")
	RedisPassword string // Optional Redis password
	RedisDB       int    // Redis database number

	AdminSecret   string // Optional global administrator API secret; empty disables it
	AdminPassword string // Required: operator password for the admin login

	CleanupBatchSize int // Eviction sweep batch size, clamped to [1, 500] by the sweeper
	TZOffsetMinutes  int // Timezone offset (minutes east of UTC) for cache expiration
}

// Load parses configuration from environment variables.
// All configuration options except ADMIN_PASSWORD have defaults.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ListenAddr:        getEnv("LISTEN_ADDR", ":8080"),
		MetricsListenAddr: getEnv("METRICS_LISTEN_ADDR", "localhost:9090"),
		DatabasePath:      getEnv("DATABASE_PATH", "/data/gateway.db"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		AdminSecret:       os.Getenv("GROK_API_KEY"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.CleanupBatchSize, err = getEnvInt("KV_CLEANUP_BATCH", 200); err != nil {
		return nil, err
	}
	if cfg.TZOffsetMinutes, err = getEnvInt("CACHE_TZ_OFFSET_MINUTES", 0); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks all configuration constraints.
func (c *Config) Validate() error {
	if c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD environment variable is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
