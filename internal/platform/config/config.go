// Package config loads application configuration from environment variables.
// All variables use the SENSEI_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Cache       CacheConfig
	Log         LogConfig
	CatalogPath string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL means the
// service runs on in-memory stores.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis connection settings. An empty URL disables the
// study-plan cache.
type CacheConfig struct {
	URL         string
	PlanTTLMins int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with SENSEI_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("SENSEI_SERVER_PORT", 8080),
			Host: envStr("SENSEI_SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL:      envStr("SENSEI_DATABASE_URL", ""),
			MaxConns: envInt("SENSEI_DATABASE_MAX_CONNS", 25),
			MinConns: envInt("SENSEI_DATABASE_MIN_CONNS", 5),
		},
		Cache: CacheConfig{
			URL:         envStr("SENSEI_CACHE_URL", ""),
			PlanTTLMins: envInt("SENSEI_CACHE_PLAN_TTL_MINS", 360),
		},
		Log: LogConfig{
			Level:  envStr("SENSEI_LOG_LEVEL", "info"),
			Format: envStr("SENSEI_LOG_FORMAT", "json"),
		},
		CatalogPath: envStr("SENSEI_CATALOG_PATH", "./catalog"),
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return fmt.Errorf("SENSEI_CATALOG_PATH is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SENSEI_SERVER_PORT must be a valid port, got %d", c.Server.Port)
	}
	if c.Database.URL != "" && c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("SENSEI_DATABASE_MIN_CONNS (%d) exceeds SENSEI_DATABASE_MAX_CONNS (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("SENSEI_LOG_LEVEL must be debug|info|warn|error, got %q", c.Log.Level)
	}
	return nil
}

// HasDatabase reports whether a PostgreSQL backend is configured.
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}

// HasCache reports whether a Redis backend is configured.
func (c *Config) HasCache() bool {
	return c.Cache.URL != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
