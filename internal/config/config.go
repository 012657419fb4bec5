// Package config loads application configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Storage backend names accepted in BAR_STORAGE.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config represents the application configuration.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string

	// StorageBackend selects the KV backend: bolt (default), sqlite, or
	// memory (nothing persisted; useful for demos).
	StorageBackend string

	// DBPath is the database file path for the bolt and sqlite backends.
	DBPath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is "text" (tint, for terminals) or "json".
	LogFormat string
}

// Load reads configuration from the environment. A .env file in the
// current directory is loaded first if present; real environment variables
// win over .env entries.
func Load() (*Config, error) {
	// Ignore error if no .env exists.
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		StorageBackend: getEnv("BAR_STORAGE", BackendBolt),
		DBPath:         getEnv("DB_PATH", "./data/bar.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}

	switch cfg.StorageBackend {
	case BackendBolt, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("invalid BAR_STORAGE %q: want %s, %s or %s",
			cfg.StorageBackend, BackendBolt, BackendSQLite, BackendMemory)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
