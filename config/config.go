// Package config loads the mdr settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath string
	EODHDAPIKey  string
	Provider     string // yahoo or eodhd
	Currency     string // display only, amounts are never converted
	LogLevel     string
	LogPretty    bool
	Listen       string
	Workers      int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath: getEnv("MDR_DB", "returns.db"),
		EODHDAPIKey:  getEnv("EODHD_API_KEY", ""),
		Provider:     getEnv("MDR_PROVIDER", "yahoo"),
		Currency:     getEnv("MDR_CURRENCY", "USD"),
		LogLevel:     getEnv("MDR_LOG_LEVEL", "info"),
		LogPretty:    getEnvAsBool("MDR_LOG_PRETTY", true),
		Listen:       getEnv("MDR_LISTEN", ":8080"),
		Workers:      getEnvAsInt("MDR_WORKERS", 4),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("MDR_DB is required")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("MDR_WORKERS must be positive, got %d", c.Workers)
	}
	switch c.Provider {
	case "yahoo", "eodhd":
	default:
		return fmt.Errorf("unknown MDR_PROVIDER %q, want yahoo or eodhd", c.Provider)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
