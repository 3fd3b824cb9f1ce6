// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port         string
	FrontendURL  string
	DBPath       string
	APIKey       string
	GeminiAPIKey string
	GeminiModel  string
	StripeAPIKey string
	AgentTimeout time.Duration
	HistoryLimit int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	historyLimit := getEnvInt("HISTORY_LIMIT", 20)
	if historyLimit <= 0 {
		historyLimit = 20
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		FrontendURL:  getEnv("FRONTEND_URL", ""),
		DBPath:       getEnv("DB_PATH", "./data/invoice-agent.db"),
		APIKey:       getEnv("API_KEY", ""),
		GeminiAPIKey: getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		StripeAPIKey: getEnv("STRIPE_API_KEY", ""),
		AgentTimeout: getEnvDuration("AGENT_TIMEOUT", 30*time.Second),
		HistoryLimit: historyLimit,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if c.StripeAPIKey == "" {
		return fmt.Errorf("STRIPE_API_KEY is required")
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("GEMINI_MODEL cannot be empty")
	}
	if c.AgentTimeout <= 0 {
		return fmt.Errorf("AGENT_TIMEOUT must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
