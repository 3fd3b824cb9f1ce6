package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("API_KEY", "secret")
	t.Setenv("GOOGLE_API_KEY", "gemini-key")
	t.Setenv("STRIPE_API_KEY", "sk_test_123")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("Expected default model gemini-1.5-flash, got %s", cfg.GeminiModel)
	}
	if cfg.AgentTimeout != 30*time.Second {
		t.Errorf("Expected default agent timeout 30s, got %s", cfg.AgentTimeout)
	}
	if cfg.HistoryLimit != 20 {
		t.Errorf("Expected default history limit 20, got %d", cfg.HistoryLimit)
	}
}

func TestLoad_MissingRequiredKeys(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing api key", "API_KEY"},
		{"missing gemini key", "GOOGLE_API_KEY"},
		{"missing stripe key", "STRIPE_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			if _, err := Load(); err == nil {
				t.Errorf("Expected error with %s unset, got nil", tt.unset)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("AGENT_TIMEOUT", "45s")
	t.Setenv("HISTORY_LIMIT", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Port)
	}
	if cfg.AgentTimeout != 45*time.Second {
		t.Errorf("Expected agent timeout 45s, got %s", cfg.AgentTimeout)
	}
	if cfg.HistoryLimit != 5 {
		t.Errorf("Expected history limit 5, got %d", cfg.HistoryLimit)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AGENT_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.AgentTimeout != 30*time.Second {
		t.Errorf("Expected fallback timeout 30s, got %s", cfg.AgentTimeout)
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{FrontendURL: "http://localhost:3000"}
	if !cfg.IsDevelopment() {
		t.Error("Expected localhost frontend to be development mode")
	}

	cfg = &Config{FrontendURL: "https://app.example.com"}
	if cfg.IsDevelopment() {
		t.Error("Expected remote frontend to not be development mode")
	}
}
