package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestValidateKVProvider(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.KVProvider = "invalid"

	err := cfg.validate()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "KVProvider") || !strings.Contains(err.Error(), "oneof") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateFilePathRequiredForFileProvider(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.KVProvider = "file"
	cfg.KVFilePath = ""

	err := cfg.validate()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "KVFilePath") || !strings.Contains(err.Error(), "required_if") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateAPIBaseURLRequiresHTTPSOutsideLocalhost(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.APIBaseURL = "http://example.com"

	err := cfg.validate()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "API_BASE_URL must use https") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateAPIBaseURLAllowsLocalhostHTTP(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.APIBaseURL = "http://localhost:8080"

	if err := cfg.validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateRequestTimeoutMustBePositive(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.RequestTimeout = 0

	err := cfg.validate()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "REQUEST_TIMEOUT") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func validConfig() *Config {
	return &Config{
		APIBaseURL:     "https://api.freshmandi.in",
		KVProvider:     "memory",
		RequestTimeout: 10 * time.Second,
		LogFormat:      "text",
	}
}

func TestLoadParsesUppercaseLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")

	// Ensure unrelated env vars from host don't affect this test.
	t.Setenv("API_BASE_URL", "https://api.freshmandi.in")
	t.Setenv("KV_PROVIDER", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected DEBUG level, got %v", cfg.LogLevel)
	}
}
