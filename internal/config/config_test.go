package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr %q, got %q", ":8080", cfg.Addr)
	}
	if cfg.Gemini.Model != DefaultGeminiModel {
		t.Errorf("expected default model %q, got %q", DefaultGeminiModel, cfg.Gemini.Model)
	}
	if cfg.Analytics.ConsentCookie != "cookie_consent" {
		t.Errorf("expected consent cookie %q, got %q", "cookie_consent", cfg.Analytics.ConsentCookie)
	}
	if cfg.Gemini.Configured() {
		t.Error("default config should not carry a Gemini key")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ivmanto.yml")
	t.Setenv(GeminiKeyEnvVar, "")

	original := DefaultConfig()
	original.Addr = ":9090"
	original.BackendURL = "http://backend.internal:8081"
	original.Gemini.Model = "gemini-flash"
	original.Gemini.RequestsPerMinute = 12
	original.Analytics.GTMContainerID = "GTM-TEST"
	original.AllowedOrigins = []string{"https://ivmanto.com"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Addr != original.Addr {
		t.Errorf("addr: got %q, want %q", loaded.Addr, original.Addr)
	}
	if loaded.BackendURL != original.BackendURL {
		t.Errorf("backend_url: got %q, want %q", loaded.BackendURL, original.BackendURL)
	}
	if loaded.Gemini.Model != original.Gemini.Model {
		t.Errorf("gemini.model: got %q, want %q", loaded.Gemini.Model, original.Gemini.Model)
	}
	if loaded.Gemini.RequestsPerMinute != 12 {
		t.Errorf("gemini.requests_per_minute: got %d, want 12", loaded.Gemini.RequestsPerMinute)
	}
	if loaded.Analytics.GTMContainerID != "GTM-TEST" {
		t.Errorf("analytics.gtm_container_id: got %q", loaded.Analytics.GTMContainerID)
	}
	if len(loaded.AllowedOrigins) != 1 || loaded.AllowedOrigins[0] != "https://ivmanto.com" {
		t.Errorf("allowed_origins: got %v", loaded.AllowedOrigins)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.SiteName != "ivmanto.com" {
		t.Errorf("expected default site name, got %q", cfg.SiteName)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ivmanto.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("IVMANTO_ADDR", ":7000")
	t.Setenv("IVMANTO_GEMINI__MODEL", "gemini-pro")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Addr != ":7000" {
		t.Errorf("env override failed: got %q, want %q", loaded.Addr, ":7000")
	}
	if loaded.Gemini.Model != "gemini-pro" {
		t.Errorf("nested env override failed: got %q, want %q", loaded.Gemini.Model, "gemini-pro")
	}
}

func TestLoadGeminiKeyFallback(t *testing.T) {
	t.Setenv(GeminiKeyEnvVar, "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gemini.APIKey != "secret" {
		t.Errorf("expected key from %s, got %q", GeminiKeyEnvVar, cfg.Gemini.APIKey)
	}
	if !cfg.Gemini.Configured() {
		t.Error("expected gemini to be configured")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"empty site name", func(c *Config) { c.SiteName = "" }},
		{"relative backend url", func(c *Config) { c.BackendURL = "/api" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"empty model", func(c *Config) { c.Gemini.Model = "" }},
		{"negative rpm", func(c *Config) { c.Gemini.RequestsPerMinute = -1 }},
		{"empty consent cookie", func(c *Config) { c.Analytics.ConsentCookie = "" }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "DEBUG"
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.SlogLevel())
	}
	cfg.LogLevel = "nonsense"
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("expected info fallback, got %v", cfg.SlogLevel())
	}
}

func TestForwardingEnabled(t *testing.T) {
	a := AnalyticsConfig{MeasurementID: "G-1"}
	if a.ForwardingEnabled() {
		t.Error("forwarding needs an API secret")
	}
	a.APISecret = "s"
	if !a.ForwardingEnabled() {
		t.Error("expected forwarding to be enabled")
	}
}
