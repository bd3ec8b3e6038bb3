package llm

import (
	"log/slog"

	"github.com/ivmanto/site/internal/config"
)

// NewFromConfig builds the rate-limited Gemini gateway described by cfg.
// Without an API key every call fails with ErrNotConfigured, so no limiter
// is put in front.
func NewFromConfig(cfg config.GeminiConfig, logger *slog.Logger) Completer {
	p := NewGoogleProvider(cfg.APIKey, cfg.Model, cfg.BaseURL, logger)
	if !cfg.Configured() {
		return p
	}
	return NewRateLimitedProvider(p, cfg.RequestsPerMinute)
}
