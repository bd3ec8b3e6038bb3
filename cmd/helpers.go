package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ivmanto/site/internal/backend"
	"github.com/ivmanto/site/internal/config"
	"github.com/ivmanto/site/internal/db"
	"github.com/ivmanto/site/internal/llm"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `ivmanto init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. --verbose forces debug output.
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// openDatabase opens the event database under the configured data dir.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.OpenInDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

// createCompleter returns the Gemini gateway, or an error when no API key is
// configured.
func createCompleter(cfg *config.Config, logger *slog.Logger) (llm.Completer, error) {
	if !cfg.Gemini.Configured() {
		return nil, fmt.Errorf("%w: set %s or gemini.api_key", llm.ErrNotConfigured, config.GeminiKeyEnvVar)
	}
	return llm.NewFromConfig(cfg.Gemini, logger), nil
}

// newIdeaGenerator picks the backend proxy when a backend is configured and
// the local Gemini generator otherwise.
func newIdeaGenerator(cfg *config.Config, completer llm.Completer, logger *slog.Logger) backend.IdeaGenerator {
	if cfg.BackendURL != "" {
		return backend.NewClient(cfg.BackendURL, logger)
	}
	return backend.NewLocalIdeas(completer, logger)
}
