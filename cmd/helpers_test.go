package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ivmanto/site/internal/backend"
	"github.com/ivmanto/site/internal/config"
	"github.com/ivmanto/site/internal/db"
	"github.com/ivmanto/site/internal/llm"
	"github.com/ivmanto/site/internal/telemetry"
)

func TestNewIdeaGeneratorPicksBackend(t *testing.T) {
	cfg := config.DefaultConfig()

	cfg.BackendURL = "http://backend.internal:8081"
	if _, ok := newIdeaGenerator(cfg, nil, nil).(*backend.Client); !ok {
		t.Error("expected the backend client when backend_url is set")
	}

	cfg.BackendURL = ""
	if _, ok := newIdeaGenerator(cfg, nil, nil).(*backend.LocalIdeas); !ok {
		t.Error("expected local ideas without a backend")
	}
}

func TestCreateCompleterRequiresKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Gemini.APIKey = ""
	if _, err := createCompleter(cfg, nil); !errors.Is(err, llm.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}

	cfg.Gemini.APIKey = "k"
	c, err := createCompleter(cfg, nil)
	if err != nil {
		t.Fatalf("createCompleter failed: %v", err)
	}
	if c.Name() != "google" {
		t.Errorf("expected google provider, got %q", c.Name())
	}
}

func TestNewDataLayerSinks(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	store := telemetry.NewStore(database)

	cfg := config.DefaultConfig()
	layer, err := newDataLayer(cfg, store, nil)
	if err != nil {
		t.Fatalf("newDataLayer failed: %v", err)
	}
	layer.Initialize()
	layer.Record(t.Context(), "page_view", map[string]any{"page_path": "/about"})
	layer.Wait()

	events, err := store.List(t.Context(), telemetry.QueryFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 1 || events[0].Param("page_path") != "/about" {
		t.Errorf("expected the event in the store, got %+v", events)
	}
}

func TestLoadConfigValidates(t *testing.T) {
	dir := t.TempDir()
	cfgFile = filepath.Join(dir, "ivmanto.yml")
	t.Cleanup(func() { cfgFile = "ivmanto.yml" })

	bad := config.DefaultConfig()
	bad.LogLevel = "loud"
	if err := bad.Save(cfgFile); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := loadConfig(); err == nil {
		t.Error("expected an invalid log level to be rejected")
	}
}
