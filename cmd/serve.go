package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivmanto/site/internal/articles"
	"github.com/ivmanto/site/internal/backend"
	"github.com/ivmanto/site/internal/config"
	"github.com/ivmanto/site/internal/content"
	"github.com/ivmanto/site/internal/llm"
	"github.com/ivmanto/site/internal/server"
	"github.com/ivmanto/site/internal/telemetry"
	"github.com/ivmanto/site/internal/web"
)

var (
	serveAddr      string
	serveRetention time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the site server",
	Long: `Starts the ivmanto.com site server: rendered pages, the consent and idea
forms, the JSON API, health checks and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		logger := newLogger(cfg)

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		store := telemetry.NewStore(database)
		layer, err := newDataLayer(cfg, store, logger)
		if err != nil {
			return err
		}

		registry, err := content.Load()
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}

		var source articles.Source = articles.NewStaticSource(registry)
		if cfg.BackendURL != "" {
			source = backend.NewClient(cfg.BackendURL, logger)
		}
		accessor := articles.New(source, registry, logger)

		completer := llm.NewFromConfig(cfg.Gemini, logger)
		if !cfg.Gemini.Configured() {
			logger.Warn("gemini API key not set, assistant endpoints will answer 503",
				"env", config.GeminiKeyEnvVar)
		}

		site, err := web.New(cfg, web.Deps{
			Articles:  accessor,
			Ideas:     newIdeaGenerator(cfg, completer, logger),
			Assistant: completer,
			Layer:     layer,
			Logger:    logger,
		})
		if err != nil {
			return fmt.Errorf("building site: %w", err)
		}

		srv := server.New(cfg, database, logger)
		telemetry.RegisterRoutes(srv.Router(), store, cfg.Analytics.EventsToken)
		site.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if serveRetention > 0 {
			go pruneEvents(ctx, store, serveRetention, logger)
		}

		logger.Info("ivmanto starting",
			"version", Version,
			"database", database.Path(),
			"backend", cfg.BackendURL,
			"forwarding", cfg.Analytics.ForwardingEnabled(),
		)

		return serveUntilDone(ctx, srv, layer, logger)
	},
}

// shutdownTimeout bounds how long in-flight requests may drain.
const shutdownTimeout = 10 * time.Second

// runner is the part of server.Server that serveUntilDone drives.
type runner interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serveUntilDone runs srv until ctx is done. Before returning it waits for
// in-flight requests to drain and then closes the data layer, flushing the
// events those requests recorded.
func serveUntilDone(ctx context.Context, srv runner, layer *telemetry.DataLayer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		layer.Close()
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		logger.Error("shutdown failed", "error", err)
	}

	// Start returns as soon as Shutdown begins; Shutdown has returned here.
	if startErr := <-errc; !errors.Is(startErr, http.ErrServerClosed) && err == nil {
		err = startErr
	}
	layer.Close()
	return err
}

// newDataLayer builds the data layer with the SQLite sink and, when
// credentials are configured, the Measurement Protocol forwarder.
func newDataLayer(cfg *config.Config, store *telemetry.Store, logger *slog.Logger) (*telemetry.DataLayer, error) {
	sinks := []telemetry.Sink{store}
	if cfg.Analytics.ForwardingEnabled() {
		fwd, err := telemetry.NewForwarder(cfg.Analytics.APISecret, cfg.Analytics.MeasurementID, "", logger)
		if err != nil {
			return nil, fmt.Errorf("creating analytics forwarder: %w", err)
		}
		sinks = append(sinks, fwd)
	}
	return telemetry.NewDataLayer(logger, sinks...), nil
}

// pruneEvents deletes stored events older than retention once an hour until
// ctx is done.
func pruneEvents(ctx context.Context, store *telemetry.Store, retention time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		n, err := store.DeleteBefore(ctx, time.Now().Add(-retention))
		if err != nil {
			logger.Warn("pruning events failed", "error", err)
		} else if n > 0 {
			logger.Info("pruned events", "deleted", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides addr in config)")
	serveCmd.Flags().DurationVar(&serveRetention, "retention", 90*24*time.Hour, "delete stored events older than this (0 keeps everything)")
	rootCmd.AddCommand(serveCmd)
}
