package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/pollution-trends-service/internal/adapter/httpserver"
	"github.com/couchcryptid/pollution-trends-service/internal/config"
	"github.com/couchcryptid/pollution-trends-service/internal/dataset"
	"github.com/couchcryptid/pollution-trends-service/internal/observability"
	"github.com/couchcryptid/pollution-trends-service/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store := dataset.NewStore(
		dataset.Source(cfg.DataSource),
		cfg.DataPath,
		cfg.InflectionThreshold,
		logger,
		metrics,
	)
	renderer := report.NewRenderer(cfg.ChartCacheSize, metrics)

	srv := httpserver.NewServer(cfg.HTTPAddr, store, store, renderer, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load and analyze up front so the first request doesn't pay for it and
	// readiness reflects the dataset state.
	snap := store.Snapshot()
	if snap.Empty() {
		logger.Warn("starting with an empty dataset", "diagnostics", snap.Diagnostics)
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
