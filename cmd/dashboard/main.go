package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/city-conditions-dashboard/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/city-conditions-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/city-conditions-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/city-conditions-dashboard/internal/config"
	"github.com/couchcryptid/city-conditions-dashboard/internal/dashboard"
	"github.com/couchcryptid/city-conditions-dashboard/internal/domain"
	"github.com/couchcryptid/city-conditions-dashboard/internal/observability"
	"github.com/couchcryptid/city-conditions-dashboard/internal/pipeline"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	policy, err := domain.ParseMissingPolicy(cfg.MissingValues)
	if err != nil {
		logger.Error("invalid missing value policy", "error", err)
		os.Exit(1)
	}

	opts := pipeline.Options{
		MissingValues: policy,
		Assets: dashboard.Assets{
			PlotlyURL:     cfg.PlotlyURL,
			StylesheetURL: cfg.StylesheetURL,
		},
	}

	// Aggregate export is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		opts.Publisher = writer
		logger.Info("kafka aggregate export enabled", "topic", cfg.KafkaAggregateTopic, "brokers", cfg.KafkaBrokers)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := csvfile.NewLoader(cfg.DataPath, cfg.CSVDelimiter, logger)
	p := pipeline.New(loader, opts, logger, metrics)

	// Everything is built before the listener binds; a bad dataset never serves.
	d, err := p.Build(ctx)
	if err != nil {
		logger.Error("failed to build dashboard", "path", cfg.DataPath, "error", err)
		closeWriter(writer, logger)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, d.HTML, p, metrics, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		logger.Error("http server error", "error", err)
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	closeWriter(writer, logger)

	logger.Info("shutdown complete")
	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}

func closeWriter(w *kafkaadapter.Writer, logger *slog.Logger) {
	if w == nil {
		return
	}
	if err := w.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
}
