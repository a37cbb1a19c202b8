package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"carrello/internal/amqp"
	"carrello/internal/cache"
	"carrello/internal/config"
	"carrello/internal/export"
	"carrello/internal/export/memory"
	"carrello/internal/export/sheet"
	"carrello/internal/log"
	"carrello/internal/storage"
	"carrello/internal/worker"
)

func main() {
	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: log.ComponentWorker,
		Handler: tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.Kitchen,
		}),
	})
	log.SetDefault(logger)

	logger.Info("Starting carrello-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := storage.New(cfg.SQLiteDBPath, cache.NewLRU[[]byte](cfg.PhotoCacheSize, cfg.PhotoCacheTTL))
	if err != nil {
		logger.Error("Failed to open storage", log.FieldError, err, log.FieldDBPath, cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var writer export.TripWriter
	if cfg.ExportEnabled() {
		writer, err = sheet.New(ctx, cfg.SheetSpreadsheetID, cfg.SheetName)
		if err != nil {
			logger.Error("Failed to initialize Sheets writer", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Exporting trips to Google Sheets", "spreadsheet_id", cfg.SheetSpreadsheetID)
	} else {
		writer = memory.New()
		logger.Info("No spreadsheet configured, exported rows stay in memory")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPTelemetryQueue, cfg.AMQPTripExportQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(repo, writer, amqpClient, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return exportWorker.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
