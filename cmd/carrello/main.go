package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"carrello/internal/amqp"
	"carrello/internal/bootstrap"
	"carrello/internal/cache"
	"carrello/internal/config"
	"carrello/internal/log"
	"carrello/internal/services"
	"carrello/internal/storage"
	"carrello/internal/telemetry"
)

func main() {
	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: log.ComponentApp,
		Handler: tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.Kitchen,
		}),
	})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	photoCache := cache.NewLRU[[]byte](cfg.PhotoCacheSize, cfg.PhotoCacheTTL)
	repo, err := storage.New(cfg.SQLiteDBPath, photoCache)
	if err != nil {
		logger.Error("Failed to open storage", log.FieldError, err, log.FieldDBPath, cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	if err := bootstrap.Run(ctx, repo, logger); err != nil {
		logger.Error("Bootstrap failed", log.FieldError, err)
		os.Exit(1)
	}

	// AMQP is optional: without a broker, telemetry stays local and trip
	// exports are skipped.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPTelemetryQueue, cfg.AMQPTripExportQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		logger.Info("Connected to AMQP",
			log.FieldExchange, cfg.AMQPExchange, log.FieldQueue, cfg.AMQPTripExportQueue)
	} else {
		logger.Info("AMQP disabled, telemetry stays local")
	}

	var sink telemetry.Sink = telemetry.LogSink{Logger: logger}
	if amqpClient != nil {
		sink = telemetry.AMQPSink{Client: amqpClient}
	}
	tracker := telemetry.New(sink, logger)

	catalog := services.NewCatalogService(repo, tracker)
	trips := services.NewTripService(repo, tracker, amqpClient, logger)

	if err := printOverview(ctx, catalog, trips); err != nil {
		logger.Error("Failed to load overview", log.FieldError, err)
		os.Exit(1)
	}
}

// printOverview dumps the catalog and trip history, the CLI's read-only view
// of the data the app manages.
func printOverview(ctx context.Context, catalog *services.CatalogService, trips *services.TripService) error {
	stores, err := catalog.ListStores(ctx)
	if err != nil {
		return fmt.Errorf("list stores: %w", err)
	}
	categories, err := catalog.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	items, err := catalog.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	fmt.Printf("Catalog: %d stores, %d categories, %d items\n",
		len(stores), len(categories), len(items))
	for _, item := range items {
		fmt.Printf("  %s %s  %s\n", item.Emoji, item.Name, item.CurrentPrice.StringFixed(2))
	}

	history, err := trips.ListTrips(ctx)
	if err != nil {
		return fmt.Errorf("list trips: %w", err)
	}
	fmt.Printf("Trips: %d\n", len(history))
	for _, trip := range history {
		totals, err := trips.Totals(ctx, trip.ID)
		if err != nil {
			return fmt.Errorf("trip totals: %w", err)
		}
		fmt.Printf("  %s  %d items, total %s\n",
			trip.Date.Format("2006-01-02"), totals.ItemCount, totals.Total.StringFixed(2))
	}
	return nil
}
