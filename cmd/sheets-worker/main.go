package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/splitpot/splitpot/internal/config"
	"github.com/splitpot/splitpot/internal/events"
	"github.com/splitpot/splitpot/internal/export"
	"github.com/splitpot/splitpot/internal/storage/sqlite"
	"github.com/splitpot/splitpot/pkg/logging"
)

func main() {
	// .env is for local development; containers set the environment.
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.ExportEnabled() {
		slog.Error("GOOGLE_SPREADSHEET_ID is not set, nothing to export")
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exporter, err := export.NewExporter(ctx, cfg.CredentialsFile, cfg.SpreadsheetID, cfg.LedgerSheet, cfg.BalancesSheet)
	if err != nil {
		slog.Error("Failed to initialize sheets client", "error", err)
		os.Exit(1)
	}
	slog.Info("Sheets client initialized", "spreadsheet_id", cfg.SpreadsheetID)

	// Without a broker the worker still resyncs on the interval.
	var consumer *events.Client
	if cfg.EventsEnabled() {
		consumer, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Error("Failed to connect to broker", "error", err)
			os.Exit(1)
		}
		defer consumer.Close()
		slog.Info("Consuming ledger events", "queue", cfg.AMQPQueue)
	} else {
		slog.Info("No broker configured, syncing on the interval only", "interval", cfg.SyncInterval)
	}

	worker := export.NewWorker(exporter, store, consumer, cfg.SyncInterval)
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Worker failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Worker stopped")
}
