package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/arjunvn/stocklens/internal/config"
	"github.com/arjunvn/stocklens/internal/database"
	"github.com/arjunvn/stocklens/internal/ingest"
	"github.com/arjunvn/stocklens/internal/provider"
	"github.com/arjunvn/stocklens/internal/store"
	"github.com/arjunvn/stocklens/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/stocklens.local.yaml", "path to config file")
	barRange := flag.String("range", "", "trailing range to request per stock (overrides config)")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting backfill",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rng := cfg.Ingest.BackfillRange
	if *barRange != "" {
		rng = *barRange
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"provider_url", cfg.Provider.BaseURL,
		"range", rng,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("connecting to database",
		"host", cfg.Database.Postgres.Host,
		"port", cfg.Database.Postgres.Port,
		"database", cfg.Database.Postgres.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database.Postgres)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	logger.Info("database connected")

	client := provider.NewClient(
		cfg.Provider.BaseURL,
		provider.WithLogger(logger),
		provider.WithTimeout(cfg.Provider.Timeout),
		provider.WithRetries(cfg.Provider.MaxRetries, cfg.Provider.RetryBackoff),
	)

	ingestor := ingest.NewPriceIngestor(
		store.NewStockStore(pool, logger),
		client,
		store.NewPriceStore(pool, logger),
		cfg.Ingest.RequestDelay,
		logger,
	)

	summary, err := ingestor.Run(ctx, rng)
	if err != nil {
		logger.Error("backfill aborted",
			"error", err,
			"succeeded", summary.Succeeded,
			"failed", summary.Failed,
		)
		os.Exit(1)
	}

	logger.Info("backfill complete",
		"run_id", summary.RunID,
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"empty", summary.Empty,
		"failed", summary.Failed,
		"duration", summary.Elapsed,
	)

	if summary.Failed > 0 {
		os.Exit(2)
	}
}
