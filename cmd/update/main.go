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

// update runs the short-range daily price pass. It is the cron companion of
// backfill: same algorithm, trailing window from ingest.update_range.
func main() {
	configPath := flag.String("config", "configs/stocklens.local.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting daily update",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

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

	summary, err := ingestor.Run(ctx, cfg.Ingest.UpdateRange)
	if err != nil {
		logger.Error("update aborted",
			"error", err,
			"succeeded", summary.Succeeded,
			"failed", summary.Failed,
		)
		os.Exit(1)
	}

	logger.Info("update complete",
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
