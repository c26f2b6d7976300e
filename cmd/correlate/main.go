package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/arjunvn/stocklens/internal/config"
	"github.com/arjunvn/stocklens/internal/correlate"
	"github.com/arjunvn/stocklens/internal/database"
	"github.com/arjunvn/stocklens/internal/model"
	"github.com/arjunvn/stocklens/internal/store"
	"github.com/arjunvn/stocklens/internal/symbol"
	"github.com/arjunvn/stocklens/internal/version"
)

type tickerReport struct {
	ticker string
	report model.CorrelationReport
}

func main() {
	configPath := flag.String("config", "configs/stocklens.local.yaml", "path to config file")
	window := flag.Int("window", 0, "trailing analysis window in days (overrides config)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	tickers := flag.Args()
	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "usage: correlate [-config path] [-window days] TICKER [TICKER...]")
		os.Exit(1)
	}

	logger.Info("starting correlation",
		"version", version.Version,
		"commit", version.Commit,
		"tickers", len(tickers),
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	windowDays := cfg.Correlation.WindowDays
	if *window > 0 {
		windowDays = *window
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

	stocks := store.NewStockStore(pool, logger)
	engine := correlate.NewEngine(store.NewSignalStore(pool, logger), logger)

	var (
		mu      sync.Mutex
		reports []tickerReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, raw := range tickers {
		raw := raw
		g.Go(func() error {
			sym, err := symbol.Normalize(raw)
			if err != nil {
				return fmt.Errorf("ticker %q: %w", raw, err)
			}
			st, err := stocks.ByTicker(gctx, sym)
			if err != nil {
				return err
			}
			report, err := engine.Analyze(gctx, st.ID, windowDays)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", sym, err)
			}
			mu.Lock()
			reports = append(reports, tickerReport{ticker: sym, report: report})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("correlation failed", "error", err)
		os.Exit(1)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].ticker < reports[j].ticker })
	for _, r := range reports {
		fmt.Printf("%-14s corr=%+.2f points=%-3d %s\n",
			r.ticker, r.report.Correlation, r.report.DataPoints, r.report.Message)
	}
}
