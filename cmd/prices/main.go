package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/arjunvn/stocklens/internal/config"
	"github.com/arjunvn/stocklens/internal/database"
	"github.com/arjunvn/stocklens/internal/store"
	"github.com/arjunvn/stocklens/internal/symbol"
)

// prices dumps a stock's stored daily bars, optionally bounded by inclusive
// calendar dates. A read-only inspection tool.
func main() {
	configPath := flag.String("config", "configs/stocklens.local.yaml", "path to config file")
	ticker := flag.String("ticker", "", "ticker to inspect (required)")
	startStr := flag.String("start", "", "inclusive start date, YYYY-MM-DD")
	endStr := flag.String("end", "", "inclusive end date, YYYY-MM-DD")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if *ticker == "" {
		fmt.Fprintln(os.Stderr, "usage: prices -ticker TICKER [-start YYYY-MM-DD] [-end YYYY-MM-DD]")
		os.Exit(1)
	}

	start, err := parseDate(*startStr)
	if err != nil {
		logger.Error("invalid start date", "value", *startStr, "error", err)
		os.Exit(1)
	}
	end, err := parseDate(*endStr)
	if err != nil {
		logger.Error("invalid end date", "value", *endStr, "error", err)
		os.Exit(1)
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.Database.Postgres)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	stocks := store.NewStockStore(pool, logger)

	sym, err := symbol.Normalize(*ticker)
	if err != nil {
		logger.Error("invalid ticker", "ticker", *ticker, "error", err)
		os.Exit(1)
	}

	st, err := stocks.ByTicker(ctx, sym)
	if err != nil {
		logger.Error("stock not found", "ticker", sym, "error", err)
		os.Exit(1)
	}

	bars, err := stocks.PriceHistory(ctx, st.ID, start, end)
	if err != nil {
		logger.Error("failed to read price history", "ticker", sym, "error", err)
		os.Exit(1)
	}

	fmt.Printf("# %s (%s), %d bars\n", st.Ticker, st.Name, len(bars))
	fmt.Println("date        open      high      low       close     volume")
	for _, b := range bars {
		fmt.Printf("%s  %-8.2f  %-8.2f  %-8.2f  %-8.2f  %d\n",
			b.Date.Format("2006-01-02"), b.Open, b.High, b.Low, b.Close, b.Volume)
	}
}

// parseDate returns nil for an empty value.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
