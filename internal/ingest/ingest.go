// Package ingest orchestrates full passes over the active stock universe:
// price backfills/updates and news fetches. Runs are sequential per stock
// with a courtesy delay between upstream requests; one stock's failure is
// recorded and never aborts the run.
package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/arjunvn/stocklens/internal/model"
)

// StockSource provides the active universe to iterate.
type StockSource interface {
	ActiveStocks(ctx context.Context) ([]model.Stock, error)
}

// BarFetcher pulls daily bars from the upstream provider.
type BarFetcher interface {
	FetchDailyBars(ctx context.Context, sym, barRange string) ([]model.Bar, error)
}

// BarStore persists a stock's daily bars.
type BarStore interface {
	UpsertBars(ctx context.Context, stockID int64, bars []model.Bar) (int, error)
}

// NewsFetcher pulls news records from the upstream provider.
type NewsFetcher interface {
	FetchNews(ctx context.Context, sym string) ([]model.NewsItem, error)
}

// NewsWriter persists news items and their stock links.
type NewsWriter interface {
	UpsertNews(ctx context.Context, item model.NewsItem) (int64, error)
	LinkNewsToStock(ctx context.Context, stockID, newsID int64) error
}

// Summary aggregates the outcome of one full pass.
type Summary struct {
	RunID     uuid.UUID     // Identifies the run in logs
	Total     int           // Stocks in the active universe (after any cap)
	Succeeded int           // Stocks with data fetched and saved
	Empty     int           // Stocks the provider had no data for (not failures)
	Failed    int           // Stocks that errored (fetch or persist)
	Items     int           // News runs: records stored and linked
	Elapsed   time.Duration // Wall-clock duration of the run
}

// newLimiter spaces upstream requests by delay. Zero or negative delay
// disables throttling.
func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
