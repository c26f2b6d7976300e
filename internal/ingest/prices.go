package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/arjunvn/stocklens/internal/symbol"
)

// PriceIngestor runs price passes over the universe. Backfill and update
// share the same algorithm and differ only in the requested trailing range.
type PriceIngestor struct {
	stocks  StockSource
	fetcher BarFetcher
	store   BarStore
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewPriceIngestor creates a PriceIngestor. requestDelay is the courtesy
// pause between upstream requests.
func NewPriceIngestor(stocks StockSource, fetcher BarFetcher, store BarStore, requestDelay time.Duration, logger *slog.Logger) *PriceIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceIngestor{
		stocks:  stocks,
		fetcher: fetcher,
		store:   store,
		limiter: newLimiter(requestDelay),
		logger:  logger,
	}
}

// Run fetches and upserts bars for every active stock, requesting barRange
// per stock ("10y" for a backfill, "1d" for the daily update). Per-stock
// failures are recorded in the summary and never abort the pass; the run
// itself only fails when the universe cannot be read or the context is
// cancelled between stocks.
func (in *PriceIngestor) Run(ctx context.Context, barRange string) (Summary, error) {
	summary := Summary{RunID: uuid.New()}
	start := time.Now()

	stocks, err := in.stocks.ActiveStocks(ctx)
	if err != nil {
		return summary, err
	}
	summary.Total = len(stocks)

	in.logger.Info("starting price run",
		"run_id", summary.RunID,
		"stocks", summary.Total,
		"range", barRange,
	)

	for i, st := range stocks {
		if err := in.limiter.Wait(ctx); err != nil {
			summary.Elapsed = time.Since(start)
			return summary, err
		}

		sym, err := symbol.Normalize(st.Ticker)
		if err != nil {
			in.logger.Warn("skipping invalid ticker",
				"ticker", st.Ticker,
				"err", err,
			)
			summary.Failed++
			continue
		}

		in.logger.Info("fetching bars",
			"position", i+1,
			"total", summary.Total,
			"ticker", st.Ticker,
		)

		bars, err := in.fetcher.FetchDailyBars(ctx, sym, barRange)
		if err != nil {
			in.logger.Error("failed to fetch bars",
				"ticker", st.Ticker,
				"err", err,
			)
			summary.Failed++
			continue
		}
		if len(bars) == 0 {
			in.logger.Warn("no data found", "ticker", st.Ticker)
			summary.Empty++
			continue
		}

		rows, err := in.store.UpsertBars(ctx, st.ID, bars)
		if err != nil {
			in.logger.Error("failed to save bars",
				"ticker", st.Ticker,
				"err", err,
			)
			summary.Failed++
			continue
		}

		in.logger.Debug("saved bars", "ticker", st.Ticker, "rows", rows)
		summary.Succeeded++
	}

	summary.Elapsed = time.Since(start)
	in.logger.Info("price run complete",
		"run_id", summary.RunID,
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"empty", summary.Empty,
		"failed", summary.Failed,
		"duration", summary.Elapsed,
	)
	return summary, nil
}
