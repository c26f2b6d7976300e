package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/arjunvn/stocklens/internal/sentiment"
	"github.com/arjunvn/stocklens/internal/symbol"
)

// NewsIngestor fetches news per stock, scores sentiment, and persists
// deduplicated items with their stock links.
type NewsIngestor struct {
	stocks  StockSource
	fetcher NewsFetcher
	writer  NewsWriter
	scorer  sentiment.Scorer
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewNewsIngestor creates a NewsIngestor.
func NewNewsIngestor(stocks StockSource, fetcher NewsFetcher, writer NewsWriter, scorer sentiment.Scorer, requestDelay time.Duration, logger *slog.Logger) *NewsIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &NewsIngestor{
		stocks:  stocks,
		fetcher: fetcher,
		writer:  writer,
		scorer:  scorer,
		limiter: newLimiter(requestDelay),
		logger:  logger,
	}
}

// Run fetches and persists news for the active universe. limit > 0 caps the
// number of stocks processed (dry runs). Writes commit per item, so a later
// stock's failure never rolls back earlier writes.
func (in *NewsIngestor) Run(ctx context.Context, limit int) (Summary, error) {
	summary := Summary{RunID: uuid.New()}
	start := time.Now()

	stocks, err := in.stocks.ActiveStocks(ctx)
	if err != nil {
		return summary, err
	}
	if limit > 0 && limit < len(stocks) {
		stocks = stocks[:limit]
	}
	summary.Total = len(stocks)

	in.logger.Info("starting news run",
		"run_id", summary.RunID,
		"stocks", summary.Total,
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

		in.logger.Info("fetching news",
			"position", i+1,
			"total", summary.Total,
			"ticker", st.Ticker,
		)

		items, err := in.fetcher.FetchNews(ctx, sym)
		if err != nil {
			in.logger.Error("failed to fetch news",
				"ticker", st.Ticker,
				"err", err,
			)
			summary.Failed++
			continue
		}
		if len(items) == 0 {
			in.logger.Warn("no news found", "ticker", st.Ticker)
			summary.Empty++
			continue
		}

		stored := 0
		for _, item := range items {
			// Title is mandatory; everything else may be null.
			if item.Headline == "" {
				continue
			}

			item.SentimentScore = in.scorer.Score(item.Headline + " " + item.Summary)

			newsID, err := in.writer.UpsertNews(ctx, item)
			if err != nil {
				in.logger.Error("failed to store news item",
					"ticker", st.Ticker,
					"err", err,
				)
				continue
			}
			if err := in.writer.LinkNewsToStock(ctx, st.ID, newsID); err != nil {
				in.logger.Error("failed to link news item",
					"ticker", st.Ticker,
					"news_id", newsID,
					"err", err,
				)
				continue
			}
			stored++
		}

		summary.Items += stored
		summary.Succeeded++
		in.logger.Debug("stored news", "ticker", st.Ticker, "items", stored)
	}

	summary.Elapsed = time.Since(start)
	in.logger.Info("news run complete",
		"run_id", summary.RunID,
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"empty", summary.Empty,
		"failed", summary.Failed,
		"items", summary.Items,
		"duration", summary.Elapsed,
	)
	return summary, nil
}
