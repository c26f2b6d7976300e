package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunvn/stocklens/internal/model"
)

// PriceStore persists daily OHLCV bars keyed by (stock_id, date).
type PriceStore struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPriceStore creates a PriceStore.
func NewPriceStore(db *pgxpool.Pool, logger *slog.Logger) *PriceStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceStore{db: db, logger: logger}
}

// UpsertBars writes a stock's bars in one transaction: either every row of
// the call commits or none do. A bar for an existing (stock_id, date) key
// replaces the stored row entirely. Returns the number of rows written.
func (s *PriceStore) UpsertBars(ctx context.Context, stockID int64, bars []model.Bar) (int, error) {
	if len(bars) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, b := range bars {
		batch.Queue(`
			INSERT INTO daily_prices (stock_id, date, open, close, high, low, volume)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (stock_id, date) DO UPDATE SET
				open   = EXCLUDED.open,
				close  = EXCLUDED.close,
				high   = EXCLUDED.high,
				low    = EXCLUDED.low,
				volume = EXCLUDED.volume
		`, stockID, b.Date, b.Open, b.Close, b.High, b.Low, b.Volume)
	}

	results := tx.SendBatch(ctx, batch)
	for range bars {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, fmt.Errorf("upsert bars for stock %d: %w", stockID, err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit upsert: %w", err)
	}

	s.logger.Debug("saved daily bars", "stock_id", stockID, "rows", len(bars))
	return len(bars), nil
}
