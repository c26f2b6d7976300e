package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunvn/stocklens/internal/model"
)

// SignalStore serves the correlation engine's two read queries. It never
// writes.
type SignalStore struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewSignalStore creates a SignalStore.
func NewSignalStore(db *pgxpool.Pool, logger *slog.Logger) *SignalStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SignalStore{db: db, logger: logger}
}

// DailySentiment returns the mean sentiment score of all news linked to the
// stock, grouped by publish date, for publish times at or after since.
// News without a publish time cannot be placed on the calendar and is
// excluded.
func (s *SignalStore) DailySentiment(ctx context.Context, stockID int64, since time.Time) ([]model.DatedValue, error) {
	rows, err := s.db.Query(ctx, `
		SELECT (n.published_at AT TIME ZONE 'UTC')::date AS day, AVG(n.sentiment_score)
		FROM news n
		JOIN stock_news sn ON sn.news_id = n.id
		WHERE sn.stock_id = $1
		  AND n.published_at IS NOT NULL
		  AND n.published_at >= $2
		GROUP BY day
		ORDER BY day
	`, stockID, since)
	if err != nil {
		return nil, fmt.Errorf("query daily sentiment: %w", err)
	}
	defer rows.Close()

	return scanDatedValues(rows)
}

// DailyPriceChange returns the daily percent change (close-open)/open*100
// per stored bar date at or after since. Bars with a zero open cannot yield
// a percent change and are excluded.
func (s *SignalStore) DailyPriceChange(ctx context.Context, stockID int64, since time.Time) ([]model.DatedValue, error) {
	rows, err := s.db.Query(ctx, `
		SELECT date, (close - open) / open * 100
		FROM daily_prices
		WHERE stock_id = $1
		  AND date >= $2
		  AND open <> 0
		ORDER BY date
	`, stockID, since)
	if err != nil {
		return nil, fmt.Errorf("query daily price change: %w", err)
	}
	defer rows.Close()

	return scanDatedValues(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanDatedValues(rows rowScanner) ([]model.DatedValue, error) {
	var out []model.DatedValue
	for rows.Next() {
		var dv model.DatedValue
		if err := rows.Scan(&dv.Date, &dv.Value); err != nil {
			return nil, fmt.Errorf("scan dated value: %w", err)
		}
		out = append(out, dv)
	}
	return out, rows.Err()
}
