package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunvn/stocklens/internal/model"
)

// NewsStore persists news items deduplicated by url and their many-to-many
// links to stocks.
type NewsStore struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewNewsStore creates a NewsStore.
func NewNewsStore(db *pgxpool.Pool, logger *slog.Logger) *NewsStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &NewsStore{db: db, logger: logger}
}

// UpsertNews inserts a news item and returns its id. A later sighting of an
// already-stored url returns the existing row's id without touching the row.
// Items with a nil url are always inserted as distinct rows.
func (s *NewsStore) UpsertNews(ctx context.Context, item model.NewsItem) (int64, error) {
	const insert = `
		INSERT INTO news (headline, summary, url, publisher, published_at, sentiment_score)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var id int64

	if item.URL == nil {
		err := s.db.QueryRow(ctx, insert+" RETURNING id",
			item.Headline, item.Summary, nil, item.Publisher, item.PublishedAt, item.SentimentScore,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert news: %w", err)
		}
		return id, nil
	}

	err := s.db.QueryRow(ctx, insert+" ON CONFLICT (url) DO NOTHING RETURNING id",
		item.Headline, item.Summary, item.URL, item.Publisher, item.PublishedAt, item.SentimentScore,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict: the url is already stored, reuse its row.
		if err := s.db.QueryRow(ctx, `SELECT id FROM news WHERE url = $1`, item.URL).Scan(&id); err != nil {
			return 0, fmt.Errorf("lookup news by url: %w", err)
		}
		return id, nil
	}
	if err != nil {
		return 0, fmt.Errorf("insert news: %w", err)
	}
	return id, nil
}

// LinkNewsToStock records the stock/news association. Duplicate links are
// silently absorbed.
func (s *NewsStore) LinkNewsToStock(ctx context.Context, stockID, newsID int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO stock_news (stock_id, news_id)
		VALUES ($1, $2)
		ON CONFLICT (stock_id, news_id) DO NOTHING
	`, stockID, newsID)
	if err != nil {
		return fmt.Errorf("link news %d to stock %d: %w", newsID, stockID, err)
	}
	return nil
}
