package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaSQL creates the four core tables. Statements are idempotent so every
// binary can run Migrate at startup.
//
// The unique index on news(url) enforces URL dedup; NULL urls are exempt
// (each NULL-url row is a distinct article).
const schemaSQL = `
CREATE TABLE IF NOT EXISTS stocks (
	id         BIGSERIAL PRIMARY KEY,
	ticker     TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	sector     TEXT,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS daily_prices (
	stock_id   BIGINT NOT NULL REFERENCES stocks(id),
	date       DATE NOT NULL,
	open       DOUBLE PRECISION,
	close      DOUBLE PRECISION,
	high       DOUBLE PRECISION,
	low        DOUBLE PRECISION,
	volume     BIGINT NOT NULL DEFAULT 0,
	UNIQUE (stock_id, date)
);

CREATE TABLE IF NOT EXISTS news (
	id               BIGSERIAL PRIMARY KEY,
	headline         TEXT NOT NULL,
	summary          TEXT,
	url              TEXT UNIQUE,
	publisher        TEXT,
	published_at     TIMESTAMPTZ,
	sentiment_score  DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS stock_news (
	stock_id  BIGINT NOT NULL REFERENCES stocks(id),
	news_id   BIGINT NOT NULL REFERENCES news(id),
	UNIQUE (stock_id, news_id)
);

CREATE INDEX IF NOT EXISTS idx_daily_prices_stock_date ON daily_prices (stock_id, date);
CREATE INDEX IF NOT EXISTS idx_news_published_at ON news (published_at);
CREATE INDEX IF NOT EXISTS idx_stock_news_stock ON stock_news (stock_id);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
