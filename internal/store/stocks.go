package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunvn/stocklens/internal/model"
)

// StockStore reads the stock universe. Rows are created by the external
// population tooling; this store never writes them.
type StockStore struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewStockStore creates a StockStore.
func NewStockStore(db *pgxpool.Pool, logger *slog.Logger) *StockStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &StockStore{db: db, logger: logger}
}

// ActiveStocks returns every active stock ordered by ticker.
func (s *StockStore) ActiveStocks(ctx context.Context) ([]model.Stock, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, ticker, name, COALESCE(sector, ''), is_active
		FROM stocks
		WHERE is_active
		ORDER BY ticker
	`)
	if err != nil {
		return nil, fmt.Errorf("query active stocks: %w", err)
	}
	defer rows.Close()

	var stocks []model.Stock
	for rows.Next() {
		var st model.Stock
		if err := rows.Scan(&st.ID, &st.Ticker, &st.Name, &st.Sector, &st.Active); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stocks = append(stocks, st)
	}
	return stocks, rows.Err()
}

// ByTicker looks up a single stock.
func (s *StockStore) ByTicker(ctx context.Context, ticker string) (model.Stock, error) {
	var st model.Stock
	err := s.db.QueryRow(ctx, `
		SELECT id, ticker, name, COALESCE(sector, ''), is_active
		FROM stocks
		WHERE ticker = $1
	`, ticker).Scan(&st.ID, &st.Ticker, &st.Name, &st.Sector, &st.Active)
	if err != nil {
		return model.Stock{}, fmt.Errorf("lookup stock %q: %w", ticker, err)
	}
	return st, nil
}

// PriceHistory returns a stock's stored bars ordered by date. start and end
// are optional inclusive calendar-date bounds.
func (s *StockStore) PriceHistory(ctx context.Context, stockID int64, start, end *time.Time) ([]model.Bar, error) {
	query := `
		SELECT date, open, close, high, low, volume
		FROM daily_prices
		WHERE stock_id = $1
	`
	args := []any{stockID}

	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date ASC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query price history: %w", err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var b model.Bar
		if err := rows.Scan(&b.Date, &b.Open, &b.Close, &b.High, &b.Low, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}
