package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arjunvn/stocklens/internal/model"
)

// mockStockSource returns a fixed universe.
type mockStockSource struct {
	stocks []model.Stock
	err    error
}

func (m *mockStockSource) ActiveStocks(ctx context.Context) ([]model.Stock, error) {
	return m.stocks, m.err
}

// mockBarFetcher serves canned bars per symbol and can fail selected
// symbols.
type mockBarFetcher struct {
	bars    map[string][]model.Bar
	failing map[string]error
	calls   []string
}

func (m *mockBarFetcher) FetchDailyBars(ctx context.Context, sym, barRange string) ([]model.Bar, error) {
	m.calls = append(m.calls, sym)
	if err, ok := m.failing[sym]; ok {
		return nil, err
	}
	return m.bars[sym], nil
}

// mockBarStore records upserts.
type mockBarStore struct {
	upserts map[int64]int
	err     error
}

func (m *mockBarStore) UpsertBars(ctx context.Context, stockID int64, bars []model.Bar) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.upserts == nil {
		m.upserts = make(map[int64]int)
	}
	m.upserts[stockID] += len(bars)
	return len(bars), nil
}

func universe(n int) []model.Stock {
	var stocks []model.Stock
	for i := 0; i < n; i++ {
		stocks = append(stocks, model.Stock{
			ID:     int64(i + 1),
			Ticker: "STOCK" + string(rune('A'+i)),
			Active: true,
		})
	}
	return stocks
}

func someBars() []model.Bar {
	return []model.Bar{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Open: 10, Close: 11},
	}
}

func TestPriceIngestor_Run(t *testing.T) {
	stocks := universe(3)
	fetcher := &mockBarFetcher{
		bars: map[string][]model.Bar{
			"STOCKA.BO": someBars(),
			"STOCKB.BO": someBars(),
			"STOCKC.BO": someBars(),
		},
	}
	store := &mockBarStore{}

	in := NewPriceIngestor(&mockStockSource{stocks: stocks}, fetcher, store, 0, nil)

	summary, err := in.Run(context.Background(), "10y")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Total != 3 || summary.Succeeded != 3 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want 3 total, 3 succeeded", summary)
	}
	if len(store.upserts) != 3 {
		t.Errorf("upserts for %d stocks, want 3", len(store.upserts))
	}
	if summary.RunID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("RunID not assigned")
	}
}

func TestPriceIngestor_ContinuesAfterFetchError(t *testing.T) {
	stocks := universe(5)
	fetcher := &mockBarFetcher{
		bars: map[string][]model.Bar{
			"STOCKA.BO": someBars(),
			"STOCKB.BO": someBars(),
			"STOCKD.BO": someBars(),
			"STOCKE.BO": someBars(),
		},
		failing: map[string]error{
			"STOCKC.BO": errors.New("connection reset"),
		},
	}
	store := &mockBarStore{}

	in := NewPriceIngestor(&mockStockSource{stocks: stocks}, fetcher, store, 0, nil)

	summary, err := in.Run(context.Background(), "1d")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// One stock fails, the rest still run.
	if summary.Succeeded != 4 {
		t.Errorf("Succeeded = %d, want 4", summary.Succeeded)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
	if len(fetcher.calls) != 5 {
		t.Errorf("fetch calls = %d, want 5 (stocks after the failure still processed)", len(fetcher.calls))
	}
}

func TestPriceIngestor_EmptyIsNotFailure(t *testing.T) {
	stocks := universe(2)
	fetcher := &mockBarFetcher{
		bars: map[string][]model.Bar{
			"STOCKA.BO": someBars(),
			// STOCKB.BO yields zero bars.
		},
	}
	store := &mockBarStore{}

	in := NewPriceIngestor(&mockStockSource{stocks: stocks}, fetcher, store, 0, nil)

	summary, err := in.Run(context.Background(), "1d")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Succeeded != 1 || summary.Empty != 1 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want 1 succeeded, 1 empty, 0 failed", summary)
	}
	if _, ok := store.upserts[2]; ok {
		t.Error("store was called for the empty stock")
	}
}

func TestPriceIngestor_PersistErrorRecorded(t *testing.T) {
	stocks := universe(2)
	fetcher := &mockBarFetcher{
		bars: map[string][]model.Bar{
			"STOCKA.BO": someBars(),
			"STOCKB.BO": someBars(),
		},
	}
	store := &mockBarStore{err: errors.New("write conflict")}

	in := NewPriceIngestor(&mockStockSource{stocks: stocks}, fetcher, store, 0, nil)

	summary, err := in.Run(context.Background(), "1d")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Failed != 2 || summary.Succeeded != 0 {
		t.Errorf("summary = %+v, want 2 failed", summary)
	}
}

func TestPriceIngestor_UniverseErrorFailsRun(t *testing.T) {
	wantErr := errors.New("database down")
	in := NewPriceIngestor(&mockStockSource{err: wantErr}, &mockBarFetcher{}, &mockBarStore{}, 0, nil)

	if _, err := in.Run(context.Background(), "1d"); !errors.Is(err, wantErr) {
		t.Errorf("Run error = %v, want %v", err, wantErr)
	}
}

func TestPriceIngestor_CancelledBetweenStocks(t *testing.T) {
	stocks := universe(3)
	fetcher := &mockBarFetcher{bars: map[string][]model.Bar{
		"STOCKA.BO": someBars(),
		"STOCKB.BO": someBars(),
		"STOCKC.BO": someBars(),
	}}

	// A real delay so the limiter blocks between iterations.
	in := NewPriceIngestor(&mockStockSource{stocks: stocks}, fetcher, &mockBarStore{}, 200*time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := in.Run(ctx, "1d"); err == nil {
		t.Fatal("Run succeeded, want context error")
	}
}

func TestPriceIngestor_InvalidTickerSkipped(t *testing.T) {
	stocks := []model.Stock{
		{ID: 1, Ticker: "   "},
		{ID: 2, Ticker: "GOOD"},
	}
	fetcher := &mockBarFetcher{bars: map[string][]model.Bar{"GOOD.BO": someBars()}}
	store := &mockBarStore{}

	in := NewPriceIngestor(&mockStockSource{stocks: stocks}, fetcher, store, 0, nil)

	summary, err := in.Run(context.Background(), "1d")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Failed != 1 || summary.Succeeded != 1 {
		t.Errorf("summary = %+v, want 1 failed, 1 succeeded", summary)
	}
	if len(fetcher.calls) != 1 {
		t.Errorf("fetch calls = %d, want 1 (invalid ticker never fetched)", len(fetcher.calls))
	}
}
