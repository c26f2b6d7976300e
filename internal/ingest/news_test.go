package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/arjunvn/stocklens/internal/model"
	"github.com/arjunvn/stocklens/internal/sentiment"
)

// mockNewsFetcher serves canned news per symbol.
type mockNewsFetcher struct {
	items   map[string][]model.NewsItem
	failing map[string]error
}

func (m *mockNewsFetcher) FetchNews(ctx context.Context, sym string) ([]model.NewsItem, error) {
	if err, ok := m.failing[sym]; ok {
		return nil, err
	}
	return m.items[sym], nil
}

// mockNewsWriter records stored items and links.
type mockNewsWriter struct {
	stored []model.NewsItem
	links  map[int64][]int64
	err    error
}

func (m *mockNewsWriter) UpsertNews(ctx context.Context, item model.NewsItem) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.stored = append(m.stored, item)
	return int64(len(m.stored)), nil
}

func (m *mockNewsWriter) LinkNewsToStock(ctx context.Context, stockID, newsID int64) error {
	if m.links == nil {
		m.links = make(map[int64][]int64)
	}
	m.links[stockID] = append(m.links[stockID], newsID)
	return nil
}

func newsFor(titles ...string) []model.NewsItem {
	var items []model.NewsItem
	for _, t := range titles {
		items = append(items, model.NewsItem{Headline: t, Summary: "summary"})
	}
	return items
}

func TestNewsIngestor_Run(t *testing.T) {
	stocks := universe(2)
	fetcher := &mockNewsFetcher{
		items: map[string][]model.NewsItem{
			"STOCKA.BO": newsFor("Profit surges", "Shares fall"),
			"STOCKB.BO": newsFor("Board approves dividend"),
		},
	}
	writer := &mockNewsWriter{}

	in := NewNewsIngestor(&mockStockSource{stocks: stocks}, fetcher, writer, sentiment.NewLexiconScorer(), 0, nil)

	summary, err := in.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Succeeded != 2 || summary.Items != 3 {
		t.Errorf("summary = %+v, want 2 succeeded, 3 items", summary)
	}
	if len(writer.stored) != 3 {
		t.Fatalf("stored = %d items, want 3", len(writer.stored))
	}
	if len(writer.links[1]) != 2 || len(writer.links[2]) != 1 {
		t.Errorf("links = %v, want 2 for stock 1 and 1 for stock 2", writer.links)
	}

	// Sentiment must be scored before persistence.
	if writer.stored[0].SentimentScore <= 0 {
		t.Errorf("SentimentScore = %v for %q, want > 0", writer.stored[0].SentimentScore, writer.stored[0].Headline)
	}
	if writer.stored[1].SentimentScore >= 0 {
		t.Errorf("SentimentScore = %v for %q, want < 0", writer.stored[1].SentimentScore, writer.stored[1].Headline)
	}
}

func TestNewsIngestor_Limit(t *testing.T) {
	stocks := universe(5)
	fetcher := &mockNewsFetcher{
		items: map[string][]model.NewsItem{
			"STOCKA.BO": newsFor("A"),
			"STOCKB.BO": newsFor("B"),
		},
	}
	writer := &mockNewsWriter{}

	in := NewNewsIngestor(&mockStockSource{stocks: stocks}, fetcher, writer, sentiment.NewLexiconScorer(), 0, nil)

	summary, err := in.Run(context.Background(), 2)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Total != 2 {
		t.Errorf("Total = %d, want 2 (capped)", summary.Total)
	}
	if len(writer.stored) != 2 {
		t.Errorf("stored = %d, want 2", len(writer.stored))
	}
}

func TestNewsIngestor_SkipsUntitledRecords(t *testing.T) {
	stocks := universe(1)
	fetcher := &mockNewsFetcher{
		items: map[string][]model.NewsItem{
			"STOCKA.BO": {
				{Headline: "Valid story"},
				{Headline: "", Summary: "no title here"},
			},
		},
	}
	writer := &mockNewsWriter{}

	in := NewNewsIngestor(&mockStockSource{stocks: stocks}, fetcher, writer, sentiment.NewLexiconScorer(), 0, nil)

	summary, err := in.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Items != 1 || len(writer.stored) != 1 {
		t.Errorf("stored %d items (summary %+v), want 1", len(writer.stored), summary)
	}
}

func TestNewsIngestor_ContinuesAfterFetchError(t *testing.T) {
	stocks := universe(3)
	fetcher := &mockNewsFetcher{
		items: map[string][]model.NewsItem{
			"STOCKA.BO": newsFor("A"),
			"STOCKC.BO": newsFor("C"),
		},
		failing: map[string]error{
			"STOCKB.BO": errors.New("gateway timeout"),
		},
	}
	writer := &mockNewsWriter{}

	in := NewNewsIngestor(&mockStockSource{stocks: stocks}, fetcher, writer, sentiment.NewLexiconScorer(), 0, nil)

	summary, err := in.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 2 succeeded, 1 failed", summary)
	}
	if len(writer.stored) != 2 {
		t.Errorf("stored = %d, want 2 (stock after the failure still processed)", len(writer.stored))
	}
}

func TestNewsIngestor_WriterErrorDoesNotAbortStock(t *testing.T) {
	stocks := universe(1)
	fetcher := &mockNewsFetcher{
		items: map[string][]model.NewsItem{"STOCKA.BO": newsFor("A", "B")},
	}
	writer := &mockNewsWriter{err: errors.New("disk full")}

	in := NewNewsIngestor(&mockStockSource{stocks: stocks}, fetcher, writer, sentiment.NewLexiconScorer(), 0, nil)

	summary, err := in.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// Item-level write failures are logged and absorbed.
	if summary.Items != 0 || summary.Succeeded != 1 {
		t.Errorf("summary = %+v, want 0 items, 1 succeeded stock", summary)
	}
}
