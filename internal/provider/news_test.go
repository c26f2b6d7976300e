package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// One nested-shape record, one flat-shape record, one record without a
// title, and one with nothing but a title.
const newsBody = `{
	"news": [
		{
			"content": {
				"title": "Reliance posts record quarterly profit",
				"summary": "Refining margins drove the beat.",
				"pubDate": "2026-01-10T15:39:14Z",
				"provider": {"displayName": "Business Daily"},
				"canonicalUrl": {"url": "https://news.example.com/reliance-q3"},
				"clickThroughUrl": {"url": "https://click.example.com/reliance-q3"}
			}
		},
		{
			"title": "Markets slip on global cues",
			"summary": "Benchmarks closed lower.",
			"link": "https://news.example.com/markets-slip",
			"publisher": "Wire Service",
			"providerPublishTime": 1704907154
		},
		{
			"content": {"summary": "orphan summary, no title"}
		},
		{
			"title": "Board meeting scheduled"
		}
	]
}`

func TestFetchNews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "RELIANCE.BO" {
			t.Errorf("q = %q, want RELIANCE.BO", r.URL.Query().Get("q"))
		}
		if r.URL.Query().Get("newsCount") != "20" {
			t.Errorf("newsCount = %q, want 20", r.URL.Query().Get("newsCount"))
		}
		w.Write([]byte(newsBody))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	items, err := c.FetchNews(context.Background(), "RELIANCE.BO")
	if err != nil {
		t.Fatalf("FetchNews failed: %v", err)
	}

	// The title-less record is dropped.
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}

	nested := items[0]
	if nested.Headline != "Reliance posts record quarterly profit" {
		t.Errorf("Headline = %q", nested.Headline)
	}
	if nested.Summary != "Refining margins drove the beat." {
		t.Errorf("Summary = %q", nested.Summary)
	}
	if nested.URL == nil || *nested.URL != "https://news.example.com/reliance-q3" {
		t.Errorf("URL = %v, want canonical url preferred over click-through", nested.URL)
	}
	if nested.Publisher == nil || *nested.Publisher != "Business Daily" {
		t.Errorf("Publisher = %v, want Business Daily", nested.Publisher)
	}
	wantTime := time.Date(2026, 1, 10, 15, 39, 14, 0, time.UTC)
	if nested.PublishedAt == nil || !nested.PublishedAt.Equal(wantTime) {
		t.Errorf("PublishedAt = %v, want %v", nested.PublishedAt, wantTime)
	}

	flat := items[1]
	if flat.URL == nil || *flat.URL != "https://news.example.com/markets-slip" {
		t.Errorf("URL = %v, want flat link", flat.URL)
	}
	if flat.Publisher == nil || *flat.Publisher != "Wire Service" {
		t.Errorf("Publisher = %v, want Wire Service", flat.Publisher)
	}
	if flat.PublishedAt == nil || flat.PublishedAt.Unix() != 1704907154 {
		t.Errorf("PublishedAt = %v, want unix 1704907154", flat.PublishedAt)
	}

	bare := items[2]
	if bare.Headline != "Board meeting scheduled" {
		t.Errorf("Headline = %q", bare.Headline)
	}
	if bare.URL != nil || bare.Publisher != nil || bare.PublishedAt != nil {
		t.Errorf("bare record: url/publisher/published_at should all be nil, got %v %v %v",
			bare.URL, bare.Publisher, bare.PublishedAt)
	}
}

func TestFetchNews_NoRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"news":[]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	items, err := c.FetchNews(context.Background(), "OBSCURE.BO")
	if err != nil {
		t.Fatalf("FetchNews failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
}

func TestExtractPublishedAt_Unparseable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"news":[{"title":"T","pubDate":"last tuesday"}]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	items, err := c.FetchNews(context.Background(), "X.BO")
	if err != nil {
		t.Fatalf("FetchNews failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].PublishedAt != nil {
		t.Errorf("PublishedAt = %v, want nil for unparseable date", items[0].PublishedAt)
	}
}
