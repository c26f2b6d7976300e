package model

import "time"

// -----------------------------------------------------------------------------
// Relational Types
// -----------------------------------------------------------------------------

// Stock is one equity in the tracked universe.
type Stock struct {
	ID     int64  // Surrogate key
	Ticker string // Exchange-suffixed symbol (e.g., "RELIANCE.BO"), unique
	Name   string // Company name
	Sector string // Industry sector
	Active bool   // Only active stocks are ingested
}

// Bar is one day's OHLCV record as returned by the upstream provider.
// The date carries no time component (UTC midnight).
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// NewsItem is a news article tied to one or more stocks.
//
// URL, Publisher and PublishedAt are pointers because the provider cannot
// always extract them; nil maps to SQL NULL. A non-nil URL is the natural
// dedup key: the first-seen row for a URL is canonical and never overwritten.
type NewsItem struct {
	ID             int64
	Headline       string
	Summary        string
	URL            *string
	Publisher      *string
	PublishedAt    *time.Time
	SentimentScore float64 // Polarity in [-1, 1]
}

// -----------------------------------------------------------------------------
// Derived Types
// -----------------------------------------------------------------------------

// DatedValue is one point of a date-keyed daily series (mean sentiment,
// percent price change).
type DatedValue struct {
	Date  time.Time
	Value float64
}

// CorrelationReport is the ephemeral output of the correlation engine.
// It is never persisted.
type CorrelationReport struct {
	Correlation float64 // Pearson coefficient rounded to 2 decimals, 0 when undefined
	Message     string  // Qualitative label or insufficient-data reason
	DataPoints  int     // Count of overlapping days used
}
