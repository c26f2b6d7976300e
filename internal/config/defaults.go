package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultProviderBaseURL = "https://query1.finance.yahoo.com"
	DefaultProviderTimeout = 30 * time.Second
	DefaultMaxRetries      = 3
	DefaultRetryBackoff    = 1 * time.Second
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultRequestDelay    = 500 * time.Millisecond
	DefaultBackfillRange   = "10y"
	DefaultUpdateRange     = "1d"
	DefaultNewsCount       = 20
	DefaultWindowDays      = 30
)

func (c *Config) applyDefaults() {
	// Provider defaults
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = DefaultProviderBaseURL
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = DefaultProviderTimeout
	}
	if c.Provider.MaxRetries == 0 {
		c.Provider.MaxRetries = DefaultMaxRetries
	}
	if c.Provider.RetryBackoff == 0 {
		c.Provider.RetryBackoff = DefaultRetryBackoff
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Ingest defaults
	if c.Ingest.RequestDelay == 0 {
		c.Ingest.RequestDelay = DefaultRequestDelay
	}
	if c.Ingest.BackfillRange == "" {
		c.Ingest.BackfillRange = DefaultBackfillRange
	}
	if c.Ingest.UpdateRange == "" {
		c.Ingest.UpdateRange = DefaultUpdateRange
	}
	if c.Ingest.NewsCount == 0 {
		c.Ingest.NewsCount = DefaultNewsCount
	}

	// Correlation defaults
	if c.Correlation.WindowDays == 0 {
		c.Correlation.WindowDays = DefaultWindowDays
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
