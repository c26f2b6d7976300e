package config

import "time"

// Config is the root configuration shared by all stocklens binaries.
type Config struct {
	Instance    InstanceConfig    `yaml:"instance"`
	Provider    ProviderConfig    `yaml:"provider"`
	Database    DatabaseConfig    `yaml:"database"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Correlation CorrelationConfig `yaml:"correlation"`
}

// InstanceConfig identifies this deployment.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// ProviderConfig holds upstream quote/news provider settings.
type ProviderConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// DatabaseConfig holds the relational store connection.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// IngestConfig holds orchestrator settings shared by the price and news runs.
type IngestConfig struct {
	// RequestDelay is the courtesy pause between upstream requests.
	RequestDelay time.Duration `yaml:"request_delay"`
	// BackfillRange is the trailing window requested per stock on backfill.
	BackfillRange string `yaml:"backfill_range"`
	// UpdateRange is the window requested per stock on the daily update.
	UpdateRange string `yaml:"update_range"`
	// NewsCount is the number of news records requested per stock.
	NewsCount int `yaml:"news_count"`
}

// CorrelationConfig holds correlation engine settings.
type CorrelationConfig struct {
	// WindowDays is the trailing analysis window in calendar days.
	WindowDays int `yaml:"window_days"`
}
