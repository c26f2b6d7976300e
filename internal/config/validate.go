package config

import (
	"errors"
	"fmt"
)

// validRanges are the provider-accepted trailing windows for bar fetches.
var validRanges = map[string]bool{
	"1d": true, "5d": true, "1mo": true, "3mo": true, "6mo": true,
	"1y": true, "2y": true, "5y": true, "10y": true, "max": true,
}

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if err := c.Database.Postgres.validate("database.postgres"); err != nil {
		return err
	}

	if c.Provider.MaxRetries < 0 {
		return errors.New("provider.max_retries must be >= 0")
	}

	if c.Ingest.RequestDelay < 0 {
		return errors.New("ingest.request_delay must be >= 0")
	}
	if !validRanges[c.Ingest.BackfillRange] {
		return fmt.Errorf("ingest.backfill_range %q is not a valid range", c.Ingest.BackfillRange)
	}
	if !validRanges[c.Ingest.UpdateRange] {
		return fmt.Errorf("ingest.update_range %q is not a valid range", c.Ingest.UpdateRange)
	}
	if c.Ingest.NewsCount < 1 {
		return errors.New("ingest.news_count must be >= 1")
	}

	if c.Correlation.WindowDays < 1 {
		return errors.New("correlation.window_days must be >= 1")
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
