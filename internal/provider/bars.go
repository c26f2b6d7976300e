package provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/arjunvn/stocklens/internal/model"
)

// FetchDailyBars fetches daily OHLCV bars for a symbol over a trailing range
// ("1d", "10y", ...). An empty result is a valid outcome for delisted or
// newly-listed symbols and is returned as a nil error with zero bars; only
// transport and server failures are errors.
func (c *Client) FetchDailyBars(ctx context.Context, sym, barRange string) ([]model.Bar, error) {
	query := url.Values{}
	query.Set("range", barRange)
	query.Set("interval", "1d")

	body, err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(sym), query)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			c.logger.Debug("symbol not known to provider", "symbol", sym)
			return nil, nil
		}
		return nil, fmt.Errorf("fetch bars %s: %w", sym, err)
	}

	return parseChart(body)
}

// parseChart extracts bars from the provider's chart payload:
// chart.result.0.timestamp[] paired with chart.result.0.indicators.quote.0
// arrays. Entries with null open or close (halted days) are skipped.
func parseChart(body []byte) ([]model.Bar, error) {
	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		// A present error object with an absent result is the provider's
		// no-data shape; an unparseable body is a malformed response.
		if gjson.GetBytes(body, "chart").Exists() {
			return nil, nil
		}
		return nil, fmt.Errorf("malformed chart response")
	}

	timestamps := result.Get("timestamp").Array()
	if len(timestamps) == 0 {
		return nil, nil
	}

	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	bars := make([]model.Bar, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(opens) || i >= len(closes) {
			break
		}
		if opens[i].Type == gjson.Null || closes[i].Type == gjson.Null {
			continue
		}

		bar := model.Bar{
			Date:  dateOf(time.Unix(ts.Int(), 0)),
			Open:  opens[i].Float(),
			Close: closes[i].Float(),
		}
		if i < len(highs) {
			bar.High = highs[i].Float()
		}
		if i < len(lows) {
			bar.Low = lows[i].Float()
		}
		if i < len(volumes) {
			bar.Volume = volumes[i].Int()
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
