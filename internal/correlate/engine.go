// Package correlate joins per-day news sentiment with per-day price movement
// and reports a Pearson correlation signal.
package correlate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arjunvn/stocklens/internal/model"
)

// DefaultWindowDays is the trailing analysis window when none is given.
const DefaultWindowDays = 30

// minOverlap is the smallest overlapping sample the engine trusts for a
// Pearson estimate.
const minOverlap = 3

// Classification thresholds. Fixed, not configurable.
const (
	positiveThreshold = 0.3
	inverseThreshold  = -0.3
)

// Result messages.
const (
	MsgInsufficientNews    = "insufficient news data"
	MsgInsufficientPrices  = "insufficient price data"
	MsgInsufficientOverlap = "insufficient overlapping data points"
	MsgUndefined           = "correlation undefined"
	MsgPositive            = "positive correlation, sentiment strongly influences price"
	MsgInverse             = "inverse correlation"
	MsgWeak                = "weak correlation, limited direct impact"
)

// Reader provides the two date-keyed daily series the engine joins. Both
// are read-only store queries.
type Reader interface {
	DailySentiment(ctx context.Context, stockID int64, since time.Time) ([]model.DatedValue, error)
	DailyPriceChange(ctx context.Context, stockID int64, since time.Time) ([]model.DatedValue, error)
}

// Engine computes sentiment/price correlation reports. It holds no state
// between calls and is safe to call concurrently for different stocks.
type Engine struct {
	reader Reader
	logger *slog.Logger

	now func() time.Time
}

// NewEngine creates an Engine.
func NewEngine(reader Reader, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		reader: reader,
		logger: logger,
		now:    time.Now,
	}
}

// Analyze joins the stock's daily mean sentiment with its daily percent
// price change over the trailing window and reports the Pearson correlation.
// Data sparsity is a normal terminal result, never an error; only store
// access failures return a non-nil error.
func (e *Engine) Analyze(ctx context.Context, stockID int64, windowDays int) (model.CorrelationReport, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	since := e.now().UTC().AddDate(0, 0, -windowDays)

	sentiment, err := e.reader.DailySentiment(ctx, stockID, since)
	if err != nil {
		return model.CorrelationReport{}, fmt.Errorf("read daily sentiment: %w", err)
	}
	if len(sentiment) == 0 {
		return model.CorrelationReport{Message: MsgInsufficientNews}, nil
	}

	changes, err := e.reader.DailyPriceChange(ctx, stockID, since)
	if err != nil {
		return model.CorrelationReport{}, fmt.Errorf("read daily price change: %w", err)
	}
	if len(changes) == 0 {
		return model.CorrelationReport{Message: MsgInsufficientPrices}, nil
	}

	xs, ys := joinByDate(sentiment, changes)
	if len(xs) < minOverlap {
		return model.CorrelationReport{
			Message:    MsgInsufficientOverlap,
			DataPoints: len(xs),
		}, nil
	}

	r, ok := pearson(xs, ys)
	if !ok {
		// Zero-variance series: the coefficient is undefined. Reported as
		// a terminal result rather than an error.
		e.logger.Debug("zero-variance series in correlation window",
			"stock_id", stockID,
			"data_points", len(xs),
		)
		return model.CorrelationReport{
			Message:    MsgUndefined,
			DataPoints: len(xs),
		}, nil
	}

	report := model.CorrelationReport{
		Correlation: round2(r),
		DataPoints:  len(xs),
	}
	switch {
	case report.Correlation > positiveThreshold:
		report.Message = MsgPositive
	case report.Correlation < inverseThreshold:
		report.Message = MsgInverse
	default:
		report.Message = MsgWeak
	}

	e.logger.Debug("correlation computed",
		"stock_id", stockID,
		"correlation", report.Correlation,
		"data_points", report.DataPoints,
	)
	return report, nil
}

// joinByDate inner-joins two date-keyed series on exact calendar-date
// equality, preserving the first series' date order.
func joinByDate(a, b []model.DatedValue) (xs, ys []float64) {
	byDate := make(map[string]float64, len(b))
	for _, dv := range b {
		byDate[dayKey(dv.Date)] = dv.Value
	}

	for _, dv := range a {
		if v, ok := byDate[dayKey(dv.Date)]; ok {
			xs = append(xs, dv.Value)
			ys = append(ys, v)
		}
	}
	return xs, ys
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
