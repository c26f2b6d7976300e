// Package symbol maps internal tickers to the exchange-suffixed symbols the
// upstream quote provider expects.
package symbol

import (
	"errors"
	"strings"
)

// ErrInvalidTicker indicates a malformed or empty ticker.
var ErrInvalidTicker = errors.New("invalid ticker")

// DefaultSuffix is appended to tickers that carry no recognized exchange
// suffix. BSE listings are the default universe.
const DefaultSuffix = ".BO"

// recognizedSuffixes are exchange suffixes passed through unchanged.
var recognizedSuffixes = []string{".BO", ".NS"}

// Normalize returns the provider-facing symbol for an internal ticker.
// A ticker already carrying a recognized exchange suffix is returned
// unchanged; anything else gets DefaultSuffix appended.
func Normalize(ticker string) (string, error) {
	t := strings.TrimSpace(ticker)
	if t == "" {
		return "", ErrInvalidTicker
	}
	if strings.ContainsAny(t, " \t\n") {
		return "", ErrInvalidTicker
	}

	for _, suffix := range recognizedSuffixes {
		if strings.HasSuffix(t, suffix) {
			return t, nil
		}
	}
	return t + DefaultSuffix, nil
}
