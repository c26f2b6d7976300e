// Package sentiment scores free text for polarity.
//
// The scorer contract: Score returns a value in [-1, 1], exactly 0 for empty
// input, and identical output for identical input. Any implementation
// satisfying that contract can replace the default lexicon scorer.
package sentiment

// Scorer maps free text to a polarity score in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

// ScorerFunc is a function adapter for Scorer.
type ScorerFunc func(text string) float64

func (f ScorerFunc) Score(text string) float64 {
	return f(text)
}
