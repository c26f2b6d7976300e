package sentiment

import (
	"strings"
	"unicode"
)

// maxWeight is the magnitude of the strongest lexicon entry; per-token
// contributions are normalized against it so the mean stays in [-1, 1].
const maxWeight = 5.0

// negationWindow is how many tokens a negator ("not", "no", ...) keeps
// flipping the polarity of the next sentiment-bearing word.
const negationWindow = 3

// LexiconScorer is the default Scorer: a weighted polarity lexicon tilted
// toward financial-news vocabulary, with single-word negation handling.
type LexiconScorer struct {
	weights  map[string]float64
	negators map[string]struct{}
}

// NewLexiconScorer returns a scorer backed by the built-in lexicon.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		weights:  lexicon,
		negators: negators,
	}
}

// Score returns the mean normalized weight of sentiment-bearing tokens,
// clamped to [-1, 1]. Text with no recognized tokens scores exactly 0.
func (s *LexiconScorer) Score(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	matched := 0
	negated := 0

	for _, tok := range tokens {
		if _, ok := s.negators[tok]; ok {
			negated = negationWindow
			continue
		}

		w, ok := s.weights[tok]
		if !ok {
			if negated > 0 {
				negated--
			}
			continue
		}

		if negated > 0 {
			w = -w
			negated = 0
		}
		sum += w
		matched++
	}

	if matched == 0 {
		return 0
	}

	score := sum / (float64(matched) * maxWeight)
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}

// tokenize lowercases and splits on anything that is not a letter.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

var negators = map[string]struct{}{
	"not":     {},
	"no":      {},
	"never":   {},
	"without": {},
	"neither": {},
	"nor":     {},
}

// lexicon holds polarity weights in [-5, 5]. Entries lean toward the
// vocabulary of market and company news headlines.
var lexicon = map[string]float64{
	// Positive
	"gain": 2, "gains": 2, "gained": 2,
	"profit": 3, "profits": 3, "profitable": 3,
	"surge": 3, "surges": 3, "surged": 3,
	"rally": 3, "rallies": 3, "rallied": 3,
	"jump": 2, "jumps": 2, "jumped": 2,
	"rise": 2, "rises": 2, "rose": 2, "rising": 2,
	"climb": 2, "climbs": 2, "climbed": 2,
	"soar": 4, "soars": 4, "soared": 4,
	"beat": 2, "beats": 2,
	"strong": 2, "stronger": 2, "strongest": 3,
	"growth": 2, "grow": 2, "grows": 2, "grew": 2,
	"record": 2, "upbeat": 3, "bullish": 3,
	"upgrade": 3, "upgraded": 3, "upgrades": 3,
	"outperform": 3, "outperforms": 3, "outperformed": 3,
	"boost": 2, "boosts": 2, "boosted": 2,
	"win": 3, "wins": 3, "won": 3,
	"success": 3, "successful": 3,
	"positive": 2, "optimistic": 3, "optimism": 3,
	"recovery": 2, "recover": 2, "recovers": 2, "recovered": 2,
	"dividend": 1, "expansion": 2, "expand": 2, "expands": 2,
	"approval": 2, "approved": 2, "approve": 2,
	"good": 2, "great": 3, "excellent": 4, "best": 3,
	"high": 1, "higher": 1, "highest": 2,
	"improve": 2, "improves": 2, "improved": 2, "improvement": 2,

	// Negative
	"loss": -3, "losses": -3, "lose": -2, "loses": -2, "lost": -2,
	"fall": -2, "falls": -2, "fell": -2, "falling": -2,
	"drop": -2, "drops": -2, "dropped": -2,
	"plunge": -4, "plunges": -4, "plunged": -4,
	"crash": -4, "crashes": -4, "crashed": -4,
	"slump": -3, "slumps": -3, "slumped": -3,
	"tumble": -3, "tumbles": -3, "tumbled": -3,
	"decline": -2, "declines": -2, "declined": -2,
	"weak": -2, "weaker": -2, "weakest": -3,
	"miss": -2, "misses": -2, "missed": -2,
	"bearish": -3, "downbeat": -3, "pessimistic": -3,
	"downgrade": -3, "downgraded": -3, "downgrades": -3,
	"underperform": -3, "underperforms": -3, "underperformed": -3,
	"fraud": -5, "scandal": -4, "lawsuit": -3, "probe": -2,
	"fine": -2, "fined": -2, "penalty": -2,
	"debt": -2, "default": -4, "defaults": -4, "bankruptcy": -5, "bankrupt": -5,
	"layoff": -3, "layoffs": -3, "cut": -1, "cuts": -1,
	"risk": -1, "risks": -1, "risky": -2,
	"concern": -2, "concerns": -2, "worried": -2, "worry": -2, "worries": -2,
	"fear": -3, "fears": -3, "panic": -4,
	"bad": -2, "worse": -3, "worst": -4, "poor": -2,
	"low": -1, "lower": -1, "lowest": -2,
	"slowdown": -2, "recession": -4, "crisis": -4,
	"warn": -2, "warns": -2, "warning": -2, "warned": -2,
	"negative": -2, "trouble": -3, "troubled": -3,
	"failure": -3, "fail": -3, "fails": -3, "failed": -3,
}
