package sentiment

import "testing"

func TestLexiconScorer_Score(t *testing.T) {
	s := NewLexiconScorer()

	tests := []struct {
		name string
		text string
		sign int // -1, 0, +1
	}{
		{"empty text", "", 0},
		{"whitespace only", "   \t\n", 0},
		{"neutral text", "the quarterly report was published on Monday", 0},
		{"positive headline", "Shares surge after record profit beat", +1},
		{"negative headline", "Stock plunges as fraud probe widens losses", -1},
		{"negated positive", "Results were not good this quarter", -1},
		{"negated negative", "Company sees no losses in core segment", +1},
		{"expired negation", "No comment from the board, but shares gained", +1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.text)
			if got < -1 || got > 1 {
				t.Fatalf("Score(%q) = %v, outside [-1, 1]", tt.text, got)
			}
			switch {
			case tt.sign == 0 && got != 0:
				t.Errorf("Score(%q) = %v, want 0", tt.text, got)
			case tt.sign > 0 && got <= 0:
				t.Errorf("Score(%q) = %v, want > 0", tt.text, got)
			case tt.sign < 0 && got >= 0:
				t.Errorf("Score(%q) = %v, want < 0", tt.text, got)
			}
		})
	}
}

func TestLexiconScorer_Deterministic(t *testing.T) {
	s := NewLexiconScorer()
	text := "Profit surges but debt concerns linger after weak guidance"

	first := s.Score(text)
	for i := 0; i < 10; i++ {
		if got := s.Score(text); got != first {
			t.Fatalf("Score not deterministic: %v != %v", got, first)
		}
	}
}

func TestLexiconScorer_Bounded(t *testing.T) {
	s := NewLexiconScorer()

	// Strings built entirely from the strongest entries must stay in range.
	if got := s.Score("fraud bankruptcy crash panic worst crisis"); got < -1 {
		t.Errorf("Score = %v, want >= -1", got)
	}
	if got := s.Score("soar soars soared excellent"); got > 1 {
		t.Errorf("Score = %v, want <= 1", got)
	}
}

func TestScorerFunc(t *testing.T) {
	var s Scorer = ScorerFunc(func(string) float64 { return 0.5 })
	if got := s.Score("anything"); got != 0.5 {
		t.Errorf("ScorerFunc.Score = %v, want 0.5", got)
	}
}
