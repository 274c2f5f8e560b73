package perception

import "github.com/jonreiter/govader"

// VaderScorer backs the refinement with the VADER sentiment lexicon.
// Construction is cheap; the analyzer is pure Go and carries its own lexicon.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer returns a ready scorer.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the VADER compound score in [-1, +1].
func (v *VaderScorer) Compound(text string) (float64, bool) {
	if v == nil || v.analyzer == nil {
		return 0, false
	}
	return v.analyzer.PolarityScores(text).Compound, true
}
