// Package sentiment implements a deterministic lexicon-based sentiment
// scorer. No pre-trained sentiment SDK exists anywhere in the reference
// corpus (see DESIGN.md); this is the one other deliberately stdlib-only
// leaf, mirroring the embedding adapter's justification.
package sentiment

import (
	"strings"
)

var lexicon = map[string]float64{
	"win": 1, "wins": 1, "winning": 1, "surge": 0.8, "rally": 0.7,
	"bullish": 0.9, "approve": 0.6, "approved": 0.7, "pass": 0.5,
	"gain": 0.6, "gains": 0.6, "record": 0.5, "success": 0.8,
	"lose": -1, "loses": -1, "losing": -1, "crash": -0.9, "plunge": -0.8,
	"bearish": -0.9, "reject": -0.6, "rejected": -0.7, "fail": -0.7,
	"fails": -0.7, "failure": -0.8, "decline": -0.5, "drop": -0.5,
	"scandal": -0.8, "lawsuit": -0.5, "investigation": -0.4,
	"delay": -0.3, "delayed": -0.3, "uncertain": -0.2, "risk": -0.3,
}

// Scorer implements ports.SentimentScorer.
type Scorer struct{}

func New() *Scorer {
	return &Scorer{}
}

// Score returns the average lexicon weight of recognized tokens in text,
// clamped to [-1, 1]. Unrecognized text scores 0 (neutral).
func (s *Scorer) Score(text string) (float64, error) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z')
	})
	if len(words) == 0 {
		return 0, nil
	}

	var sum float64
	var hits int
	for _, w := range words {
		if weight, ok := lexicon[w]; ok {
			sum += weight
			hits++
		}
	}
	if hits == 0 {
		return 0, nil
	}

	score := sum / float64(hits)
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score, nil
}
