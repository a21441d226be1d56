package textutil

import (
	"math"

	"github.com/agext/levenshtein"
)

// ratioParams prices a substitution as a deletion plus an insertion, which
// makes Similarity equal to (len(a)+len(b)-distance) / (len(a)+len(b)).
var ratioParams = levenshtein.NewParams().SubCost(2)

// Ratio returns the normalized edit similarity of a and b in [0, 1], rounded
// to two decimals. Empty input scores 0.
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	sim := levenshtein.Similarity(a, b, ratioParams)
	return math.Round(sim*100) / 100
}

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

