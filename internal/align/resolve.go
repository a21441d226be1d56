package align

import (
	"cmp"
	"math"
	"slices"

	"github.com/carolinebinley/ml-learning-alignment/internal/span"
)

// Resolve selects non-overlapping alignments greedily: the highest score is
// accepted, everything overlapping it is discarded, and the process repeats.
// Equal scores keep their input order; unscored alignments rank last. The
// result is in acceptance order.
func Resolve(alignments []span.Alignment) []span.Alignment {
	remaining := slices.Clone(alignments)
	slices.SortStableFunc(remaining, func(a, b span.Alignment) int {
		return cmp.Compare(rank(b), rank(a))
	})

	var accepted []span.Alignment
	for len(remaining) > 0 {
		best := remaining[0]
		accepted = append(accepted, best)
		remaining = slices.DeleteFunc(remaining[1:], best.Overlaps)
	}
	return accepted
}

func rank(a span.Alignment) float64 {
	score, ok := a.Score()
	if !ok || math.IsNaN(score) {
		return math.Inf(-1)
	}
	return score
}
