package align

import (
	"slices"

	"github.com/carolinebinley/ml-learning-alignment/internal/span"
)

// ExpandGaps proposes candidate alignments wherever the seeds stop being
// contiguous. Seeds are sorted and bracketed by a zero-width alignment at the
// origin and a one-unit alignment at the last index of each sequence. For
// each seed that is not contiguous with both neighbours, every sub-alignment
// of the region spanned by those neighbours is proposed, except the seeds
// themselves. Output holds each candidate once, in discovery order, unscored.
func ExpandGaps(seeds []span.Alignment, len1, len2 int) []span.Alignment {
	if len(seeds) == 0 {
		return nil
	}
	sorted := slices.Clone(seeds)
	span.SortAlignments(sorted)

	isSeed := make(map[span.Key]struct{}, len(sorted))
	for _, s := range sorted {
		isSeed[s.Key()] = struct{}{}
	}

	bracketed := make([]span.Alignment, 0, len(sorted)+2)
	bracketed = append(bracketed, span.NewAlignment(span.New(0, 0), span.New(0, 0)))
	bracketed = append(bracketed, sorted...)
	bracketed = append(bracketed, span.NewAlignment(span.Single(len1-1), span.Single(len2-1)))

	var candidates []span.Alignment
	emitted := make(map[span.Key]struct{})
	for i := 1; i < len(bracketed)-1; i++ {
		prev, cur, next := bracketed[i-1], bracketed[i], bracketed[i+1]
		if prev.IsContiguous(cur) && cur.IsContiguous(next) {
			continue
		}
		parent := span.NewAlignment(
			span.New(prev.Source.Start, next.Source.End),
			span.New(prev.Target.Start, next.Target.End),
		)
		for candidate := range parent.Slice() {
			key := candidate.Key()
			if _, ok := isSeed[key]; ok {
				continue
			}
			if _, ok := emitted[key]; ok {
				continue
			}
			emitted[key] = struct{}{}
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}
