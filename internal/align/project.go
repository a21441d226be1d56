package align

import (
	"slices"

	"github.com/carolinebinley/ml-learning-alignment/internal/span"
)

// Group is one aligned pair of unit runs. Either side may be empty.
type Group struct {
	Source []string `json:"source"`
	Target []string `json:"target"`
}

// ScoredGroup is a Group together with the spans and score it came from.
type ScoredGroup struct {
	Group
	SourceSpan span.Span `json:"source_span"`
	TargetSpan span.Span `json:"target_span"`
	Score      float64   `json:"score"`
	Scored     bool      `json:"scored"`
}

// Describe projects alignments like Project and keeps their spans and scores.
func Describe(alignments []span.Alignment, seq1, seq2 []string) []ScoredGroup {
	groups := Project(alignments, seq1, seq2)
	out := make([]ScoredGroup, len(alignments))
	for i, a := range alignments {
		score, ok := a.Score()
		out[i] = ScoredGroup{
			Group:      groups[i],
			SourceSpan: a.Source,
			TargetSpan: a.Target,
			Score:      score,
			Scored:     ok,
		}
	}
	return out
}

// Project maps each alignment to copies of the unit slices it covers, in
// alignment order. Units are never re-joined.
func Project(alignments []span.Alignment, seq1, seq2 []string) []Group {
	groups := make([]Group, 0, len(alignments))
	for _, a := range alignments {
		groups = append(groups, Group{
			Source: sliceOf(seq1, a.Source),
			Target: sliceOf(seq2, a.Target),
		})
	}
	return groups
}

// SortByPosition orders groups by their position in sequence 1, then
// sequence 2, instead of acceptance order.
func SortByPosition(groups []ScoredGroup) {
	slices.SortStableFunc(groups, func(a, b ScoredGroup) int {
		return span.CompareAlignments(
			span.NewAlignment(a.SourceSpan, a.TargetSpan),
			span.NewAlignment(b.SourceSpan, b.TargetSpan),
		)
	})
}

func sliceOf(seq []string, s span.Span) []string {
	lo, hi := s.Clamp(len(seq))
	out := make([]string, hi-lo)
	copy(out, seq[lo:hi])
	return out
}
