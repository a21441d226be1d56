package span

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
)

// Alignment pairs a span of sequence 1 (Source) with a span of sequence 2
// (Target). The score is optional and is ignored by ordering and equality.
type Alignment struct {
	Source Span
	Target Span

	score  float64
	scored bool
}

// Key identifies an alignment by its four bounds.
type Key [4]int

// NewAlignment returns an unscored alignment.
func NewAlignment(source, target Span) Alignment {
	return Alignment{Source: source, Target: target}
}

// WithScore returns a copy of a carrying the given score.
func (a Alignment) WithScore(score float64) Alignment {
	a.score = score
	a.scored = true
	return a
}

// Score returns the alignment score and whether one has been assigned.
func (a Alignment) Score() (float64, bool) {
	return a.score, a.scored
}

// Key returns the bounds of both spans.
func (a Alignment) Key() Key {
	return Key{a.Source.Start, a.Source.End, a.Target.Start, a.Target.End}
}

// Equal reports whether both spans match; scores are not compared.
func (a Alignment) Equal(other Alignment) bool {
	return a.Source == other.Source && a.Target == other.Target
}

func (a Alignment) String() string {
	if !a.scored {
		return fmt.Sprintf("%s->%s", a.Source, a.Target)
	}
	return fmt.Sprintf("%s->%s (%s)", a.Source, a.Target, strconv.FormatFloat(a.score, 'f', 4, 64))
}

// CompareAlignments orders alignments lexicographically by (Source, Target).
func CompareAlignments(a, b Alignment) int {
	if c := Compare(a.Source, b.Source); c != 0 {
		return c
	}
	return Compare(a.Target, b.Target)
}

// SortAlignments sorts in place by the alignment total order.
func SortAlignments(alignments []Alignment) {
	slices.SortStableFunc(alignments, CompareAlignments)
}

// Overlaps reports whether the alignments share an index in either sequence.
func (a Alignment) Overlaps(other Alignment) bool {
	return a.Source.Overlaps(other.Source) || a.Target.Overlaps(other.Target)
}

// IsContiguous reports whether other directly follows (or precedes) a in both
// sequences at once. An alignment is never contiguous with itself.
func (a Alignment) IsContiguous(other Alignment) bool {
	switch CompareAlignments(a, other) {
	case 0:
		return false
	case 1:
		return other.IsContiguous(a)
	}
	return a.Source.IsContiguous(other.Source) && a.Target.IsContiguous(other.Target)
}

// Slice yields the cross product of the source and target slicings, source
// outermost. Yielded alignments are unscored.
func (a Alignment) Slice() iter.Seq[Alignment] {
	return func(yield func(Alignment) bool) {
		for source := range a.Source.Slice() {
			for target := range a.Target.Slice() {
				if !yield(NewAlignment(source, target)) {
					return
				}
			}
		}
	}
}
