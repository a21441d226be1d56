package span

import (
	"cmp"
	"fmt"
	"iter"
)

// Span is a half-open interval [Start, End) over unit indices of one sequence.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// New returns the span [start, end).
func New(start, end int) Span {
	return Span{Start: start, End: end}
}

// Single returns the span covering only index i.
func Single(i int) Span {
	return Span{Start: i, End: i + 1}
}

// Len returns the number of indices covered by the span.
func (s Span) Len() int {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Compare orders spans by Start, then End.
func Compare(a, b Span) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.End, b.End)
}

// Less reports whether a sorts before b.
func Less(a, b Span) bool {
	return Compare(a, b) < 0
}

// Overlaps reports whether the two intervals share at least one index.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// IsContiguous reports whether the earlier of the two spans ends exactly where
// the later one starts. A span is never contiguous with itself.
func (s Span) IsContiguous(other Span) bool {
	switch Compare(s, other) {
	case 0:
		return false
	case 1:
		return other.End == s.Start
	default:
		return s.End == other.Start
	}
}

// Slice yields every sub-span [i, j) with Start <= i < j <= End, ordered by i
// and then j. The sequence may be ranged over any number of times.
func (s Span) Slice() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for i := s.Start; i <= s.End; i++ {
			for j := i + 1; j <= s.End; j++ {
				if !yield(Span{Start: i, End: j}) {
					return
				}
			}
		}
	}
}

// Clamp restricts the span to [0, n) and returns the resulting bounds, which
// are always safe to use as slice indices for a sequence of length n.
func (s Span) Clamp(n int) (int, int) {
	lo := min(max(s.Start, 0), n)
	hi := min(max(s.End, lo), n)
	return lo, hi
}
