package align

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/carolinebinley/ml-learning-alignment/internal/span"
)

func alignment(s1, e1, s2, e2 int) span.Alignment {
	return span.NewAlignment(span.New(s1, e1), span.New(s2, e2))
}

func sortedKeys(alignments []span.Alignment) []span.Key {
	keys := make([]span.Key, 0, len(alignments))
	for _, a := range alignments {
		keys = append(keys, a.Key())
	}
	slices.SortFunc(keys, func(a, b span.Key) int {
		return slices.Compare(a[:], b[:])
	})
	return keys
}

func sliceExcept(parent span.Alignment, seeds []span.Alignment) []span.Alignment {
	var out []span.Alignment
	for a := range parent.Slice() {
		if !slices.ContainsFunc(seeds, a.Equal) {
			out = append(out, a)
		}
	}
	return out
}

func TestExpandGaps(t *testing.T) {
	tests := []struct {
		name       string
		seeds      []span.Alignment
		len1, len2 int
		want       []span.Alignment
	}{
		{
			name:  "no suggestions",
			seeds: []span.Alignment{alignment(0, 1, 0, 1)},
			len1:  1, len2: 1,
			want: nil,
		},
		{
			name:  "leading gap",
			seeds: []span.Alignment{alignment(1, 2, 0, 1)},
			len1:  2, len2: 1,
			want: []span.Alignment{alignment(0, 2, 0, 1), alignment(0, 1, 0, 1)},
		},
		{
			name:  "trailing gap",
			seeds: []span.Alignment{alignment(0, 1, 0, 1)},
			len1:  2, len2: 1,
			want: []span.Alignment{alignment(0, 2, 0, 1), alignment(1, 2, 0, 1)},
		},
		{
			name:  "middle gap in sequence 1",
			seeds: []span.Alignment{alignment(0, 1, 0, 1), alignment(2, 3, 1, 2)},
			len1:  3, len2: 2,
			want: sliceExcept(alignment(0, 3, 0, 2),
				[]span.Alignment{alignment(0, 1, 0, 1), alignment(2, 3, 1, 2)}),
		},
		{
			name:  "middle gap in sequence 2",
			seeds: []span.Alignment{alignment(0, 1, 0, 1), alignment(1, 2, 2, 3)},
			len1:  2, len2: 3,
			want: sliceExcept(alignment(0, 2, 0, 3),
				[]span.Alignment{alignment(0, 1, 0, 1), alignment(1, 2, 2, 3)}),
		},
		{
			name:  "fully contiguous seeds",
			seeds: []span.Alignment{alignment(1, 2, 1, 2), alignment(0, 1, 0, 1), alignment(2, 3, 2, 3)},
			len1:  3, len2: 4,
			want: sliceExcept(alignment(1, 3, 1, 4),
				[]span.Alignment{alignment(0, 1, 0, 1), alignment(1, 2, 1, 2), alignment(2, 3, 2, 3)}),
		},
		{
			name:  "no seeds",
			seeds: nil,
			len1:  3, len2: 3,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandGaps(tt.seeds, tt.len1, tt.len2)
			if diff := cmp.Diff(sortedKeys(tt.want), sortedKeys(got)); diff != "" {
				t.Fatalf("ExpandGaps mismatch (-want +got):\n%s", diff)
			}
			for _, a := range got {
				if _, ok := a.Score(); ok {
					t.Fatalf("candidate %s should be unscored", a)
				}
			}
		})
	}
}

func TestExpandGapsDoesNotReorderInput(t *testing.T) {
	seeds := []span.Alignment{alignment(2, 3, 1, 2), alignment(0, 1, 0, 1)}
	ExpandGaps(seeds, 3, 2)
	if seeds[0].Key() != (span.Key{2, 3, 1, 2}) {
		t.Fatal("ExpandGaps must not sort the caller's slice")
	}
}

func TestExpandGapsEmitsEachCandidateOnce(t *testing.T) {
	seeds := []span.Alignment{
		alignment(0, 1, 0, 1),
		alignment(1, 2, 0, 1),
		alignment(2, 3, 2, 3),
		alignment(3, 4, 1, 2),
	}
	got := ExpandGaps(seeds, 4, 3)
	seen := make(map[span.Key]struct{}, len(got))
	for _, a := range got {
		if _, dup := seen[a.Key()]; dup {
			t.Fatalf("candidate %s emitted twice", a)
		}
		seen[a.Key()] = struct{}{}
		if slices.ContainsFunc(seeds, a.Equal) {
			t.Fatalf("seed %s proposed as a candidate", a)
		}
	}
}
