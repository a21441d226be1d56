package scoring_test

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/carolinebinley/ml-learning-alignment/internal/scoring"
)

func TestBuildFuzzPrefersDiagonal(t *testing.T) {
	b := scoring.NewBuilder()
	m := b.Build([]string{"hello", "world"}, []string{"hollow", "word"}, scoring.Weights{Fuzz: 1})

	if m.Rows() != 2 || m.Cols() != 2 {
		t.Fatalf("matrix shape = %dx%d, want 2x2", m.Rows(), m.Cols())
	}
	if m[0][0] <= m[0][1] || m[1][1] <= m[1][0] {
		t.Fatalf("expected diagonal to dominate, got %v", m)
	}
	for i, want := range []int{0, 1} {
		if got := m.RowArgmax(i); got != want {
			t.Errorf("RowArgmax(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestBuildSkipsZeroWeightStrategies(t *testing.T) {
	var calls atomic.Int64
	b := scoring.NewBuilder(scoring.WithSimilarity(func(a, c string) float64 {
		calls.Add(1)
		return 1
	}))

	m := b.Build([]string{"a", "b"}, []string{"a"}, scoring.Weights{Fuzz: 0, Cosine: 1})
	if calls.Load() != 0 {
		t.Fatalf("expected fuzz scorer to be skipped, called %d times", calls.Load())
	}
	if m.Rows() != 2 || m.Cols() != 1 {
		t.Fatalf("matrix shape = %dx%d, want 2x1", m.Rows(), m.Cols())
	}
}

func TestBuildScalesCombinations(t *testing.T) {
	b := scoring.NewBuilder(scoring.WithSimilarity(func(a, c string) float64 {
		if a == c {
			return 1
		}
		return 0.5
	}))
	m := b.Build([]string{"x", "y"}, []string{"x", "z"}, scoring.Weights{Fuzz: 2})
	want := scoring.Matrix{{2, 1}, {1, 1}}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEmptySequences(t *testing.T) {
	b := scoring.NewBuilder()
	if m := b.Build(nil, []string{"a"}, scoring.Weights{Fuzz: 1}); m.Rows() != 0 {
		t.Fatalf("expected no rows, got %v", m)
	}
	m := b.Build([]string{"a", "b"}, nil, scoring.Weights{Fuzz: 1, Distance: 0.1})
	if m.Rows() != 2 || m.Cols() != 0 {
		t.Fatalf("matrix shape = %dx%d, want 2x0", m.Rows(), m.Cols())
	}
}

func TestBuildIsIndependentOfWorkers(t *testing.T) {
	seq1 := []string{"the cat sat", "on the mat", "and then it slept", "quietly"}
	seq2 := []string{"the cat sat on", "the mat", "then slept", "very quietly"}
	w := scoring.Weights{Fuzz: 1, Cosine: 0.5, Distance: 0.05}

	want := scoring.NewBuilder(scoring.WithWorkers(1)).Build(seq1, seq2, w)
	got := scoring.NewBuilder(scoring.WithWorkers(8)).Build(seq1, seq2, w)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("worker count changed the matrix (-1 worker +8 workers):\n%s", diff)
	}
}

func TestApplyDistanceIdentityUnchanged(t *testing.T) {
	identity := scoring.Matrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	got := scoring.ApplyDistance(identity, 1.0)
	if diff := cmp.Diff(identity, got); diff != "" {
		t.Fatalf("identity changed (-want +got):\n%s", diff)
	}
}

func TestApplyDistanceChangesAntiDiagonal(t *testing.T) {
	anti := scoring.Matrix{
		{0, 0, 1},
		{0, 1, 0},
		{1, 0, 0},
	}
	got := scoring.ApplyDistance(anti, 1.0)
	if cmp.Equal(anti, got) {
		t.Fatal("expected anti-diagonal matrix to change")
	}
	if anti[0][2] != 1 {
		t.Fatal("ApplyDistance must not modify its input")
	}
}

func TestApplyDistanceTracksUpdatedArgmax(t *testing.T) {
	m := scoring.Matrix{
		{0.5, 0.9},
		{0.5, 0.5},
	}
	got := scoring.ApplyDistance(m, 0.5)
	// Row 0: expected 0, so [0.5, 0.4]; argmax 0 moves expected to 1.
	// Row 1: [0.0, 0.5].
	want := scoring.Matrix{{0.5, 0.4}, {0, 0.5}}
	if diff := cmp.Diff(want, got, cmpApprox()); diff != "" {
		t.Fatalf("ApplyDistance mismatch (-want +got):\n%s", diff)
	}
}

func TestRowArgmaxPrefersFirst(t *testing.T) {
	m := scoring.Matrix{{0.3, 0.7, 0.7}, {0, 0, 0}, {}}
	for i, want := range []int{1, 0, -1} {
		if got := m.RowArgmax(i); got != want {
			t.Errorf("RowArgmax(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestCosineMatrix(t *testing.T) {
	m := scoring.CosineMatrix(
		[]string{"Alignment of sentences", "completely different words"},
		[]string{"sentences alignment", "nothing shared here"},
	)
	if m[0][0] <= 0.5 {
		t.Fatalf("expected high cosine for reordered words, got %v", m[0][0])
	}
	if m[0][1] != 0 || m[1][0] != 0 {
		t.Fatalf("expected zero cosine for disjoint vocabularies, got %v", m)
	}
}

func TestParseWeights(t *testing.T) {
	w, err := scoring.ParseWeights(map[string]float64{"fuzz": 1, "distance": 0.05})
	if err != nil {
		t.Fatalf("ParseWeights returned error: %v", err)
	}
	if diff := cmp.Diff(scoring.Weights{Fuzz: 1, Distance: 0.05}, w); diff != "" {
		t.Fatalf("ParseWeights mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]float64{"fuzz": 1, "distance": 0.05}, w.Map()); diff != "" {
		t.Fatalf("Map mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWeightsRejectsUnknownStrategies(t *testing.T) {
	_, err := scoring.ParseWeights(map[string]float64{"fuzz": 1, "semantic": 1, "bleu": 0.5})
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !scoring.IsConfigError(err) || !errors.Is(err, scoring.ErrConfiguration) {
		t.Fatalf("expected ConfigError, got %T: %v", err, err)
	}
	var cfgErr *scoring.ConfigError
	errors.As(err, &cfgErr)
	if diff := cmp.Diff([]string{"bleu", "semantic"}, cfgErr.Unknown); diff != "" {
		t.Fatalf("unknown keys mismatch (-want +got):\n%s", diff)
	}
	if cfgErr.ErrorKind() != "configuration" {
		t.Fatalf("ErrorKind = %q", cfgErr.ErrorKind())
	}
	for _, name := range []string{"fuzz", "cosine", "distance"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("expected accepted strategy %q in %q", name, err.Error())
		}
	}
}

func TestBuildFromMapFailsBeforeScoring(t *testing.T) {
	var calls atomic.Int64
	b := scoring.NewBuilder(scoring.WithSimilarity(func(a, c string) float64 {
		calls.Add(1)
		return 0
	}))
	if _, err := b.BuildFromMap([]string{"a"}, []string{"b"}, map[string]float64{"fuzz": 1, "nope": 1}); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	if calls.Load() != 0 {
		t.Fatalf("scorer ran %d times before validation failed", calls.Load())
	}
}

func TestWeightsEmpty(t *testing.T) {
	if !(scoring.Weights{}).Empty() {
		t.Fatal("zero weights should be empty")
	}
	if (scoring.Weights{Distance: 0.1}).Empty() {
		t.Fatal("distance-only weights should not be empty")
	}
}

func TestScorePair(t *testing.T) {
	b := scoring.NewBuilder()
	if got := b.ScorePair("a b", "a b", scoring.Weights{Fuzz: 1}); got != 1 {
		t.Fatalf("ScorePair identical = %v, want 1", got)
	}
	if got := b.ScorePair("c d e f", "c d e f", scoring.Weights{Fuzz: 1, Distance: 1}); got != 1 {
		t.Fatalf("distance must not penalize a single cell, got %v", got)
	}
}

func cmpApprox() cmp.Option {
	return cmp.Comparer(func(a, b float64) bool {
		d := a - b
		return d < 1e-9 && d > -1e-9
	})
}
