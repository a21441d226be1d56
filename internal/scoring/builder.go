package scoring

import (
	"runtime"

	"github.com/carolinebinley/ml-learning-alignment/internal/textutil"
)

// SimilarityFunc scores two text units in [0, 1].
type SimilarityFunc func(a, b string) float64

// Builder computes similarity matrices. It holds no per-call state and is
// safe for concurrent use.
type Builder struct {
	similarity SimilarityFunc
	workers    int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithSimilarity overrides the fuzz strategy's pairwise scorer.
func WithSimilarity(fn SimilarityFunc) BuilderOption {
	return func(b *Builder) {
		if fn != nil {
			b.similarity = fn
		}
	}
}

// WithWorkers bounds the number of rows scored concurrently. Values below 1
// fall back to GOMAXPROCS.
func WithWorkers(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// NewBuilder returns a Builder using textutil.Ratio for the fuzz strategy.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		similarity: textutil.Ratio,
		workers:    runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Workers returns the concurrency bound.
func (b *Builder) Workers() int { return b.workers }

// Build returns the len(seq1) x len(seq2) matrix for w. Each enabled
// combination strategy contributes its matrix scaled by its weight; enabled
// adjustments then run over the sum.
func (b *Builder) Build(seq1, seq2 []string, w Weights) Matrix {
	acc := NewMatrix(len(seq1), len(seq2))
	for _, s := range Strategies() {
		weight := w.Of(s)
		if weight == 0 || s.IsAdjustment() {
			continue
		}
		addScaled(acc, b.combination(s, seq1, seq2), weight)
	}
	for _, s := range Strategies() {
		weight := w.Of(s)
		if weight == 0 || !s.IsAdjustment() {
			continue
		}
		acc = ApplyDistance(acc, weight)
	}
	return acc
}

// BuildFromMap validates raw weights and builds the matrix. Unknown strategy
// names fail before any scoring happens.
func (b *Builder) BuildFromMap(seq1, seq2 []string, raw map[string]float64) (Matrix, error) {
	w, err := ParseWeights(raw)
	if err != nil {
		return nil, err
	}
	return b.Build(seq1, seq2, w), nil
}

// ScorePair scores a single pair of units.
func (b *Builder) ScorePair(a, c string, w Weights) float64 {
	return b.Build([]string{a}, []string{c}, w)[0][0]
}

func (b *Builder) combination(s Strategy, seq1, seq2 []string) Matrix {
	switch s {
	case StrategyCosine:
		return cosineMatrix(seq1, seq2, b.workers)
	default:
		fn := b.similarity
		return pairMatrix(seq1, seq2, b.workers, func(i, j int) float64 {
			return fn(seq1[i], seq2[j])
		})
	}
}

func addScaled(dst, src Matrix, weight float64) {
	for i, row := range src {
		for j, v := range row {
			dst[i][j] += weight * v
		}
	}
}
