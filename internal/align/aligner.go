package align

import (
	"context"
	"log/slog"
	"time"

	"github.com/carolinebinley/ml-learning-alignment/internal/logging"
	"github.com/carolinebinley/ml-learning-alignment/internal/scoring"
	"github.com/carolinebinley/ml-learning-alignment/internal/span"
)

// Options configures an Aligner.
type Options struct {
	// SeedWeights build the unit-by-unit matrix. Empty weights produce no
	// alignments.
	SeedWeights scoring.Weights
	// ImprovementWeights rescore seeds and gap candidates. Empty weights
	// return the seeds without expansion.
	ImprovementWeights scoring.Weights
	// Similarity overrides the fuzz strategy scorer.
	Similarity scoring.SimilarityFunc
	// Workers bounds concurrent scoring; 0 uses GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// Aligner runs the alignment pipeline. It is safe for concurrent use.
type Aligner struct {
	builder     *scoring.Builder
	seed        scoring.Weights
	improvement scoring.Weights
	logger      *slog.Logger
}

// New constructs an Aligner.
func New(opts Options) *Aligner {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Aligner{
		builder: scoring.NewBuilder(
			scoring.WithSimilarity(opts.Similarity),
			scoring.WithWorkers(opts.Workers),
		),
		seed:        opts.SeedWeights,
		improvement: opts.ImprovementWeights,
		logger:      logging.NewComponentLogger(logger, "align"),
	}
}

// AlignSpans returns the selected alignments in acceptance order (highest
// score first). The context is checked between stages.
func (a *Aligner) AlignSpans(ctx context.Context, seq1, seq2 []string) ([]span.Alignment, error) {
	logger := logging.WithContext(ctx, a.logger)
	started := time.Now()

	if a.seed.Empty() || len(seq1) == 0 || len(seq2) == 0 {
		logger.Debug("nothing to align",
			logging.Bool("seed_weights_empty", a.seed.Empty()),
			logging.Int("source_units", len(seq1)),
			logging.Int("target_units", len(seq2)),
		)
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matrix := a.builder.Build(seq1, seq2, a.seed)
	seeds := SelectSeeds(matrix)
	logger.Debug("seeds selected",
		logging.String(logging.FieldStage, "seed"),
		logging.Int("rows", matrix.Rows()),
		logging.Int("cols", matrix.Cols()),
		logging.Int("seeds", len(seeds)),
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if a.improvement.Empty() {
		a.logSummary(logger, seeds, len(seeds), started)
		return seeds, nil
	}

	candidates := ExpandGaps(seeds, len(seq1), len(seq2))
	logger.Debug("gap candidates proposed",
		logging.String(logging.FieldStage, "expand"),
		logging.Int("candidates", len(candidates)),
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Seeds lead so that a tie with a wider candidate keeps the seed.
	pool := make([]span.Alignment, 0, len(seeds)+len(candidates))
	pool = append(pool, seeds...)
	pool = append(pool, candidates...)
	scored := Rescore(pool, seq1, seq2, a.builder, a.improvement)
	logger.Debug("alignments rescored",
		logging.String(logging.FieldStage, "rescore"),
		logging.Int("alignments", len(scored)),
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selected := Resolve(scored)
	logger.Debug("conflicts resolved",
		logging.String(logging.FieldStage, "resolve"),
		logging.Int("selected", len(selected)),
		logging.Int("discarded", len(scored)-len(selected)),
	)
	a.logSummary(logger, selected, len(scored), started)
	return selected, nil
}

// Align runs the pipeline and projects the result onto the input units.
func (a *Aligner) Align(ctx context.Context, seq1, seq2 []string) ([]Group, error) {
	alignments, err := a.AlignSpans(ctx, seq1, seq2)
	if err != nil {
		return nil, err
	}
	return Project(alignments, seq1, seq2), nil
}

func (a *Aligner) logSummary(logger *slog.Logger, selected []span.Alignment, considered int, started time.Time) {
	logger.Info("alignment complete",
		logging.Int("groups", len(selected)),
		logging.Int("considered", considered),
		logging.Float64("mean_score", MeanScore(selected)),
		logging.Duration("elapsed", time.Since(started)),
	)
}

// MeanScore averages the scores of the scored alignments, or returns 0 when
// none carry a score.
func MeanScore(alignments []span.Alignment) float64 {
	var sum float64
	var n int
	for _, al := range alignments {
		if score, ok := al.Score(); ok {
			sum += score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Sequences aligns seq1 and seq2 with weights given as strategy-name maps.
// Unknown strategy names fail with a *scoring.ConfigError before any scoring.
func Sequences(ctx context.Context, seq1, seq2 []string, seedWeights, improvementWeights map[string]float64) ([]Group, error) {
	seed, err := scoring.ParseWeights(seedWeights)
	if err != nil {
		return nil, err
	}
	improvement, err := scoring.ParseWeights(improvementWeights)
	if err != nil {
		return nil, err
	}
	return New(Options{SeedWeights: seed, ImprovementWeights: improvement}).Align(ctx, seq1, seq2)
}
