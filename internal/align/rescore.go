package align

import (
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/carolinebinley/ml-learning-alignment/internal/scoring"
	"github.com/carolinebinley/ml-learning-alignment/internal/span"
)

// JoinSeparator joins the units of a span before rescoring.
const JoinSeparator = " "

// Rescore returns scored copies of alignments, in input order. Each side's
// units are joined with JoinSeparator and the pair is scored with w as a
// single-cell matrix.
func Rescore(alignments []span.Alignment, seq1, seq2 []string, b *scoring.Builder, w scoring.Weights) []span.Alignment {
	out := make([]span.Alignment, len(alignments))
	var g errgroup.Group
	g.SetLimit(max(b.Workers(), 1))
	for i, a := range alignments {
		g.Go(func() error {
			source := joinSpan(seq1, a.Source)
			target := joinSpan(seq2, a.Target)
			out[i] = a.WithScore(b.ScorePair(source, target, w))
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func joinSpan(seq []string, s span.Span) string {
	lo, hi := s.Clamp(len(seq))
	return strings.Join(seq[lo:hi], JoinSeparator)
}
