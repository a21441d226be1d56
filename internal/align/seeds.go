package align

import (
	"github.com/carolinebinley/ml-learning-alignment/internal/scoring"
	"github.com/carolinebinley/ml-learning-alignment/internal/span"
)

// SelectSeeds picks one alignment per matrix row: row i paired with its
// highest-scoring column, scored with that cell. Ties go to the lowest
// column. Rows without columns yield nothing.
func SelectSeeds(m scoring.Matrix) []span.Alignment {
	seeds := make([]span.Alignment, 0, m.Rows())
	for i, row := range m {
		j := m.RowArgmax(i)
		if j < 0 {
			continue
		}
		seeds = append(seeds, span.NewAlignment(span.Single(i), span.Single(j)).WithScore(row[j]))
	}
	return seeds
}
