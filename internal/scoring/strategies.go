package scoring

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/carolinebinley/ml-learning-alignment/internal/textutil"
)

// FuzzMatrix scores every (seq1[i], seq2[j]) pair with fn.
func FuzzMatrix(seq1, seq2 []string, fn SimilarityFunc) Matrix {
	return pairMatrix(seq1, seq2, runtime.GOMAXPROCS(0), func(i, j int) float64 {
		return fn(seq1[i], seq2[j])
	})
}

// CosineMatrix scores every pair by the cosine similarity of IDF-weighted
// token fingerprints. Document frequencies are taken over the units of both
// sequences.
func CosineMatrix(seq1, seq2 []string) Matrix {
	return cosineMatrix(seq1, seq2, runtime.GOMAXPROCS(0))
}

func cosineMatrix(seq1, seq2 []string, workers int) Matrix {
	corpus := textutil.NewCorpus()
	fp1 := make([]*textutil.Fingerprint, len(seq1))
	fp2 := make([]*textutil.Fingerprint, len(seq2))
	for i, text := range seq1 {
		fp1[i] = textutil.NewFingerprint(text)
		corpus.Add(fp1[i])
	}
	for j, text := range seq2 {
		fp2[j] = textutil.NewFingerprint(text)
		corpus.Add(fp2[j])
	}
	idf := corpus.IDF()
	for i := range fp1 {
		fp1[i] = fp1[i].WithIDF(idf)
	}
	for j := range fp2 {
		fp2[j] = fp2[j].WithIDF(idf)
	}
	return pairMatrix(seq1, seq2, workers, func(i, j int) float64 {
		return textutil.CosineSimilarity(fp1[i], fp2[j])
	})
}

// ApplyDistance returns a copy of m with a positional penalty applied. The
// expected column starts at 0; each cell loses weight*|j-expected| (floored
// at 0), and the expected column for the next row is one past the argmax of
// the adjusted row.
func ApplyDistance(m Matrix, weight float64) Matrix {
	out := m.Clone()
	expected := 0
	for i, row := range out {
		for j, v := range row {
			d := j - expected
			if d < 0 {
				d = -d
			}
			row[j] = max(v-weight*float64(d), 0)
		}
		expected = out.RowArgmax(i) + 1
	}
	return out
}

// pairMatrix fills a len(seq1) x len(seq2) matrix with score(i, j). Rows are
// computed concurrently; each goroutine writes only its own row.
func pairMatrix(seq1, seq2 []string, workers int, score func(i, j int) float64) Matrix {
	m := NewMatrix(len(seq1), len(seq2))
	if len(seq1) == 0 || len(seq2) == 0 {
		return m
	}
	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i := range m {
		g.Go(func() error {
			row := m[i]
			for j := range row {
				row[j] = score(i, j)
			}
			return nil
		})
	}
	_ = g.Wait()
	return m
}
