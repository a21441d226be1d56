package runstore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/carolinebinley/ml-learning-alignment/internal/align"
	"github.com/carolinebinley/ml-learning-alignment/internal/scoring"
)

// hashVersion changes whenever pipeline semantics change, invalidating
// cached results.
const hashVersion = "sentalign/v1"

// Run is one recorded alignment.
type Run struct {
	ID                 string              `json:"id"`
	InputHash          string              `json:"input_hash"`
	CreatedAt          time.Time           `json:"created_at"`
	SourceName         string              `json:"source_name,omitempty"`
	TargetName         string              `json:"target_name,omitempty"`
	SourceUnits        int                 `json:"source_units"`
	TargetUnits        int                 `json:"target_units"`
	SeedWeights        map[string]float64  `json:"seed_weights"`
	ImprovementWeights map[string]float64  `json:"improvement_weights"`
	Groups             []align.ScoredGroup `json:"groups"`
	Elapsed            time.Duration       `json:"elapsed"`
}

// InputHash returns a stable digest of everything that determines a run's
// output: both sequences and both weight sets. Disabled strategies do not
// affect the digest.
func InputHash(seq1, seq2 []string, seed, improvement scoring.Weights) string {
	payload := struct {
		Version     string             `json:"v"`
		Source      []string           `json:"s1"`
		Target      []string           `json:"s2"`
		Seed        map[string]float64 `json:"seed"`
		Improvement map[string]float64 `json:"improvement"`
	}{
		Version:     hashVersion,
		Source:      seq1,
		Target:      seq2,
		Seed:        seed.Map(),
		Improvement: improvement.Map(),
	}
	// Marshalling []string and map[string]float64 cannot fail; map keys are
	// emitted sorted.
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
