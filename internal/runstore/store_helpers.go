package runstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const runColumns = "id, input_hash, created_at, source_name, target_name, source_units, target_units, seed_weights_json, improvement_weights_json, groups_json, elapsed_ms"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run             Run
		createdNanos    int64
		sourceName      sql.NullString
		targetName      sql.NullString
		seedJSON        string
		improvementJSON string
		groupsJSON      string
		elapsedMillis   int64
	)
	if err := scanner.Scan(
		&run.ID,
		&run.InputHash,
		&createdNanos,
		&sourceName,
		&targetName,
		&run.SourceUnits,
		&run.TargetUnits,
		&seedJSON,
		&improvementJSON,
		&groupsJSON,
		&elapsedMillis,
	); err != nil {
		return nil, err
	}

	run.CreatedAt = time.Unix(0, createdNanos).UTC()
	run.SourceName = sourceName.String
	run.TargetName = targetName.String
	run.Elapsed = time.Duration(elapsedMillis) * time.Millisecond
	if err := json.Unmarshal([]byte(seedJSON), &run.SeedWeights); err != nil {
		return nil, fmt.Errorf("decode seed weights: %w", err)
	}
	if err := json.Unmarshal([]byte(improvementJSON), &run.ImprovementWeights); err != nil {
		return nil, fmt.Errorf("decode improvement weights: %w", err)
	}
	if err := json.Unmarshal([]byte(groupsJSON), &run.Groups); err != nil {
		return nil, fmt.Errorf("decode groups: %w", err)
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nonNil(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}
