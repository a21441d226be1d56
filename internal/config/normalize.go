package config

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/carolinebinley/ml-learning-alignment/internal/scoring"
)

func (c *Config) normalize() error {
	if err := c.normalizeWeights(); err != nil {
		return err
	}
	if c.Pipeline.Workers < 0 {
		c.Pipeline.Workers = 0
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return c.normalizeRuns()
}

func (c *Config) normalizeWeights() error {
	if c.SeedWeights == nil {
		c.SeedWeights = maps.Clone(defaultSeedWeights)
	}
	if c.ImprovementWeights == nil {
		c.ImprovementWeights = maps.Clone(defaultImprovementWeights)
	}
	var err error
	if c.SeedWeights, err = lowerKeys("seed_weights", c.SeedWeights); err != nil {
		return err
	}
	c.ImprovementWeights, err = lowerKeys("improvement_weights", c.ImprovementWeights)
	return err
}

// lowerKeys folds strategy names to lower case. Keys that differ only in case
// are rejected.
func lowerKeys(table string, in map[string]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(in))
	seen := make(map[string]string, len(in))
	for _, k := range slices.Sorted(maps.Keys(in)) {
		name := strings.ToLower(strings.TrimSpace(k))
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%s: keys %q and %q name the same strategy: %w", table, prev, k, scoring.ErrConfiguration)
		}
		seen[name] = k
		out[name] = in[k]
	}
	return out, nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if value, ok := os.LookupEnv("SENTALIGN_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRuns() error {
	if value, ok := os.LookupEnv("SENTALIGN_RUNS_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Runs.Dir = value
	}
	if strings.TrimSpace(c.Runs.Dir) == "" {
		c.Runs.Dir = defaultRunsDir()
	}
	var err error
	if c.Runs.Dir, err = expandPath(strings.TrimSpace(c.Runs.Dir)); err != nil {
		return fmt.Errorf("runs.dir: %w", err)
	}
	if c.Runs.RetentionDays < 0 {
		c.Runs.RetentionDays = 0
	}
	return nil
}
