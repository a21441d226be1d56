package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
)

// Validate ensures the configuration is usable. Unknown strategy names are
// reported as *scoring.ConfigError wrapped with the offending table.
func (c *Config) Validate() error {
	if err := c.validateWeights(); err != nil {
		return err
	}
	if c.Pipeline.Workers < 0 {
		return errors.New("pipeline.workers must be >= 0")
	}
	if !slices.Contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.Logging.Level)
	}
	if !slices.Contains(validLogFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format must be one of %s, got %q", strings.Join(validLogFormats, ", "), c.Logging.Format)
	}
	if c.Runs.Enabled && strings.TrimSpace(c.Runs.Dir) == "" {
		return errors.New("runs.dir must be set when runs.enabled is true")
	}
	if c.Runs.RetentionDays < 0 {
		return errors.New("runs.retention_days must be >= 0")
	}
	return nil
}

func (c *Config) validateWeights() error {
	if _, _, err := c.StrategyWeights(); err != nil {
		return err
	}
	if err := ensureNonNegative("seed_weights", c.SeedWeights); err != nil {
		return err
	}
	return ensureNonNegative("improvement_weights", c.ImprovementWeights)
}

func ensureNonNegative(table string, weights map[string]float64) error {
	for _, name := range slices.Sorted(maps.Keys(weights)) {
		if weights[name] < 0 {
			return fmt.Errorf("%s.%s must be >= 0", table, name)
		}
	}
	return nil
}
