package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/carolinebinley/ml-learning-alignment/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Runs.Dir = filepath.Join(base, "runs")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.Pipeline.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithWeights replaces both weight tables on the test config.
func WithWeights(seed, improvement map[string]float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.SeedWeights = seed
		b.cfg.ImprovementWeights = improvement
	}
}

// WithRunsDisabled turns off the run store.
func WithRunsDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Runs.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Runs.Dir)
}
