package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/carolinebinley/ml-learning-alignment/internal/scoring"
)

//go:embed sample_config.toml
var sampleConfig string

// Pipeline contains execution settings for the alignment pipeline.
type Pipeline struct {
	// Workers bounds concurrent matrix rows and rescoring. 0 means GOMAXPROCS.
	Workers int `toml:"workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// Dir receives sentalign.log when set; logs always go to stderr.
	Dir string `toml:"dir"`
}

// Runs contains configuration for the run history store.
type Runs struct {
	Enabled       bool   `toml:"enabled"`
	Dir           string `toml:"dir"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for sentalign.
//
// Configuration sections:
//   - SeedWeights: strategy weights for the initial similarity matrix
//   - ImprovementWeights: strategy weights for rescoring gap candidates
//   - Pipeline: concurrency
//   - Logging: log format, level, and optional file directory
//   - Runs: run history and result cache
type Config struct {
	SeedWeights        map[string]float64 `toml:"seed_weights"`
	ImprovementWeights map[string]float64 `toml:"improvement_weights"`
	Pipeline           Pipeline           `toml:"pipeline"`
	Logging            Logging            `toml:"logging"`
	Runs               Runs               `toml:"runs"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// A weights table in the file replaces the default table instead of
		// merging into it; normalize restores defaults for absent tables.
		cfg.SeedWeights = nil
		cfg.ImprovementWeights = nil

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sentalign.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and run store directories when enabled.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Logging.Dir) != "" {
		if err := os.MkdirAll(c.Logging.Dir, 0o755); err != nil {
			return fmt.Errorf("create log directory %q: %w", c.Logging.Dir, err)
		}
	}
	if c.Runs.Enabled && strings.TrimSpace(c.Runs.Dir) != "" {
		if err := os.MkdirAll(c.Runs.Dir, 0o755); err != nil {
			return fmt.Errorf("create runs directory %q: %w", c.Runs.Dir, err)
		}
	}
	return nil
}

// StrategyWeights returns the validated seed and improvement weights.
func (c *Config) StrategyWeights() (seed, improvement scoring.Weights, err error) {
	if seed, err = scoring.ParseWeights(c.SeedWeights); err != nil {
		return scoring.Weights{}, scoring.Weights{}, fmt.Errorf("seed_weights: %w", err)
	}
	if improvement, err = scoring.ParseWeights(c.ImprovementWeights); err != nil {
		return scoring.Weights{}, scoring.Weights{}, fmt.Errorf("improvement_weights: %w", err)
	}
	return seed, improvement, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultRunsDir() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "sentalign", "runs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/share/sentalign/runs"
	}
	return filepath.Join(home, ".local", "share", "sentalign", "runs")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
