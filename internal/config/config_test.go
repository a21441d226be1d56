package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"

	"github.com/carolinebinley/ml-learning-alignment/internal/config"
	"github.com/carolinebinley/ml-learning-alignment/internal/scoring"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("SENTALIGN_LOG_LEVEL", "")
	t.Setenv("SENTALIGN_RUNS_DIR", "")
	return home
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sentalign.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolateHome(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(home, ".config", "sentalign", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if diff := cmp.Diff(map[string]float64{"fuzz": 1, "distance": 0.05}, cfg.SeedWeights); diff != "" {
		t.Fatalf("seed weights mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]float64{"fuzz": 1}, cfg.ImprovementWeights); diff != "" {
		t.Fatalf("improvement weights mismatch (-want +got):\n%s", diff)
	}
	wantRuns := filepath.Join(home, ".local", "share", "sentalign", "runs")
	if cfg.Runs.Dir != wantRuns {
		t.Fatalf("unexpected runs dir: got %q want %q", cfg.Runs.Dir, wantRuns)
	}
	if !cfg.Runs.Enabled || cfg.Runs.RetentionDays != 30 {
		t.Fatalf("unexpected runs defaults: %+v", cfg.Runs)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" || cfg.Logging.Dir != "" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Runs.Dir); err != nil || !info.IsDir() {
		t.Fatalf("expected runs directory to exist: %v", err)
	}
}

func TestLoadCustomPathReplacesWeightTables(t *testing.T) {
	home := isolateHome(t)

	type payload struct {
		SeedWeights map[string]float64 `toml:"seed_weights"`
		Pipeline    struct {
			Workers int `toml:"workers"`
		} `toml:"pipeline"`
		Logging struct {
			Format string `toml:"format"`
			Dir    string `toml:"dir"`
		} `toml:"logging"`
	}
	custom := payload{SeedWeights: map[string]float64{"cosine": 0.5, "Fuzz": 1}}
	custom.Pipeline.Workers = 3
	custom.Logging.Format = "JSON"
	custom.Logging.Dir = "~/logs"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	configPath := writeConfig(t, string(data))

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if diff := cmp.Diff(map[string]float64{"cosine": 0.5, "fuzz": 1}, cfg.SeedWeights); diff != "" {
		t.Fatalf("seed weights should replace defaults (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]float64{"fuzz": 1}, cfg.ImprovementWeights); diff != "" {
		t.Fatalf("absent table should keep defaults (-want +got):\n%s", diff)
	}
	if cfg.Pipeline.Workers != 3 {
		t.Fatalf("expected 3 workers, got %d", cfg.Pipeline.Workers)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized json format, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Dir != filepath.Join(home, "logs") {
		t.Fatalf("expected expanded log dir, got %q", cfg.Logging.Dir)
	}

	seed, improvement, err := cfg.StrategyWeights()
	if err != nil {
		t.Fatalf("StrategyWeights returned error: %v", err)
	}
	if seed != (scoring.Weights{Fuzz: 1, Cosine: 0.5}) || improvement != (scoring.Weights{Fuzz: 1}) {
		t.Fatalf("unexpected typed weights: %+v %+v", seed, improvement)
	}
}

func TestLoadRejectsUnknownStrategy(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, "[improvement_weights]\nfuzz = 1.0\nsemantic = 0.5\n")

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected unknown strategy to fail validation")
	}
	if !scoring.IsConfigError(err) {
		t.Fatalf("expected scoring.ConfigError, got %T: %v", err, err)
	}
	for _, want := range []string{"improvement_weights", "semantic"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestLoadRejectsWeightKeysDifferingOnlyInCase(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, "[seed_weights]\nFuzz = 1.0\nfuzz = 0.5\n")

	for range 3 {
		_, _, _, err := config.Load(path)
		if err == nil {
			t.Fatal("expected case-insensitive duplicate keys to fail")
		}
		if !errors.Is(err, scoring.ErrConfiguration) {
			t.Fatalf("expected configuration error, got %v", err)
		}
		for _, want := range []string{"seed_weights", `"Fuzz"`, `"fuzz"`} {
			if !strings.Contains(err.Error(), want) {
				t.Fatalf("expected %q in %q", want, err.Error())
			}
		}
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, "[logging]\nformat = \"xml\"\n")

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"negative weight", func(c *config.Config) { c.SeedWeights["distance"] = -1 }, "seed_weights.distance"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"negative workers", func(c *config.Config) { c.Pipeline.Workers = -2 }, "pipeline.workers"},
		{"runs without dir", func(c *config.Config) { c.Runs.Dir = " " }, "runs.dir"},
		{"negative retention", func(c *config.Config) { c.Runs.RetentionDays = -1 }, "runs.retention_days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	home := isolateHome(t)
	t.Setenv("SENTALIGN_LOG_LEVEL", " DEBUG ")
	t.Setenv("SENTALIGN_RUNS_DIR", "~/elsewhere")
	path := writeConfig(t, "[logging]\nlevel = \"warn\"\n[runs]\ndir = \"/tmp/ignored\"\n")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level from env, got %q", cfg.Logging.Level)
	}
	if cfg.Runs.Dir != filepath.Join(home, "elsewhere") {
		t.Errorf("expected runs dir from env, got %q", cfg.Runs.Dir)
	}
}

func TestCreateSampleLoadsAsDefaults(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	for _, section := range []string{"[seed_weights]", "[improvement_weights]", "[logging]", "[runs]"} {
		if !strings.Contains(string(contents), section) {
			t.Errorf("sample config missing %s", section)
		}
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	defaults := config.Default()
	if diff := cmp.Diff(defaults.SeedWeights, cfg.SeedWeights); diff != "" {
		t.Errorf("sample seed weights differ from defaults (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(defaults.ImprovementWeights, cfg.ImprovementWeights); diff != "" {
		t.Errorf("sample improvement weights differ from defaults (-want +got):\n%s", diff)
	}
	if cfg.Runs.Dir != defaults.Runs.Dir {
		t.Errorf("sample runs dir %q differs from default %q", cfg.Runs.Dir, defaults.Runs.Dir)
	}
}

func TestDefaultReturnsIndependentMaps(t *testing.T) {
	a := config.Default()
	a.SeedWeights["fuzz"] = 42
	if b := config.Default(); b.SeedWeights["fuzz"] != 1 {
		t.Fatal("Default must not share weight maps between calls")
	}
}
