package config

import "maps"

const (
	defaultConfigPath       = "~/.config/sentalign/config.toml"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultRunRetentionDays = 30
)

var (
	defaultSeedWeights        = map[string]float64{"fuzz": 1, "distance": 0.05}
	defaultImprovementWeights = map[string]float64{"fuzz": 1}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		SeedWeights:        maps.Clone(defaultSeedWeights),
		ImprovementWeights: maps.Clone(defaultImprovementWeights),
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Runs: Runs{
			Enabled:       true,
			Dir:           defaultRunsDir(),
			RetentionDays: defaultRunRetentionDays,
		},
	}
}
