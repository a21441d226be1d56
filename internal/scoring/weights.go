package scoring

import (
	"fmt"
	"math"
	"slices"
)

// Strategy names one scoring component.
type Strategy string

const (
	// StrategyFuzz scores content with the builder's SimilarityFunc.
	StrategyFuzz Strategy = "fuzz"
	// StrategyCosine scores content with token cosine similarity.
	StrategyCosine Strategy = "cosine"
	// StrategyDistance penalizes cells far from the expected diagonal.
	StrategyDistance Strategy = "distance"
)

// Strategies lists every recognized strategy in run order: combinations
// first, then adjustments.
func Strategies() []Strategy {
	return []Strategy{StrategyFuzz, StrategyCosine, StrategyDistance}
}

// IsAdjustment reports whether the strategy rewrites the accumulated matrix
// rather than contributing its own.
func (s Strategy) IsAdjustment() bool {
	return s == StrategyDistance
}

// Weights holds one weight per strategy. A zero weight disables the strategy.
type Weights struct {
	Fuzz     float64
	Cosine   float64
	Distance float64
}

// ParseWeights converts a strategy-name map into Weights. Unrecognized names
// yield a *ConfigError listing them.
func ParseWeights(raw map[string]float64) (Weights, error) {
	var w Weights
	var unknown []string
	for name, value := range raw {
		switch Strategy(name) {
		case StrategyFuzz:
			w.Fuzz = value
		case StrategyCosine:
			w.Cosine = value
		case StrategyDistance:
			w.Distance = value
		default:
			unknown = append(unknown, name)
			continue
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return Weights{}, fmt.Errorf("%w: weight for %q must be finite", ErrConfiguration, name)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		accepted := make([]string, 0, len(Strategies()))
		for _, s := range Strategies() {
			accepted = append(accepted, string(s))
		}
		return Weights{}, &ConfigError{Unknown: unknown, Accepted: accepted}
	}
	return w, nil
}

// Empty reports whether every strategy is disabled.
func (w Weights) Empty() bool {
	return w.Fuzz == 0 && w.Cosine == 0 && w.Distance == 0
}

// Of returns the weight for s.
func (w Weights) Of(s Strategy) float64 {
	switch s {
	case StrategyFuzz:
		return w.Fuzz
	case StrategyCosine:
		return w.Cosine
	case StrategyDistance:
		return w.Distance
	}
	return 0
}

// Map returns the non-zero weights keyed by strategy name.
func (w Weights) Map() map[string]float64 {
	out := make(map[string]float64, 3)
	for _, s := range Strategies() {
		if v := w.Of(s); v != 0 {
			out[string(s)] = v
		}
	}
	return out
}
