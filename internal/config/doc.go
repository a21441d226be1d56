// Package config loads, normalizes, and validates sentalign configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SENTALIGN_LOG_LEVEL and
// SENTALIGN_RUNS_DIR environment overrides. Strategy weight tables are kept
// as name-to-weight maps so unknown strategy names surface as configuration
// errors instead of being silently dropped by the decoder.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
