// Package logging assembles structured slog loggers and formatting helpers used
// across sentalign.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with the run identifier and stage name. The package also provides a
// no-op logger for tests and library callers that do not want output.
//
// Records go to stderr by default; stdout is reserved for command output.
package logging
