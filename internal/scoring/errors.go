package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration marks every error produced by invalid strategy weights.
var ErrConfiguration = errors.New("configuration error")

// ConfigError reports strategy names that are not recognized.
type ConfigError struct {
	Unknown  []string
	Accepted []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unknown strategies %s (accepted: %s)",
		strings.Join(e.Unknown, ", "), strings.Join(e.Accepted, ", "))
}

// ErrorKind classifies the failure for callers that map errors to exit codes.
func (e *ConfigError) ErrorKind() string { return "configuration" }

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// IsConfigError reports whether err carries a *ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
