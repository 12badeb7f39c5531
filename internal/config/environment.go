package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Environment selects how the storefront logs.
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// ParseEnvironment accepts APP_ENV in any case; "" means development.
func ParseEnvironment(v string) (Environment, error) {
	switch env := Environment(strings.ToLower(strings.TrimSpace(v))); env {
	case "":
		return Development, nil
	case Development, Testing, Production:
		return env, nil
	default:
		return "", fmt.Errorf("%w: unknown APP_ENV %q", ErrInvalidConfig, v)
	}
}

// LogLevel is the minimum level logged; Testing silences everything.
func (e Environment) LogLevel() zerolog.Level {
	switch e {
	case Production:
		return zerolog.InfoLevel
	case Testing:
		return zerolog.Disabled
	default:
		return zerolog.DebugLevel
	}
}

// HumanLogs reports whether logs go to a console writer instead of JSON.
func (e Environment) HumanLogs() bool {
	return e != Production && e != Testing
}
