// Package logging builds the structured logger shared by the server and CLI.
package logging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logr.Logger.V.
const (
	DEBUG = 1
	TRACE = 2
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ErrUnknownLevel is returned for a log level name that is not recognised.
var ErrUnknownLevel = errors.New("unknown log level")

// ParseLevel maps a level name to a zap level. logr verbosity n is zap level
// -n, so "debug" enables V(DEBUG) and "trace" enables V(TRACE).
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.Level(-DEBUG), nil
	case "trace":
		return zapcore.Level(-TRACE), nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownLevel)
	}
}

// NewLogger builds a zap-backed logr.Logger. format is FormatJSON (default)
// or FormatConsole.
func NewLogger(level, format string) (logr.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}

	cfg := zap.NewProductionConfig()
	if format == FormatConsole {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(zl), nil
}

// FromCore wraps an existing zap core, mainly for tests.
func FromCore(core zapcore.Core) logr.Logger {
	return zapr.NewLogger(zap.New(core))
}

// Audit records a domain event (comparison created, result pruned) under the
// "audit" logger name.
func Audit(log logr.Logger, event string, keysAndValues ...any) {
	log.WithName("audit").Info(event, keysAndValues...)
}
