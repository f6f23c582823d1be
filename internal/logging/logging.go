// Package logging builds the logr.Logger used across simnorm.
package logging

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V(...).
const (
	DEBUG = 1
	TRACE = 2
)

// Level names accepted by NewLogger.
const (
	LevelError = "error"
	LevelInfo  = "info"
	LevelDebug = "debug"
	LevelTrace = "trace"
)

// ParseLevel maps a level name to a zap level. logr verbosity V(n) is zap level -n.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case LevelError:
		return zapcore.ErrorLevel, nil
	case "", LevelInfo:
		return zapcore.InfoLevel, nil
	case LevelDebug:
		return zapcore.Level(-DEBUG), nil
	case LevelTrace:
		return zapcore.Level(-TRACE), nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

// NewLogger returns a JSON production logger writing to stderr at the given level.
func NewLogger(level string) (logr.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil
	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(zl), nil
}

// NewTestLogger returns a console logger at TRACE for test suites.
func NewTestLogger() logr.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-TRACE))
	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(zl)
}
