// Package log provides structured logging for machine learning operations.
//
// The package wraps Go's standard log/slog with a small, implementation
// agnostic Logger interface and a set of standard ML attribute keys (see
// attributes.go). Estimators obtain a named logger once per operation and
// emit shape/diagnostic records at debug level; hot per-element loops never
// log.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Logger defines the structured logging interface used across the toolkit.
// It is a strict subset of log/slog's surface so any slog handler can back it.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	Error(msg string, fields ...any)

	// With returns a child logger with the given fields pre-populated.
	With(fields ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, fields...) }
func (s *slogLogger) Error(msg string, fields ...any) { s.l.Error(msg, fields...) }

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

var (
	mu            sync.RWMutex
	defaultLogger Logger = &slogLogger{l: slog.Default()}
	levelVar      slog.LevelVar
)

// SetupLogger installs a JSON slog handler writing to stderr at the given
// level ("debug", "info", "warn", "error") as the package default.
func SetupLogger(loglevel string) {
	levelVar.Set(ToLogLevel(loglevel))
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: &levelVar})

	mu.Lock()
	defer mu.Unlock()
	defaultLogger = &slogLogger{l: slog.New(handler)}
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level: %s", level))
	}
}

// GetLogger returns the package default logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// GetLoggerWithName returns the default logger tagged with a component name.
//
// Example:
//
//	logger := log.GetLoggerWithName("decomposition.lda")
//	logger.Debug("fit complete", log.SamplesKey, n, log.FeaturesKey, d)
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// ErrAttr wraps an error for structured emission.
func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
