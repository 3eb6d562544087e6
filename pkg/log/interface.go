// Package log provides the structured logging interface used by the mDA estimators.
//
// The interface mirrors log/slog (key/value pairs, levels compatible with
// slog.Level) so that backends can be swapped. The default backend is zerolog;
// see zerolog.go. Estimators obtain a named logger with GetLoggerWithName and
// attach model context with With:
//
//	logger := log.GetLoggerWithName("mda").With(
//	    log.ModelNameKey, "MDA",
//	)
//	logger.Debug("scatter matrix computed",
//	    log.FeaturesKey, 1000,
//	    log.SamplesKey, 5,
//	)
package log

import (
	"context"
)

// Logger is the key/value logger the estimators write to. Its method set
// matches *slog.Logger closely enough that SlogLogger is a thin adapter.
type Logger interface {
	// Debug logs a debug-level message with optional key/value fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional key/value fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional key/value fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message. If the first field is an error it is
	// attached as the error of the record and the remaining fields are pairs.
	Error(msg string, fields ...any)

	// With returns a child logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a severity. Values line up with slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider hands out loggers that share one sink and level.
type LoggerProvider interface {
	// GetLogger returns the root logger.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel changes the minimum level. Whether loggers handed out earlier
	// follow is up to the provider.
	SetLevel(level Level)
}
