package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	mdaerrors "github.com/YuminosukeSato/mda/pkg/errors"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = StacktraceKey
)

// SetupLogger configures the default log/slog logger to emit CloudLogging
// compatible JSON on stdout, and makes it the provider behind GetLogger so
// estimator records land in the same stream.
func SetupLogger(loglevel string) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}
	p := NewSlogProvider(os.Stdout, level)
	slog.SetDefault(p.base)
	SetProvider(p)
	return nil
}

// NewCloudLoggingHandler returns a JSON handler writing CloudLogging field
// names to w, wrapped in ErrFmtHandler. level may be a *slog.LevelVar.
func NewCloudLoggingHandler(w io.Writer, level slog.Leveler) slog.Handler {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr.Key = "severity"
			case slog.MessageKey:
				attr.Key = "message"
			case slog.SourceKey:
				attr.Key = "logging.googleapis.com/sourceLocation"
			}
			return attr
		},
	}
	return WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops))
}

// ToLogLevel parses a level name such as "debug" or "WARN".
func ToLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, mdaerrors.NewValidationError("loglevel",
			"must be one of debug, info, warn, error", level)
	}
}

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// SlogLogger implements Logger on top of a *slog.Logger.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps l.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// Debug implements Logger.Debug.
func (s *SlogLogger) Debug(msg string, fields ...any) {
	s.l.Log(context.Background(), slog.LevelDebug, msg, fields...)
}

// Info implements Logger.Info.
func (s *SlogLogger) Info(msg string, fields ...any) {
	s.l.Log(context.Background(), slog.LevelInfo, msg, fields...)
}

// Warn implements Logger.Warn.
func (s *SlogLogger) Warn(msg string, fields ...any) {
	s.l.Log(context.Background(), slog.LevelWarn, msg, fields...)
}

// Error implements Logger.Error. A leading error value becomes ErrAttr so
// ErrFmtHandler can extract its stack.
func (s *SlogLogger) Error(msg string, fields ...any) {
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			fields = append([]any{ErrAttr(err)}, fields[1:]...)
		}
	}
	s.l.Log(context.Background(), slog.LevelError, msg, fields...)
}

// With implements Logger.With.
func (s *SlogLogger) With(fields ...any) Logger {
	return &SlogLogger{l: s.l.With(fields...)}
}

// Enabled implements Logger.Enabled.
func (s *SlogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

// SlogProvider hands out slog-backed loggers sharing one handler. Its level
// is a slog.LevelVar, so SetLevel also affects loggers handed out earlier.
type SlogProvider struct {
	level *slog.LevelVar
	base  *slog.Logger
}

// NewSlogProvider creates a provider writing CloudLogging JSON to w.
func NewSlogProvider(w io.Writer, level slog.Level) *SlogProvider {
	lv := new(slog.LevelVar)
	lv.Set(level)
	return &SlogProvider{
		level: lv,
		base:  slog.New(NewCloudLoggingHandler(w, lv)),
	}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *SlogProvider) GetLogger() Logger {
	return NewSlogLogger(p.base)
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *SlogProvider) GetLoggerWithName(name string) Logger {
	return NewSlogLogger(p.base.With(ComponentKey, name))
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *SlogProvider) SetLevel(level Level) {
	p.level.Set(slog.Level(level))
}
