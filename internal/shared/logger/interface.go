package logger

import (
	"log/slog"
)

// Interface is the logger handed to components. Methods take a message
// followed by alternating key/value pairs.
type Interface interface {
	// Named returns a child logger tagged with name. Nested names are
	// joined with a dot, so Named("http").Named("gate") logs "http.gate".
	Named(name string) Interface

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

type slogLogger struct {
	base   *slog.Logger
	name   string
	logger *slog.Logger
}

// NewLogger wraps the process logger installed by Init.
func NewLogger() Interface {
	return NewLoggerWithSlog(Get())
}

func NewLoggerWithSlog(slogLog *slog.Logger) Interface {
	return &slogLogger{base: slogLog, logger: slogLog}
}

// NewNopLogger returns a logger that discards everything. Used by tests.
func NewNopLogger() Interface {
	return NewLoggerWithSlog(slog.New(slog.DiscardHandler))
}

func (l *slogLogger) Named(name string) Interface {
	if l.name != "" {
		name = l.name + "." + name
	}
	return &slogLogger{
		base:   l.base,
		name:   name,
		logger: l.base.With("logger", name),
	}
}

func (l *slogLogger) Debugw(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *slogLogger) Infow(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *slogLogger) Warnw(msg string, keysAndValues ...any) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *slogLogger) Errorw(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}
