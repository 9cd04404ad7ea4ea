package logging

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger so handlers receive an explicit logger instead
// of relying on process-global logging state.
type Logger struct {
	*slog.Logger
}

// New creates a JSON logger writing to stdout at the specified level.
func New(level string) *Logger {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler)

	return &Logger{Logger: logger}
}

// Default returns a logger with default settings.
func Default() *Logger {
	return New("info")
}

// WithHandler tags every record with the Lambda handler name. Useful when
// several entrypoints share one log group.
func (l *Logger) WithHandler(name string) *Logger {
	return &Logger{Logger: l.Logger.With("handler", name)}
}
