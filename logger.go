package interop

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with interop-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCategory adds a metric category field to the logger.
func (l *Logger) WithCategory(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("category", name),
	}
}

// WithRunFolder adds a run folder field to the logger.
func (l *Logger) WithRunFolder(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_folder", path),
	}
}

// LogRead logs the outcome of reading one metric file.
func (l *Logger) LogRead(ctx context.Context, file string, version uint8, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "read failed",
			"file", file,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "read completed",
			"file", file,
			"version", version,
			"records", records,
		)
	}
}

// LogCopy logs the outcome of a filtered category copy.
func (l *Logger) LogCopy(ctx context.Context, file string, kept, total int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "copy failed",
			"file", file,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "copy completed",
			"file", file,
			"kept", kept,
			"total", total,
		)
	}
}

// LogSkip logs a category that was skipped during a batch copy.
func (l *Logger) LogSkip(ctx context.Context, file, reason string) {
	l.WarnContext(ctx, "category skipped",
		"file", file,
		"reason", reason,
	)
}
