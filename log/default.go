package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

var std atomic.Pointer[Logger]

func init() {
	l := Make(os.Stderr)
	std.Store(&l)
}

// Default returns the package-level logger. Until replaced it writes pretty
// JSON at [LevelInfo] to [os.Stderr].
func Default() Logger { return *std.Load() }

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) { std.Store(&l) }

// Config rebuilds the package-level logger with opts applied on top of its
// current configuration.
func Config(opts ...Option) { SetDefault(Default().Wrap(opts...)) }

// With derives a logger from the package-level logger.
func With(attrs ...slog.Attr) Logger { return Default().With(attrs...) }

// Log writes a record at level through the package-level logger.
func Log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	Default().emit(ctx, level, msg, attrs)
}

// Trace writes a record at [LevelTrace] through the package-level logger.
func Trace(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().emit(ctx, LevelTrace, msg, attrs)
}

// Debug writes a record at [LevelDebug] through the package-level logger.
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().emit(ctx, LevelDebug, msg, attrs)
}

// Info writes a record at [LevelInfo] through the package-level logger.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().emit(ctx, LevelInfo, msg, attrs)
}

// Warn writes a record at [LevelWarn] through the package-level logger.
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().emit(ctx, LevelWarn, msg, attrs)
}

// Error writes a record at [LevelError] through the package-level logger.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().emit(ctx, LevelError, msg, attrs)
}
