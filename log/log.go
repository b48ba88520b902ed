package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger writes leveled, structured records through a [slog.Handler] built
// from its configuration. Every logging method takes the context of the
// operation being logged.
//
// A Logger is an immutable value and safe for concurrent use. The zero
// value discards everything, so a Logger can sit in an options struct
// without a nil check at every call site.
type Logger struct {
	sl  *slog.Logger
	cfg config
}

// Make creates a new [Logger] that writes to w.
// The default configuration is [DefaultFormat], [DefaultLevel],
// [DefaultTimeLayout], [DefaultPretty], and caller info disabled.
//
// Optional configuration can be applied using functional options like
// [WithFormat], [WithLevel], [WithTimeLayout], and [WithCaller].
func Make(w io.Writer, opts ...Option) Logger {
	return build(makeConfig(w, opts...))
}

func build(cfg config) Logger {
	return Logger{sl: slog.New(cfg.handler()), cfg: cfg}
}

// Wrap returns a new [Logger] built from l's configuration with opts applied
// on top. Wrapping the zero Logger is the same as Make(nil, opts...).
//
// Attributes added with [Logger.With] are not carried over, since the
// handler is rebuilt from scratch.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.sl == nil {
		return Make(nil, opts...)
	}

	return build(apply(l.cfg, opts...))
}

// With returns a new [Logger] that adds attrs to every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.sl == nil || len(attrs) == 0 {
		return l
	}

	return Logger{sl: slog.New(l.sl.Handler().WithAttrs(attrs)), cfg: l.cfg}
}

// Slog returns the underlying [slog.Logger], or nil for the zero Logger.
func (l Logger) Slog() *slog.Logger { return l.sl }

// Level returns the minimum level written.
func (l Logger) Level() Level {
	if l.sl == nil {
		return DefaultLevel
	}

	return l.cfg.level
}

// Format returns the output format.
func (l Logger) Format() Format {
	if l.sl == nil {
		return DefaultFormat
	}

	return l.cfg.format
}

// Enabled reports whether a record at level would be written.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	return l.sl != nil && l.sl.Enabled(ctx, slog.Level(level))
}

// Log writes a record at level.
func (l Logger) Log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	l.emit(ctx, level, msg, attrs)
}

// Trace writes a record at [LevelTrace].
func (l Logger) Trace(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelTrace, msg, attrs)
}

// Debug writes a record at [LevelDebug].
func (l Logger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelDebug, msg, attrs)
}

// Info writes a record at [LevelInfo].
func (l Logger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelInfo, msg, attrs)
}

// Warn writes a record at [LevelWarn].
func (l Logger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelWarn, msg, attrs)
}

// Error writes a record at [LevelError].
func (l Logger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelError, msg, attrs)
}

// emit must be called directly by an exported logging function, whose
// caller is recorded as the source of the record.
func (l Logger) emit(
	ctx context.Context,
	level Level,
	msg string,
	attrs []slog.Attr,
) {
	if !l.Enabled(ctx, level) {
		return
	}

	var pc uintptr

	if l.cfg.caller {
		var pcs [1]uintptr
		// runtime.Callers, emit, exported function
		runtime.Callers(3, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pc)
	r.AddAttrs(attrs...)
	_ = l.sl.Handler().Handle(ctx, r)
}
