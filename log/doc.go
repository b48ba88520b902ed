// Package log is a small structured logger over [log/slog], used to trace
// parsing and rendering of title format programs.
//
// A [Logger] is an immutable value configured once by functional options
// passed to [Make]. [Logger.Wrap] and [Logger.With] derive new loggers and
// leave the receiver alone. Loggers are safe for concurrent use, and the
// zero Logger discards everything.
//
//	logger := log.Make(os.Stderr)
//	logger.Info(ctx, "program parsed", slog.Int("expr_count", 3))
//	logger.Error(ctx, "render failed", slog.Any("error", err))
//
// # Options
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// Attributes bound with [Logger.With] appear on every later record:
//
//	logger = logger.With(slog.String("source", "[%artist% - ]%title%"))
//	logger.Info(ctx, "rendering") // includes source=...
//
// # Contexts
//
// Every logging method takes the [context.Context] of the operation being
// logged and passes it to the handler. There are no context-free variants.
//
// # Default Logger
//
// Package-level functions such as [Info] and [Debug] write through a
// default logger, which writes pretty JSON to [os.Stderr] until replaced
// with [SetDefault] or reconfigured with [Config]. Programs built by the
// lang package log through it unless given a logger of their own.
//
// # Levels and Formats
//
// [LevelTrace] sits below slog's debug level and carries per-call records.
// Records are written as [FormatJSON] (the default) or [FormatText]; with
// [WithPretty] both are styled with lipgloss when the output is a terminal.
package log
