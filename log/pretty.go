package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers. Styles are bound to
// a renderer for the handler's writer, so colors are dropped automatically
// when the writer is not a terminal.
type palette struct {
	key   lipgloss.Style
	str   lipgloss.Style
	num   lipgloss.Style
	yes   lipgloss.Style
	no    lipgloss.Style
	dur   lipgloss.Style
	time  lipgloss.Style
	null  lipgloss.Style
	trace lipgloss.Style
	debug lipgloss.Style
	info  lipgloss.Style
	warn  lipgloss.Style
	fatal lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		dur:   fg("5"),
		time:  fg("4"),
		null:  fg("8"),
		trace: fg("8").Bold(true),
		debug: fg("4").Bold(true),
		info:  fg("2").Bold(true),
		warn:  fg("3").Bold(true),
		fatal: fg("1").Bold(true),
	}
}

func (p palette) level(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return p.fatal
	case level >= slog.LevelWarn:
		return p.warn
	case level >= slog.LevelInfo:
		return p.info
	case level >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyBase carries the state shared by both pretty handlers.
type prettyBase struct {
	opts   slog.HandlerOptions
	style  palette
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr // preformatted by WithAttrs, keys already qualified
	groups []string
}

func newPrettyBase(w io.Writer, opts *slog.HandlerOptions) prettyBase {
	return prettyBase{
		opts:  *opts,
		style: newPalette(w),
		mu:    &sync.Mutex{},
		w:     w,
	}
}

func (b prettyBase) enabled(level slog.Level) bool {
	minLevel := slog.LevelInfo
	if b.opts.Level != nil {
		minLevel = b.opts.Level.Level()
	}

	return level >= minLevel
}

// withAttrs returns a copy of b holding attrs qualified by the open groups.
func (b prettyBase) withAttrs(attrs []slog.Attr) prettyBase {
	merged := make([]slog.Attr, 0, len(b.attrs)+len(attrs))
	merged = append(merged, b.attrs...)

	for _, a := range attrs {
		merged = append(merged, b.qualify(a)...)
	}

	b.attrs = merged

	return b
}

func (b prettyBase) withGroup(name string) prettyBase {
	if name == "" {
		return b
	}

	b.groups = append(b.groups[:len(b.groups):len(b.groups)], name)

	return b
}

// qualify resolves a and flattens any group value into dotted keys prefixed
// by the open groups. Empty attrs are dropped.
func (b prettyBase) qualify(a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return nil
	}

	prefix := strings.Join(b.groups, ".")

	return flatten(prefix, a)
}

func flatten(prefix string, a slog.Attr) []slog.Attr {
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() != slog.KindGroup {
		return []slog.Attr{{Key: key, Value: a.Value}}
	}

	if a.Key == "" {
		key = prefix
	}

	var out []slog.Attr
	for _, ga := range a.Value.Group() {
		ga.Value = ga.Value.Resolve()
		out = append(out, flatten(key, ga)...)
	}

	return out
}

// replace applies the configured ReplaceAttr to a builtin attribute.
func (b prettyBase) replace(a slog.Attr) slog.Attr {
	if b.opts.ReplaceAttr == nil {
		return a
	}

	return b.opts.ReplaceAttr(nil, a)
}

// record collects the attributes of r in output order: time, level, source,
// message, then handler and record attributes.
func (b prettyBase) record(r slog.Record) []slog.Attr {
	var out []slog.Attr

	add := func(a slog.Attr) {
		if !a.Equal(slog.Attr{}) {
			out = append(out, a)
		}
	}

	if !r.Time.IsZero() {
		add(b.replace(slog.Time(slog.TimeKey, r.Time)))
	}

	add(b.replace(slog.Any(slog.LevelKey, r.Level)))

	if b.opts.AddSource {
		if src := r.Source(); src != nil {
			add(slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	add(slog.String(slog.MessageKey, r.Message))

	out = append(out, b.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		out = append(out, b.qualify(a)...)

		return true
	})

	return out
}

func (b prettyBase) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.w.Write(buf.Bytes())

	return err
}

// render styles a value by kind. Level values arrive as strings once
// ReplaceAttr has run, so key is used to recognize them.
func (b prettyBase) render(key string, v slog.Value) string {
	s := b.style

	if key == slog.LevelKey {
		if level, ok := v.Any().(slog.Level); ok {
			return s.level(level).Render(Level(level).String())
		}

		return s.level(slog.Level(ParseLevel(v.String()))).Render(v.String())
	}

	switch v.Kind() {
	case slog.KindString:
		return s.str.Render(v.String())

	case slog.KindInt64:
		return s.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return s.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return s.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return s.yes.Render("true")
		}

		return s.no.Render("false")

	case slog.KindDuration:
		return s.dur.Render(v.Duration().String())

	case slog.KindTime:
		return s.time.Render(v.Time().String())

	case slog.KindAny:
		if v.Any() == nil {
			return s.null.Render("null")
		}

		if err, ok := v.Any().(error); ok {
			return s.no.Render(err.Error())
		}

		return s.str.Render(v.String())

	default:
		return s.str.Render(v.String())
	}
}

// prettyTextHandler implements a colorized key=value handler.
type prettyTextHandler struct{ prettyBase }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{newPrettyBase(w, opts)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for i, a := range h.record(r) {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.render(a.Key, a.Value))
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// prettyJSONHandler implements an indented, colorized JSON-like handler.
// Strings are written unquoted for readability; use FormatJSON without
// pretty printing for machine-readable output.
type prettyJSONHandler struct{ prettyBase }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyBase(w, opts)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{\n")

	for i, a := range h.record(r) {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteString(": ")
		buf.WriteString(h.render(a.Key, a.Value))
	}

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}
