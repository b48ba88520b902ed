package log

import (
	"iter"
	"log/slog"
	"strconv"
	"strings"
)

// Level is the minimum severity a [Logger] writes. It extends the slog
// levels with [LevelTrace], used for per-call evaluation records.
type Level slog.Level

const (
	LevelTrace = Level(slog.LevelDebug - 4)
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// DefaultLevel is the level of a Logger made without [WithLevel].
const DefaultLevel = LevelInfo

// namedLevels is ordered from least to most severe.
var namedLevels = [...]struct {
	level Level
	name  string
}{
	{LevelTrace, "trace"},
	{LevelDebug, "debug"},
	{LevelInfo, "info"},
	{LevelWarn, "warn"},
	{LevelError, "error"},
}

// String returns the lowercase name of a named level. Other levels use the
// slog form, e.g. "INFO+2".
func (l Level) String() string {
	for _, n := range namedLevels {
		if n.level == l {
			return n.name
		}
	}

	return slog.Level(l).String()
}

// Levels yields the names of the named levels, least severe first.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range namedLevels {
			if !yield(n.name) {
				return
			}
		}
	}
}

// ParseLevel returns the level named by s, ignoring case. Offsets such as
// "warn+2" are accepted as by [slog.Level.UnmarshalText]. Unknown names
// give [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)

	for _, n := range namedLevels {
		if strings.EqualFold(s, n.name) {
			return n.level
		}
	}

	var l slog.Level
	if l.UnmarshalText([]byte(s)) != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format selects the record encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the format of a Logger made without [WithFormat].
const DefaultFormat = FormatJSON

var formats = [...]Format{FormatJSON, FormatText}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	}

	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// Formats yields the names of the supported formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range formats {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format named by s, ignoring case and surrounding
// space. Unknown names give [DefaultFormat].
func ParseFormat(s string) Format {
	s = strings.TrimSpace(s)

	for _, f := range formats {
		if strings.EqualFold(s, f.String()) {
			return f
		}
	}

	return DefaultFormat
}
