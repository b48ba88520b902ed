package lang

import "log/slog"

// Value is the result of evaluating an expression: rendered text plus a
// truth flag recording whether the value "exists".
//
// Truth is never rendered. It is set for literals, present metadata fields
// and successful comparisons, and cleared for missing fields and failed
// conditions.
type Value struct {
	Text  string
	Truth bool
}

// True returns a Value with the given text and Truth set.
func True(text string) Value { return Value{Text: text, Truth: true} }

// False returns a Value with the given text and Truth cleared.
func False(text string) Value { return Value{Text: text} }

// missing is the value of an unresolved field or scratch variable.
var missing = False("?")

// LogValue implements slog.LogValuer.
func (v Value) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("text", v.Text),
		slog.Bool("truth", v.Truth),
	)
}
