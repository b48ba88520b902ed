package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Kinds of error returned by the package, matched with [errors.Is].
var (
	ErrParse             = NewError("parse error")
	ErrUndefinedFunction = NewError("undefined function")

	// ErrInvalidArgs reports a call whose argument count the function does
	// not accept. Its "count" attribute is the number of arguments passed:
	// an empty list, $f(), passes none and reports 0.
	ErrInvalidArgs = NewError("invalid native function arguments")

	ErrOutOfRange       = NewError("value out of range")
	ErrMaxDepthExceeded = NewError("maximum nesting depth exceeded")
	ErrInvalidExpr      = NewError("invalid expression")
	ErrReadInput        = NewError("failed to read input")
	ErrDecodeMetadata   = NewError("failed to decode metadata")
)

// Error is the error type of the package. It carries a kind message, an
// optional cause, slog attributes for structured logging and, for parse
// errors, a source position. Errors are immutable: Wrap, With and
// WithPosition return modified copies.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
	pos   *Position
}

// Position identifies a location in format string source.
// Line and Column are 1-based; Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// NewError returns an error of a new kind named msg.
func NewError(msg string) *Error { return &Error{msg: msg} }

// WrapError returns the first *Error in err's chain, or a new Error with
// err as its cause.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

// Error formats as "msg at line L, column C: cause", leaving out the
// parts that are not set.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.msg)

	if e.pos != nil && e.msg != "" {
		fmt.Fprintf(&sb, " at line %d, column %d", e.pos.Line, e.pos.Column)
	}

	if e.err != nil {
		if sb.Len() > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(e.err.Error())
	}

	return sb.String()
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same kind.
// Errors derived from a sentinel with Wrap, With or WithPosition match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// LogValue groups the kind, cause and position with the error's own
// attributes.
func (e *Error) LogValue() slog.Value {
	var group []slog.Attr

	if e.msg != "" {
		group = append(group, slog.String("error", e.msg))
	}

	if e.err != nil {
		group = append(group, slog.String("cause", e.err.Error()))
	}

	if e.pos != nil {
		group = append(group, slog.String("position", e.pos.String()))
	}

	return slog.GroupValue(slices.Concat(group, e.attrs)...)
}

// Attr returns the most recently added attribute named key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range slices.Backward(e.attrs) {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

// Position returns the source position of a parse error.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// Wrap returns a copy of the error caused by err.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// With returns a copy of the error with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = slices.Concat(e.attrs, attrs)

	return &c
}

// WithPosition returns a copy of the error located at pos.
func (e *Error) WithPosition(pos Position) *Error {
	c := *e
	c.pos = &pos

	return &c
}

func undefinedFunction(name, suggestion string) *Error {
	cause := "$" + name
	attrs := []slog.Attr{slog.String("function", name)}

	if suggestion != "" {
		cause += " (did you mean $" + suggestion + "?)"
		attrs = append(attrs, slog.String("suggestion", suggestion))
	}

	return ErrUndefinedFunction.Wrap(errors.New(cause)).With(attrs...)
}

func invalidArgs(name string, count int) *Error {
	return ErrInvalidArgs.
		Wrap(fmt.Errorf("$%s called with %d arguments", name, count)).
		With(slog.String("function", name), slog.Int("count", count))
}

func outOfRange(name string, cause error) *Error {
	return ErrOutOfRange.Wrap(cause).With(slog.String("function", name))
}
