package lang

import (
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Kind indicates the kind of an expression node.
type Kind int

const (
	// KindLiteral is constant text.
	KindLiteral Kind = iota

	// KindVariable is a %field% reference resolved against metadata.
	KindVariable

	// KindConditional is a [...] section suppressed unless its body is true.
	KindConditional

	// KindFuncCall is a $name(...) builtin invocation.
	KindFuncCall
)

// String returns a string representation of the expression kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"

	case KindVariable:
		return "Variable"

	case KindConditional:
		return "Conditional"

	case KindFuncCall:
		return "FuncCall"

	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Expr is a node of a parsed format string.
//
// Which fields are meaningful depends on Kind:
//
//	KindLiteral      Text is the decoded literal text
//	KindVariable     Text is the field name
//	KindConditional  Body holds the conditional's expressions
//	KindFuncCall     Text is the function name, Args one sequence per argument
//
// An Expr is never modified after parsing.
type Expr struct {
	Kind Kind
	Text string
	Body []*Expr
	Args [][]*Expr
}

// Children returns an iterator over the direct child sequences of the
// expression: the body of a conditional, or each argument of a call.
func (x *Expr) Children() iter.Seq[[]*Expr] {
	return func(yield func([]*Expr) bool) {
		switch x.Kind {
		case KindConditional:
			yield(x.Body)

		case KindFuncCall:
			for _, arg := range x.Args {
				if !yield(arg) {
					return
				}
			}
		}
	}
}

// Equal reports whether x and y are structurally identical trees.
func (x *Expr) Equal(y *Expr) bool {
	if x == nil || y == nil {
		return x == y
	}

	if x.Kind != y.Kind || x.Text != y.Text {
		return false
	}

	switch x.Kind {
	case KindConditional:
		return equalSeq(x.Body, y.Body)

	case KindFuncCall:
		return slices.EqualFunc(x.Args, y.Args, equalSeq)

	default:
		return true
	}
}

func equalSeq(a, b []*Expr) bool {
	return slices.EqualFunc(a, b, (*Expr).Equal)
}

// Depth returns the nesting depth of the expression. Literals and variables
// have depth 0.
func (x *Expr) Depth() int {
	depth := 0

	for seq := range x.Children() {
		for _, child := range seq {
			depth = max(depth, child.Depth())
		}
	}

	if x.Kind == KindConditional || x.Kind == KindFuncCall {
		depth++
	}

	return depth
}

func writer(w io.Writer) func(eol string, item ...string) error {
	return func(eol string, item ...string) error {
		_, err := io.WriteString(w, strings.Join(item, ": ")+eol)

		return err
	}
}

// Print writes an indented tree representation of the expression.
func (x *Expr) Print(w io.Writer, indent int) error {
	prefix := strings.Repeat("  ", indent)
	put := writer(w)

	switch x.Kind {
	case KindLiteral, KindVariable:
		return put("\n", prefix+x.Kind.String(), strconv.Quote(x.Text))

	case KindConditional:
		if err := put("\n", prefix+x.Kind.String()); err != nil {
			return err
		}

		return printSeq(w, x.Body, indent+1)

	case KindFuncCall:
		if err := put("\n", prefix+x.Kind.String(), x.Text); err != nil {
			return err
		}

		for i, arg := range x.Args {
			if err := put("\n", prefix+"  Arg "+strconv.Itoa(i)); err != nil {
				return err
			}

			if err := printSeq(w, arg, indent+2); err != nil {
				return err
			}
		}

		return nil

	default:
		return put("\n", prefix+x.Kind.String())
	}
}

func printSeq(w io.Writer, seq []*Expr, indent int) error {
	if len(seq) == 0 {
		return writer(w)("\n", strings.Repeat("  ", indent)+"(empty)")
	}

	for _, x := range seq {
		if err := x.Print(w, indent); err != nil {
			return err
		}
	}

	return nil
}
