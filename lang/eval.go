package lang

import (
	"context"
	"log/slog"
	"strings"
)

// evalContext holds the state for recursive evaluation.
type evalContext struct {
	ctx      context.Context
	env      *Environment
	depth    int
	maxDepth int
}

// evaluateSeq evaluates a sequence of expressions. The texts are
// concatenated and the truths of the non-literal parts OR'ed, so literal
// text inside [%album% - ] cannot make the conditional true on its own. A
// sequence holding only literal text is true; an empty one is ("", false).
func (ec *evalContext) evaluateSeq(seq []*Expr) (Value, error) {
	if len(seq) == 1 {
		return ec.evaluate(seq[0])
	}

	var (
		sb      strings.Builder
		truth   bool
		dynamic bool
	)

	for _, x := range seq {
		v, err := ec.evaluate(x)
		if err != nil {
			return Value{}, err
		}

		sb.WriteString(v.Text)

		if x.Kind != KindLiteral {
			dynamic = true
			truth = truth || v.Truth
		}
	}

	if !dynamic {
		truth = len(seq) > 0
	}

	return Value{Text: sb.String(), Truth: truth}, nil
}

// evaluate evaluates a single expression.
func (ec *evalContext) evaluate(x *Expr) (Value, error) {
	if x == nil {
		return Value{}, ErrInvalidExpr.With(slog.String("kind", "nil"))
	}

	switch x.Kind {
	case KindLiteral:
		return True(x.Text), nil

	case KindVariable:
		return ec.env.MetaIndex(x.Text, 0), nil

	case KindConditional:
		if err := ec.enter(); err != nil {
			return Value{}, err
		}
		defer ec.leave()

		v, err := ec.evaluateSeq(x.Body)
		if err != nil {
			return Value{}, err
		}

		if !v.Truth {
			return False(""), nil
		}

		return v, nil

	case KindFuncCall:
		if err := ec.enter(); err != nil {
			return Value{}, err
		}
		defer ec.leave()

		return ec.evaluateCall(x)

	default:
		return Value{}, ErrInvalidExpr.With(slog.String("kind", x.Kind.String()))
	}
}

// evaluateCall evaluates the arguments of a call left to right and invokes
// the builtin. A call written with an empty argument list, $f(), passes no
// arguments.
func (ec *evalContext) evaluateCall(x *Expr) (Value, error) {
	groups := x.Args
	if len(groups) == 1 && len(groups[0]) == 0 {
		groups = nil
	}

	args := make([]Value, len(groups))

	for i, group := range groups {
		v, err := ec.evaluateSeq(group)
		if err != nil {
			return Value{}, err
		}

		args[i] = v
	}

	return ec.env.Call(ec.ctx, x.Text, args)
}

func (ec *evalContext) enter() error {
	if ec.depth >= ec.maxDepth {
		return ErrMaxDepthExceeded.With(slog.Int("max_depth", ec.maxDepth))
	}

	ec.depth++

	return nil
}

func (ec *evalContext) leave() { ec.depth-- }
