package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToNative())
}

// MarshalJSON implements json.Marshaler for Expr.
func (x *Expr) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.ToNative())
}

// ToNative converts the program's expressions to native Go values, one
// map per expression.
func (p *Program) ToNative() []any {
	return seqToNative(p.exprs)
}

// ToNative converts an expression to a native Go map keyed by its kind:
//
//	{"literal": "text"}
//	{"variable": "artist"}
//	{"conditional": [...]}
//	{"call": "if", "args": [[...], [...]]}
func (x *Expr) ToNative() map[string]any {
	switch x.Kind {
	case KindLiteral:
		return map[string]any{"literal": x.Text}

	case KindVariable:
		return map[string]any{"variable": x.Text}

	case KindConditional:
		return map[string]any{"conditional": seqToNative(x.Body)}

	case KindFuncCall:
		args := make([]any, len(x.Args))
		for i, arg := range x.Args {
			args[i] = seqToNative(arg)
		}

		return map[string]any{"call": x.Text, "args": args}

	default:
		return map[string]any{"invalid": x.Kind.String()}
	}
}

func seqToNative(seq []*Expr) []any {
	result := make([]any, 0, len(seq))

	for _, x := range seq {
		if x != nil {
			result = append(result, x.ToNative())
		}
	}

	return result
}
