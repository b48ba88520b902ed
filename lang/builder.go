package lang

// Builder provides a programmatic API for constructing expression trees
// without parsing source text. This is useful for generating format strings
// programmatically or for testing.
//
// Example:
//
//	b := lang.NewBuilder()
//	prog := b.Program(
//	    b.Cond(b.Var("artist"), b.Literal(" - ")),
//	    b.Call("upper", b.Arg(b.Var("title"))),
//	)
//	// prog formats as: [%artist% - ]$upper(%title%)
type Builder struct {
	opts []Option
}

// NewBuilder creates a new expression builder. The options configure every
// Program it builds.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: opts}
}

// Literal creates a literal [Expr].
func (b *Builder) Literal(text string) *Expr {
	return &Expr{Kind: KindLiteral, Text: text}
}

// Var creates a field reference [Expr].
func (b *Builder) Var(name string) *Expr {
	return &Expr{Kind: KindVariable, Text: name}
}

// Cond creates a conditional [Expr] with the given body.
func (b *Builder) Cond(body ...*Expr) *Expr {
	return &Expr{Kind: KindConditional, Body: body}
}

// Arg groups expressions into one function argument.
func (b *Builder) Arg(exprs ...*Expr) []*Expr {
	return exprs
}

// Call creates a function call [Expr]. A call without arguments is given
// one empty argument, matching how $name() parses.
func (b *Builder) Call(name string, args ...[]*Expr) *Expr {
	if len(args) == 0 {
		args = [][]*Expr{nil}
	}

	return &Expr{Kind: KindFuncCall, Text: name, Args: args}
}

// Program creates a [Program] with the given top-level expressions.
func (b *Builder) Program(exprs ...*Expr) *Program {
	p := NewProgram(b.opts...)
	p.exprs = exprs

	return p
}
