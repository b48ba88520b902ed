package lang

import (
	"context"
	"iter"
	"log/slog"
)

// Program is a parsed format string that can be rendered any number of
// times against different metadata.
//
// The parsed expressions are never modified, so a Program may be run from
// several goroutines at once as long as Parse is not called concurrently.
type Program struct {
	exprs  []*Expr
	source string
	cfg    config
}

// NewProgram creates an empty Program. Running it yields "".
func NewProgram(opts ...Option) *Program {
	return &Program{cfg: makeConfig(opts...)}
}

// Parse parses text and replaces the program's expressions with the result.
// On error the program is left unchanged.
func (p *Program) Parse(ctx context.Context, text string) error {
	exprs, err := parse(ctx, text, p.cfg)
	if err != nil {
		return err
	}

	p.exprs = exprs
	p.source = text

	return nil
}

// Source returns the text most recently parsed successfully.
func (p *Program) Source() string { return p.source }

// Exprs returns the program's top-level expressions.
// The returned expressions must not be modified.
func (p *Program) Exprs() []*Expr { return p.exprs }

// All returns an iterator over the program's top-level expressions.
func (p *Program) All() iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		for _, x := range p.exprs {
			if !yield(x) {
				return
			}
		}
	}
}

// Run renders the program with no metadata.
func (p *Program) Run(ctx context.Context) (string, error) {
	return p.RunWithMeta(ctx, nil)
}

// RunWithMeta renders the program against meta in a fresh Environment.
// Any error aborts the whole rendering; no partial output is returned.
func (p *Program) RunWithMeta(ctx context.Context, meta Metadata) (string, error) {
	v, err := p.Eval(ctx, NewEnvironment(meta, WithLogger(p.cfg.logger)))
	if err != nil {
		return "", err
	}

	return v.Text, nil
}

// Eval evaluates the program in env and returns the text and truth of the
// whole output. Scratch variables set by a previous evaluation in the same
// env remain visible.
func (p *Program) Eval(ctx context.Context, env *Environment) (Value, error) {
	p.cfg.logger.Trace(ctx, "run start",
		slog.Int("expr_count", len(p.exprs)))

	ec := &evalContext{
		ctx:      ctx,
		env:      env,
		maxDepth: p.cfg.opts.MaxDepth,
	}

	v, err := ec.evaluateSeq(p.exprs)
	if err != nil {
		p.cfg.logger.Debug(ctx, "run failed", slog.Any("error", err))

		return Value{}, err
	}

	p.cfg.logger.Trace(ctx, "run complete", slog.Any("result", v))

	return v, nil
}
