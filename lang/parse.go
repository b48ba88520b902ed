package lang

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// parser holds the parser state.
//
// Function arguments and conditional bodies are parsed in place by narrowing
// end to the span found by scanBalanced, so the cursor (and its line and
// column) always moves forward through the one input buffer.
type parser struct {
	input    []byte
	pos      int
	end      int // exclusive limit of the span being parsed
	line     int
	col      int
	depth    int
	maxDepth int
}

// parse parses a format string into its top-level expression sequence.
func parse(ctx context.Context, source string, cfg config) ([]*Expr, error) {
	cfg.logger.Trace(ctx, "parse start",
		slog.Int("source_length", len(source)))

	p := &parser{
		input:    []byte(source),
		end:      len(source),
		line:     1,
		col:      1,
		maxDepth: cfg.opts.MaxDepth,
	}

	exprs, err := p.parseSeq(contextText)
	if err != nil {
		cfg.logger.Debug(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	cfg.logger.Trace(ctx, "parse complete",
		slog.Int("expr_count", len(exprs)))

	return exprs, nil
}

// parseSeq parses expressions until the end of the current span.
// Literal text follows the passthrough rules of context c.
func (p *parser) parseSeq(c literalContext) ([]*Expr, error) {
	var seq []*Expr

	for !p.eof() {
		var (
			x   *Expr
			err error
		)

		switch p.input[p.pos] {
		case '[':
			x, err = p.parseConditional()

		case '$':
			x, err = p.parseFuncCall()

		case '%':
			x, err = p.parseVariable()

		default:
			x, err = p.parseLiteral(c)
		}

		if err != nil {
			return nil, err
		}

		if x != nil {
			seq = append(seq, x)
		}
	}

	return seq, nil
}

// parseLiteral parses a literal run. It returns nil when the run decodes to
// no text, e.g. a line holding only a comment.
func (p *parser) parseLiteral(c literalContext) (*Expr, error) {
	start := p.position()

	text, err := p.scanLiteral(c)
	if err != nil {
		return nil, err
	}

	if p.pos == start.Offset {
		r, _ := utf8.DecodeRune(p.input[p.pos:p.end])

		return nil, ErrParse.WithPosition(start).
			Wrap(fmt.Errorf("unexpected %q", r))
	}

	// scanLiteral consumes maximally, so adjacent fragments are already
	// coalesced into text.
	if text == "" {
		return nil, nil //nolint:nilnil
	}

	return &Expr{Kind: KindLiteral, Text: text}, nil
}

// parseVariable parses: '%' name '%'.
func (p *parser) parseVariable() (*Expr, error) {
	start := p.position()

	p.advance() // '%'

	n := bytes.IndexByte(p.input[p.pos:p.end], '%')

	switch {
	case n < 0:
		return nil, ErrParse.WithPosition(start).
			Wrap(errors.New("unclosed field reference"))

	case n == 0:
		return nil, ErrParse.WithPosition(start).
			Wrap(errors.New("empty field name"))
	}

	name := string(p.input[p.pos : p.pos+n])
	p.advanceTo(p.pos + n + 1)

	return &Expr{Kind: KindVariable, Text: name}, nil
}

// parseConditional parses: '[' body ']'.
func (p *parser) parseConditional() (*Expr, error) {
	start := p.position()

	if err := p.enter(start); err != nil {
		return nil, err
	}
	defer p.leave()

	p.advance() // '['

	at, _, ok := p.scanBalanced('[', ']', false)
	if !ok {
		return nil, ErrParse.WithPosition(start).
			Wrap(errors.New("unclosed conditional"))
	}

	body, err := p.parseSpan(at, contextCond)
	if err != nil {
		return nil, err
	}

	p.advance() // ']'

	return &Expr{Kind: KindConditional, Body: body}, nil
}

// parseFuncCall parses: '$' name '(' arg (',' arg)* ')'.
// An empty argument list yields one empty argument. Line breaks around the
// name are dropped like line breaks in literal text, so "$\nupper(x)" calls
// upper.
func (p *parser) parseFuncCall() (*Expr, error) {
	start := p.position()

	if err := p.enter(start); err != nil {
		return nil, err
	}
	defer p.leave()

	p.advance() // '$'

	n := bytes.IndexByte(p.input[p.pos:p.end], '(')
	if n < 0 {
		return nil, ErrParse.WithPosition(start).
			Wrap(errors.New("function call without argument list"))
	}

	name := strings.Trim(string(p.input[p.pos:p.pos+n]), "\r\n")
	p.advanceTo(p.pos + n + 1)

	var args [][]*Expr

	for {
		at, sep, ok := p.scanBalanced('$', ')', true)
		if !ok {
			return nil, ErrParse.WithPosition(start).
				Wrap(fmt.Errorf("unclosed function call $%s", name))
		}

		arg, err := p.parseSpan(at, contextArg)
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		p.advance() // ',' or ')'

		if sep == ')' {
			break
		}
	}

	p.skipNewlines()

	return &Expr{Kind: KindFuncCall, Text: name, Args: args}, nil
}

// parseSpan parses the input from the cursor up to end, which must be fully
// consumed.
func (p *parser) parseSpan(end int, c literalContext) ([]*Expr, error) {
	saved := p.end
	p.end = end

	seq, err := p.parseSeq(c)

	p.end = saved

	return seq, err
}

// enter records one more level of nesting at pos.
func (p *parser) enter(pos Position) error {
	if p.depth >= p.maxDepth {
		return ErrMaxDepthExceeded.WithPosition(pos).
			With(slog.Int("max_depth", p.maxDepth))
	}

	p.depth++

	return nil
}

func (p *parser) leave() { p.depth-- }

// Helper methods

func (p *parser) peekN(n int) string {
	if p.pos+n > p.end {
		return string(p.input[p.pos:p.end])
	}

	return string(p.input[p.pos : p.pos+n])
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:p.end])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

// advanceTo moves the cursor forward to offset.
func (p *parser) advanceTo(offset int) {
	for p.pos < offset && !p.eof() {
		p.advance()
	}
}

func (p *parser) eof() bool {
	return p.pos >= p.end
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}
