package lang

import (
	"bytes"
	"errors"
	"strings"
)

// specials are the characters that cannot appear unquoted in literal text,
// except where a literal context lets them pass through.
const specials = "%$,[]<>'()/\r\n"

func isSpecial(ch byte) bool {
	return strings.IndexByte(specials, ch) >= 0
}

// literalContext selects which special characters are taken literally.
type literalContext int

const (
	contextText literalContext = iota // top level
	contextArg                        // function argument
	contextCond                       // conditional body
)

// passthrough reports whether the special character ch is literal text in
// context c. Comment and newline handling is not covered here.
func (c literalContext) passthrough(ch byte) bool {
	switch ch {
	case '(', '<', '>', '/':
		return true

	case ')', ',':
		return c != contextArg

	case ']':
		return c != contextCond

	default:
		return false
	}
}

// scanLiteral consumes the longest literal run at the cursor and returns its
// decoded text. Comments and line breaks are consumed but contribute no text.
// It stops without error at any character that begins another construct or
// is not literal in context c; the caller decides whether that is an error.
func (p *parser) scanLiteral(c literalContext) (string, error) {
	var sb strings.Builder

	for !p.eof() {
		ch := p.input[p.pos]

		switch {
		case ch == '/' && p.peekN(2) == "//":
			p.skipLineComment()

		case ch == '\n':
			p.advance()

		case ch == '\r':
			if p.peekN(2) != "\r\n" {
				return sb.String(), nil
			}

			p.advanceTo(p.pos + 2)

		case ch == '\'':
			if p.peekN(2) == "''" {
				sb.WriteByte('\'')
				p.advanceTo(p.pos + 2)

				continue
			}

			n := bytes.IndexByte(p.input[p.pos+1:p.end], '\'')
			if n < 0 {
				return "", ErrParse.WithPosition(p.position()).
					Wrap(errors.New("unterminated quote"))
			}

			sb.Write(p.input[p.pos+1 : p.pos+1+n])
			p.advanceTo(p.pos + n + 2)

		case isSpecial(ch):
			if !c.passthrough(ch) {
				return sb.String(), nil
			}

			sb.WriteByte(ch)
			p.advance()

		default:
			i := p.pos
			for i < p.end && !isSpecial(p.input[i]) {
				i++
			}

			sb.Write(p.input[p.pos:i])
			p.advanceTo(i)
		}
	}

	return sb.String(), nil
}

// scanBalanced searches forward from the cursor for the delimiter closing a
// construct whose opening delimiter was just consumed. Nesting starts at 1;
// each open byte increments it and each close byte decrements it. When comma
// is set, a ',' at nesting 1 also ends the search. Apostrophe-quoted spans
// and "//" comments are skipped.
//
// It returns the offset and value of the delimiter found. The cursor does not
// move.
func (p *parser) scanBalanced(open, close byte, comma bool) (int, byte, bool) {
	depth := 1

	for i := p.pos; i < p.end; i++ {
		ch := p.input[i]

		switch {
		case ch == '\'':
			if n := bytes.IndexByte(p.input[i+1:p.end], '\''); n >= 0 {
				i += n + 1
			}

		case ch == '/' && i+1 < p.end && p.input[i+1] == '/':
			n := bytes.IndexByte(p.input[i:p.end], '\n')
			if n < 0 {
				return 0, 0, false
			}

			i += n

		case ch == open:
			depth++

		case ch == close:
			if depth--; depth == 0 {
				return i, ch, true
			}

		case ch == ',' && comma && depth == 1:
			return i, ch, true
		}
	}

	return 0, 0, false
}

// skipLineComment consumes a "//" comment through the next '\n' or the end of
// the current span.
func (p *parser) skipLineComment() {
	n := bytes.IndexByte(p.input[p.pos:p.end], '\n')
	if n < 0 {
		p.advanceTo(p.end)

		return
	}

	p.advanceTo(p.pos + n + 1)
}

// skipNewlines consumes any run of "\n" and "\r\n".
func (p *parser) skipNewlines() {
	for !p.eof() {
		switch {
		case p.input[p.pos] == '\n':
			p.advance()

		case p.peekN(2) == "\r\n":
			p.advanceTo(p.pos + 2)

		default:
			return
		}
	}
}
