package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the program as canonical format string source. Parsing the
// output yields expressions equal to the program's.
func (p *Program) Format(w io.Writer) error {
	var sb strings.Builder

	formatSeq(&sb, p.exprs)

	_, err := io.WriteString(w, sb.String())

	return err
}

// String returns the expression as canonical format string source.
func (x *Expr) String() string {
	var sb strings.Builder

	formatExpr(&sb, x)

	return sb.String()
}

// FormatJSON writes the program's expression tree as JSON to the writer.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(p)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program's expression tree as YAML to the writer.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, p.ToNative(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

func formatSeq(sb *strings.Builder, seq []*Expr) {
	for _, x := range seq {
		formatExpr(sb, x)
	}
}

func formatExpr(sb *strings.Builder, x *Expr) {
	if x == nil {
		return
	}

	switch x.Kind {
	case KindLiteral:
		formatLiteral(sb, x.Text)

	case KindVariable:
		sb.WriteByte('%')
		sb.WriteString(x.Text)
		sb.WriteByte('%')

	case KindConditional:
		sb.WriteByte('[')
		formatSeq(sb, x.Body)
		sb.WriteByte(']')

	case KindFuncCall:
		sb.WriteByte('$')
		sb.WriteString(x.Text)
		sb.WriteByte('(')

		for i, arg := range x.Args {
			if i > 0 {
				sb.WriteByte(',')
			}

			formatSeq(sb, arg)
		}

		sb.WriteByte(')')
	}
}

// formatLiteral writes text so that it parses back to itself in any
// context: runs of special characters are quoted and apostrophes doubled.
func formatLiteral(sb *strings.Builder, text string) {
	quoted := false

	for i := 0; i < len(text); i++ {
		ch := text[i]

		switch {
		case ch == '\'':
			if quoted {
				sb.WriteByte('\'')

				quoted = false
			}

			sb.WriteString("''")

		case isSpecial(ch):
			if !quoted {
				sb.WriteByte('\'')

				quoted = true
			}

			sb.WriteByte(ch)

		default:
			if quoted {
				sb.WriteByte('\'')

				quoted = false
			}

			sb.WriteByte(ch)
		}
	}

	if quoted {
		sb.WriteByte('\'')
	}
}
