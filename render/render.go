// Package render serializes a script AST back to bash source text.
package render

import (
	"fmt"
	"strings"

	"github.com/rubiojr/simplish/ast"
)

// Script renders a whole script, one field per line, nested bodies
// indented by two spaces. Other fields are emitted verbatim.
func Script(s *ast.Script) string {
	r := &renderer{}
	r.script(s)
	return r.sb.String()
}

// Field renders a single field without a trailing newline.
func Field(f ast.Field) string {
	r := &renderer{}
	r.field(f)
	return strings.TrimSuffix(r.sb.String(), "\n")
}

// BashString renders one string fragment with its quoting delimiters.
func BashString(b ast.BashString) string {
	switch bs := b.(type) {
	case *ast.SingleQuoted:
		return "'" + bs.Text + "'"
	case *ast.DoubleQuoted:
		return `"` + bs.Text + `"`
	case *ast.Unquoted:
		return bs.Text
	case *ast.Backticked:
		return "`" + Field(bs.Cmd) + "`"
	default:
		return ""
	}
}

type renderer struct {
	sb     strings.Builder
	indent int
}

func (r *renderer) line(format string, args ...any) {
	for range r.indent {
		r.sb.WriteString("  ")
	}
	fmt.Fprintf(&r.sb, format, args...)
	r.sb.WriteByte('\n')
}

func (r *renderer) script(s *ast.Script) {
	for _, f := range s.Fields {
		r.field(f)
	}
}

func (r *renderer) field(f ast.Field) {
	switch ft := f.(type) {
	case *ast.FuncDef:
		r.line("%s() {", ft.Name)
		r.indent++
		r.script(ft.Body)
		r.indent--
		r.line("}")

	case *ast.Command:
		parts := make([]string, 0, len(ft.Args)+1)
		parts = append(parts, ft.Name)
		for _, a := range ft.Args {
			parts = append(parts, BashString(a))
		}
		r.line("%s", strings.Join(parts, " "))

	case *ast.Assign:
		var val strings.Builder
		for _, seg := range ft.Value {
			val.WriteString(BashString(seg))
		}
		r.line("%s=%s", ft.Name, val.String())

	case *ast.IfBlock:
		r.chain(ft.Chain, "if")
		r.line("fi")

	case *ast.Other:
		// Verbatim, including original indentation.
		r.sb.WriteString(ft.Text)
		r.sb.WriteByte('\n')
	}
}

func (r *renderer) chain(c *ast.IfClause, keyword string) {
	r.line("%s [ %s %s %s ]; then",
		keyword, BashString(c.Cond.Left), c.Cond.Op, BashString(c.Cond.Right))
	r.indent++
	r.script(c.Body)
	r.indent--
	switch next := c.Next.(type) {
	case *ast.IfClause:
		r.chain(next, "elif")
	case *ast.ElseClause:
		r.line("else")
		r.indent++
		r.script(next.Body)
		r.indent--
	}
}
