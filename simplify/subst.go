package simplify

import (
	"regexp"
	"strings"

	"github.com/rubiojr/simplish/ast"
	"github.com/rubiojr/simplish/render"
)

// varRef matches $name or ${name} scalar references. Array subscripts
// (${foo[0]}, ${foo[@]}) match neither alternative and flow through as
// literal text.
var varRef = regexp.MustCompile(`\$(\w+|\{\w+\})`)

// substText performs one left-to-right pass over text, replacing each
// known variable reference with the first segment of its bound value.
// Unknown and backslash-escaped references stay as literal text.
// Substituted values are never re-scanned, so self-referential bindings
// cannot loop.
func substText(ns *Namespace, text string) string {
	var sb strings.Builder
	rest := text
	for {
		loc := varRef.FindStringIndex(rest)
		if loc == nil {
			sb.WriteString(rest)
			return sb.String()
		}
		sb.WriteString(rest[:loc[0]])
		match := rest[loc[0]:loc[1]]
		name := strings.Trim(match, "${}")
		if escapedAt(rest, loc[0]) {
			sb.WriteString(match)
		} else if segs, ok := ns.Lookup(name); ok {
			if len(segs) > 0 {
				sb.WriteString(plainText(segs[0]))
			}
		} else {
			sb.WriteString(match)
		}
		rest = rest[loc[1]:]
	}
}

// escapedAt reports whether the byte at i sits behind an odd number of
// backslashes, i.e. the $ marker itself is escaped rather than preceded
// by an escaped backslash.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// substString rewrites one string fragment per its quoting discipline:
// single quotes suppress substitution, double-quoted and unquoted text is
// scanned, and backticks recurse structurally into the embedded command.
func (s *simplifier) substString(b ast.BashString) ast.BashString {
	switch bs := b.(type) {
	case *ast.SingleQuoted:
		return bs
	case *ast.DoubleQuoted:
		return &ast.DoubleQuoted{Text: substText(s.ns, bs.Text)}
	case *ast.Unquoted:
		return &ast.Unquoted{Text: substText(s.ns, bs.Text)}
	case *ast.Backticked:
		return &ast.Backticked{Cmd: s.substField(bs.Cmd)}
	default:
		return b
	}
}

// substField substitutes inside a field without touching the namespace.
// Used for the command embedded in a backtick: its arguments are
// substituted, but nothing inside a subshell binds variables outside it.
func (s *simplifier) substField(f ast.Field) ast.Field {
	switch ft := f.(type) {
	case *ast.Command:
		args := make([]ast.BashString, len(ft.Args))
		for i, a := range ft.Args {
			args[i] = s.substString(a)
		}
		return &ast.Command{Name: ft.Name, Args: args}
	case *ast.Assign:
		segs := make([]ast.BashString, len(ft.Value))
		for i, v := range ft.Value {
			segs[i] = s.substString(v)
		}
		return &ast.Assign{Name: ft.Name, Value: segs}
	default:
		return f
	}
}

// plainText is the string form of a fragment used as a substitution value
// or comparison operand: the inner text for the textual kinds, and the
// rendered `...` source for a backtick, which stays opaque command text.
func plainText(b ast.BashString) string {
	switch bs := b.(type) {
	case *ast.SingleQuoted:
		return bs.Text
	case *ast.DoubleQuoted:
		return bs.Text
	case *ast.Unquoted:
		return bs.Text
	case *ast.Backticked:
		return render.BashString(bs)
	default:
		return ""
	}
}
