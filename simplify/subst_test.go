package simplify

import (
	"testing"

	"github.com/rubiojr/simplish/ast"
	"github.com/stretchr/testify/assert"
)

func TestSubstTextKnown(t *testing.T) {
	ns := NewNamespace()
	ns.Insert("x", seg("1"))
	assert.Equal(t, "a 1 b", substText(ns, "a $x b"))
	assert.Equal(t, "a 1 b", substText(ns, "a ${x} b"))
}

func TestSubstTextUnknownPassThrough(t *testing.T) {
	ns := NewNamespace()
	assert.Equal(t, "${y}", substText(ns, "${y}"))
	assert.Equal(t, "$y", substText(ns, "$y"))
}

func TestSubstTextFirstSegmentOnly(t *testing.T) {
	ns := NewNamespace()
	ns.Insert("x", []ast.BashString{
		&ast.Unquoted{Text: "a"},
		&ast.Unquoted{Text: "b"},
	})
	assert.Equal(t, "a", substText(ns, "$x"))
}

func TestSubstTextEmptyValue(t *testing.T) {
	ns := NewNamespace()
	ns.Insert("x", nil)
	assert.Equal(t, "pre//post", substText(ns, "pre/$x/post"))
}

func TestSubstTextSinglePassNoRescan(t *testing.T) {
	ns := NewNamespace()
	ns.Insert("x", seg("$x"))
	assert.Equal(t, "$x", substText(ns, "$x"), "self-referential values don't loop")

	ns.Insert("a", seg("$b"))
	ns.Insert("b", seg("1"))
	assert.Equal(t, "$b", substText(ns, "$a"), "substituted text is not re-scanned")
}

func TestSubstTextMultipleRefs(t *testing.T) {
	ns := NewNamespace()
	ns.Insert("x", seg("1"))
	ns.Insert("y", seg("2"))
	assert.Equal(t, "1-2-$z", substText(ns, "$x-$y-$z"))
}

func TestSubstTextEscapedDollar(t *testing.T) {
	ns := NewNamespace()
	ns.Insert("x", seg("1"))
	assert.Equal(t, `\$x`, substText(ns, `\$x`))
	assert.Equal(t, `say \${x} now`, substText(ns, `say \${x} now`))
	assert.Equal(t, `\\`+"1", substText(ns, `\\$x`),
		"an escaped backslash doesn't escape the reference")
	assert.Equal(t, `\$x 1`, substText(ns, `\$x $x`),
		"escaping one reference doesn't shield later ones")
}

func TestSubstTextArrayIndexUntouched(t *testing.T) {
	ns := NewNamespace()
	ns.Insert("foo", seg("scalar"))
	assert.Equal(t, "${foo[0]}", substText(ns, "${foo[0]}"))
	assert.Equal(t, "${foo[@]}", substText(ns, "${foo[@]}"))
}

func TestSubstStringSingleQuoteInviolable(t *testing.T) {
	ns := NewNamespace()
	ns.Insert("x", seg("1"))
	s := &simplifier{ns: ns}
	in := &ast.SingleQuoted{Text: "$x and ${x}"}
	out := s.substString(in)
	assert.Same(t, ast.BashString(in), out)
}

func TestSubstStringDoubleAndUnquoted(t *testing.T) {
	ns := NewNamespace()
	ns.Insert("x", seg("1"))
	s := &simplifier{ns: ns}
	assert.Equal(t, &ast.DoubleQuoted{Text: "1"}, s.substString(&ast.DoubleQuoted{Text: "$x"}))
	assert.Equal(t, &ast.Unquoted{Text: "1"}, s.substString(&ast.Unquoted{Text: "$x"}))
}

func TestSubstStringBacktickRecursesStructurally(t *testing.T) {
	ns := NewNamespace()
	ns.Insert("dir", seg("/tmp"))
	s := &simplifier{ns: ns}
	in := &ast.Backticked{Cmd: &ast.Command{
		Name: "ls",
		Args: []ast.BashString{&ast.Unquoted{Text: "$dir"}},
	}}
	out := s.substString(in)
	bt, ok := out.(*ast.Backticked)
	assert.True(t, ok)
	cmd := bt.Cmd.(*ast.Command)
	assert.Equal(t, "ls", cmd.Name, "the command itself is never evaluated")
	assert.Equal(t, &ast.Unquoted{Text: "/tmp"}, cmd.Args[0])
}

func TestPlainTextBacktick(t *testing.T) {
	b := &ast.Backticked{Cmd: &ast.Command{
		Name: "date",
		Args: []ast.BashString{&ast.Unquoted{Text: "-u"}},
	}}
	assert.Equal(t, "`date -u`", plainText(b))
}
