package render_test

import (
	"strings"
	"testing"

	"github.com/rubiojr/simplish/ast"
	"github.com/rubiojr/simplish/parser"
	"github.com/rubiojr/simplish/render"
	"github.com/rubiojr/simplish/simplify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBashString(t *testing.T) {
	assert.Equal(t, "'a b'", render.BashString(&ast.SingleQuoted{Text: "a b"}))
	assert.Equal(t, `"a $x"`, render.BashString(&ast.DoubleQuoted{Text: "a $x"}))
	assert.Equal(t, "plain", render.BashString(&ast.Unquoted{Text: "plain"}))
	assert.Equal(t, "`uname -r`", render.BashString(&ast.Backticked{Cmd: &ast.Command{
		Name: "uname",
		Args: []ast.BashString{&ast.Unquoted{Text: "-r"}},
	}}))
}

func TestScriptFields(t *testing.T) {
	s := &ast.Script{Fields: []ast.Field{
		&ast.Other{Text: "# setup"},
		&ast.Assign{Name: "x", Value: []ast.BashString{&ast.DoubleQuoted{Text: "1"}}},
		&ast.Command{Name: "echo", Args: []ast.BashString{&ast.DoubleQuoted{Text: "$x"}}},
	}}
	want := "# setup\n" + `x="1"` + "\n" + `echo "$x"` + "\n"
	assert.Equal(t, want, render.Script(s))
}

func TestEmptyAssignment(t *testing.T) {
	s := &ast.Script{Fields: []ast.Field{&ast.Assign{Name: "x"}}}
	assert.Equal(t, "x=\n", render.Script(s))
}

func TestIndentedBodies(t *testing.T) {
	s := &ast.Script{Fields: []ast.Field{
		&ast.FuncDef{Name: "f", Body: &ast.Script{Fields: []ast.Field{
			&ast.IfBlock{Chain: &ast.IfClause{
				Cond: ast.Comparison{
					Op:    ast.OpEq,
					Left:  &ast.DoubleQuoted{Text: "$x"},
					Right: &ast.DoubleQuoted{Text: "1"},
				},
				Body: &ast.Script{Fields: []ast.Field{
					&ast.Command{Name: "true"},
				}},
			}},
		}}},
	}}
	want := strings.Join([]string{
		"f() {",
		`  if [ "$x" == "1" ]; then`,
		"    true",
		"  fi",
		"}",
		"",
	}, "\n")
	assert.Equal(t, want, render.Script(s))
}

func TestRoundTrip(t *testing.T) {
	src := strings.Join([]string{
		"#!/bin/bash",
		"",
		"greeting=hello",
		`name="world"`,
		"",
		"say() {",
		`  echo "$greeting" '$name'`,
		"}",
		"",
		`if [ "$name" == "world" ]; then`,
		"  target=everyone",
		"elif [ \"$name\" != \"x\" ]; then",
		"  target=other",
		"else",
		"  target=nobody",
		"fi",
		"",
		"echo `date -u` \"$greeting $target\"",
		"",
	}, "\n")

	script, err := (&parser.Parser{}).ParseSource(src, "round.sh")
	require.NoError(t, err)
	assert.Equal(t, src, render.Script(script), "parse then render is the identity on canonical input")
}

func TestOtherLinesSurviveEndToEnd(t *testing.T) {
	// Loop keywords are outside the model: those lines pass through
	// byte-for-byte. The body line is a plain command and renders in
	// canonical (unindented) form.
	src := strings.Join([]string{
		"for i in a b c; do",
		`  echo "$i"`,
		"done",
		"",
	}, "\n")
	script, err := (&parser.Parser{}).ParseSource(src, "loop.sh")
	require.NoError(t, err)

	out := simplify.SimplifyScript(nil, script)
	want := strings.Join([]string{
		"for i in a b c; do",
		`echo "$i"`,
		"done",
		"",
	}, "\n")
	assert.Equal(t, want, render.Script(out))
}

func TestSimplifyThenRender(t *testing.T) {
	src := strings.Join([]string{
		"env=prod",
		`if [ "$env" == "prod" ]; then`,
		`  replicas="3"`,
		"else",
		`  replicas="1"`,
		"fi",
		`scale --count "$replicas"`,
		"",
	}, "\n")
	script, err := (&parser.Parser{}).ParseSource(src, "deploy.sh")
	require.NoError(t, err)

	out := simplify.SimplifyScript(nil, script)
	want := strings.Join([]string{
		"env=prod",
		`replicas="3"`,
		`scale --count "3"`,
		"",
	}, "\n")
	assert.Equal(t, want, render.Script(out))
}
