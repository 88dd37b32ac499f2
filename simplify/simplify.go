// Package simplify statically simplifies a parsed bash script: known
// variable values are substituted into command arguments, assignments,
// and test operands, and decidable if/elif/else chains are replaced by
// the taken branch. Nothing is ever executed; command substitutions keep
// their literal text.
package simplify

import "github.com/rubiojr/simplish/ast"

// Simplify runs one pass over script with ns as the starting variable
// table and returns the simplified script plus the final table. A nil ns
// starts empty. The input script is not mutated; ns is owned by the pass
// and mutated in place.
//
// State threads linearly: a binding made by one field is visible to every
// later sibling and to nested structures. Assignments inside a function
// body do not leak out; assignments inside a taken if-branch do.
func Simplify(ns *Namespace, script *ast.Script) (*ast.Script, *Namespace) {
	if ns == nil {
		ns = NewNamespace()
	}
	s := &simplifier{ns: ns}
	return &ast.Script{Fields: s.walkFields(script.Fields)}, s.ns
}

// SimplifyScript is Simplify keeping only the rewritten script.
func SimplifyScript(ns *Namespace, script *ast.Script) *ast.Script {
	out, _ := Simplify(ns, script)
	return out
}

// SimplifyVars is Simplify keeping only the final variable table.
func SimplifyVars(ns *Namespace, script *ast.Script) *Namespace {
	_, out := Simplify(ns, script)
	return out
}

// Pass exposes the simplifier as a named script transform for pipelines.
// Each Transform call starts from a fresh clone of initial, so a Pass
// value is reusable.
func Pass(initial *Namespace) ast.Transform {
	return ast.TransformFunc{
		N: "simplify",
		F: func(s *ast.Script) *ast.Script {
			var ns *Namespace
			if initial != nil {
				ns = initial.Clone()
			}
			return SimplifyScript(ns, s)
		},
	}
}

type simplifier struct {
	ns *Namespace
}

func (s *simplifier) walkFields(fields []ast.Field) []ast.Field {
	out := make([]ast.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, s.walkField(f)...)
	}
	return out
}

// walkField rewrites one field into zero or more output fields. Only
// IfBlock splices; every other kind maps one-to-one.
func (s *simplifier) walkField(f ast.Field) []ast.Field {
	switch ft := f.(type) {
	case *ast.FuncDef:
		// The body is simplified against a clone: bindings made inside a
		// function stay inside it.
		inner := &simplifier{ns: s.ns.Clone()}
		body := &ast.Script{Fields: inner.walkFields(ft.Body.Fields)}
		return []ast.Field{&ast.FuncDef{Name: ft.Name, Body: body}}

	case *ast.Command:
		args := make([]ast.BashString, len(ft.Args))
		for i, a := range ft.Args {
			args[i] = s.substString(a)
		}
		return []ast.Field{&ast.Command{Name: ft.Name, Args: args}}

	case *ast.Assign:
		segs := make([]ast.BashString, len(ft.Value))
		for i, v := range ft.Value {
			segs[i] = s.substString(v)
		}
		s.ns.Insert(ft.Name, segs)
		return []ast.Field{&ast.Assign{Name: ft.Name, Value: segs}}

	case *ast.IfBlock:
		return s.resolveIf(ft.Chain)

	default:
		return []ast.Field{f}
	}
}

// resolveIf walks an if/elif/else chain, substituting each comparison's
// operands and stopping at the first one that holds. The taken branch's
// simplified body replaces the whole chain, and its bindings propagate.
// If no link decides and there is no else, the chain is kept with the
// substituted operands in place and the namespace untouched.
func (s *simplifier) resolveIf(chain *ast.IfClause) []ast.Field {
	var cur ast.Branch = chain
	for cur != nil {
		switch b := cur.(type) {
		case *ast.IfClause:
			left := s.substString(b.Cond.Left)
			right := s.substString(b.Cond.Right)
			if compare(b.Cond.Op, plainText(left), plainText(right)) {
				return s.walkFields(b.Body.Fields)
			}
			cur = b.Next
		case *ast.ElseClause:
			return s.walkFields(b.Body.Fields)
		}
	}
	return []ast.Field{&ast.IfBlock{Chain: s.substChain(chain)}}
}

// substChain rebuilds an undecidable chain with substituted operands.
// Bodies stay verbatim: no branch ran, so nothing inside them may be
// rewritten against bindings that were never made.
func (s *simplifier) substChain(c *ast.IfClause) *ast.IfClause {
	cp := &ast.IfClause{
		Cond: ast.Comparison{
			Op:    c.Cond.Op,
			Left:  s.substString(c.Cond.Left),
			Right: s.substString(c.Cond.Right),
		},
		Body: c.Body,
		Next: c.Next,
	}
	if next, ok := c.Next.(*ast.IfClause); ok {
		cp.Next = s.substChain(next)
	}
	return cp
}

// compare applies a string test operator; ordering is lexicographic.
func compare(op ast.CompareOp, left, right string) bool {
	switch op {
	case ast.OpEq:
		return left == right
	case ast.OpNe:
		return left != right
	case ast.OpGt:
		return left > right
	case ast.OpGe:
		return left >= right
	case ast.OpLt:
		return left < right
	case ast.OpLe:
		return left <= right
	default:
		return false
	}
}
