package simplify

import "github.com/rubiojr/simplish/ast"

// Namespace is the accumulating variable table threaded through one
// simplification pass. Each name maps to the ordered segment list it was
// last assigned. Insertion order is preserved; reassigning a name keeps
// its original position.
type Namespace struct {
	names []string
	vars  map[string][]ast.BashString
}

// NewNamespace creates an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{vars: make(map[string][]ast.BashString)}
}

// Lookup returns the segments bound to name. The boolean distinguishes an
// unbound name from one bound to an empty segment list (x= in bash).
func (n *Namespace) Lookup(name string) ([]ast.BashString, bool) {
	segs, ok := n.vars[name]
	return segs, ok
}

// Insert binds name to segs, overwriting any previous binding.
func (n *Namespace) Insert(name string, segs []ast.BashString) {
	if _, ok := n.vars[name]; !ok {
		n.names = append(n.names, name)
	}
	n.vars[name] = segs
}

// Names returns all bound names in first-insertion order.
func (n *Namespace) Names() []string {
	out := make([]string, len(n.names))
	copy(out, n.names)
	return out
}

// Len returns the number of bound names.
func (n *Namespace) Len() int { return len(n.names) }

// Clone creates a shallow copy. Segment slices are shared; the simplifier
// never mutates segments in place, it only rebinds names.
func (n *Namespace) Clone() *Namespace {
	c := &Namespace{
		names: make([]string, len(n.names)),
		vars:  make(map[string][]ast.BashString, len(n.vars)),
	}
	copy(c.names, n.names)
	for k, v := range n.vars {
		c.vars[k] = v
	}
	return c
}
