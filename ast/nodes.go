package ast

// Node is the interface for all AST nodes.
type Node interface {
	node()
}

// Script is the root node: an ordered sequence of fields. Order is
// semantically significant, it is assignment and control-flow order.
type Script struct {
	Fields []Field
}

func (s *Script) node() {}

// Field is the interface for statement-level script units.
type Field interface {
	Node
	field()
}

// BashString is the interface for string fragments. Each quoting
// discipline substitutes differently, so the variants are distinct types.
type BashString interface {
	Node
	bashString()
}

// FuncDef represents name() { body }.
type FuncDef struct {
	Name string
	Body *Script
}

func (f *FuncDef) node()  {}
func (f *FuncDef) field() {}

// Command represents a simple command invocation: name arg1 arg2 ...
// Arguments are substituted during simplification; the command itself is
// never run.
type Command struct {
	Name string
	Args []BashString
}

func (c *Command) node()  {}
func (c *Command) field() {}

// Assign represents name=value. The value is decomposed into the adjacent
// quoted and unquoted segments it was written as, e.g. x=a"b"'c' has
// three segments.
type Assign struct {
	Name  string
	Value []BashString
}

func (a *Assign) node()  {}
func (a *Assign) field() {}

// IfBlock wraps an if/elif/else chain.
type IfBlock struct {
	Chain *IfClause
}

func (i *IfBlock) node()  {}
func (i *IfBlock) field() {}

// Other preserves any line the data model doesn't cover (comments, blank
// lines, redirections, loops). It passes through every stage untouched.
type Other struct {
	Text string
}

func (o *Other) node()  {}
func (o *Other) field() {}

// Branch is one link in an if/elif/else chain.
type Branch interface {
	Node
	branch()
}

// IfClause is an if or elif link: a comparison, the body taken when it
// holds, and the next link. Next is nil for a bare if, another IfClause
// for elif, or an ElseClause.
type IfClause struct {
	Cond Comparison
	Body *Script
	Next Branch
}

func (i *IfClause) node()   {}
func (i *IfClause) branch() {}

// ElseClause is the unconditional terminal link of a chain.
type ElseClause struct {
	Body *Script
}

func (e *ElseClause) node()   {}
func (e *ElseClause) branch() {}

// CompareOp is a string test operator inside [ ].
type CompareOp string

const (
	OpEq CompareOp = "=="
	OpNe CompareOp = "!="
	OpGt CompareOp = ">"
	OpGe CompareOp = ">="
	OpLt CompareOp = "<"
	OpLe CompareOp = "<="
)

// Comparison is a binary string test: left op right.
type Comparison struct {
	Op    CompareOp
	Left  BashString
	Right BashString
}

// SingleQuoted is a '...' fragment. Single quotes suppress expansion, so
// substitution never touches it.
type SingleQuoted struct {
	Text string
}

func (s *SingleQuoted) node()       {}
func (s *SingleQuoted) bashString() {}

// DoubleQuoted is a "..." fragment; its inner text is substituted.
type DoubleQuoted struct {
	Text string
}

func (d *DoubleQuoted) node()       {}
func (d *DoubleQuoted) bashString() {}

// Unquoted is a bare word fragment; its inner text is substituted.
type Unquoted struct {
	Text string
}

func (u *Unquoted) node()       {}
func (u *Unquoted) bashString() {}

// Backticked is a `...` command substitution. It wraps the embedded
// command as a nested field: substitution recurses into the command's
// arguments, but the command is never evaluated.
type Backticked struct {
	Cmd Field
}

func (b *Backticked) node()       {}
func (b *Backticked) bashString() {}
