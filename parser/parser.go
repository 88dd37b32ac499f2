// Package parser parses the bash subset the simplifier models: comments,
// assignments, function definitions, single-bracket string tests, and
// simple commands with quoted or backticked arguments. Anything outside
// the subset is preserved verbatim as an Other field rather than
// rejected, matching the simplifier's fail-soft behavior. Quotes must
// close on the line that opened them.
package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/rubiojr/simplish/ast"
	"github.com/rubiojr/simplish/scanner"
)

// Parser parses bash source into Script ASTs.
type Parser struct{}

// ParseFile reads a shell script and parses it into a Script AST.
func (p *Parser) ParseFile(filename string) (*ast.Script, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return p.ParseSource(string(src), filename)
}

// ParseSource parses raw bash source into a Script AST.
// The name parameter is used for error messages.
func (p *Parser) ParseSource(source, name string) (*ast.Script, error) {
	lines := strings.Split(source, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" && strings.HasSuffix(source, "\n") {
		lines = lines[:n-1]
	}
	pr := &parser{lines: lines}
	fields, _, err := pr.parseUntil(nil)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", name, err)
	}
	return &ast.Script{Fields: fields}, nil
}

var (
	funcDefRe = regexp.MustCompile(`^(\w+)\s*\(\)\s*\{$`)
	assignRe  = regexp.MustCompile(`^([A-Za-z_]\w*)=(.*)$`)
	ifRe      = regexp.MustCompile(`^if\s+\[\s+(.+?)\s+\];\s*then$`)
	elifRe    = regexp.MustCompile(`^elif\s+\[\s+(.+?)\s+\];\s*then$`)
	ifStopRe  = regexp.MustCompile(`^(elif\s.*|else|fi)$`)
	braceRe   = regexp.MustCompile(`^\}$`)
	fiRe      = regexp.MustCompile(`^fi$`)
)

// bashKeywords marks reserved words that lead constructs outside the
// model (loops, case, multiline if forms). Lines starting with one pass
// through as Other fields instead of parsing as commands.
var bashKeywords = map[string]bool{
	"if": true, "then": true, "elif": true, "else": true, "fi": true,
	"for": true, "while": true, "until": true, "do": true, "done": true,
	"case": true, "esac": true, "function": true,
}

type parser struct {
	lines []string
	pos   int // index of the next unconsumed line
}

func (p *parser) next() (string, bool) {
	if p.pos >= len(p.lines) {
		return "", false
	}
	line := p.lines[p.pos]
	p.pos++
	return line, true
}

// errf reports an error on the most recently consumed line (1-based).
func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("%d: %s", p.pos, fmt.Sprintf(format, args...))
}

// parseUntil consumes fields until a line whose trimmed text matches stop,
// returning the fields and the matched line. A nil stop parses to EOF;
// hitting EOF with a non-nil stop is an error (unclosed construct).
func (p *parser) parseUntil(stop *regexp.Regexp) ([]ast.Field, string, error) {
	var fields []ast.Field
	for {
		line, ok := p.next()
		if !ok {
			if stop != nil {
				return nil, "", p.errf("unexpected end of file, unclosed block")
			}
			return fields, "", nil
		}
		trimmed := strings.TrimSpace(line)
		if stop != nil && stop.MatchString(trimmed) {
			return fields, trimmed, nil
		}
		f, err := p.parseField(line, trimmed)
		if err != nil {
			return nil, "", err
		}
		fields = append(fields, f)
	}
}

func (p *parser) parseField(line, trimmed string) (ast.Field, error) {
	switch {
	case trimmed == "" || strings.HasPrefix(trimmed, "#"):
		return &ast.Other{Text: line}, nil

	case funcDefRe.MatchString(trimmed):
		m := funcDefRe.FindStringSubmatch(trimmed)
		body, _, err := p.parseUntil(braceRe)
		if err != nil {
			return nil, err
		}
		return &ast.FuncDef{Name: m[1], Body: &ast.Script{Fields: body}}, nil

	case ifRe.MatchString(trimmed):
		return p.parseIf(trimmed)

	case assignRe.MatchString(trimmed):
		m := assignRe.FindStringSubmatch(trimmed)
		words, err := p.lexWords(m[2])
		if err != nil {
			return nil, err
		}
		switch len(words) {
		case 0:
			return &ast.Assign{Name: m[1]}, nil
		case 1:
			return &ast.Assign{Name: m[1], Value: words[0]}, nil
		}
		// name=v cmd is an env-prefixed command; out of the model.
		return &ast.Other{Text: line}, nil

	default:
		cmd, err := p.parseCommand(trimmed)
		if err != nil {
			return nil, err
		}
		if cmd == nil {
			return &ast.Other{Text: line}, nil
		}
		return cmd, nil
	}
}

// parseIf consumes an if/elif/else/fi construct starting at its already
// consumed `if [ ... ]; then` line.
func (p *parser) parseIf(trimmed string) (ast.Field, error) {
	cond, err := p.parseCondition(ifRe, trimmed)
	if err != nil {
		return nil, err
	}
	chain := &ast.IfClause{Cond: cond}
	cur := chain
	for {
		body, term, err := p.parseUntil(ifStopRe)
		if err != nil {
			return nil, err
		}
		cur.Body = &ast.Script{Fields: body}
		switch term {
		case "fi":
			return &ast.IfBlock{Chain: chain}, nil
		case "else":
			elseBody, _, err := p.parseUntil(fiRe)
			if err != nil {
				return nil, err
			}
			cur.Next = &ast.ElseClause{Body: &ast.Script{Fields: elseBody}}
			return &ast.IfBlock{Chain: chain}, nil
		default:
			cond, err := p.parseCondition(elifRe, term)
			if err != nil {
				return nil, err
			}
			next := &ast.IfClause{Cond: cond}
			cur.Next = next
			cur = next
		}
	}
}

// parseCondition extracts the binary string test from an if or elif line.
func (p *parser) parseCondition(re *regexp.Regexp, line string) (ast.Comparison, error) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return ast.Comparison{}, p.errf("malformed test: %s", line)
	}
	words, err := p.lexWords(m[1])
	if err != nil {
		return ast.Comparison{}, err
	}
	if len(words) != 3 {
		return ast.Comparison{}, p.errf("expected binary string test in [ %s ]", m[1])
	}
	left, ok := singleSegment(words[0])
	if !ok {
		return ast.Comparison{}, p.errf("unsupported test operand in [ %s ]", m[1])
	}
	opText, ok := bareWord(words[1])
	if !ok {
		return ast.Comparison{}, p.errf("unsupported test operator in [ %s ]", m[1])
	}
	op, ok := compareOp(opText)
	if !ok {
		return ast.Comparison{}, p.errf("unsupported test operator %q", opText)
	}
	right, ok := singleSegment(words[2])
	if !ok {
		return ast.Comparison{}, p.errf("unsupported test operand in [ %s ]", m[1])
	}
	return ast.Comparison{Op: op, Left: left, Right: right}, nil
}

// parseCommand parses text as a simple command. Returns (nil, nil) when
// the text is outside the model (multi-segment words, non-bare command
// name) so the caller can fall back to an Other field.
func (p *parser) parseCommand(text string) (ast.Field, error) {
	words, err := p.lexWords(text)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, nil
	}
	name, ok := bareWord(words[0])
	if !ok || bashKeywords[name] {
		return nil, nil
	}
	args := make([]ast.BashString, 0, len(words)-1)
	for _, w := range words[1:] {
		seg, ok := singleSegment(w)
		if !ok {
			return nil, nil
		}
		args = append(args, seg)
	}
	return &ast.Command{Name: name, Args: args}, nil
}

// parseEmbedded parses the text inside backticks as the command it wraps.
func (p *parser) parseEmbedded(text string) (ast.Field, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, p.errf("empty command substitution")
	}
	cmd, err := p.parseCommand(trimmed)
	if err != nil {
		return nil, err
	}
	if cmd == nil {
		return nil, p.errf("command substitution must be a simple command")
	}
	return cmd, nil
}

// lexWords splits text into whitespace-separated words, each word an
// ordered list of quote-typed segments. Delimiters are stripped from
// segment text; backslashes stay in place so rendering round-trips.
func (p *parser) lexWords(text string) ([][]ast.BashString, error) {
	sc := scanner.New(text)
	var words [][]ast.BashString
	var word []ast.BashString
	var buf strings.Builder

	flushUnquoted := func() {
		if buf.Len() > 0 {
			word = append(word, &ast.Unquoted{Text: buf.String()})
			buf.Reset()
		}
	}
	flushWord := func() {
		flushUnquoted()
		if len(word) > 0 {
			words = append(words, word)
			word = nil
		}
	}

	for {
		ch, ok := sc.Next()
		if !ok {
			break
		}
		switch {
		case sc.Opened() != scanner.None:
			flushUnquoted()
		case sc.Closed() == scanner.Single:
			word = append(word, &ast.SingleQuoted{Text: buf.String()})
			buf.Reset()
		case sc.Closed() == scanner.Double:
			word = append(word, &ast.DoubleQuoted{Text: buf.String()})
			buf.Reset()
		case sc.Closed() == scanner.Backtick:
			cmd, err := p.parseEmbedded(buf.String())
			if err != nil {
				return nil, err
			}
			buf.Reset()
			word = append(word, &ast.Backticked{Cmd: cmd})
		case sc.InCode() && (ch == ' ' || ch == '\t'):
			flushWord()
		default:
			buf.WriteByte(ch)
		}
	}
	if sc.InString() {
		return nil, p.errf("unterminated quote")
	}
	flushWord()
	return words, nil
}

func singleSegment(w []ast.BashString) (ast.BashString, bool) {
	if len(w) != 1 {
		return nil, false
	}
	return w[0], true
}

func bareWord(w []ast.BashString) (string, bool) {
	seg, ok := singleSegment(w)
	if !ok {
		return "", false
	}
	u, ok := seg.(*ast.Unquoted)
	if !ok {
		return "", false
	}
	return u.Text, true
}

func compareOp(s string) (ast.CompareOp, bool) {
	switch s {
	case "=", "==":
		return ast.OpEq, true
	case "!=":
		return ast.OpNe, true
	case ">":
		return ast.OpGt, true
	case ">=":
		return ast.OpGe, true
	case "<":
		return ast.OpLt, true
	case "<=":
		return ast.OpLe, true
	}
	return "", false
}
