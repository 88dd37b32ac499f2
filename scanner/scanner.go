// Package scanner provides quote-boundary-aware scanning over bash source
// text. It encapsulates the tracking of single-quoted, double-quoted, and
// backticked spans plus backslash escapes, so the parser never has to
// maintain its own inSingle/inDouble/escaped flags.
package scanner

// Quote identifies a quoting delimiter kind.
type Quote byte

const (
	None Quote = iota
	Single
	Double
	Backtick
)

// Scanner iterates byte-by-byte over bash text, tracking quote spans and
// escape sequences. After each Next call, Opened and Closed report whether
// the current byte is a delimiter that opened or closed a span, and
// Escaped reports whether the current byte was escaped by a backslash.
//
// Escape rules follow bash: a backslash escapes the following byte in
// unquoted and double-quoted text; inside single quotes and backticks it
// is an ordinary byte. Quote characters inside a backtick span are not
// tracked; the span's inner text is re-scanned when the embedded command
// is parsed.
type Scanner struct {
	src     string
	pos     int
	line    int
	inSgl   bool
	inDbl   bool
	inBt    bool
	escape  bool // next byte is escaped
	escaped bool // current byte was escaped
	opened  Quote
	closed  Quote
}

// New creates a Scanner for the given source text.
// Call Next to advance to the first byte.
func New(src string) *Scanner {
	return &Scanner{src: src, pos: -1, line: 1}
}

// Next advances to the next byte, updating quote and escape state.
// Returns the byte and true, or (0, false) at end of input.
func (s *Scanner) Next() (byte, bool) {
	s.opened, s.closed = None, None
	s.pos++
	if s.pos >= len(s.src) {
		s.escaped = false
		return 0, false
	}
	ch := s.src[s.pos]
	if ch == '\n' {
		s.line++
	}

	if s.escape {
		s.escape = false
		s.escaped = true
		return ch, true
	}
	s.escaped = false
	if ch == '\\' && !s.inSgl && !s.inBt {
		s.escape = true
		return ch, true
	}

	switch ch {
	case '\'':
		if !s.inDbl && !s.inBt {
			if s.inSgl {
				s.closed = Single
			} else {
				s.opened = Single
			}
			s.inSgl = !s.inSgl
		}
	case '"':
		if !s.inSgl && !s.inBt {
			if s.inDbl {
				s.closed = Double
			} else {
				s.opened = Double
			}
			s.inDbl = !s.inDbl
		}
	case '`':
		if !s.inSgl && !s.inDbl {
			if s.inBt {
				s.closed = Backtick
			} else {
				s.opened = Backtick
			}
			s.inBt = !s.inBt
		}
	}
	return ch, true
}

// Opened returns the quote kind opened at the current byte, or None.
func (s *Scanner) Opened() Quote { return s.opened }

// Closed returns the quote kind closed at the current byte, or None.
func (s *Scanner) Closed() Quote { return s.closed }

// Escaped reports whether the current byte was escaped by a backslash.
func (s *Scanner) Escaped() bool { return s.escaped }

// InSingle reports whether the current position is inside a single-quoted
// span, excluding its delimiters.
func (s *Scanner) InSingle() bool { return s.inSgl }

// InDouble reports whether the current position is inside a double-quoted
// span, excluding its delimiters.
func (s *Scanner) InDouble() bool { return s.inDbl }

// InBacktick reports whether the current position is inside a backtick
// span, excluding its delimiters.
func (s *Scanner) InBacktick() bool { return s.inBt }

// InString reports whether the current position is inside any quoted span.
func (s *Scanner) InString() bool { return s.inSgl || s.inDbl || s.inBt }

// InCode reports whether the current byte is plain unquoted code: outside
// every quoted span and not itself a delimiter or an escaped byte.
func (s *Scanner) InCode() bool {
	return !s.InString() && !s.escaped && s.opened == None && s.closed == None
}

// Pos returns the byte offset of the last byte returned by Next,
// or -1 before the first call.
func (s *Scanner) Pos() int { return s.pos }

// Line returns the current 1-based line number.
func (s *Scanner) Line() int { return s.line }

// Peek returns the next byte without advancing, or (0, false) at end.
func (s *Scanner) Peek() (byte, bool) {
	if s.pos+1 >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos+1], true
}
