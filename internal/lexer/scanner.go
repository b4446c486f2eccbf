// Package lexer is the character-level scanner shared by all three parser
// dialects (spec §4.1, C4). Unlike the teacher's css_lexer — which
// tokenizes an entire CSS file up front into a flat token array, since CSS's
// grammar is context-free at the token level — the Sass grammar is
// indentation-sensitive in its Sass (non-SCSS) dialect and its parser needs
// fine-grained control over exactly how much of "almost any value" to
// consume (interpolation, nested parens, strings). So this scanner exposes
// the primitive cursor operations spec §4.1 names directly and lets
// internal/parser drive them, rather than producing a token stream itself.
//
// The cursor is unicode-aware (step() advances one UTF-8 rune at a time;
// Column is a scalar count, not a byte count) and uniformly treats \r, \r\n,
// \n, and \f as newlines, following the teacher's css_lexer.step() comment
// about line counting and the w3c CSS Syntax Module's newline-normalization
// rule.
package lexer

import (
	"unicode/utf8"

	"github.com/nsass/sass/internal/logger"
)

const eof = -1

// State is an O(1) snapshot for backtracking (spec §4.1 state()/backtrack()).
type State struct {
	pos       int
	codePoint rune
	width     int
	line      int
	column    int
}

type Scanner struct {
	Source *logger.Source

	pos       int
	codePoint rune
	width     int

	line   int
	column int
}

func New(source *logger.Source) *Scanner {
	s := &Scanner{Source: source}
	s.step()
	return s
}

// State returns an O(1) restorable snapshot of the cursor position.
func (s *Scanner) State() State {
	return State{pos: s.pos, codePoint: s.codePoint, width: s.width, line: s.line, column: s.column}
}

func (s *Scanner) Backtrack(st State) {
	s.pos, s.codePoint, s.width, s.line, s.column = st.pos, st.codePoint, st.width, st.line, st.column
}

// Pos is the current byte offset, used to build logger.Range spans.
func (s *Scanner) Pos() int32 { return int32(s.pos) }

func (s *Scanner) Loc() logger.Loc { return logger.Loc{Start: int32(s.pos)} }

func (s *Scanner) RangeFrom(start logger.Loc) logger.Range {
	return logger.Range{Loc: start, Len: int32(s.pos) - start.Start}
}

// CodePoint is the rune at the cursor, or -1 at end of file.
func (s *Scanner) CodePoint() rune { return s.codePoint }

func (s *Scanner) Line() int   { return s.line }
func (s *Scanner) Column() int { return s.column }

func (s *Scanner) step() {
	text := s.Source.Contents
	if s.pos >= len(text) {
		s.codePoint = eof
		s.width = 0
		return
	}
	cp, width := utf8.DecodeRuneInString(text[s.pos:])
	if isNewline(cp) {
		// Treat CRLF as a single newline unit so Line/Column stay in sync with
		// the \r\n pair as one logical line break.
		if cp == '\r' && s.pos+1 < len(text) && text[s.pos+1] == '\n' {
			width = 2
		}
		s.line++
		s.column = 0
	} else {
		s.column++
	}
	s.codePoint = cp
	s.width = width
}

func isNewline(cp rune) bool {
	return cp == '\n' || cp == '\r' || cp == '\f'
}

// Read consumes and returns the current code point, advancing the cursor.
func (s *Scanner) Read() rune {
	cp := s.codePoint
	if cp == eof {
		return eof
	}
	s.pos += s.width
	s.step()
	return cp
}

// Peek looks ahead k code points without consuming; Peek(0) is CodePoint(),
// Peek(1) is the code point immediately after it, and so on.
func (s *Scanner) Peek(k int) rune {
	if k == 0 {
		return s.codePoint
	}
	st := s.State()
	defer s.Backtrack(st)
	for i := 0; i < k; i++ {
		if s.codePoint == eof {
			return eof
		}
		s.Read()
	}
	return s.codePoint
}

// PeekString reports whether the next len(literal) bytes equal literal,
// without consuming.
func (s *Scanner) PeekString(literal string) bool {
	return s.pos+len(literal) <= len(s.Source.Contents) && s.Source.Contents[s.pos:s.pos+len(literal)] == literal
}

// Scan conditionally consumes literal, returning whether it matched.
func (s *Scanner) Scan(literal string) bool {
	if !s.PeekString(literal) {
		return false
	}
	// Advance by rune, not by byte, so line/column stay correct even though
	// we already verified the raw bytes matched.
	for i := 0; i < len(literal); {
		_, w := utf8.DecodeRuneInString(literal[i:])
		s.Read()
		i += w
	}
	return true
}

// Expect consumes literal or returns an error referencing the current
// position (spec §4.1 expect()).
func (s *Scanner) Expect(literal string) error {
	if s.Scan(literal) {
		return nil
	}
	return &ScanError{Loc: s.Loc(), Message: "expected " + literal}
}

type ScanError struct {
	Loc     logger.Loc
	Message string
}

func (e *ScanError) Error() string { return e.Message }

func (s *Scanner) AtEOF() bool { return s.codePoint == eof }

// SkipWhitespace consumes horizontal/vertical CSS whitespace (space, tab,
// newlines, form feed) and reports whether it consumed at least one.
func (s *Scanner) SkipWhitespace() bool {
	any := false
	for {
		switch s.codePoint {
		case ' ', '\t', '\n', '\r', '\f':
			s.Read()
			any = true
			continue
		}
		break
	}
	return any
}
