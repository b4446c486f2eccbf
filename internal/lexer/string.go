package lexer

import "strings"

// String reading is interpolation-aware (spec §4.1): the scanner reads a
// literal chunk up to either the closing quote or the start of a `#{`
// interpolation and stops, letting the parser recursively parse the
// interpolated expression and then resume scanning the literal tail. This
// mirrors how the teacher's css_lexer reads TString tokens in one shot,
// generalized because plain CSS strings never contain an expression escape.

// ReadQuotedChunk consumes raw string content up to (not including) the
// closing quote, an unescaped newline (an error in CSS strings), or the
// start of "#{", whichever comes first. ok is false if the string was
// unterminated on this line before a closing quote/interpolation appeared.
func (s *Scanner) ReadQuotedChunk(quote rune) (text string, hitInterpolation bool, ok bool) {
	var b strings.Builder
	for {
		cp := s.codePoint
		switch cp {
		case eof:
			return b.String(), false, false
		case quote:
			return b.String(), false, true
		case '\\':
			s.Read()
			if s.codePoint == eof {
				return b.String(), false, false
			}
			if isNewline(s.codePoint) {
				// Escaped newline inside a string is a line continuation: the
				// newline itself is elided from the decoded text.
				s.Read()
				continue
			}
			b.WriteRune('\\')
			b.WriteRune(s.Read())
		case '#':
			if s.Peek(1) == '{' {
				return b.String(), true, true
			}
			b.WriteRune(s.Read())
		default:
			if isNewline(cp) {
				return b.String(), false, false
			}
			b.WriteRune(s.Read())
		}
	}
}

// ReadUnquotedInterpolatedChunk is the Sass-indented-dialect equivalent for
// bare (non-quoted) values that may themselves contain interpolation, e.g.
// selector text or plain-CSS property values. It stops at the first of:
// `#{`, the given set of stop runes (not consumed), or end of line.
func (s *Scanner) ReadUnquotedInterpolatedChunk(stopAt string) (text string, hitInterpolation bool) {
	var b strings.Builder
	for {
		cp := s.codePoint
		if cp == eof || isNewline(cp) {
			return b.String(), false
		}
		if cp == '#' && s.Peek(1) == '{' {
			return b.String(), true
		}
		if strings.ContainsRune(stopAt, cp) {
			return b.String(), false
		}
		b.WriteRune(s.Read())
	}
}
