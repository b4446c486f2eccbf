package lexer

import "strings"

// Identifier/number primitives (spec §4.1). These mirror the CSS Syntax
// Module's "would-start-an-identifier" lookahead rules, generalized with an
// interpolation escape hatch (`#{`) that plain CSS has no concept of.

func isNameStart(cp rune) bool {
	return cp == '_' || cp == '-' || (cp >= 'a' && cp <= 'z') || (cp >= 'A' && cp <= 'Z') || cp >= 0x80
}

func isNameContinue(cp rune) bool {
	return isNameStart(cp) || (cp >= '0' && cp <= '9')
}

func isDigit(cp rune) bool { return cp >= '0' && cp <= '9' }

// WouldStartIdentifier reports whether the scanner is positioned at the
// start of a CSS identifier (including a leading "--" custom-property name
// or an escaped code point).
func (s *Scanner) WouldStartIdentifier() bool {
	cp := s.codePoint
	if cp == '-' {
		second := s.Peek(1)
		return isNameStart(second) || second == '-' || second == '\\'
	}
	return isNameStart(cp) || cp == '\\'
}

// ScanIdent consumes a CSS identifier and returns its literal text
// (escapes un-decoded; the parser decodes escapes only where semantically
// required, matching the teacher's DecodedText-on-demand approach).
func (s *Scanner) ScanIdent() string {
	var b strings.Builder
	for {
		cp := s.codePoint
		if cp == '\\' {
			b.WriteRune(s.Read())
			b.WriteRune(s.Read())
			continue
		}
		if !isNameContinue(cp) {
			break
		}
		b.WriteRune(s.Read())
	}
	return b.String()
}

// WouldStartInterpolation reports whether the cursor is at "#{".
func (s *Scanner) WouldStartInterpolation() bool {
	return s.codePoint == '#' && s.Peek(1) == '{'
}

// WouldStartNumber reports whether the cursor is at the start of a CSS
// number literal (with optional leading sign and optional leading ".").
func (s *Scanner) WouldStartNumber() bool {
	cp := s.codePoint
	if cp == '+' || cp == '-' {
		next := s.Peek(1)
		if isDigit(next) {
			return true
		}
		return next == '.' && isDigit(s.Peek(2))
	}
	if cp == '.' {
		return isDigit(s.Peek(1))
	}
	return isDigit(cp)
}

// ScanNumber consumes a numeric literal's digits (sign, integer part,
// fraction, exponent) and returns the raw text; the caller (parser)
// converts it with strconv.ParseFloat.
func (s *Scanner) ScanNumber() string {
	var b strings.Builder
	if s.codePoint == '+' || s.codePoint == '-' {
		b.WriteRune(s.Read())
	}
	for isDigit(s.codePoint) {
		b.WriteRune(s.Read())
	}
	if s.codePoint == '.' && isDigit(s.Peek(1)) {
		b.WriteRune(s.Read())
		for isDigit(s.codePoint) {
			b.WriteRune(s.Read())
		}
	}
	if s.codePoint == 'e' || s.codePoint == 'E' {
		next := s.Peek(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(s.Peek(2))) {
			b.WriteRune(s.Read())
			if s.codePoint == '+' || s.codePoint == '-' {
				b.WriteRune(s.Read())
			}
			for isDigit(s.codePoint) {
				b.WriteRune(s.Read())
			}
		}
	}
	return b.String()
}

// ScanUnit consumes a unit identifier immediately following a number (for
// TDimension-equivalent literals), or "%" for percentages.
func (s *Scanner) ScanUnit() string {
	if s.codePoint == '%' {
		s.Read()
		return "%"
	}
	if s.WouldStartIdentifier() {
		return s.ScanIdent()
	}
	return ""
}
