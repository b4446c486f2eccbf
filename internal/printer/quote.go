package printer

import "strings"

// quoteCSSString renders text as a quoted CSS string (spec §4.8 "Quoted
// strings emit with a preferred quote (double by default; use single if
// the content contains double quotes but no single; escape as needed)"),
// grounded on the teacher's css_printer.bestQuoteCharForString but
// simplified to the spec's exact two-way rule rather than the teacher's
// cost-weighted choice among three quote styles (CSS strings, unlike the
// teacher's URL tokens, are never unquoted).
func quoteCSSString(text string) string {
	quote := byte('"')
	if strings.ContainsRune(text, '"') && !strings.ContainsRune(text, '\'') {
		quote = '\''
	}
	var b strings.Builder
	b.WriteByte(quote)
	for _, c := range text {
		switch {
		case c == rune(quote) || c == '\\':
			b.WriteByte('\\')
			b.WriteRune(c)
		case c == '\n':
			b.WriteString(`\a `)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
