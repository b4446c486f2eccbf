package printer

import (
	"strings"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/cssast"
)

// writeSelectorList prints a resolved selector list (spec §4.8 serializing
// C8/C9's output) at depth, grounded on the teacher's
// css_printer.printComplexSelectors/printCompoundSelector/
// printNamespacedName, generalized for this compiler's own
// ast.SelectorList/CompoundSelector/SimpleSelector types (which
// additionally carry the placeholder subclass selector the teacher has no
// concept of -- though by the time the printer runs, C9 has already
// removed every selector containing one).
func (p *printer) writeSelectorList(sl ast.SelectorList, depth int32) {
	var b strings.Builder
	multiLine := !p.minifyWhitespace() && !p.oneLine() && len(sl.Complex) > 1
	for i, complex := range sl.Complex {
		if i > 0 {
			switch {
			case p.minifyWhitespace():
				b.WriteByte(',')
			case multiLine:
				b.WriteString(",\n")
				b.WriteString(strings.Repeat("  ", int(depth)))
			default:
				b.WriteString(", ")
			}
		}
		writeComplexSelector(&b, complex, p.minifyWhitespace())
	}
	p.print(b.String())
}

// writeComplexSelector separates each compound with its combinator.
// Descendant combinators always need the one significant space; explicit
// combinators (">","+","~") drop their surrounding spaces under the
// compressed style, matching real minifiers' "no whitespace except where
// it is part of the selector's meaning" rule.
func writeComplexSelector(b *strings.Builder, c ast.ComplexSelector, minify bool) {
	for i, comp := range c.Compounds {
		if i > 0 {
			switch comp.Combinator {
			case "", " ":
				b.WriteByte(' ')
			default:
				if !minify {
					b.WriteByte(' ')
				}
				b.WriteString(comp.Combinator)
				if !minify {
					b.WriteByte(' ')
				}
			}
		}
		writeCompoundSelector(b, comp)
	}
}

func writeCompoundSelector(b *strings.Builder, c ast.CompoundSelector) {
	if c.HasNestParent {
		b.WriteByte('&')
	}
	if c.TypeSelector != nil {
		writeNamespacedName(b, *c.TypeSelector)
	}
	for _, sub := range c.Subclasses {
		writeSimpleSelector(b, sub)
	}
}

func writeNamespacedName(b *strings.Builder, n ast.NamespacedName) {
	if n.NamespacePrefix != nil {
		b.WriteString(*n.NamespacePrefix)
		b.WriteByte('|')
	}
	b.WriteString(n.Name)
}

func writeSimpleSelector(b *strings.Builder, sub ast.SimpleSelector) {
	switch t := sub.(type) {
	case *ast.SSClass:
		b.WriteByte('.')
		b.WriteString(t.Name)
	case *ast.SSID:
		b.WriteByte('#')
		b.WriteString(t.Name)
	case *ast.SSPlaceholder:
		b.WriteByte('%')
		b.WriteString(t.Name)
	case *ast.SSAttribute:
		b.WriteByte('[')
		writeNamespacedName(b, t.Name)
		if t.MatcherOp != "" {
			b.WriteString(t.MatcherOp)
			b.WriteString(quoteCSSString(t.Value))
			if t.CaseModifier != 0 {
				b.WriteByte(' ')
				b.WriteByte(t.CaseModifier)
			}
		}
		b.WriteByte(']')
	case *ast.SSPseudo:
		if t.IsElement {
			b.WriteString("::")
		} else {
			b.WriteByte(':')
		}
		b.WriteString(t.Name)
		if t.ArgText != "" {
			b.WriteByte('(')
			b.WriteString(t.ArgText)
			b.WriteByte(')')
		} else if t.Args != nil {
			b.WriteByte('(')
			for i, arg := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				writeComplexSelectorList(b, arg)
			}
			b.WriteByte(')')
		}
	}
}

func writeComplexSelectorList(b *strings.Builder, sl ast.SelectorList) {
	for i, c := range sl.Complex {
		if i > 0 {
			b.WriteString(", ")
		}
		writeComplexSelector(b, c, false)
	}
}

// writeMediaQueryList prints a resolved media query list back into the
// query grammar it was parsed from (spec §4.8's printer serializes C7's
// already-evaluated MediaRule nodes, not raw source text, since a query
// may have come from an interpolated `@media #{$bp}` header).
func (p *printer) writeMediaQueryList(l cssast.MediaQueryList) {
	var b strings.Builder
	for i, q := range l.Queries {
		if i > 0 {
			b.WriteString(", ")
		}
		writeMediaQuery(&b, q)
	}
	p.print(b.String())
}

func writeMediaQuery(b *strings.Builder, q cssast.MediaQuery) {
	wroteType := false
	switch {
	case q.Not:
		b.WriteString("not ")
	case q.Only:
		b.WriteString("only ")
	}
	if q.Type != "" {
		b.WriteString(q.Type)
		wroteType = true
	}
	for i, f := range q.Features {
		if wroteType || i > 0 {
			b.WriteString(" and ")
		}
		b.WriteString(f)
		wroteType = true
	}
}
