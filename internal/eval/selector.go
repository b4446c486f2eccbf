package eval

import (
	"strings"

	"github.com/nsass/sass/internal/ast"
)

// ParseSelectorList parses the fully-interpolated text of a style rule's
// selector header into an ast.SelectorList, expanding any `&` parent
// references against parent (the enclosing rule's already-resolved selector,
// nil at the stylesheet's top level).
//
// Interpolation has already been evaluated to plain text by the time this
// runs (spec §4.2: "`&` expansion depends on the enclosing runtime
// selector", which is why selector parsing is deferred to evaluation rather
// than done once in internal/parser). This is a new sub-parser, not shared
// with internal/parser/atrule.go's interpolation-aware raw-text scanning,
// because by this point there is no more interpolation left to track — only
// plain selector grammar.
//
// Scope decision: functional pseudo-class arguments (`:not(...)`, `:is(...)`,
// `:nth-child(2n+1)`) are kept as raw ArgText rather than recursively parsed
// into nested SelectorLists; the extension engine and pruner only need to
// walk top-level compound/complex selectors, and nothing in this compiler
// extends through a pseudo-class argument.
func ParseSelectorList(text string, parent *ast.SelectorList) (ast.SelectorList, error) {
	parts := splitTopLevel(text, ',')
	var out ast.SelectorList
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		complexes, err := parseComplexSelector(part, parent)
		if err != nil {
			return ast.SelectorList{}, err
		}
		out.Complex = append(out.Complex, complexes...)
	}
	return out, nil
}

// splitTopLevel splits s on sep, ignoring occurrences inside (), [], or a
// quoted string.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == sep && depth == 0:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// parseComplexSelector parses one comma-free selector (a chain of compound
// selectors joined by combinators), expanding `&` against parent and
// returning every resulting complex selector (more than one only when `&`
// itself expands into a multi-selector parent).
func parseComplexSelector(s string, parent *ast.SelectorList) ([]ast.ComplexSelector, error) {
	tokens := splitCombinatorChain(s)
	var compounds []ast.CompoundSelector
	for _, tok := range tokens {
		comp, err := parseCompound(tok.text, tok.combinator)
		if err != nil {
			return nil, err
		}
		compounds = append(compounds, comp)
	}
	return expandNesting(compounds, parent), nil
}

type combTok struct {
	combinator string // "" for the first token, else ">","+","~"," "
	text       string
}

// splitCombinatorChain splits a selector chain into compound-selector chunks
// tagged with the combinator that precedes each (spec GLOSSARY "complex
// selector"/"combinator").
func splitCombinatorChain(s string) []combTok {
	s = strings.TrimSpace(s)
	var toks []combTok
	depth := 0
	var quote byte
	start := 0
	pendingComb := ""
	flush := func(end int) {
		chunk := strings.TrimSpace(s[start:end])
		if chunk != "" {
			toks = append(toks, combTok{combinator: pendingComb, text: chunk})
			pendingComb = " "
		}
	}
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			i++
		case c == '"' || c == '\'':
			quote = c
			i++
		case c == '(' || c == '[':
			depth++
			i++
		case c == ')' || c == ']':
			depth--
			i++
		case depth == 0 && (c == '>' || c == '+' || c == '~'):
			flush(i)
			start = i + 1
			pendingComb = string(c)
			i++
		case depth == 0 && (c == ' ' || c == '\t' || c == '\n'):
			flush(i)
			start = i + 1
			i++
		default:
			i++
		}
	}
	flush(len(s))
	return toks
}

// parseCompound parses one compound selector chunk: an optional leading `&`,
// an optional type selector, then any number of subclass selectors.
func parseCompound(s string, combinator string) (ast.CompoundSelector, error) {
	comp := ast.CompoundSelector{Combinator: combinator}
	i := 0
	if i < len(s) && s[i] == '&' {
		comp.HasNestParent = true
		i++
	}
	// Type selector: identifier (with optional namespace prefix "ns|name" or
	// "*") as long as it isn't immediately a subclass-selector marker.
	if i < len(s) {
		if c := s[i]; isIdentStartByte(c) || c == '*' {
			start := i
			for i < len(s) && (isIdentByte(s[i]) || s[i] == '*') {
				i++
			}
			name := s[start:i]
			if i < len(s) && s[i] == '|' {
				i++
				start2 := i
				for i < len(s) && (isIdentByte(s[i]) || s[i] == '*') {
					i++
				}
				ns := name
				name = s[start2:i]
				comp.TypeSelector = &ast.NamespacedName{NamespacePrefix: &ns, Name: name}
			} else {
				comp.TypeSelector = &ast.NamespacedName{Name: name}
			}
		}
	}
	for i < len(s) {
		c := s[i]
		switch c {
		case '.':
			start := i + 1
			i++
			for i < len(s) && isIdentByte(s[i]) {
				i++
			}
			comp.Subclasses = append(comp.Subclasses, &ast.SSClass{Name: s[start:i]})
		case '#':
			start := i + 1
			i++
			for i < len(s) && isIdentByte(s[i]) {
				i++
			}
			comp.Subclasses = append(comp.Subclasses, &ast.SSID{Name: s[start:i]})
		case '%':
			start := i + 1
			i++
			for i < len(s) && isIdentByte(s[i]) {
				i++
			}
			comp.Subclasses = append(comp.Subclasses, &ast.SSPlaceholder{Name: s[start:i]})
		case '[':
			end := matchingBracket(s, i, '[', ']')
			attr := parseAttribute(s[i+1 : end])
			comp.Subclasses = append(comp.Subclasses, attr)
			i = end + 1
		case ':':
			isElement := false
			i++
			if i < len(s) && s[i] == ':' {
				isElement = true
				i++
			}
			start := i
			for i < len(s) && (isIdentByte(s[i]) || s[i] == '-') {
				i++
			}
			name := s[start:i]
			var argText string
			if i < len(s) && s[i] == '(' {
				end := matchingBracket(s, i, '(', ')')
				argText = s[i+1 : end]
				i = end + 1
			}
			comp.Subclasses = append(comp.Subclasses, &ast.SSPseudo{Name: name, IsElement: isElement, ArgText: argText})
		default:
			i++
		}
	}
	return comp, nil
}

func matchingBracket(s string, open int, o, c byte) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case o:
			depth++
		case c:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s)
}

func parseAttribute(inner string) *ast.SSAttribute {
	ops := []string{"~=", "|=", "^=", "$=", "*=", "="}
	for _, op := range ops {
		if idx := strings.Index(inner, op); idx >= 0 {
			name := strings.TrimSpace(inner[:idx])
			rest := strings.TrimSpace(inner[idx+len(op):])
			var caseMod byte
			if strings.HasSuffix(rest, " i") || strings.HasSuffix(rest, " I") {
				caseMod = 'i'
				rest = strings.TrimSpace(rest[:len(rest)-2])
			} else if strings.HasSuffix(rest, " s") || strings.HasSuffix(rest, " S") {
				caseMod = 's'
				rest = strings.TrimSpace(rest[:len(rest)-2])
			}
			rest = strings.Trim(rest, `"'`)
			return &ast.SSAttribute{Name: ast.NamespacedName{Name: name}, MatcherOp: op, Value: rest, CaseModifier: caseMod}
		}
	}
	return &ast.SSAttribute{Name: ast.NamespacedName{Name: strings.TrimSpace(inner)}}
}

func isIdentStartByte(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentByte(c byte) bool {
	return isIdentStartByte(c) || (c >= '0' && c <= '9')
}

// expandNesting resolves `&` occurrences in compounds against parent,
// implementing spec §4.2's runtime-dependent nesting rule. A chain with no
// `&` at all is implicit nesting: parent's complex selectors are prepended
// with a descendant combinator (Sass's ordinary rule-nesting behavior).
func expandNesting(compounds []ast.CompoundSelector, parent *ast.SelectorList) []ast.ComplexSelector {
	if parent == nil {
		return []ast.ComplexSelector{{Compounds: compounds}}
	}
	hasAmp := false
	for _, c := range compounds {
		if c.HasNestParent {
			hasAmp = true
			break
		}
	}
	if !hasAmp {
		var out []ast.ComplexSelector
		for _, p := range parent.Complex {
			merged := append(append([]ast.CompoundSelector{}, p.Compounds...), compounds...)
			out = append(out, ast.ComplexSelector{Compounds: merged})
		}
		return out
	}
	var out []ast.ComplexSelector
	for _, p := range parent.Complex {
		if len(p.Compounds) == 0 {
			continue
		}
		var built []ast.CompoundSelector
		for _, c := range compounds {
			if !c.HasNestParent {
				built = append(built, c)
				continue
			}
			// Substitute "&" with parent's full compound chain; any
			// subclasses written directly on "&" (e.g. "&.active") attach to
			// the last parent compound, matching Sass's compounding rule.
			parentCopy := append([]ast.CompoundSelector{}, p.Compounds...)
			if len(parentCopy) > 0 {
				parentCopy[0].Combinator = c.Combinator
			}
			if c.TypeSelector != nil || len(c.Subclasses) > 0 {
				last := parentCopy[len(parentCopy)-1]
				if c.TypeSelector != nil {
					last.TypeSelector = c.TypeSelector
				}
				last.Subclasses = append(append([]ast.SimpleSelector{}, last.Subclasses...), c.Subclasses...)
				parentCopy[len(parentCopy)-1] = last
			}
			built = append(built, parentCopy...)
		}
		out = append(out, ast.ComplexSelector{Compounds: built})
	}
	return out
}
