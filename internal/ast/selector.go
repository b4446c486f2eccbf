package ast

// Selector types mirror the teacher's css_ast.go ComplexSelector/
// CompoundSelector/SS split almost one-to-one, extended with a placeholder
// subclass selector (`%foo`, spec GLOSSARY) that plain CSS has no concept
// of.

// SelectorList is a comma-separated list of complex selectors.
type SelectorList struct {
	Complex []ComplexSelector
}

// ComplexSelector is a sequence of compound selectors joined by combinators.
type ComplexSelector struct {
	Compounds []CompoundSelector
}

// CompoundSelector is a sequence of simple selectors with no combinator
// between them (e.g. `a.b:hover`).
type CompoundSelector struct {
	// Combinator is the combinator preceding this compound in its complex
	// selector ("" for the first compound, otherwise one of ">","+","~"," ").
	Combinator string

	// HasNestParent is true if this compound starts with `&`.
	HasNestParent bool

	TypeSelector *NamespacedName
	Subclasses   []SimpleSelector
}

type NamespacedName struct {
	NamespacePrefix *string
	Name            string
}

// SimpleSelector is never called; it encodes the subclass-selector variant
// type (id, class, placeholder, attribute, pseudo-class/element).
type SimpleSelector interface {
	isSimpleSelector()
}

type SSID struct{ Name string }
type SSClass struct{ Name string }

// SSPlaceholder is a `%foo` selector, matched only via @extend (GLOSSARY).
type SSPlaceholder struct{ Name string }

type SSAttribute struct {
	Name      NamespacedName
	MatcherOp string // "", "=", "~=", "|=", "^=", "$=", "*="
	Value     string
	// CaseModifier is "" (default), "i", or "s".
	CaseModifier byte
}

type SSPseudo struct {
	Name     string
	IsElement bool // "::" form or a known pseudo-element name
	Args     []SelectorList // for functional pseudo-classes like :not(), :is()
	ArgText  string         // raw args for pseudo-classes not parsed as selector lists, e.g. :nth-child(2n+1)
}

func (*SSID) isSimpleSelector()          {}
func (*SSClass) isSimpleSelector()       {}
func (*SSPlaceholder) isSimpleSelector() {}
func (*SSAttribute) isSimpleSelector()   {}
func (*SSPseudo) isSimpleSelector()      {}

// ContainsPlaceholder reports whether any compound in the complex selector
// has a placeholder subclass selector; used by the pruner (C9, spec §4.7).
func (c ComplexSelector) ContainsPlaceholder() bool {
	for _, comp := range c.Compounds {
		for _, ss := range comp.Subclasses {
			if _, ok := ss.(*SSPlaceholder); ok {
				return true
			}
		}
	}
	return false
}
