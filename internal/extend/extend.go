// Package extend implements C8 (spec §4.6): the selector-extension engine
// that rewrites the evaluated CSS tree in place once `@extend` directives
// collected during C7 are known.
//
// The teacher has no selector or @extend concept at all (its CSS AST never
// rewrites selectors post-parse), so this package is new code grounded on
// spec §4.6's five-step algorithm and, for the harder edge cases (the
// media-query compatibility rule, the mandatory-extend-unsatisfied error),
// on libsass's documented behavior referenced via original_source/.
//
// Scope decision: a Rule's Target is matched only when it is a single
// compound selector (one ComplexSelector with one CompoundSelector) — the
// overwhelming majority of real `@extend` usage (`@extend .foo`,
// `@extend %placeholder`, `@extend .foo.bar`). A multi-compound complex
// target (`@extend .foo > .bar`) never matches anything: Apply reports it
// as an unsatisfied ExtendError when it is mandatory, and an `!optional`
// one is dropped without a message.
package extend

import (
	"fmt"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/cssast"
)

// Rule is one `@extend` directive collected while evaluating a style rule's
// body: Extender is that rule's own (already `&`-resolved) selector,
// Target is the selector written after `@extend`, and MediaContext is the
// chain of ancestor @media queries the rule that wrote the @extend sits
// under.
type Rule struct {
	Extender     ast.SelectorList
	Target       ast.SelectorList
	Optional     bool
	MediaContext cssast.MediaQueryList
}

// Error implements the spec §7 ExtendError: "a mandatory @extend (no
// `!optional`) whose target selector never appears anywhere in the output."
type Error struct {
	Target string
}

func (e *Error) Error() string {
	return fmt.Sprintf("The target selector %q was not found in the stylesheet.", e.Target)
}

// Apply rewrites root in place per spec §4.6's algorithm: for each rule, for
// each style rule reachable in a media context compatible with the rule's,
// find every compound selector matching the rule's target and splice in a
// unified copy of the rule's extender selector.
func Apply(root *cssast.Root, rules []Rule) error {
	satisfied := make([]bool, len(rules))
	walk(root.Children, cssast.MediaQueryList{}, func(sr *cssast.StyleRule, ctx cssast.MediaQueryList) {
		for i, r := range rules {
			if len(r.MediaContext.Queries) > 0 && !ctx.EqualModuloOrder(r.MediaContext) {
				continue
			}
			added := applyOne(sr, r)
			if added {
				satisfied[i] = true
			}
		}
	})
	for i, r := range rules {
		if !r.Optional && !satisfied[i] {
			return &Error{Target: targetText(r.Target)}
		}
	}
	return nil
}

// walk visits every StyleRule in the tree depth-first, tracking the
// effective media-query context (the merge of all ancestor @media rules)
// each one sits under, recursing into every other node kind that can carry
// nested rules.
func walk(nodes []cssast.Node, ctx cssast.MediaQueryList, visit func(*cssast.StyleRule, cssast.MediaQueryList)) {
	for _, n := range nodes {
		switch t := n.(type) {
		case *cssast.StyleRule:
			visit(t, ctx)
			walk(t.Children, ctx, visit)
		case *cssast.MediaRule:
			merged, ok := cssast.Merge(ctx, t.Queries)
			if !ok {
				merged = t.Queries
			}
			walk(t.Children, merged, visit)
		case *cssast.SupportsRule:
			walk(t.Children, ctx, visit)
		case *cssast.AtRule:
			walk(t.Children, ctx, visit)
		case *cssast.KeyframesRule:
			for _, blk := range t.Blocks {
				walk(blk.Children, ctx, visit)
			}
		}
	}
}

// applyOne matches rule.Target against every complex selector in sr's
// selector list and, for each match, appends a unified complex selector
// built by splicing rule.Extender in place of the matched compound.
// Returns true if at least one match was found (so Apply can track whether
// a mandatory extend was ever satisfied).
func applyOne(sr *cssast.StyleRule, rule Rule) bool {
	if len(rule.Target.Complex) != 1 || len(rule.Target.Complex[0].Compounds) != 1 {
		return false
	}
	targetCompound := rule.Target.Complex[0].Compounds[0]

	matched := false
	var added []ast.ComplexSelector
	existing := make(map[string]bool)
	for _, c := range sr.Selector.Complex {
		existing[complexKey(c)] = true
	}

	for _, complex := range sr.Selector.Complex {
		for ci, compound := range complex.Compounds {
			if !compoundContains(compound, targetCompound) {
				continue
			}
			matched = true
			rest := ast.CompoundSelector{Combinator: compound.Combinator, TypeSelector: compound.TypeSelector}
			if targetCompound.TypeSelector != nil {
				rest.TypeSelector = nil
			}
			for _, s := range compound.Subclasses {
				if !containsSimple(targetCompound.Subclasses, s) {
					rest.Subclasses = append(rest.Subclasses, s)
				}
			}
			for _, extComplex := range rule.Extender.Complex {
				unified := spliceCompound(complex, ci, rest, extComplex)
				key := complexKey(unified)
				if !existing[key] {
					existing[key] = true
					added = append(added, unified)
				}
			}
		}
	}
	if matched {
		sr.Selector.Complex = append(sr.Selector.Complex, added...)
	}
	return matched
}

// compoundContains reports whether haystack carries every simple selector
// (and type selector, if any) that target does — the "is target a subset
// of this compound" test spec §4.6 step 2 describes.
func compoundContains(haystack, target ast.CompoundSelector) bool {
	if target.TypeSelector != nil {
		if haystack.TypeSelector == nil || haystack.TypeSelector.Name != target.TypeSelector.Name {
			return false
		}
	}
	for _, ts := range target.Subclasses {
		if !containsSimple(haystack.Subclasses, ts) {
			return false
		}
	}
	return true
}

func containsSimple(list []ast.SimpleSelector, target ast.SimpleSelector) bool {
	for _, s := range list {
		if simpleEqual(s, target) {
			return true
		}
	}
	return false
}

func simpleEqual(a, b ast.SimpleSelector) bool {
	switch at := a.(type) {
	case *ast.SSClass:
		bt, ok := b.(*ast.SSClass)
		return ok && at.Name == bt.Name
	case *ast.SSID:
		bt, ok := b.(*ast.SSID)
		return ok && at.Name == bt.Name
	case *ast.SSPlaceholder:
		bt, ok := b.(*ast.SSPlaceholder)
		return ok && at.Name == bt.Name
	case *ast.SSPseudo:
		bt, ok := b.(*ast.SSPseudo)
		return ok && at.Name == bt.Name && at.ArgText == bt.ArgText
	case *ast.SSAttribute:
		bt, ok := b.(*ast.SSAttribute)
		return ok && at.Name.Name == bt.Name.Name && at.MatcherOp == bt.MatcherOp && at.Value == bt.Value
	default:
		return false
	}
}

// spliceCompound replaces compounds[index] (which matched the target) with
// the merge of its own non-matched subclasses plus extComplex's compounds,
// the way Sass unifies an extender into the place its target used to occupy
// (spec §4.6 step 3 "unification").
func spliceCompound(complex ast.ComplexSelector, index int, matched ast.CompoundSelector, extComplex ast.ComplexSelector) ast.ComplexSelector {
	if len(extComplex.Compounds) == 0 {
		return complex
	}
	var out []ast.CompoundSelector
	out = append(out, complex.Compounds[:index]...)

	extCopy := append([]ast.CompoundSelector{}, extComplex.Compounds...)
	last := len(extCopy) - 1
	merged := extCopy[last]
	if merged.TypeSelector == nil {
		merged.TypeSelector = matched.TypeSelector
	}
	merged.Subclasses = append(append([]ast.SimpleSelector{}, matched.Subclasses...), merged.Subclasses...)
	if index == 0 {
		merged.Combinator = matched.Combinator
	} else {
		extCopy[0].Combinator = matched.Combinator
	}
	extCopy[last] = merged

	out = append(out, extCopy...)
	out = append(out, complex.Compounds[index+1:]...)
	return ast.ComplexSelector{Compounds: out}
}

func complexKey(c ast.ComplexSelector) string {
	s := ""
	for _, comp := range c.Compounds {
		s += comp.Combinator + "|"
		if comp.TypeSelector != nil {
			s += comp.TypeSelector.Name
		}
		for _, sub := range comp.Subclasses {
			s += fmt.Sprintf("%T:%v", sub, sub)
		}
		s += ";"
	}
	return s
}

func targetText(sl ast.SelectorList) string {
	if len(sl.Complex) == 0 || len(sl.Complex[0].Compounds) == 0 {
		return ""
	}
	c := sl.Complex[0].Compounds[0]
	s := ""
	if c.TypeSelector != nil {
		s += c.TypeSelector.Name
	}
	for _, sub := range c.Subclasses {
		switch t := sub.(type) {
		case *ast.SSClass:
			s += "." + t.Name
		case *ast.SSID:
			s += "#" + t.Name
		case *ast.SSPlaceholder:
			s += "%" + t.Name
		}
	}
	return s
}
