// Package prune implements C9 (spec §4.7): the placeholder pruner, which
// runs after C8's extension engine and removes every selector that still
// contains a `%placeholder` subclass selector (placeholders are never legal
// CSS and exist only to be targeted by `@extend`). A style rule left with no
// selectors at all after pruning is dropped entirely, and so is one left
// with no children at all: a style rule is invisible once every child it
// carries is invisible, grounded on original_source/src/css_invisible.cpp's
// IsCssInvisibleVisitor/EveryCssVisitor pair, whose base case for a rule
// with zero children is "invisible" (the for-loop over elements is
// vacuously true). Declarations, at-rules, and imports are never invisible
// themselves, so a rule with any of those as a child always survives.
package prune

import (
	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/cssast"
)

// Root removes placeholder-only selectors and rules throughout tree,
// recursing into every node kind that can carry nested rules.
func Root(root *cssast.Root) {
	root.Children = pruneChildren(root.Children)
}

func pruneChildren(nodes []cssast.Node) []cssast.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if keep, pruned := pruneNode(n); keep {
			out = append(out, pruned)
		}
	}
	return out
}

func pruneNode(n cssast.Node) (bool, cssast.Node) {
	switch t := n.(type) {
	case *cssast.StyleRule:
		t.Selector.Complex = withoutPlaceholders(t.Selector.Complex)
		if len(t.Selector.Complex) == 0 {
			return false, nil
		}
		t.Children = pruneChildren(t.Children)
		if len(t.Children) == 0 {
			return false, nil
		}
		return true, t
	case *cssast.MediaRule:
		t.Children = pruneChildren(t.Children)
		return len(t.Children) > 0, t
	case *cssast.SupportsRule:
		t.Children = pruneChildren(t.Children)
		return len(t.Children) > 0, t
	case *cssast.AtRule:
		t.Children = pruneChildren(t.Children)
		return true, t
	case *cssast.KeyframesRule:
		return true, t
	default:
		return true, n
	}
}

func withoutPlaceholders(complex []ast.ComplexSelector) []ast.ComplexSelector {
	out := complex[:0]
	for _, c := range complex {
		if !c.ContainsPlaceholder() {
			out = append(out, c)
		}
	}
	return out
}
