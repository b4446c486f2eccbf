package prune

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/cssast"
)

func TestRootDropsPlaceholderOnlyRule(t *testing.T) {
	placeholder := ast.SelectorList{Complex: []ast.ComplexSelector{{Compounds: []ast.CompoundSelector{
		{Subclasses: []ast.SimpleSelector{&ast.SSPlaceholder{Name: "foo"}}},
	}}}}
	kept := ast.SelectorList{Complex: []ast.ComplexSelector{{Compounds: []ast.CompoundSelector{
		{Subclasses: []ast.SimpleSelector{&ast.SSClass{Name: "bar"}}},
	}}}}

	root := &cssast.Root{Children: []cssast.Node{
		&cssast.StyleRule{Selector: placeholder},
		&cssast.StyleRule{Selector: kept, Children: []cssast.Node{
			&cssast.Declaration{Property: "color", Value: "red"},
		}},
	}}

	Root(root)

	require.Len(t, root.Children, 1)
	sr := root.Children[0].(*cssast.StyleRule)
	require.Equal(t, kept, sr.Selector)
}

func TestRootDropsEmptyStyleRule(t *testing.T) {
	selector := ast.SelectorList{Complex: []ast.ComplexSelector{{Compounds: []ast.CompoundSelector{
		{Subclasses: []ast.SimpleSelector{&ast.SSClass{Name: "btn"}}},
	}}}}

	root := &cssast.Root{Children: []cssast.Node{
		&cssast.StyleRule{Selector: selector},
	}}

	Root(root)

	require.Empty(t, root.Children)
}
