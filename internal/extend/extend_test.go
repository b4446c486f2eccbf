package extend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/cssast"
)

func classSelector(name string) ast.SelectorList {
	return ast.SelectorList{Complex: []ast.ComplexSelector{{Compounds: []ast.CompoundSelector{
		{Subclasses: []ast.SimpleSelector{&ast.SSClass{Name: name}}},
	}}}}
}

func TestApplyAddsUnifiedSelector(t *testing.T) {
	root := &cssast.Root{Children: []cssast.Node{
		&cssast.StyleRule{Selector: classSelector("message")},
	}}
	rule := Rule{Extender: classSelector("error"), Target: classSelector("message")}

	err := Apply(root, []Rule{rule})
	require.NoError(t, err)

	sr := root.Children[0].(*cssast.StyleRule)
	require.Len(t, sr.Selector.Complex, 2)
}

func TestApplyMandatoryUnsatisfiedErrors(t *testing.T) {
	root := &cssast.Root{Children: []cssast.Node{
		&cssast.StyleRule{Selector: classSelector("unrelated")},
	}}
	rule := Rule{Extender: classSelector("error"), Target: classSelector("missing")}

	err := Apply(root, []Rule{rule})
	require.Error(t, err)
}

func TestApplyOptionalUnsatisfiedNoError(t *testing.T) {
	root := &cssast.Root{Children: []cssast.Node{
		&cssast.StyleRule{Selector: classSelector("unrelated")},
	}}
	rule := Rule{Extender: classSelector("error"), Target: classSelector("missing"), Optional: true}

	err := Apply(root, []Rule{rule})
	require.NoError(t, err)
}
