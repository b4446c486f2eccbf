package printer

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

func TestPrintFlattenedNestedRules(t *testing.T) {
	// Mirrors the worked nested-rule-flattening scenario: by the time the
	// printer runs, internal/eval has already split `.a { color: red; .b {
	// color: blue; } }` into two sibling top-level rules.
	root := &cssast.Root{Children: []cssast.Node{
		&cssast.StyleRule{
			Selector: classSelector("a"),
			Children: []cssast.Node{&cssast.Declaration{Property: "color", Value: "red"}},
		},
		&cssast.StyleRule{
			Selector: classSelector("b"),
			Children: []cssast.Node{&cssast.Declaration{Property: "color", Value: "blue"}},
		},
	}}

	result := Print(root, Options{Style: Nested})
	require.Equal(t, ".a {\n  color: red;\n}\n.b {\n  color: blue;\n}\n", string(result.CSS))
}

func TestPrintCompressedDropsTrailingSemicolonAndComments(t *testing.T) {
	root := &cssast.Root{Children: []cssast.Node{
		&cssast.Comment{Text: "/* dropped */"},
		&cssast.StyleRule{
			Selector: classSelector("a"),
			Children: []cssast.Node{
				&cssast.Declaration{Property: "color", Value: "red"},
				&cssast.Declaration{Property: "margin", Value: "0"},
			},
		},
	}}

	result := Print(root, Options{Style: Compressed})
	require.Equal(t, ".a{color:red;margin:0}", string(result.CSS))
}

func TestPrintCompactPutsRuleOnOneLine(t *testing.T) {
	root := &cssast.Root{Children: []cssast.Node{
		&cssast.StyleRule{
			Selector: classSelector("a"),
			Children: []cssast.Node{
				&cssast.Declaration{Property: "color", Value: "red"},
				&cssast.Declaration{Property: "margin", Value: "0"},
			},
		},
	}}

	result := Print(root, Options{Style: Compact})
	require.Equal(t, ".a { color: red; margin: 0; }\n", string(result.CSS))
}

func TestPrintImportant(t *testing.T) {
	root := &cssast.Root{Children: []cssast.Node{
		&cssast.StyleRule{
			Selector: classSelector("a"),
			Children: []cssast.Node{&cssast.Declaration{Property: "color", Value: "red", Important: true}},
		},
	}}

	result := Print(root, Options{Style: Nested})
	require.Equal(t, ".a {\n  color: red !important;\n}\n", string(result.CSS))
}

func TestPrintHoistsImportsAndPrecedingComments(t *testing.T) {
	root := &cssast.Root{Children: []cssast.Node{
		&cssast.StyleRule{Selector: classSelector("a")},
		&cssast.Comment{Text: "/* before import */"},
		&cssast.Import{Target: "foo.css"},
	}}

	result := Print(root, Options{Style: Nested})
	require.Equal(t, "/* before import */\n@import \"foo.css\";\n.a {\n}\n", string(result.CSS))
}

func TestPrintReemitsCharsetWhenOutputIsNonASCII(t *testing.T) {
	root := &cssast.Root{
		HasCharset: true,
		Children: []cssast.Node{
			&cssast.StyleRule{
				Selector: classSelector("a"),
				Children: []cssast.Node{&cssast.Declaration{Property: "content", Value: `"héllo"`}},
			},
		},
	}

	result := Print(root, Options{Style: Nested})
	require.Equal(t, "@charset \"UTF-8\";\n.a {\n  content: \"héllo\";\n}\n", string(result.CSS))
}

func TestPrintMediaRule(t *testing.T) {
	root := &cssast.Root{Children: []cssast.Node{
		&cssast.MediaRule{
			Queries: cssast.MediaQueryList{Queries: []cssast.MediaQuery{{Type: "screen", Features: []string{"(min-width: 100px)"}}}},
			Children: []cssast.Node{
				&cssast.StyleRule{
					Selector: classSelector("a"),
					Children: []cssast.Node{&cssast.Declaration{Property: "color", Value: "red"}},
				},
			},
		},
	}}

	result := Print(root, Options{Style: Nested})
	require.Equal(t, "@media screen and (min-width: 100px) {\n  .a {\n    color: red;\n  }\n}\n", string(result.CSS))
}

func TestPrintMinifiesCombinatorsButKeepsDescendantSpace(t *testing.T) {
	sel := ast.SelectorList{Complex: []ast.ComplexSelector{{Compounds: []ast.CompoundSelector{
		{Subclasses: []ast.SimpleSelector{&ast.SSClass{Name: "a"}}},
		{Combinator: ">", Subclasses: []ast.SimpleSelector{&ast.SSClass{Name: "b"}}},
		{Combinator: " ", Subclasses: []ast.SimpleSelector{&ast.SSClass{Name: "c"}}},
	}}}}
	root := &cssast.Root{Children: []cssast.Node{&cssast.StyleRule{Selector: sel}}}

	result := Print(root, Options{Style: Compressed})
	require.Equal(t, ".a>.b .c{}", string(result.CSS))
}

func TestQuoteCSSString(t *testing.T) {
	require.Equal(t, `"foo"`, quoteCSSString("foo"))
	require.Equal(t, `'f"o'`, quoteCSSString(`f"o`))
	require.Equal(t, `"f'o"`, quoteCSSString(`f'o`))
	require.Equal(t, `"f\"'\"o"`, quoteCSSString(`f"'"o`))
	require.Equal(t, `"f\\o"`, quoteCSSString(`f\o`))
	require.Equal(t, "\"f\\a o\"", quoteCSSString("f\no"))
}
