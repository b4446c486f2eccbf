package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsass/sass/internal/ast"
	"github.com/nsass/sass/internal/logger"
)

func parseSource(t *testing.T, contents string, dialect Dialect) *ast.Stylesheet {
	t.Helper()
	source := &logger.Source{KeyPath: logger.Path{Text: "entry"}, PrettyPath: "entry", Contents: contents}
	sheet, err := Parse(source, dialect)
	require.NoError(t, err)
	return sheet
}

func expectParseErrorDialect(t *testing.T, contents string, dialect Dialect) *ParseError {
	t.Helper()
	source := &logger.Source{KeyPath: logger.Path{Text: "entry"}, PrettyPath: "entry", Contents: contents}
	_, err := Parse(source, dialect)
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok, "expected *ParseError, got %T", err)
	return pe
}

func TestParseSCSSStyleRuleWithNestedDeclaration(t *testing.T) {
	sheet := parseSource(t, ".a { color: red; .b { color: blue; } }", DialectSCSS)
	require.Len(t, sheet.Body, 1)
	rule, ok := sheet.Body[0].(*ast.SStyleRule)
	require.True(t, ok)
	require.Len(t, rule.Body, 2)

	decl, ok := rule.Body[0].(*ast.SDeclaration)
	require.True(t, ok)
	require.Len(t, decl.Property, 1)
	require.Equal(t, "color", decl.Property[0].Text)

	nested, ok := rule.Body[1].(*ast.SStyleRule)
	require.True(t, ok)
	require.Len(t, nested.Body, 1)
}

func TestParseSassIndentedDialectUsesIndentationForBlocks(t *testing.T) {
	src := ".a\n  color: red\n  .b\n    color: blue\n"
	sheet := parseSource(t, src, DialectSass)
	require.Len(t, sheet.Body, 1)
	rule, ok := sheet.Body[0].(*ast.SStyleRule)
	require.True(t, ok)
	require.Len(t, rule.Body, 2)
	_, ok = rule.Body[1].(*ast.SStyleRule)
	require.True(t, ok)
}

func TestParseVariableDeclarationWithDefaultFlag(t *testing.T) {
	sheet := parseSource(t, "$x: 1px !default;", DialectSCSS)
	require.Len(t, sheet.Body, 1)
	decl, ok := sheet.Body[0].(*ast.SVariableDecl)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)
	require.True(t, decl.Default)
}

func TestParseIfElseChain(t *testing.T) {
	src := "@if $a { color: red; } @else if $b { color: blue; } @else { color: green; }"
	sheet := parseSource(t, src, DialectSCSS)
	require.Len(t, sheet.Body, 1)
	ifStmt, ok := sheet.Body[0].(*ast.SIf)
	require.True(t, ok)
	require.Len(t, ifStmt.Clauses, 3)
	require.NotNil(t, ifStmt.Clauses[0].Cond)
	require.NotNil(t, ifStmt.Clauses[1].Cond)
	require.Nil(t, ifStmt.Clauses[2].Cond)
}

func TestParseEachForWhile(t *testing.T) {
	sheet := parseSource(t, `
@each $a, $b in $map { color: $a; }
@for $i from 1 through 3 { width: $i; }
@while $x { height: 1px; }
`, DialectSCSS)
	require.Len(t, sheet.Body, 3)

	each, ok := sheet.Body[0].(*ast.SEach)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, each.Vars)

	forStmt, ok := sheet.Body[1].(*ast.SFor)
	require.True(t, ok)
	require.True(t, forStmt.Inclusive)

	_, ok = sheet.Body[2].(*ast.SWhile)
	require.True(t, ok)
}

func TestParseMixinIncludeFunctionReturn(t *testing.T) {
	sheet := parseSource(t, `
@mixin box($a, $b: 1px) { width: $a; }
@include box(2px);
@function double($n) { @return $n * 2; }
`, DialectSCSS)
	require.Len(t, sheet.Body, 3)

	mixin, ok := sheet.Body[0].(*ast.SMixinDecl)
	require.True(t, ok)
	require.Equal(t, "box", mixin.Name)
	require.Len(t, mixin.Params, 2)

	include, ok := sheet.Body[1].(*ast.SInclude)
	require.True(t, ok)
	require.Equal(t, "box", include.Name)

	fn, ok := sheet.Body[2].(*ast.SFunctionDecl)
	require.True(t, ok)
	require.Len(t, fn.Body, 1)
	_, ok = fn.Body[0].(*ast.SReturn)
	require.True(t, ok)
}

func TestParseUseForwardImport(t *testing.T) {
	sheet := parseSource(t, `
@use "lib" as l;
@forward "lib" show $color;
@import "legacy";
`, DialectSCSS)
	require.Len(t, sheet.Body, 3)

	use, ok := sheet.Body[0].(*ast.SUse)
	require.True(t, ok)
	require.Equal(t, "lib", use.URL)

	_, ok = sheet.Body[1].(*ast.SForward)
	require.True(t, ok)

	_, ok = sheet.Body[2].(*ast.SImport)
	require.True(t, ok)
}

func TestParseExtendDeclaration(t *testing.T) {
	sheet := parseSource(t, ".warning { @extend .error; }", DialectSCSS)
	rule := sheet.Body[0].(*ast.SStyleRule)
	require.Len(t, rule.Body, 1)
	_, ok := rule.Body[0].(*ast.SExtend)
	require.True(t, ok)
}

func TestParseKeepsLoudAndSilentComments(t *testing.T) {
	sheet := parseSource(t, "/* loud */\n// silent\n.a { color: red; }", DialectSCSS)
	require.Len(t, sheet.Body, 3)
	_, ok := sheet.Body[0].(*ast.SLoudComment)
	require.True(t, ok)
	_, ok = sheet.Body[1].(*ast.SSilentComment)
	require.True(t, ok)
}

func TestParsePlainCSSRejectsSassDirectives(t *testing.T) {
	pe := expectParseErrorDialect(t, ".a { @if true { color: red; } }", DialectCSS)
	require.Contains(t, pe.Message, "@if")
}

func TestParsePlainCSSRejectsSilentComments(t *testing.T) {
	expectParseErrorDialect(t, "// nope\n.a { color: red; }", DialectCSS)
}

func TestParseCSSRequiresQuotedImportURL(t *testing.T) {
	expectParseErrorDialect(t, "@import foo;", DialectCSS)
}

func TestParseSassAllowsBareImportURL(t *testing.T) {
	sheet := parseSource(t, "@import foo\n", DialectSass)
	require.Len(t, sheet.Body, 1)
	_, ok := sheet.Body[0].(*ast.SImport)
	require.True(t, ok)
}

func TestParseInterpolationInSelector(t *testing.T) {
	sheet := parseSource(t, ".#{$name} { color: red; }", DialectSCSS)
	rule := sheet.Body[0].(*ast.SStyleRule)
	foundExpr := false
	for _, part := range rule.Selector {
		if part.Expr != nil {
			foundExpr = true
		}
	}
	require.True(t, foundExpr)
}

func TestParseUnterminatedBlockIsParseError(t *testing.T) {
	expectParseErrorDialect(t, ".a { color: red;", DialectSCSS)
}

func TestParseVariableDeclMissingColonIsParseError(t *testing.T) {
	// Error recovery is absent: the first error aborts the parse (spec
	// §4.2).
	expectParseErrorDialect(t, "$x 1px;", DialectSCSS)
}
