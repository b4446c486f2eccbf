package sass

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// compile is a small helper that runs src through the full pipeline with the
// default (nested) output style and returns the produced CSS.
func compile(t *testing.T, src string) string {
	t.Helper()
	c := NewCompiler()
	c.SetEntryPointContent(src, "entry.scss")
	c.Options().OutputStyle = "nested"
	err := c.Execute()
	require.NoError(t, err)
	return string(c.CSS())
}

func TestEvalIfElseChainPicksMatchingBranch(t *testing.T) {
	css := compile(t, `
$mode: dark;
.a {
  @if $mode == light {
    color: white;
  } @else if $mode == dark {
    color: black;
  } @else {
    color: gray;
  }
}
`)
	require.Equal(t, ".a {\n  color: black;\n}\n", css)
}

func TestEvalEachLoopOverList(t *testing.T) {
	css := compile(t, `
@each $name in a, b {
  .#{$name} {
    content: $name;
  }
}
`)
	require.Equal(t, ".a {\n  content: a;\n}\n.b {\n  content: b;\n}\n", css)
}

func TestEvalForLoopInclusiveBound(t *testing.T) {
	css := compile(t, `
@for $i from 1 through 3 {
  .col-#{$i} {
    width: $i;
  }
}
`)
	require.Equal(t, ".col-1 {\n  width: 1;\n}\n.col-2 {\n  width: 2;\n}\n.col-3 {\n  width: 3;\n}\n", css)
}

func TestEvalWhileLoopDecrementsCounter(t *testing.T) {
	css := compile(t, `
$i: 3;
@while $i > 0 {
  .n-#{$i} {
    z-index: $i;
  }
  $i: $i - 1;
}
`)
	require.Equal(t, ".n-3 {\n  z-index: 3;\n}\n.n-2 {\n  z-index: 2;\n}\n.n-1 {\n  z-index: 1;\n}\n", css)
}

func TestEvalMixinWithContentBlock(t *testing.T) {
	css := compile(t, `
@mixin wrap {
  .inner {
    @content;
  }
}
.outer {
  @include wrap {
    color: red;
  }
}
`)
	require.Equal(t, ".outer .inner {\n  color: red;\n}\n", css)
}

func TestEvalMixinDefaultArgument(t *testing.T) {
	css := compile(t, `
@mixin box($size: 1px) {
  width: $size;
}
.a {
  @include box;
}
.b {
  @include box(5px);
}
`)
	require.Equal(t, ".a {\n  width: 1px;\n}\n.b {\n  width: 5px;\n}\n", css)
}

func TestEvalFunctionReturnWithArithmetic(t *testing.T) {
	css := compile(t, `
@function double($n) {
  @return $n * 2;
}
.a {
  width: double(3px);
}
`)
	require.Equal(t, ".a {\n  width: 6px;\n}\n", css)
}

func TestEvalUnitArithmeticAddition(t *testing.T) {
	css := compile(t, `.a { margin: 1px + 2px; }`)
	require.Equal(t, ".a {\n  margin: 3px;\n}\n", css)
}

func TestEvalExtendMergesSelectors(t *testing.T) {
	css := compile(t, `
.error {
  color: red;
}
.warning {
  @extend .error;
  font-weight: bold;
}
`)
	require.Equal(t, ".error, .warning {\n  color: red;\n}\n.warning {\n  font-weight: bold;\n}\n", css)
}

func TestEvalNestedRuleAmpersandRefersToParent(t *testing.T) {
	css := compile(t, `
.btn {
  &:hover {
    color: blue;
  }
}
`)
	require.Equal(t, ".btn:hover {\n  color: blue;\n}\n", css)
}
