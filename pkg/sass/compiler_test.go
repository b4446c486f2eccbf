package sass

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsass/sass/internal/value"
)

func TestCompileSimpleStylesheet(t *testing.T) {
	c := NewCompiler()
	c.SetEntryPointContent(".a {\n  color: red;\n  .b { color: blue; }\n}\n", "entry.scss")
	c.Options().OutputStyle = "nested"

	err := c.Execute()
	require.NoError(t, err)
	require.Equal(t, ".a {\n  color: red;\n}\n.a .b {\n  color: blue;\n}\n", string(c.CSS()))
}

func TestCompileRejectsUnknownOutputStyle(t *testing.T) {
	c := NewCompiler()
	c.SetEntryPointContent(".a { color: red; }", "entry.scss")
	c.Options().OutputStyle = "bogus"

	err := c.Execute()
	require.Error(t, err)
	require.Same(t, err, c.Err())
}

func TestCompileReportsParseErrorKind(t *testing.T) {
	c := NewCompiler()
	c.SetEntryPointContent(".a { color: ; }", "entry.scss")

	err := c.Execute()
	require.Error(t, err)
	require.Equal(t, KindParse, c.Err().Kind)
}

func TestRegisterFunctionIsCallableFromStylesheet(t *testing.T) {
	c := NewCompiler()
	c.RegisterFunction("double($n)", func(args []value.Value) (value.Value, error) {
		n, ok := args[0].(*value.Number)
		if !ok {
			return nil, errors.New("double() expects a number")
		}
		return &value.Number{Val: n.Val * 2}, nil
	})
	c.SetEntryPointContent(".a { width: double(3); }", "entry.scss")
	c.Options().OutputStyle = "compressed"

	err := c.Execute()
	require.NoError(t, err)
	require.Equal(t, ".a{width:6}", string(c.CSS()))
}

func TestSetOptionDispatchesToTypedFields(t *testing.T) {
	c := NewCompiler()
	require.NoError(t, c.SetOption("output-style", "compressed"))
	require.NoError(t, c.SetOption("precision", 4))
	require.Error(t, c.SetOption("not-a-real-key", true))
	require.Equal(t, "compressed", c.Options().OutputStyle)
	require.Equal(t, 4, c.Options().Precision)
}
