package env

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsass/sass/internal/value"
)

func TestFrameSetVarRewritesEnclosing(t *testing.T) {
	root := NewFrame(nil)
	root.DeclareLocal("x", value.Num(1))

	child := NewFrame(root)
	child.SetVar("x", value.Num(2))

	v, ok := root.GetVar("x")
	require.True(t, ok)
	require.True(t, value.Equals(v, value.Num(2)))
	require.False(t, child.HasLocalVar("x"))
}

func TestFrameSetVarDeclaresLocalWhenUnseen(t *testing.T) {
	root := NewFrame(nil)
	child := NewFrame(root)
	child.SetVar("y", value.Num(5))

	_, ok := root.GetVar("y")
	require.False(t, ok)

	v, ok := child.GetVar("y")
	require.True(t, ok)
	require.True(t, value.Equals(v, value.Num(5)))
}

func TestFrameSetGlobalAlwaysBindsRoot(t *testing.T) {
	root := NewFrame(nil)
	mid := NewFrame(root)
	leaf := NewFrame(mid)

	leaf.SetGlobal("g", value.Num(9))

	v, ok := root.GetVar("g")
	require.True(t, ok)
	require.True(t, value.Equals(v, value.Num(9)))
	require.False(t, mid.HasLocalVar("g"))
}

func TestIsPublic(t *testing.T) {
	require.True(t, IsPublic("foo"))
	require.False(t, IsPublic("_foo"))
	require.False(t, IsPublic("-foo"))
}

func TestExportsMergeForwardedRespectsShowAndPrefix(t *testing.T) {
	src := NewExports()
	src.Vars["a"] = value.Num(1)
	src.Vars["b"] = value.Num(2)

	dst := NewExports()
	dst.MergeForwarded(src, ForwardFilter{Prefix: "ns-", Show: map[string]bool{"a": true}})

	_, hasA := dst.Vars["ns-a"]
	_, hasB := dst.Vars["ns-b"]
	require.True(t, hasA)
	require.False(t, hasB)
}

func TestExportsMergeForwardedNeverOverwritesExisting(t *testing.T) {
	dst := NewExports()
	dst.Vars["a"] = value.Num(100)

	src := NewExports()
	src.Vars["a"] = value.Num(1)

	dst.MergeForwarded(src, ForwardFilter{})

	v := dst.Vars["a"]
	require.True(t, value.Equals(v, value.Num(100)))
}

func TestGraphGetPut(t *testing.T) {
	g := NewGraph()
	_, ok := g.Get("/a.scss")
	require.False(t, ok)

	m := NewModule("/a.scss", nil)
	g.Put("/a.scss", m)

	got, ok := g.Get("/a.scss")
	require.True(t, ok)
	require.Same(t, m, got)
}
