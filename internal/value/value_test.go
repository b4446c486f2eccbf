package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsass/sass/internal/value"
)

func TestUnitAddition(t *testing.T) {
	// 5px + 5px = 10px
	sum, err := value.Add(value.NumUnit(5, "px"), value.NumUnit(5, "px"))
	require.NoError(t, err)
	require.True(t, value.Equals(sum, value.NumUnit(10, "px")))

	// 5px + 5 = 10px
	sum, err = value.Add(value.NumUnit(5, "px"), value.Num(5))
	require.NoError(t, err)
	require.True(t, value.Equals(sum, value.NumUnit(10, "px")))

	// 5 + 5px = 10px
	sum, err = value.Add(value.Num(5), value.NumUnit(5, "px"))
	require.NoError(t, err)
	require.True(t, value.Equals(sum, value.NumUnit(10, "px")))

	// 5px + 5em -> error
	_, err = value.Add(value.NumUnit(5, "px"), value.NumUnit(5, "em"))
	require.Error(t, err)
}

func TestUnitConversionEquality(t *testing.T) {
	// (1in + 1cm) == 2.54cm
	sum, err := value.Add(value.NumUnit(1, "in"), value.NumUnit(1, "cm"))
	require.NoError(t, err)
	require.True(t, value.Equals(sum, value.NumUnit(2.54, "cm")))
	require.Equal(t, value.Hash(sum), value.Hash(value.NumUnit(2.54, "cm")))
}

func TestDivisionByZero(t *testing.T) {
	inf, err := value.Div(value.Num(1), value.Num(0))
	require.NoError(t, err)
	n := inf.(*value.Number)
	require.True(t, n.Val > 1e300)

	nan, err := value.Div(value.Num(0), value.Num(0))
	require.NoError(t, err)
	require.True(t, nan.(*value.Number).Val != nan.(*value.Number).Val)
}

func TestStringConcatQuotePreservation(t *testing.T) {
	// "a" + unquoted b -> quoted "ab"
	res, err := value.Add(value.QuotedString("a"), value.UnquotedString("b"))
	require.NoError(t, err)
	s := res.(*value.Str)
	require.True(t, s.Quoted)
	require.Equal(t, "ab", s.Text)

	// unquoted a + "b" -> unquoted ab"b" (left quoting wins, right re-stringified via inspect)
	res, err = value.Add(value.UnquotedString("a"), value.QuotedString("b"))
	require.NoError(t, err)
	s = res.(*value.Str)
	require.False(t, s.Quoted)
	require.Equal(t, "ab\"b\"", s.Text)
}

func TestColorRoundTrip(t *testing.T) {
	c := value.RGBA(255, 0, 0, 1)
	h, s, l, _ := c.HSLA()
	rt := value.HSLA(h, s, l, 1)
	r1, g1, b1, _ := c.RGBA()
	r2, g2, b2, _ := rt.RGBA()
	require.InDelta(t, r1, r2, 1)
	require.InDelta(t, g1, g2, 1)
	require.InDelta(t, b1, b2, 1)
	require.True(t, value.Equals(c, rt))
}

func TestMapEqualsEmptyList(t *testing.T) {
	require.True(t, value.Equals(value.NewMap(), value.NewList(value.SepComma, false)))
}

func TestColorArithmeticIsError(t *testing.T) {
	_, err := value.Add(value.RGBA(1, 2, 3, 1), value.Num(1))
	require.Error(t, err)
	_, err = value.Mul(value.RGBA(1, 2, 3, 1), value.RGBA(1, 2, 3, 1))
	require.Error(t, err)
}
