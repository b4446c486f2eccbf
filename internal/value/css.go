package value

import (
	"fmt"
	"strconv"
	"strings"
)

// ToCSS renders v the way it is written into a generated declaration value
// (spec §4.8's number/color/string emission rules). This differs from
// Inspect in three ways: numbers are rounded to precision significant
// fractional digits, opaque colors prefer the shortest equivalent hex form
// over functional notation, and unquoted strings/identifiers are emitted
// bare rather than with inspection-form quotes.
//
// ToCSS is called while building a cssast.Declaration, not deferred to
// internal/printer, so that e.g. `@debug` output of an expression and the
// CSS eventually printed for it can never drift apart from running two
// different renderers over the same value.
func ToCSS(v Value, precision int) (string, error) {
	switch t := v.(type) {
	case nullValue:
		return "", fmt.Errorf("null is not a valid CSS value")
	case Bool:
		if bool(t) {
			return "true", nil
		}
		return "false", nil
	case *Number:
		return cssNumber(t, precision), nil
	case *Str:
		return t.Text, nil
	case *colorValue:
		return cssColor(t), nil
	case *List:
		return cssList(t, precision)
	case *ArgList:
		return cssList(t.List, precision)
	case *Map:
		return "", fmt.Errorf("(%s) isn't a valid CSS value", Inspect(v))
	case *Fn, *MixinRef:
		return "", fmt.Errorf("%s isn't a valid CSS value", Inspect(v))
	case *CustomError:
		return "", fmt.Errorf(t.Message)
	case *CustomWarning:
		return "", fmt.Errorf(t.Message)
	default:
		return Inspect(v), nil
	}
}

func cssNumber(n *Number, precision int) string {
	s := formatFloat(n.Val, precision)
	for _, u := range n.Numerators {
		s += u
	}
	if len(n.Denominators) > 0 {
		s += "/" + strings.Join(n.Denominators, "/")
	}
	return s
}

func cssList(l *List, precision int) (string, error) {
	sep := " "
	switch l.Separator {
	case SepComma:
		sep = ", "
	case SepSlash:
		sep = "/"
	}
	parts := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		if _, ok := item.(nullValue); ok {
			continue // null items are dropped from a rendered list, not an error
		}
		text, err := ToCSS(item, precision)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	text := strings.Join(parts, sep)
	if l.HasBrackets {
		return "[" + text + "]", nil
	}
	return text, nil
}

// cssColor prefers the shortest hex form for a fully opaque color (spec
// §4.8 "shortest equivalent representation"), falling back to the
// functional notation matching the color's canonical representation
// otherwise, since hex notation has no alpha channel.
func cssColor(c *colorValue) string {
	if c.a >= 1 {
		r, g, b := c.ClampedRGB()
		hex := hexColor(r, g, b)
		if name, ok := NameForRGB(r, g, b); ok && len(name) < len(hex) {
			return name
		}
		return hex
	}
	switch c.repr {
	case reprHSLA:
		return fmt.Sprintf("hsla(%sdeg %s%% %s%% / %s)", formatFloat(c.h, 10), formatFloat(c.s, 10), formatFloat(c.l, 10), formatFloat(c.a, 10))
	case reprHWBA:
		return fmt.Sprintf("hwb(%sdeg %s%% %s%% / %s)", formatFloat(c.h, 10), formatFloat(c.wh, 10), formatFloat(c.bl, 10), formatFloat(c.a, 10))
	default:
		r, g, b := c.ClampedRGB()
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatFloat(c.a, 10))
	}
}

func hexColor(r, g, b uint8) string {
	if isHexNibbleRepeated(r) && isHexNibbleRepeated(g) && isHexNibbleRepeated(b) {
		return fmt.Sprintf("#%x%x%x", r&0xf, g&0xf, b&0xf)
	}
	return "#" + hex2(r) + hex2(g) + hex2(b)
}

func isHexNibbleRepeated(v uint8) bool { return v>>4 == v&0xf }

func hex2(v uint8) string {
	s := strconv.FormatInt(int64(v), 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
