package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Inspect renders a value the way Sass's "inspect()" / interpolation
// stringification does (spec §4.5: "#{…} interpolations stringify their
// operand using inspection form (which differs from CSS form for certain
// values, notably unquoted strings and colors)"). Inspection form shows
// quoted strings with their quotes and always uses functional color notation.
func Inspect(v Value) string {
	switch t := v.(type) {
	case nullValue:
		return "null"
	case Bool:
		if bool(t) {
			return "true"
		}
		return "false"
	case *Number:
		return inspectNumber(t)
	case *Str:
		if t.Quoted {
			return strconv.Quote(t.Text)
		}
		return t.Text
	case *colorValue:
		return inspectColor(t)
	case *List:
		return inspectList(t, true)
	case *Map:
		if len(t.Entries) == 0 {
			return "()"
		}
		parts := make([]string, len(t.Entries))
		for i, e := range t.Entries {
			parts[i] = Inspect(e.Key) + ": " + Inspect(e.Value)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *ArgList:
		return inspectList(t.List, true)
	case *Fn:
		return "get-function(" + strconv.Quote(t.Name) + ")"
	case *MixinRef:
		return "mixin " + t.Name
	case *CustomError:
		return "Error: " + t.Message
	case *CustomWarning:
		return "Warning: " + t.Message
	default:
		return fmt.Sprintf("%v", v)
	}
}

func inspectList(l *List, forInspect bool) string {
	sep := ", "
	switch l.Separator {
	case SepSpace:
		sep = " "
	case SepSlash:
		sep = " / "
	}
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		text := Inspect(item)
		if needsParensInList(item, l.Separator) {
			text = "(" + text + ")"
		}
		parts[i] = text
	}
	text := strings.Join(parts, sep)
	if l.HasBrackets {
		return "[" + text + "]"
	}
	if len(l.Items) == 0 {
		return "()"
	}
	if len(l.Items) == 1 && l.Separator == SepComma {
		return "(" + text + ",)"
	}
	return text
}

func needsParensInList(item Value, outer Separator) bool {
	inner, ok := item.(*List)
	if !ok || inner.HasBrackets {
		return false
	}
	if len(inner.Items) < 2 {
		return false
	}
	if outer == SepComma && inner.Separator == SepComma {
		return true
	}
	if outer == SepSpace && (inner.Separator == SepSpace || inner.Separator == SepComma) {
		return true
	}
	return false
}

// inspectNumber formats with the default (full) precision used for
// debugging/inspection; final CSS emission goes through ToCSS, which
// honors the configured precision (spec §4.8).
func inspectNumber(n *Number) string {
	s := formatFloat(n.Val, 10)
	for _, u := range n.Numerators {
		s += u
	}
	if len(n.Denominators) > 0 {
		s += "/" + strings.Join(n.Denominators, "/")
	}
	return s
}

// formatFloat trims trailing zeros, mirroring the CSS emission rule in
// spec §4.8 ("Trailing zeros after the decimal point are trimmed").
func formatFloat(v float64, precision int) string {
	if v != v { // NaN
		return "NaN"
	}
	if v > 1.7e308 {
		return "Infinity"
	}
	if v < -1.7e308 {
		return "-Infinity"
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

func inspectColor(c *colorValue) string {
	switch c.repr {
	case reprHSLA:
		if c.a >= 1 {
			return fmt.Sprintf("hsl(%sdeg %s%% %s%%)", formatFloat(c.h, 10), formatFloat(c.s, 10), formatFloat(c.l, 10))
		}
		return fmt.Sprintf("hsla(%sdeg %s%% %s%% / %s)", formatFloat(c.h, 10), formatFloat(c.s, 10), formatFloat(c.l, 10), formatFloat(c.a, 10))
	case reprHWBA:
		if c.a >= 1 {
			return fmt.Sprintf("hwb(%sdeg %s%% %s%%)", formatFloat(c.h, 10), formatFloat(c.wh, 10), formatFloat(c.bl, 10))
		}
		return fmt.Sprintf("hwb(%sdeg %s%% %s%% / %s)", formatFloat(c.h, 10), formatFloat(c.wh, 10), formatFloat(c.bl, 10), formatFloat(c.a, 10))
	default:
		r, g, b := c.ClampedRGB()
		if c.a >= 1 {
			return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
		}
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatFloat(c.a, 10))
	}
}
