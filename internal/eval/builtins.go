package eval

import (
	"fmt"
	"math"
	"strings"

	"github.com/nsass/sass/internal/value"
)

// registerBuiltins installs the built-in Sass function library (spec §4.5
// "Built-in functions") into ev.globalFuncs, grouped the way libsass/dart-
// sass split their native-function registries: math, string, list, map,
// color, and meta/introspection.
func registerBuiltins(ev *Evaluator) {
	for _, b := range mathBuiltins() {
		ev.globalFuncs[b.Name] = b
	}
	for _, b := range stringBuiltins() {
		ev.globalFuncs[b.Name] = b
	}
	for _, b := range listBuiltins() {
		ev.globalFuncs[b.Name] = b
	}
	for _, b := range mapBuiltins() {
		ev.globalFuncs[b.Name] = b
	}
	for _, b := range colorBuiltins() {
		ev.globalFuncs[b.Name] = b
	}
	for _, b := range metaBuiltins() {
		ev.globalFuncs[b.Name] = b
	}
}

func wantNumber(v value.Value, who string) (*value.Number, error) {
	n, ok := v.(*value.Number)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a number.", who, value.Inspect(v))
	}
	return n, nil
}

func wantString(v value.Value, who string) (*value.Str, error) {
	s, ok := v.(*value.Str)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a string.", who, value.Inspect(v))
	}
	return s, nil
}

func wantColor(v value.Value, who string) (value.Color, error) {
	col, ok := v.(value.Color)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a color.", who, value.Inspect(v))
	}
	return col, nil
}

// ---- math ------------------------------------------------------------

func mathBuiltins() []*Builtin {
	unary := func(name string, fn func(float64) float64) *Builtin {
		return newBuiltin(name, func(ev *Evaluator, args []value.Value) (value.Value, error) {
			n, err := wantNumber(args[0], name)
			if err != nil {
				return nil, err
			}
			return value.NumUnits(fn(n.Val), n.Numerators, n.Denominators), nil
		}, "number")
	}
	return []*Builtin{
		unary("abs", math.Abs),
		newBuiltin("ceil", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			n, err := wantNumber(args[0], "ceil")
			if err != nil {
				return nil, err
			}
			return n.Ceil(), nil
		}, "number"),
		newBuiltin("floor", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			n, err := wantNumber(args[0], "floor")
			if err != nil {
				return nil, err
			}
			return n.Floor(), nil
		}, "number"),
		newBuiltin("round", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			n, err := wantNumber(args[0], "round")
			if err != nil {
				return nil, err
			}
			return n.Round(), nil
		}, "number"),
		newBuiltin("sqrt", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			n, err := wantNumber(args[0], "sqrt")
			if err != nil {
				return nil, err
			}
			if !n.Unitless() {
				return nil, fmt.Errorf("sqrt: %s is not unitless.", value.Inspect(n))
			}
			return value.Num(math.Sqrt(n.Val)), nil
		}, "number"),
		newBuiltin("pow", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			base, err := wantNumber(args[0], "pow")
			if err != nil {
				return nil, err
			}
			exp, err := wantNumber(args[1], "pow")
			if err != nil {
				return nil, err
			}
			return value.Num(math.Pow(base.Val, exp.Val)), nil
		}, "base", "exponent"),
		newBuiltin("percentage", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			n, err := wantNumber(args[0], "percentage")
			if err != nil {
				return nil, err
			}
			if !n.Unitless() {
				return nil, fmt.Errorf("percentage: %s is not unitless.", value.Inspect(n))
			}
			return value.NumUnit(n.Val*100, "%"), nil
		}, "number"),
		newBuiltin("min", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			return minMax(args, "min", func(a, b float64) bool { return a < b })
		}),
		newBuiltin("max", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			return minMax(args, "max", func(a, b float64) bool { return a > b })
		}),
		newBuiltin("comparable", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			a, err := wantNumber(args[0], "comparable")
			if err != nil {
				return nil, err
			}
			b, err := wantNumber(args[1], "comparable")
			if err != nil {
				return nil, err
			}
			_, err = value.Add(a, b)
			return value.Boolean(err == nil), nil
		}, "number1", "number2"),
	}
}

func minMax(args []value.Value, who string, better func(a, b float64) bool) (value.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s() requires at least one argument.", who)
	}
	best, err := wantNumber(args[0], who)
	if err != nil {
		return nil, err
	}
	for _, a := range args[1:] {
		n, err := wantNumber(a, who)
		if err != nil {
			return nil, err
		}
		if better(n.Val, best.Val) {
			best = n
		}
	}
	return best, nil
}

// ---- string ------------------------------------------------------------

func stringBuiltins() []*Builtin {
	return []*Builtin{
		newBuiltin("quote", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			s, err := wantString(args[0], "quote")
			if err != nil {
				return nil, err
			}
			return value.QuotedString(s.Text), nil
		}, "string"),
		newBuiltin("unquote", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			s, err := wantString(args[0], "unquote")
			if err != nil {
				return nil, err
			}
			return value.UnquotedString(s.Text), nil
		}, "string"),
		newBuiltin("str-length", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			s, err := wantString(args[0], "str-length")
			if err != nil {
				return nil, err
			}
			return value.Num(float64(len([]rune(s.Text)))), nil
		}, "string"),
		newBuiltin("to-upper-case", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			s, err := wantString(args[0], "to-upper-case")
			if err != nil {
				return nil, err
			}
			return &value.Str{Text: strings.ToUpper(s.Text), Quoted: s.Quoted}, nil
		}, "string"),
		newBuiltin("to-lower-case", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			s, err := wantString(args[0], "to-lower-case")
			if err != nil {
				return nil, err
			}
			return &value.Str{Text: strings.ToLower(s.Text), Quoted: s.Quoted}, nil
		}, "string"),
		newBuiltinWithDefaults("str-slice", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			s, err := wantString(args[0], "str-slice")
			if err != nil {
				return nil, err
			}
			start, err := wantNumber(args[1], "str-slice")
			if err != nil {
				return nil, err
			}
			end := len([]rune(s.Text))
			if len(args) > 2 {
				endN, err := wantNumber(args[2], "str-slice")
				if err != nil {
					return nil, err
				}
				end = int(endN.Val)
			}
			runes := []rune(s.Text)
			from := sassIndex(int(start.Val), len(runes))
			to := sassIndex(end, len(runes)) + 1
			if from < 0 {
				from = 0
			}
			if to > len(runes) {
				to = len(runes)
			}
			if from >= to {
				return &value.Str{Text: "", Quoted: s.Quoted}, nil
			}
			return &value.Str{Text: string(runes[from:to]), Quoted: s.Quoted}, nil
		}, []string{"string", "start-at", "end-at"}, []value.Value{nil, nil, value.Num(-1)}),
		newBuiltin("str-index", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			s, err := wantString(args[0], "str-index")
			if err != nil {
				return nil, err
			}
			sub, err := wantString(args[1], "str-index")
			if err != nil {
				return nil, err
			}
			idx := strings.Index(s.Text, sub.Text)
			if idx < 0 {
				return value.Null, nil
			}
			return value.Num(float64(len([]rune(s.Text[:idx])) + 1)), nil
		}, "string", "substring"),
		newBuiltin("str-insert", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			s, err := wantString(args[0], "str-insert")
			if err != nil {
				return nil, err
			}
			ins, err := wantString(args[1], "str-insert")
			if err != nil {
				return nil, err
			}
			at, err := wantNumber(args[2], "str-insert")
			if err != nil {
				return nil, err
			}
			runes := []rune(s.Text)
			idx := sassIndex(int(at.Val), len(runes)+1)
			if idx < 0 {
				idx = 0
			}
			if idx > len(runes) {
				idx = len(runes)
			}
			out := string(runes[:idx]) + ins.Text + string(runes[idx:])
			return &value.Str{Text: out, Quoted: s.Quoted}, nil
		}, "string", "insert", "index"),
	}
}

// sassIndex converts a 1-based (possibly negative, counting from the end)
// Sass string index into a 0-based Go index.
func sassIndex(i, length int) int {
	if i > 0 {
		return i - 1
	}
	if i < 0 {
		return length + i
	}
	return 0
}

// ---- list ----------------------------------------------------------------

func listItems(v value.Value) ([]value.Value, value.Separator, bool) {
	switch t := v.(type) {
	case *value.List:
		return t.Items, t.Separator, t.HasBrackets
	case *value.ArgList:
		return t.List.Items, t.List.Separator, t.List.HasBrackets
	default:
		return []value.Value{v}, value.SepSpace, false
	}
}

func listBuiltins() []*Builtin {
	return []*Builtin{
		newBuiltin("length", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			if m, ok := args[0].(*value.Map); ok {
				return value.Num(float64(len(m.Entries))), nil
			}
			items, _, _ := listItems(args[0])
			return value.Num(float64(len(items))), nil
		}, "list"),
		newBuiltin("nth", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			items, _, _ := listItems(args[0])
			n, err := wantNumber(args[1], "nth")
			if err != nil {
				return nil, err
			}
			idx := sassIndex(int(n.Val), len(items))
			if idx < 0 || idx >= len(items) {
				return nil, fmt.Errorf("nth: index %v out of bounds for a list of length %d.", value.Inspect(n), len(items))
			}
			return items[idx], nil
		}, "list", "n"),
		newBuiltin("list-separator", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			_, sep, _ := listItems(args[0])
			switch sep {
			case value.SepComma:
				return value.UnquotedString("comma"), nil
			case value.SepSlash:
				return value.UnquotedString("slash"), nil
			case value.SepSpace:
				return value.UnquotedString("space"), nil
			default:
				return value.UnquotedString("space"), nil
			}
		}, "list"),
		newBuiltin("is-bracketed", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			_, _, brackets := listItems(args[0])
			return value.Boolean(brackets), nil
		}, "list"),
		newBuiltinWithDefaults("join", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			a, sepA, bracketsA := listItems(args[0])
			b, _, _ := listItems(args[1])
			sep := sepA
			if len(args) > 2 {
				if s, ok := args[2].(*value.Str); ok {
					switch s.Text {
					case "comma":
						sep = value.SepComma
					case "space":
						sep = value.SepSpace
					case "slash":
						sep = value.SepSlash
					}
				}
			}
			brackets := bracketsA
			if len(args) > 3 {
				if s, ok := args[3].(*value.Str); ok {
					brackets = s.Text == "true"
				}
			}
			items := append(append([]value.Value{}, a...), b...)
			return value.NewList(sep, brackets, items...), nil
		}, []string{"list1", "list2", "separator", "bracketed"}, []value.Value{nil, nil, value.Null, value.Null}),
		newBuiltinWithDefaults("append", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			a, sep, brackets := listItems(args[0])
			items := append(append([]value.Value{}, a...), args[1])
			return value.NewList(sep, brackets, items...), nil
		}, []string{"list", "val", "separator"}, []value.Value{nil, nil, value.Null}),
		newBuiltin("index", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			items, _, _ := listItems(args[0])
			for i, it := range items {
				if value.Equals(it, args[1]) {
					return value.Num(float64(i + 1)), nil
				}
			}
			return value.Null, nil
		}, "list", "value"),
		newBuiltin("zip", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			var lists [][]value.Value
			min := -1
			for _, a := range args {
				items, _, _ := listItems(a)
				lists = append(lists, items)
				if min == -1 || len(items) < min {
					min = len(items)
				}
			}
			if min < 0 {
				min = 0
			}
			out := make([]value.Value, min)
			for i := 0; i < min; i++ {
				row := make([]value.Value, len(lists))
				for j, l := range lists {
					row[j] = l[i]
				}
				out[i] = value.NewList(value.SepSpace, false, row...)
			}
			return value.NewList(value.SepComma, false, out...), nil
		}),
	}
}

// ---- map -------------------------------------------------------------

func mapBuiltins() []*Builtin {
	wantMap := func(v value.Value, who string) (*value.Map, error) {
		m, ok := v.(*value.Map)
		if !ok {
			return nil, fmt.Errorf("%s: %s is not a map.", who, value.Inspect(v))
		}
		return m, nil
	}
	return []*Builtin{
		newBuiltin("map-get", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			m, err := wantMap(args[0], "map-get")
			if err != nil {
				return nil, err
			}
			if v, ok := m.Get(args[1]); ok {
				return v, nil
			}
			return value.Null, nil
		}, "map", "key"),
		newBuiltin("map-has-key", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			m, err := wantMap(args[0], "map-has-key")
			if err != nil {
				return nil, err
			}
			_, ok := m.Get(args[1])
			return value.Boolean(ok), nil
		}, "map", "key"),
		newBuiltin("map-keys", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			m, err := wantMap(args[0], "map-keys")
			if err != nil {
				return nil, err
			}
			keys := make([]value.Value, len(m.Entries))
			for i, e := range m.Entries {
				keys[i] = e.Key
			}
			return value.NewList(value.SepComma, false, keys...), nil
		}, "map"),
		newBuiltin("map-values", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			m, err := wantMap(args[0], "map-values")
			if err != nil {
				return nil, err
			}
			vals := make([]value.Value, len(m.Entries))
			for i, e := range m.Entries {
				vals[i] = e.Value
			}
			return value.NewList(value.SepComma, false, vals...), nil
		}, "map"),
		newBuiltin("map-merge", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			a, err := wantMap(args[0], "map-merge")
			if err != nil {
				return nil, err
			}
			b, err := wantMap(args[1], "map-merge")
			if err != nil {
				return nil, err
			}
			out := value.NewMap()
			for _, e := range a.Entries {
				out.Set(e.Key, e.Value)
			}
			for _, e := range b.Entries {
				out.Set(e.Key, e.Value)
			}
			return out, nil
		}, "map1", "map2"),
		newBuiltin("map-remove", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			m, err := wantMap(args[0], "map-remove")
			if err != nil {
				return nil, err
			}
			remove := map[int]bool{}
			for i, e := range m.Entries {
				for _, key := range args[1:] {
					if value.Equals(e.Key, key) {
						remove[i] = true
					}
				}
			}
			out := value.NewMap()
			for i, e := range m.Entries {
				if !remove[i] {
					out.Set(e.Key, e.Value)
				}
			}
			return out, nil
		}),
	}
}

// ---- color -------------------------------------------------------------

func colorBuiltins() []*Builtin {
	channel := func(name string, get func(value.Color) float64) *Builtin {
		return newBuiltin(name, func(ev *Evaluator, args []value.Value) (value.Value, error) {
			c, err := wantColor(args[0], name)
			if err != nil {
				return nil, err
			}
			return value.Num(get(c)), nil
		}, "color")
	}
	return []*Builtin{
		newBuiltinWithDefaults("rgba", colorFromRGBA, []string{"red", "green", "blue", "alpha"}, []value.Value{nil, nil, nil, value.Num(1)}),
		newBuiltinWithDefaults("rgb", colorFromRGBA, []string{"red", "green", "blue", "alpha"}, []value.Value{nil, nil, nil, value.Num(1)}),
		newBuiltinWithDefaults("hsla", colorFromHSLA, []string{"hue", "saturation", "lightness", "alpha"}, []value.Value{nil, nil, nil, value.Num(1)}),
		newBuiltinWithDefaults("hsl", colorFromHSLA, []string{"hue", "saturation", "lightness", "alpha"}, []value.Value{nil, nil, nil, value.Num(1)}),
		channel("red", func(c value.Color) float64 { r, _, _, _ := c.RGBA(); return math.Round(r) }),
		channel("green", func(c value.Color) float64 { _, g, _, _ := c.RGBA(); return math.Round(g) }),
		channel("blue", func(c value.Color) float64 { _, _, b, _ := c.RGBA(); return math.Round(b) }),
		channel("alpha", func(c value.Color) float64 { _, _, _, a := c.RGBA(); return a }),
		channel("opacity", func(c value.Color) float64 { _, _, _, a := c.RGBA(); return a }),
		channel("hue", func(c value.Color) float64 { h, _, _, _ := c.HSLA(); return h }),
		channel("saturation", func(c value.Color) float64 { _, s, _, _ := c.HSLA(); return s }),
		channel("lightness", func(c value.Color) float64 { _, _, l, _ := c.HSLA(); return l }),
		newBuiltinWithDefaults("mix", mixColors, []string{"color1", "color2", "weight"}, []value.Value{nil, nil, value.Num(50)}),
		newBuiltin("lighten", adjustLightness(1), "color", "amount"),
		newBuiltin("darken", adjustLightness(-1), "color", "amount"),
		newBuiltin("saturate", adjustSaturation(1), "color", "amount"),
		newBuiltin("desaturate", adjustSaturation(-1), "color", "amount"),
		newBuiltin("adjust-hue", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			c, err := wantColor(args[0], "adjust-hue")
			if err != nil {
				return nil, err
			}
			deg, err := wantNumber(args[1], "adjust-hue")
			if err != nil {
				return nil, err
			}
			h, s, l, a := c.HSLA()
			return value.HSLA(h+deg.Val, s, l, a), nil
		}, "color", "degrees"),
		newBuiltin("grayscale", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			c, err := wantColor(args[0], "grayscale")
			if err != nil {
				return nil, err
			}
			h, _, l, a := c.HSLA()
			return value.HSLA(h, 0, l, a), nil
		}, "color"),
		newBuiltin("complement", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			c, err := wantColor(args[0], "complement")
			if err != nil {
				return nil, err
			}
			h, s, l, a := c.HSLA()
			return value.HSLA(h+180, s, l, a), nil
		}, "color"),
		newBuiltin("invert", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			c, err := wantColor(args[0], "invert")
			if err != nil {
				return nil, err
			}
			r, g, b, a := c.RGBA()
			return value.RGBA(255-r, 255-g, 255-b, a), nil
		}, "color"),
		newBuiltin("transparentize", adjustAlpha(-1), "color", "amount"),
		newBuiltin("fade-out", adjustAlpha(-1), "color", "amount"),
		newBuiltin("opacify", adjustAlpha(1), "color", "amount"),
		newBuiltin("fade-in", adjustAlpha(1), "color", "amount"),
		newBuiltin("ie-hex-str", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			c, err := wantColor(args[0], "ie-hex-str")
			if err != nil {
				return nil, err
			}
			r, g, b, a := c.RGBA()
			return value.UnquotedString(fmt.Sprintf("#%02X%02X%02X%02X", clampByteRound(a*255), clampByteRound(r), clampByteRound(g), clampByteRound(b))), nil
		}, "color"),
	}
}

func clampByteRound(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return int(math.Round(v))
}

func colorFromRGBA(ev *Evaluator, args []value.Value) (value.Value, error) {
	r, err := wantNumber(args[0], "rgba")
	if err != nil {
		return nil, err
	}
	g, err := wantNumber(args[1], "rgba")
	if err != nil {
		return nil, err
	}
	b, err := wantNumber(args[2], "rgba")
	if err != nil {
		return nil, err
	}
	alpha := 1.0
	if len(args) > 3 && args[3] != nil {
		if a, ok := args[3].(*value.Number); ok {
			alpha = a.Val
		}
	}
	return value.RGBA(r.Val, g.Val, b.Val, alpha), nil
}

func colorFromHSLA(ev *Evaluator, args []value.Value) (value.Value, error) {
	h, err := wantNumber(args[0], "hsla")
	if err != nil {
		return nil, err
	}
	s, err := wantNumber(args[1], "hsla")
	if err != nil {
		return nil, err
	}
	l, err := wantNumber(args[2], "hsla")
	if err != nil {
		return nil, err
	}
	alpha := 1.0
	if len(args) > 3 && args[3] != nil {
		if a, ok := args[3].(*value.Number); ok {
			alpha = a.Val
		}
	}
	return value.HSLA(h.Val, s.Val, l.Val, alpha), nil
}

// mixColors implements spec §8 Scenario 3: a weighted RGBA+alpha blend
// following the CSS Color Module / Sass reference algorithm (normalize
// weight into [-1, 1] against the two colors' alpha difference, then lerp).
func mixColors(ev *Evaluator, args []value.Value) (value.Value, error) {
	c1, err := wantColor(args[0], "mix")
	if err != nil {
		return nil, err
	}
	c2, err := wantColor(args[1], "mix")
	if err != nil {
		return nil, err
	}
	weight := 50.0
	if len(args) > 2 {
		w, err := wantNumber(args[2], "mix")
		if err != nil {
			return nil, err
		}
		weight = w.Val
	}
	r1, g1, b1, a1 := c1.RGBA()
	r2, g2, b2, a2 := c2.RGBA()

	p := weight / 100
	w := 2*p - 1
	da := a1 - a2
	var w1 float64
	if w*da == -1 {
		w1 = w
	} else {
		w1 = (w + da) / (1 + w*da)
	}
	w1 = (w1 + 1) / 2
	w2 := 1 - w1

	r := r1*w1 + r2*w2
	g := g1*w1 + g2*w2
	b := b1*w1 + b2*w2
	a := a1*p + a2*(1-p)
	return value.RGBA(r, g, b, a), nil
}

func adjustLightness(sign float64) BuiltinFn {
	return func(ev *Evaluator, args []value.Value) (value.Value, error) {
		c, err := wantColor(args[0], "lighten/darken")
		if err != nil {
			return nil, err
		}
		amt, err := wantNumber(args[1], "lighten/darken")
		if err != nil {
			return nil, err
		}
		h, s, l, a := c.HSLA()
		l += sign * amt.Val
		if l < 0 {
			l = 0
		}
		if l > 100 {
			l = 100
		}
		return value.HSLA(h, s, l, a), nil
	}
}

func adjustSaturation(sign float64) BuiltinFn {
	return func(ev *Evaluator, args []value.Value) (value.Value, error) {
		c, err := wantColor(args[0], "saturate/desaturate")
		if err != nil {
			return nil, err
		}
		amt, err := wantNumber(args[1], "saturate/desaturate")
		if err != nil {
			return nil, err
		}
		h, s, l, a := c.HSLA()
		s += sign * amt.Val
		if s < 0 {
			s = 0
		}
		if s > 100 {
			s = 100
		}
		return value.HSLA(h, s, l, a), nil
	}
}

func adjustAlpha(sign float64) BuiltinFn {
	return func(ev *Evaluator, args []value.Value) (value.Value, error) {
		c, err := wantColor(args[0], "transparentize/opacify")
		if err != nil {
			return nil, err
		}
		amt, err := wantNumber(args[1], "transparentize/opacify")
		if err != nil {
			return nil, err
		}
		r, g, b, a := c.RGBA()
		a += sign * amt.Val
		if a < 0 {
			a = 0
		}
		if a > 1 {
			a = 1
		}
		return value.RGBA(r, g, b, a), nil
	}
}

// ---- meta/introspection --------------------------------------------------

func metaBuiltins() []*Builtin {
	return []*Builtin{
		newBuiltin("type-of", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			return value.UnquotedString(value.TypeName(args[0])), nil
		}, "value"),
		newBuiltin("inspect", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			return value.UnquotedString(value.Inspect(args[0])), nil
		}, "value"),
		newBuiltin("unit", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			n, err := wantNumber(args[0], "unit")
			if err != nil {
				return nil, err
			}
			text := strings.Join(n.Numerators, "*")
			if len(n.Denominators) > 0 {
				text += "/" + strings.Join(n.Denominators, "*")
			}
			return value.QuotedString(text), nil
		}, "number"),
		newBuiltin("unitless", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			n, err := wantNumber(args[0], "unitless")
			if err != nil {
				return nil, err
			}
			return value.Boolean(n.Unitless()), nil
		}, "number"),
		newBuiltin("not", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			return value.Not(args[0]), nil
		}, "value"),
		newBuiltin("if", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			if args[0].Truthy() {
				return args[1], nil
			}
			return args[2], nil
		}, "condition", "if-true", "if-false"),
		newBuiltin("variable-exists", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			s, err := wantString(args[0], "variable-exists")
			if err != nil {
				return nil, err
			}
			mod := ev.currentModule()
			if mod == nil {
				return value.False, nil
			}
			_, ok := mod.Root.GetVar(s.Text)
			return value.Boolean(ok), nil
		}, "name"),
		newBuiltin("global-variable-exists", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			s, err := wantString(args[0], "global-variable-exists")
			if err != nil {
				return nil, err
			}
			mod := ev.currentModule()
			if mod == nil {
				return value.False, nil
			}
			_, ok := mod.Root.GetVar(s.Text)
			return value.Boolean(ok), nil
		}, "name"),
		newBuiltin("function-exists", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			s, err := wantString(args[0], "function-exists")
			if err != nil {
				return nil, err
			}
			if _, ok := ev.globalFuncs[s.Text]; ok {
				return value.True, nil
			}
			mod := ev.currentModule()
			if mod == nil {
				return value.False, nil
			}
			_, ok := mod.Root.GetFunc(s.Text)
			return value.Boolean(ok), nil
		}, "name"),
		newBuiltin("mixin-exists", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			s, err := wantString(args[0], "mixin-exists")
			if err != nil {
				return nil, err
			}
			mod := ev.currentModule()
			if mod == nil {
				return value.False, nil
			}
			_, ok := mod.Root.GetMixin(s.Text)
			return value.Boolean(ok), nil
		}, "name"),
		newBuiltin("feature-exists", func(ev *Evaluator, args []value.Value) (value.Value, error) {
			return value.False, nil
		}, "feature"),
	}
}
