package value

import (
	"fmt"
	"math"
)

// OpError names the two variants and the operator, per spec §4.3
// ("Unsupported pairs raise a typed error naming the two variants and the
// operator").
type OpError struct {
	Op          string
	Left, Right Value
}

func (e *OpError) Error() string {
	return fmt.Sprintf("Undefined operation %q for %s %s %s.", e.Op, TypeName(e.Left), e.Op, TypeName(e.Right))
}

func TypeName(v Value) string {
	switch v.(type) {
	case nullValue:
		return "null"
	case Bool:
		return "bool"
	case *Number:
		return "number"
	case *Str:
		return "string"
	case *colorValue:
		return "color"
	case *List:
		return "list"
	case *Map:
		return "map"
	case *ArgList:
		return "arglist"
	case *Fn:
		return "function"
	case *MixinRef:
		return "mixin"
	case *Calculation:
		return "calculation"
	default:
		return "value"
	}
}

// Add implements the "+" operator's two-level dispatch: first on the left
// operand's variant, then (where more than one right variant is accepted)
// on the right's.
func Add(l, r Value) (Value, error) {
	switch lv := l.(type) {
	case *Number:
		if rv, ok := r.(*Number); ok {
			return numberAdd(lv, rv)
		}
		if _, ok := r.(*colorValue); ok {
			return nil, &OpError{"+", l, r}
		}
		return concatString(asUnquoted(lv), r)
	case *Str:
		return concatString(lv, r)
	case *colorValue:
		return nil, &OpError{"+", l, r}
	default:
		return concatString(asUnquoted(l), r)
	}
}

func asUnquoted(v Value) *Str {
	if s, ok := v.(*Str); ok {
		return s
	}
	return UnquotedString(Inspect(v))
}

// concatString implements "string addition: if either side is a quoted
// string, the result keeps the left-hand quoting. A string plus a
// non-string stringifies the non-string via its inspection form." (§4.3)
// When the result is unquoted and the right operand is itself a quoted
// string, the right operand's raw text is followed by its own quoted
// inspection form (spec §8: `a + "b"` -> `ab"b"`).
func concatString(l *Str, r Value) (Value, error) {
	rightText := Inspect(r)
	if rs, ok := r.(*Str); ok {
		rightText = rs.Text
		if !l.Quoted && rs.Quoted {
			rightText += Inspect(rs)
		}
	}
	return &Str{Text: l.Text + rightText, Quoted: l.Quoted}, nil
}

func numberAdd(l, r *Number) (Value, error) {
	val, numer, denom, err := mergeUnitsForAddSub(l, r)
	if err != nil {
		return nil, err
	}
	return &Number{Val: l.Val + val, Numerators: numer, Denominators: denom}, nil
}

// mergeUnitsForAddSub converts r into l's units (or vice versa if l is
// unitless) and returns r's value so converted, plus the unit lists the
// result should carry.
func mergeUnitsForAddSub(l, r *Number) (rConverted float64, numer, denom []string, err error) {
	if l.Unitless() {
		return r.Val, append([]string{}, r.Numerators...), append([]string{}, r.Denominators...), nil
	}
	if r.Unitless() {
		return r.Val, append([]string{}, l.Numerators...), append([]string{}, l.Denominators...), nil
	}
	// Require matching unit shape: same numerator count convertible pairwise.
	if len(l.Numerators) != len(r.Numerators) || len(l.Denominators) != len(r.Denominators) {
		return 0, nil, nil, &OpError{"+", l, r}
	}
	factor := 1.0
	usedR := make([]bool, len(r.Numerators))
	for _, lu := range l.Numerators {
		matched := false
		for i, ru := range r.Numerators {
			if usedR[i] {
				continue
			}
			if f, ok := convertFactor(ru, lu); ok {
				factor *= f
				usedR[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return 0, nil, nil, &OpError{"+", l, r}
		}
	}
	usedRD := make([]bool, len(r.Denominators))
	for _, lu := range l.Denominators {
		matched := false
		for i, ru := range r.Denominators {
			if usedRD[i] {
				continue
			}
			if f, ok := convertFactor(ru, lu); ok {
				factor /= f
				usedRD[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return 0, nil, nil, &OpError{"+", l, r}
		}
	}
	return r.Val * factor, append([]string{}, l.Numerators...), append([]string{}, l.Denominators...), nil
}

func Sub(l, r Value) (Value, error) {
	ln, lok := l.(*Number)
	rn, rok := r.(*Number)
	if lok && rok {
		val, numer, denom, err := mergeUnitsForAddSub(ln, rn)
		if err != nil {
			return nil, err
		}
		return &Number{Val: ln.Val - val, Numerators: numer, Denominators: denom}, nil
	}
	if _, ok := l.(*colorValue); ok {
		return nil, &OpError{"-", l, r}
	}
	if _, ok := r.(*colorValue); ok {
		return nil, &OpError{"-", l, r}
	}
	// "a - b" outside numeric context stringifies as "a" + "-" + "b"
	return concatString(UnquotedString(Inspect(l)+"-"), r)
}

func Mul(l, r Value) (Value, error) {
	ln, lok := l.(*Number)
	rn, rok := r.(*Number)
	if !lok || !rok {
		return nil, &OpError{"*", l, r}
	}
	numer := append(append([]string{}, ln.Numerators...), rn.Numerators...)
	denom := append(append([]string{}, ln.Denominators...), rn.Denominators...)
	numer, denom = newUnitMultiset(numer...).withCanceled(newUnitMultiset(denom...))
	return &Number{Val: ln.Val * rn.Val, Numerators: []string(numer), Denominators: []string(denom)}, nil
}

func Div(l, r Value) (Value, error) {
	ln, lok := l.(*Number)
	rn, rok := r.(*Number)
	if !lok || !rok {
		return nil, &OpError{"/", l, r}
	}
	numer := append(append([]string{}, ln.Numerators...), rn.Denominators...)
	denom := append(append([]string{}, ln.Denominators...), rn.Numerators...)
	numer2, denom2 := newUnitMultiset(numer...).withCanceled(newUnitMultiset(denom...))
	return &Number{Val: ln.Val / rn.Val, Numerators: []string(numer2), Denominators: []string(denom2)}, nil
}

// Mod implements "%": integer-zero modulo yields NaN per spec §4.5.
func Mod(l, r Value) (Value, error) {
	ln, lok := l.(*Number)
	rn, rok := r.(*Number)
	if !lok || !rok {
		return nil, &OpError{"%", l, r}
	}
	if rn.Val == 0 {
		return Num(math.NaN()), nil
	}
	m := math.Mod(ln.Val, rn.Val)
	if m != 0 && (m < 0) != (rn.Val < 0) {
		m += rn.Val
	}
	return &Number{Val: m, Numerators: ln.Numerators, Denominators: ln.Denominators}, nil
}

func Neg(v Value) (Value, error) {
	n, ok := v.(*Number)
	if !ok {
		return nil, &OpError{"-", v, v}
	}
	return &Number{Val: -n.Val, Numerators: n.Numerators, Denominators: n.Denominators}, nil
}

// Compare implements <, <=, >, >= for numbers (the only ordered variant).
func Compare(op string, l, r Value) (Value, error) {
	ln, lok := l.(*Number)
	rn, rok := r.(*Number)
	if !lok || !rok {
		return nil, &OpError{op, l, r}
	}
	_, _, _, err := mergeUnitsForAddSub(ln, rn)
	if err != nil {
		return nil, err
	}
	lval, _, _ := ln.reduced()
	rval, _, _ := rn.reduced()
	var result bool
	switch op {
	case "<":
		result = lval < rval-Epsilon
	case "<=":
		result = lval <= rval+Epsilon
	case ">":
		result = lval > rval+Epsilon
	case ">=":
		result = lval >= rval-Epsilon
	}
	return Boolean(result), nil
}

// And/Or implement the short-circuit-free (already-evaluated-operand)
// logical operators: "and"/"or" in SassScript are plain boolean combinators
// over truthiness, not type-restricted like the arithmetic operators.
func And(l, r Value) Value {
	if !l.Truthy() {
		return l
	}
	return r
}

func Or(l, r Value) Value {
	if l.Truthy() {
		return l
	}
	return r
}

func Not(v Value) Value {
	return Boolean(!v.Truthy())
}
