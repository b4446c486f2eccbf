// Package value implements the Sass value lattice (spec component C2): the
// sum type over null, booleans, numbers with unit algebra, strings, colors,
// lists, maps, argument lists, function/mixin references and calculations,
// along with the SassScript operators defined over them.
//
// The representation follows the teacher's (evanw/esbuild internal/css_ast)
// habit of a closed interface implemented only by the types in this package
// (see R in css_ast.go), rather than open polymorphism: Value is never
// implemented outside this package, so a type switch is always exhaustive.
package value

import (
	"math"

	"github.com/nsass/sass/internal/helpers"
)

// Value is the sum type over every SassScript runtime value.
type Value interface {
	isValue()
	// Truthy implements "not null and not false".
	Truthy() bool
}

const Epsilon = 1e-10

// ---- Null ----------------------------------------------------------------

type nullValue struct{}

// Null is the singleton null value.
var Null Value = nullValue{}

func (nullValue) isValue()     {}
func (nullValue) Truthy() bool { return false }

// ---- Boolean ---------------------------------------------------------------

type Bool bool

func (Bool) isValue()       {}
func (b Bool) Truthy() bool { return bool(b) }

var True Value = Bool(true)
var False Value = Bool(false)

func Boolean(b bool) Value {
	if b {
		return True
	}
	return False
}

// ---- Number ----------------------------------------------------------------

// SlashPair preserves an "a / b" literal until it is consumed by arithmetic
// or re-emission (spec §3, Number.as-slash).
type SlashPair struct {
	Left, Right *Number
}

type Number struct {
	Val          float64
	Numerators   []string
	Denominators []string
	AsSlash      *SlashPair
}

func (*Number) isValue() {}
func (*Number) Truthy() bool {
	return true
}

func Num(v float64) *Number {
	return &Number{Val: v}
}

func NumUnit(v float64, unit string) *Number {
	if unit == "" {
		return Num(v)
	}
	return &Number{Val: v, Numerators: []string{unit}}
}

func NumUnits(v float64, numerators, denominators []string) *Number {
	return &Number{Val: v, Numerators: numerators, Denominators: denominators}
}

func (n *Number) Unitless() bool {
	return len(n.Numerators) == 0 && len(n.Denominators) == 0
}

// WithoutSlash drops any preserved "as-slash" literal, as happens whenever a
// number is consumed as a plain numeric value (spec §3).
func (n *Number) WithoutSlash() *Number {
	if n.AsSlash == nil {
		return n
	}
	cp := *n
	cp.AsSlash = nil
	return &cp
}

// HasUnit reports whether unit appears (case-insensitively) among the
// number's numerator units with no denominators, which is the shape single-
// unit built-ins such as color channel helpers expect.
func (n *Number) HasUnit(unit string) bool {
	return len(n.Denominators) == 0 && len(n.Numerators) == 1 && canonicalUnit(n.Numerators[0]) == canonicalUnit(unit)
}

// IsInt reports whether the number is within Epsilon of an integer.
func (n *Number) IsInt() bool {
	return math.Abs(n.Val-math.Round(n.Val)) < Epsilon
}

// fuzzyRound nudges values within Epsilon of X.5 up, matching the spec's
// epsilon-nudging rounding rule (§4.5).
func fuzzyRound(v float64) float64 {
	floor := math.Floor(v)
	frac := v - floor
	if math.Abs(frac-0.5) < Epsilon {
		return floor + 1
	}
	return math.Round(v)
}

func (n *Number) Round() *Number {
	cp := *n
	cp.Val = fuzzyRound(n.Val)
	cp.AsSlash = nil
	return &cp
}

func (n *Number) Floor() *Number {
	cp := *n
	cp.Val = math.Floor(n.Val)
	cp.AsSlash = nil
	return &cp
}

func (n *Number) Ceil() *Number {
	cp := *n
	cp.Val = math.Ceil(n.Val)
	cp.AsSlash = nil
	return &cp
}

// reduced returns the number after canceling matching numerator/denominator
// units and converting every remaining unit to its family's base unit, along
// with the reduced unit lists (so equality/hashing can compare them).
func (n *Number) reduced() (val float64, numerators, denominators unitMultiset) {
	numer, denom := newUnitMultiset(n.Numerators...).withCanceled(newUnitMultiset(n.Denominators...))
	val = n.Val
	var baseNumer, baseDenom unitMultiset
	for _, u := range numer {
		if _, factor, ok := familyOf(u); ok {
			val *= factor
			if base, _, _ := familyOf(u); base != nil {
				baseNumer = append(baseNumer, base.base)
				continue
			}
		}
		baseNumer = append(baseNumer, canonicalUnit(u))
	}
	for _, u := range denom {
		if _, factor, ok := familyOf(u); ok {
			val /= factor
			if base, _, _ := familyOf(u); base != nil {
				baseDenom = append(baseDenom, base.base)
				continue
			}
		}
		baseDenom = append(baseDenom, canonicalUnit(u))
	}
	return val, sortedCopy(baseNumer), sortedCopy(baseDenom)
}

func sortedCopy(m unitMultiset) unitMultiset {
	out := append(unitMultiset{}, m...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func multisetEqual(a, b unitMultiset) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ---- String ------------------------------------------------------------

type Str struct {
	Text   string
	Quoted bool
}

func (*Str) isValue()     {}
func (*Str) Truthy() bool { return true }

func QuotedString(s string) *Str  { return &Str{Text: s, Quoted: true} }
func UnquotedString(s string) *Str { return &Str{Text: s, Quoted: false} }

// ---- List/Separator ------------------------------------------------------

type Separator uint8

const (
	SepUndecided Separator = iota
	SepSpace
	SepComma
	SepSlash
)

type List struct {
	Items      []Value
	Separator  Separator
	HasBrackets bool
}

func (*List) isValue() {}
func (l *List) Truthy() bool { return true }

func NewList(sep Separator, brackets bool, items ...Value) *List {
	return &List{Items: items, Separator: sep, HasBrackets: brackets}
}

// ---- Map -----------------------------------------------------------------

type MapEntry struct {
	Key   Value
	Value Value
}

// Map is insertion-ordered; per spec §3, the empty map compares equal to an
// empty list, so Map and List share an "IsEmptyCollection" escape hatch used
// by Equals below.
type Map struct {
	Entries []MapEntry
}

func (*Map) isValue()     {}
func (*Map) Truthy() bool { return true }

func NewMap() *Map { return &Map{} }

func (m *Map) Get(key Value) (Value, bool) {
	for _, e := range m.Entries {
		if Equals(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// Set inserts or overwrites key, preserving original insertion position on
// overwrite (ordered-map semantics, grounded on libsass's src/ordered_map.hpp).
func (m *Map) Set(key, val Value) {
	for i, e := range m.Entries {
		if Equals(e.Key, key) {
			m.Entries[i].Value = val
			return
		}
	}
	m.Entries = append(m.Entries, MapEntry{Key: key, Value: val})
}

// ---- ArgumentList ---------------------------------------------------------

// ArgList is a List plus a trailing keyword map, used for $args... variadic
// bindings and spread call sites (spec §4.5 "Argument binding").
type ArgList struct {
	List         *List
	Keywords     *Map
	KeywordsRead bool
}

func (*ArgList) isValue()     {}
func (a *ArgList) Truthy() bool { return true }

func NewArgList(items []Value, sep Separator, keywords *Map) *ArgList {
	if keywords == nil {
		keywords = NewMap()
	}
	return &ArgList{List: NewList(sep, false, items...), Keywords: keywords}
}

// ---- Function / Mixin references -----------------------------------------

// Callable is implemented by internal/eval's user-defined and built-in
// function/mixin representations; kept opaque here so internal/value has no
// dependency on the evaluator.
type Callable interface {
	CallableName() string
}

type Fn struct {
	Name     string
	Callable Callable
}

func (*Fn) isValue()     {}
func (*Fn) Truthy() bool { return true }

type MixinRef struct {
	Name     string
	Callable Callable
}

func (*MixinRef) isValue()     {}
func (*MixinRef) Truthy() bool { return true }

// ---- Calculation -----------------------------------------------------------

// CalcNode is a node in a calc()/min()/max()/clamp() expression tree that
// could not be reduced to a plain Number (e.g. it mixes incompatible units
// or contains an unresolved CSS custom property).
type CalcNode interface {
	isCalcNode()
}

type CalcValue struct{ Value Value }
type CalcOperation struct {
	Op          byte // '+', '-', '*', '/'
	Left, Right CalcNode
}
type CalcFunc struct {
	Name string
	Args []CalcNode
}

func (CalcValue) isCalcNode()     {}
func (CalcOperation) isCalcNode() {}
func (CalcFunc) isCalcNode()      {}

type Calculation struct {
	Name string // "calc", "min", "max", "clamp", ...
	Args []CalcNode
}

func (*Calculation) isValue()     {}
func (*Calculation) Truthy() bool { return true }

// ---- Custom error/warning carriers -----------------------------------------

// CustomError and CustomWarning cross the host-callback boundary (spec §3,
// §9 Open Question c): a custom Go/C function can return one of these to
// signal failure without panicking through the evaluator. They must never
// reach the serializer; if one does, that is an InternalError (see
// internal/eval).
type CustomError struct{ Message string }
type CustomWarning struct{ Message string }

func (*CustomError) isValue()     {}
func (*CustomError) Truthy() bool { return true }
func (*CustomWarning) isValue()   {}
func (*CustomWarning) Truthy() bool { return true }

// Hash produces a hash code consistent with Equals: it must agree that
// v1.Equals(v2) implies v1.Hash() == v2.Hash() (spec §4.3).
func Hash(v Value) uint32 {
	if isEmptyCollection(v) {
		return 7
	}
	switch t := v.(type) {
	case nullValue:
		return 1
	case Bool:
		if bool(t) {
			return 2
		}
		return 3
	case *Number:
		val, numer, denom := t.reduced()
		h := helpers.HashCombine(4, math.Float32bits(float32(val)))
		for _, u := range numer {
			h = helpers.HashCombineString(h, u)
		}
		for _, u := range denom {
			h = helpers.HashCombineString(h, "/"+u)
		}
		return h
	case *Str:
		return helpers.HashCombineString(5, t.Text)
	case *colorValue:
		r, g, b, a := t.rgba()
		h := helpers.HashCombine(6, uint32(r)<<24|uint32(g)<<16|uint32(b)<<8)
		return helpers.HashCombine(h, math.Float32bits(float32(a)))
	case *List:
		h := helpers.HashCombine(7, uint32(t.Separator))
		for _, item := range t.Items {
			h = helpers.HashCombine(h, Hash(item))
		}
		return h
	case *Map:
		h := uint32(8)
		for _, e := range t.Entries {
			h += helpers.HashCombine(Hash(e.Key), Hash(e.Value))
		}
		return h
	case *ArgList:
		return Hash(t.List)
	default:
		return 0
	}
}
