package value

import "strings"

// Unit algebra for Number (spec C2 / §4.3). Units are tracked as string
// names; conversion is driven by a fixed table of compatible unit
// families, each with a canonical base unit and a multiplicative factor
// to that base. Units outside every family (e.g. custom idents used as
// a dimension unit, or "em") are treated as atomic:
// they only cancel against an identical unit string.
type unitFamily struct {
	base    string
	factors map[string]float64
}

var unitFamilies = []unitFamily{
	{ // absolute lengths, CSS3 §5.2
		base: "px",
		factors: map[string]float64{
			"px": 1,
			"in": 96,
			"cm": 96 / 2.54,
			"mm": 96 / 25.4,
			"q":  96 / 101.6,
			"pt": 96.0 / 72.0,
			"pc": 16,
		},
	},
	{ // angles
		base: "deg",
		factors: map[string]float64{
			"deg":  1,
			"grad": 0.9,
			"rad":  180 / 3.14159265358979323846,
			"turn": 360,
		},
	},
	{ // time
		base: "s",
		factors: map[string]float64{
			"s":  1,
			"ms": 0.001,
		},
	},
	{ // resolution
		base: "dpi",
		factors: map[string]float64{
			"dpi":  1,
			"dpcm": 2.54,
			"dppx": 96,
		},
	},
}

func canonicalUnit(unit string) string {
	return strings.ToLower(unit)
}

// familyOf returns the family containing unit and the unit's factor to the
// family's base, or (nil, 0, false) if the unit is not part of any known
// conversion family (it is then only compatible with itself).
func familyOf(unit string) (*unitFamily, float64, bool) {
	u := canonicalUnit(unit)
	for i := range unitFamilies {
		f := &unitFamilies[i]
		if factor, ok := f.factors[u]; ok {
			return f, factor, true
		}
	}
	return nil, 0, false
}

// unitsCompatible reports whether two unit strings can be converted into
// one another (i.e. they belong to the same family, or are textually
// identical).
func unitsCompatible(a, b string) bool {
	if canonicalUnit(a) == canonicalUnit(b) {
		return true
	}
	fa, _, oka := familyOf(a)
	fb, _, okb := familyOf(b)
	return oka && okb && fa == fb
}

// convertFactor returns the multiplier to convert a value expressed in
// "from" into the equivalent value expressed in "to".
func convertFactor(from, to string) (float64, bool) {
	if canonicalUnit(from) == canonicalUnit(to) {
		return 1, true
	}
	ff, ffactor, ok1 := familyOf(from)
	tf, tfactor, ok2 := familyOf(to)
	if !ok1 || !ok2 || ff != tf {
		return 0, false
	}
	return ffactor / tfactor, true
}

// unitMultiset is a multiset of unit names, kept in the order given;
// Number.reduced returns sorted copies for stable hashing/printing.
type unitMultiset []string

func newUnitMultiset(units ...string) unitMultiset {
	if len(units) == 0 {
		return nil
	}
	out := make(unitMultiset, len(units))
	copy(out, units)
	return out
}

func (m unitMultiset) withCanceled(denom unitMultiset) (numer unitMultiset, denomOut unitMultiset) {
	numer = append(unitMultiset{}, m...)
	denomOut = append(unitMultiset{}, denom...)
	for i := 0; i < len(numer); i++ {
		for j := 0; j < len(denomOut); j++ {
			if unitsCompatible(numer[i], denomOut[j]) {
				numer = append(numer[:i], numer[i+1:]...)
				denomOut = append(denomOut[:j], denomOut[j+1:]...)
				i--
				break
			}
		}
	}
	return
}
