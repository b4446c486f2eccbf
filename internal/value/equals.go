package value

// Equals implements the total equality function over all value pairs
// (spec §4.3): numbers compare via reduced units within Epsilon, strings by
// content regardless of quoting, colors via RGBA, lists/maps structurally,
// and the empty map equals the empty list. Every other cross-type pair is
// unequal.
func Equals(a, b Value) bool {
	if isEmptyCollection(a) && isEmptyCollection(b) {
		return true
	}

	switch av := a.(type) {
	case nullValue:
		_, ok := b.(nullValue)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case *Number:
		bv, ok := b.(*Number)
		if !ok {
			return false
		}
		aval, an, ad := av.reduced()
		bval, bn, bd := bv.reduced()
		if !multisetEqual(an, bn) || !multisetEqual(ad, bd) {
			return false
		}
		diff := aval - bval
		if diff < 0 {
			diff = -diff
		}
		return diff < Epsilon
	case *Str:
		bv, ok := b.(*Str)
		return ok && av.Text == bv.Text
	case *colorValue:
		bv, ok := b.(*colorValue)
		if !ok {
			return false
		}
		ar, ag, ab, aa := av.rgba()
		br, bg, bb, ba := bv.rgba()
		return closeEnough(ar, br) && closeEnough(ag, bg) && closeEnough(ab, bb) && closeEnough(aa, ba)
	case *List:
		bv, ok := b.(*List)
		if !ok {
			return false
		}
		if av.Separator != bv.Separator || av.HasBrackets != bv.HasBrackets || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equals(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok {
			return false
		}
		if len(av.Entries) != len(bv.Entries) {
			return false
		}
		for _, e := range av.Entries {
			bval, ok := bv.Get(e.Key)
			if !ok || !Equals(e.Value, bval) {
				return false
			}
		}
		return true
	case *ArgList:
		bv, ok := b.(*ArgList)
		if !ok {
			return false
		}
		return Equals(av.List, bv.List)
	case *Fn:
		bv, ok := b.(*Fn)
		return ok && av.Name == bv.Name
	case *MixinRef:
		bv, ok := b.(*MixinRef)
		return ok && av.Name == bv.Name
	}
	return false
}

func closeEnough(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}

// isEmptyCollection reports whether v is an empty List or empty Map; per §3
// "the empty map equals the empty list" regardless of bracket-ness.
func isEmptyCollection(v Value) bool {
	switch t := v.(type) {
	case *List:
		return len(t.Items) == 0
	case *Map:
		return len(t.Entries) == 0
	}
	return false
}
