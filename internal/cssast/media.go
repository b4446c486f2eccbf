package cssast

import "strings"

// MediaQueryList / MediaQuery ground spec §4.6 point 5's cross-media-query
// @extend compatibility rule and the libsass "merge" algorithm referenced in
// SPEC_FULL's supplemented-features section: query-list equality modulo
// ordering, and intersection ("merge") of two query lists for nested
// @media compatibility.
type MediaQueryList struct {
	Queries []MediaQuery
}

// MediaQuery is one comma-separated entry: an optional modifier
// ("not"/"only"), a media type ("screen", "print", "all", or "" meaning
// "all"), and a conjunction of feature expressions ("(min-width: 100px)").
type MediaQuery struct {
	Not      bool
	Only     bool
	Type     string
	Features []string // raw "(feature: value)" text, conjoined with "and"
}

// Empty reports whether the list has no queries, meaning "unconditional"
// (not nested inside any @media).
func (l MediaQueryList) Empty() bool { return len(l.Queries) == 0 }

// EqualModuloOrder implements "query equality modulo ordering" (spec §4.6
// point 5): two query lists are compatible if they contain the same set of
// queries regardless of order.
func (l MediaQueryList) EqualModuloOrder(other MediaQueryList) bool {
	if len(l.Queries) != len(other.Queries) {
		return false
	}
	used := make([]bool, len(other.Queries))
	for _, q := range l.Queries {
		found := false
		for i, oq := range other.Queries {
			if used[i] {
				continue
			}
			if q.equal(oq) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (q MediaQuery) equal(o MediaQuery) bool {
	return q.Not == o.Not && q.Only == o.Only && q.Type == o.Type &&
		strings.Join(q.Features, "&") == strings.Join(o.Features, "&")
}

// Merge intersects two query lists (libsass's documented semantics, per
// SPEC_FULL §4): the result matches only contexts that satisfy both lists
// simultaneously. ok=false means the intersection cannot be expressed as a
// query list (libsass's nullptr case) and the caller should drop the
// extension in this context (spec §4.6 point 5).
func Merge(a, b MediaQueryList) (merged MediaQueryList, ok bool) {
	if a.Empty() {
		return b, true
	}
	if b.Empty() {
		return a, true
	}
	var out []MediaQuery
	for _, qa := range a.Queries {
		for _, qb := range b.Queries {
			m, merged, representable := mergeOne(qa, qb)
			if !representable {
				return MediaQueryList{}, false
			}
			if merged {
				out = append(out, m)
			}
			// An unmerged, non-representable-as-empty pair (e.g. two
			// incompatible "not" clauses) simply contributes nothing —
			// that combination never matches, which is a valid empty
			// contribution, not an unrepresentable one.
		}
	}
	return MediaQueryList{Queries: out}, true
}

// mergeOne intersects two single queries. representable=false only when the
// combination genuinely cannot be written as a query (a bare "not" type
// query combined with another "not" query of a different type, which CSS's
// grammar has no way to express as a single conjunctive query).
func mergeOne(a, b MediaQuery) (result MediaQuery, merged bool, representable bool) {
	if a.Not && b.Not && a.Type != b.Type && a.Type != "" && b.Type != "" {
		return MediaQuery{}, false, false
	}
	if a.Not != b.Not {
		// "not screen" intersected with "screen and (...)" is always empty:
		// nothing can be both screen and not-screen.
		notQ, plainQ := a, b
		if b.Not {
			notQ, plainQ = b, a
		}
		if notQ.Type == plainQ.Type || notQ.Type == "" || plainQ.Type == "" {
			return MediaQuery{}, false, true
		}
		return MediaQuery{}, false, true
	}
	ty := a.Type
	if ty == "" {
		ty = b.Type
	} else if b.Type != "" && ty != b.Type {
		// Different concrete types (e.g. "screen" vs "print") never both match.
		return MediaQuery{}, false, true
	}
	features := append(append([]string{}, a.Features...), b.Features...)
	return MediaQuery{Not: a.Not, Only: a.Only || b.Only, Type: ty, Features: features}, true, true
}
