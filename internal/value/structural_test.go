package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nsass/sass/internal/value"
)

// A separate file from value_test.go because these assert on the full
// shape of a composite value (list/map nesting, key order) rather than a
// single scalar result testify's require is better suited to.

func TestListOfMapsPreservesShape(t *testing.T) {
	got := value.NewList(value.SepComma, false)
	got.Items = append(got.Items,
		&value.Map{Entries: []value.MapEntry{
			{Key: value.UnquotedString("a"), Value: value.Num(1)},
			{Key: value.UnquotedString("b"), Value: value.Num(2)},
		}},
		&value.Str{Text: "x", Quoted: true},
	)

	want := &value.List{
		Separator: value.SepComma,
		Items: []value.Value{
			&value.Map{Entries: []value.MapEntry{
				{Key: &value.Str{Text: "a", Quoted: false}, Value: &value.Number{Val: 1}},
				{Key: &value.Str{Text: "b", Quoted: false}, Value: &value.Number{Val: 2}},
			}},
			&value.Str{Text: "x", Quoted: true},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list shape mismatch (-want +got):\n%s", diff)
	}
}

func TestMapEntryOrderIsInsertionOrder(t *testing.T) {
	m := value.NewMap()
	m.Entries = append(m.Entries,
		value.MapEntry{Key: value.UnquotedString("z"), Value: value.Num(1)},
		value.MapEntry{Key: value.UnquotedString("a"), Value: value.Num(2)},
	)

	want := []value.MapEntry{
		{Key: &value.Str{Text: "z"}, Value: &value.Number{Val: 1}},
		{Key: &value.Str{Text: "a"}, Value: &value.Number{Val: 2}},
	}

	if diff := cmp.Diff(want, m.Entries); diff != "" {
		t.Fatalf("map entry order mismatch (-want +got):\n%s", diff)
	}
}
