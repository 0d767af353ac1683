package listwindow

import "testing"

type rowKind int

const (
	kindHeader rowKind = iota
	kindSpacer
	kindItem
)

func TestEnsureLeadingHeaderVisible(t *testing.T) {
	rows := []rowKind{kindHeader, kindItem, kindItem}
	cases := []struct {
		name    string
		kinds   []rowKind
		bounds  Range
		maxRows int
		want    Range
	}{
		{name: "pulls header in", kinds: rows, bounds: Range{Start: 1, End: 3}, maxRows: 5, want: Range{Start: 0, End: 3}},
		{name: "window at capacity", kinds: rows, bounds: Range{Start: 1, End: 3}, maxRows: 2, want: Range{Start: 1, End: 3}},
		{name: "window already at top", kinds: rows, bounds: Range{Start: 0, End: 2}, maxRows: 5, want: Range{Start: 0, End: 2}},
		{
			name:    "predecessor is an item",
			kinds:   []rowKind{kindHeader, kindItem, kindItem, kindItem},
			bounds:  Range{Start: 2, End: 3},
			maxRows: 5,
			want:    Range{Start: 2, End: 3},
		},
		{
			name:    "predecessor is a spacer",
			kinds:   []rowKind{kindItem, kindSpacer, kindItem},
			bounds:  Range{Start: 2, End: 3},
			maxRows: 5,
			want:    Range{Start: 2, End: 3},
		},
		{
			name:    "extends end when there is slack",
			kinds:   []rowKind{kindItem, kindSpacer, kindHeader, kindItem, kindItem, kindItem, kindItem},
			bounds:  Range{Start: 3, End: 5},
			maxRows: 4,
			want:    Range{Start: 2, End: 6},
		},
		{
			name:    "extension capped at budget",
			kinds:   []rowKind{kindItem, kindHeader, kindItem, kindItem, kindItem, kindItem},
			bounds:  Range{Start: 2, End: 4},
			maxRows: 3,
			want:    Range{Start: 1, End: 4},
		},
		{name: "start past list", kinds: rows, bounds: Range{Start: 3, End: 3}, maxRows: 5, want: Range{Start: 3, End: 3}},
		{name: "empty list", kinds: nil, bounds: Range{}, maxRows: 5, want: Range{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EnsureLeadingHeaderVisible(tc.kinds, tc.bounds, tc.maxRows, kindHeader, kindItem)
			if got != tc.want {
				t.Fatalf("bounds mismatch: got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestEnsureLeadingHeaderVisibleWithStrings(t *testing.T) {
	kinds := []string{"header", "item", "item"}
	got := EnsureLeadingHeaderVisible(kinds, Range{Start: 1, End: 3}, 5, "header", "item")
	if got != (Range{Start: 0, End: 3}) {
		t.Fatalf("string tags: got %+v", got)
	}
	got = EnsureLeadingHeaderVisible(kinds, Range{Start: 1, End: 3}, 5, "section", "row")
	if got != (Range{Start: 1, End: 3}) {
		t.Fatalf("mismatched tags should be a no-op, got %+v", got)
	}
}
