package attach

import "testing"

func TestDropPageFurniture(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "repeated header",
			in:   "ACME Handbook\n\nFirst page body.\n\nACME  handbook\n\nSecond page body.",
			want: "ACME Handbook\n\nFirst page body.\n\nSecond page body.",
		},
		{
			name: "page numbers",
			in:   "Intro text.\n\n1\n\nMore text.\n\nPage 2 of 10\n\n3/10",
			want: "Intro text.\n\nMore text.",
		},
		{
			name: "punctuation rules",
			in:   "Table of contents\n\n..........\n\nChapter one",
			want: "Table of contents\n\nChapter one",
		},
		{
			name: "short real paragraphs survive",
			in:   "Yes.\n\nNo.",
			want: "Yes.\n\nNo.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dropPageFurniture(tc.in); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
