package textbuf

import "testing"

func TestClampCursor(t *testing.T) {
	cases := []struct {
		name   string
		cursor int
		value  string
		want   int
	}{
		{name: "negative", cursor: -3, value: "abc", want: 0},
		{name: "inside", cursor: 2, value: "abc", want: 2},
		{name: "past end", cursor: 9, value: "abc", want: 3},
		{name: "empty", cursor: 1, value: "", want: 0},
		{name: "multibyte counts runes", cursor: 10, value: "héllo", want: 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampCursor(tc.cursor, tc.value); got != tc.want {
				t.Fatalf("clamp mismatch: got %d want %d", got, tc.want)
			}
		})
	}
}

func TestClampCursorIdempotent(t *testing.T) {
	values := []string{"", "a", "hello\nworld", "ünï\ncødé"}
	for _, value := range values {
		for cursor := -4; cursor < 16; cursor++ {
			once := ClampCursor(cursor, value)
			if twice := ClampCursor(once, value); twice != once {
				t.Fatalf("clamp not idempotent for %q at %d: %d then %d", value, cursor, once, twice)
			}
		}
	}
}

func TestInsertText(t *testing.T) {
	cases := []struct {
		name  string
		state State
		raw   string
		want  State
	}{
		{name: "middle", state: State{Value: "ac", Cursor: 1}, raw: "b", want: State{Value: "abc", Cursor: 2}},
		{name: "stale cursor clamps", state: State{Value: "ab", Cursor: 7}, raw: "c", want: State{Value: "abc", Cursor: 3}},
		{name: "raw paste markers", state: State{Value: "", Cursor: 0}, raw: "\x1b[200~hi\x1b[201~", want: State{Value: "hi", Cursor: 2}},
		{name: "literal paste markers", state: State{Value: "x", Cursor: 1}, raw: "[200~yz[201~", want: State{Value: "xyz", Cursor: 3}},
		{name: "only markers", state: State{Value: "keep", Cursor: 2}, raw: "\x1b[200~\x1b[201~", want: State{Value: "keep", Cursor: 2}},
		{name: "multibyte", state: State{Value: "ñ", Cursor: 1}, raw: "é\n", want: State{Value: "ñé\n", Cursor: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InsertText(tc.state, tc.raw); got != tc.want {
				t.Fatalf("insert mismatch: got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestInsertTextDoesNotMutateInput(t *testing.T) {
	original := State{Value: "abc", Cursor: 1}
	_ = InsertText(original, "zz")
	if original.Value != "abc" || original.Cursor != 1 {
		t.Fatalf("input state changed: %+v", original)
	}
}

func TestBackspaceAndDelete(t *testing.T) {
	if got := Backspace(State{Value: "abc", Cursor: 0}); got != (State{Value: "abc", Cursor: 0}) {
		t.Fatalf("backspace at start should be a no-op, got %+v", got)
	}
	if got := Backspace(State{Value: "abc", Cursor: 2}); got != (State{Value: "ac", Cursor: 1}) {
		t.Fatalf("backspace mismatch: got %+v", got)
	}
	if got := Backspace(State{Value: "a\nb", Cursor: 2}); got != (State{Value: "ab", Cursor: 1}) {
		t.Fatalf("backspace should join lines, got %+v", got)
	}
	if got := DeleteForward(State{Value: "abc", Cursor: 3}); got != (State{Value: "abc", Cursor: 3}) {
		t.Fatalf("delete at end should be a no-op, got %+v", got)
	}
	if got := DeleteForward(State{Value: "abc", Cursor: 1}); got != (State{Value: "ac", Cursor: 1}) {
		t.Fatalf("delete mismatch: got %+v", got)
	}
}

func TestMoveCursor(t *testing.T) {
	s := State{Value: "ab", Cursor: 0}
	if got := MoveCursorLeft(s); got.Cursor != 0 {
		t.Fatalf("left at start should stay at 0, got %d", got.Cursor)
	}
	s = MoveCursorRight(MoveCursorRight(MoveCursorRight(s)))
	if s.Cursor != 2 {
		t.Fatalf("right should stop at end, got %d", s.Cursor)
	}
	if got := MoveCursorLeft(State{Value: "ab", Cursor: 10}); got.Cursor != 1 {
		t.Fatalf("left from stale cursor should clamp first, got %d", got.Cursor)
	}
}

func TestLineCount(t *testing.T) {
	cases := map[string]int{
		"":       1,
		"one":    1,
		"a\nb":   2,
		"a\n":    2,
		"\n\n\n": 4,
	}
	for value, want := range cases {
		if got := LineCount(value); got != want {
			t.Fatalf("line count for %q: got %d want %d", value, got, want)
		}
	}
}

func TestCursorCoordinates(t *testing.T) {
	cases := []struct {
		value  string
		cursor int
		row    int
		col    int
	}{
		{value: "", cursor: 0, row: 0, col: 0},
		{value: "abc", cursor: 2, row: 0, col: 2},
		{value: "ab\ncd", cursor: 2, row: 0, col: 2},
		{value: "ab\ncd", cursor: 3, row: 1, col: 0},
		{value: "ab\ncd", cursor: 5, row: 1, col: 2},
		{value: "ab\n", cursor: 99, row: 1, col: 0},
	}
	for _, tc := range cases {
		row, col := CursorCoordinates(tc.value, tc.cursor)
		if row != tc.row || col != tc.col {
			t.Fatalf("coordinates for %q@%d: got (%d,%d) want (%d,%d)", tc.value, tc.cursor, row, col, tc.row, tc.col)
		}
	}
}
