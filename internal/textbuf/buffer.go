// Package textbuf holds the immutable editing primitives behind the composer.
//
// Offsets are measured in runes and every rune occupies one column. Wide and
// combining characters are deliberately not measured.
package textbuf

import "strings"

// State is the value/cursor pair owned by an input field. Cursor is a rune
// offset into Value and is kept inside [0, runeLen(Value)].
type State struct {
	Value  string
	Cursor int
}

var pasteMarkers = []string{
	"\x1b[200~",
	"\x1b[201~",
	"[200~",
	"[201~",
}

// ClampCursor constrains cursor to the rune range of value.
func ClampCursor(cursor int, value string) int {
	if cursor < 0 {
		return 0
	}
	if n := runeLen(value); cursor > n {
		return n
	}
	return cursor
}

// InsertText splices raw at the cursor after removing bracketed-paste markers.
func InsertText(s State, raw string) State {
	text := stripPasteMarkers(raw)
	if text == "" {
		return s
	}
	runes := []rune(s.Value)
	cursor := ClampCursor(s.Cursor, s.Value)
	inserted := []rune(text)

	next := make([]rune, 0, len(runes)+len(inserted))
	next = append(next, runes[:cursor]...)
	next = append(next, inserted...)
	next = append(next, runes[cursor:]...)
	return State{Value: string(next), Cursor: cursor + len(inserted)}
}

// Backspace removes the rune before the cursor.
func Backspace(s State) State {
	cursor := ClampCursor(s.Cursor, s.Value)
	if cursor == 0 {
		return State{Value: s.Value, Cursor: 0}
	}
	runes := []rune(s.Value)
	next := append(append([]rune{}, runes[:cursor-1]...), runes[cursor:]...)
	return State{Value: string(next), Cursor: cursor - 1}
}

// DeleteForward removes the rune under the cursor.
func DeleteForward(s State) State {
	runes := []rune(s.Value)
	cursor := ClampCursor(s.Cursor, s.Value)
	if cursor >= len(runes) {
		return State{Value: s.Value, Cursor: cursor}
	}
	next := append(append([]rune{}, runes[:cursor]...), runes[cursor+1:]...)
	return State{Value: string(next), Cursor: cursor}
}

// MoveCursorLeft steps the cursor back one rune, stopping at the start.
func MoveCursorLeft(s State) State {
	return State{Value: s.Value, Cursor: ClampCursor(ClampCursor(s.Cursor, s.Value)-1, s.Value)}
}

// MoveCursorRight steps the cursor forward one rune, stopping at the end.
func MoveCursorRight(s State) State {
	return State{Value: s.Value, Cursor: ClampCursor(ClampCursor(s.Cursor, s.Value)+1, s.Value)}
}

// LineCount reports the number of newline-delimited lines, never less than one.
func LineCount(value string) int {
	return strings.Count(value, "\n") + 1
}

// CursorCoordinates returns the zero-based row and column of cursor in value.
func CursorCoordinates(value string, cursor int) (row, col int) {
	return TokenizedCursorCoordinates(value, cursor, nil)
}

func stripPasteMarkers(raw string) string {
	for _, marker := range pasteMarkers {
		raw = strings.ReplaceAll(raw, marker, "")
	}
	return raw
}

func runeLen(value string) int {
	return len([]rune(value))
}
