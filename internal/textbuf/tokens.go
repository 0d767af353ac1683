package textbuf

import (
	"strings"
	"unicode/utf8"
)

// TokenLabel maps a rune to the label it is displayed as. ok is false when the
// rune is rendered as itself.
type TokenLabel func(r rune) (label string, ok bool)

// ExpandTokenizedText replaces every labelled rune with its label.
func ExpandTokenizedText(value string, label TokenLabel) string {
	if label == nil {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if text, ok := label(r); ok {
			b.WriteString(text)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ExpandTokenizedLines splits value on newlines and expands each line on its own.
func ExpandTokenizedLines(value string, label TokenLabel) []string {
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = ExpandTokenizedText(line, label)
	}
	return lines
}

// TokenizedCursorCoordinates projects a logical cursor onto the expanded
// display, where a labelled rune is as wide as its label.
func TokenizedCursorCoordinates(value string, cursor int, label TokenLabel) (row, col int) {
	cursor = ClampCursor(cursor, value)
	idx := 0
	for _, r := range value {
		if idx >= cursor {
			break
		}
		idx++
		if r == '\n' {
			row++
			col = 0
			continue
		}
		col += tokenWidth(r, label)
	}
	return row, col
}

func tokenWidth(r rune, label TokenLabel) int {
	if label == nil {
		return 1
	}
	if text, ok := label(r); ok {
		return utf8.RuneCountInString(text)
	}
	return 1
}
