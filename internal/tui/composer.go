package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/truncate"

	"github.com/edward-r/prompt-maker/internal/keys"
	"github.com/edward-r/prompt-maker/internal/listwindow"
	"github.com/edward-r/prompt-maker/internal/softwrap"
	"github.com/edward-r/prompt-maker/internal/textbuf"
	"github.com/edward-r/prompt-maker/internal/theme"
)

// Large pastes are stored aside and stand in the buffer as a single
// private-use rune that renders as a short label.
const (
	pasteTokenFirst    rune = 0xE000
	pasteTokenLast     rune = 0xF8FF
	pasteTokenMinLines      = 3
	pasteTokenMinRunes      = 280
)

const (
	composerPrompt       = "› "
	composerContinuation = "  "
)

type pastedSnippet struct {
	id    int
	text  string
	lines int
}

type composer struct {
	state     textbuf.State
	snippets  map[rune]pastedSnippet
	nextToken rune
}

func newComposer() composer {
	return composer{snippets: map[rune]pastedSnippet{}, nextToken: pasteTokenFirst}
}

func (c composer) Value() string {
	return c.state.Value
}

func (c composer) SetValue(value string) composer {
	c.state = textbuf.State{Value: value, Cursor: len([]rune(value))}
	return c
}

func (c composer) Reset() composer {
	return newComposer()
}

func (c composer) Empty() bool {
	return strings.TrimSpace(c.state.Value) == ""
}

// label renders a paste token as "[Pasted #n +k lines]".
func (c composer) label(r rune) (string, bool) {
	snippet, ok := c.snippets[r]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("[Pasted #%d +%d lines]", snippet.id, snippet.lines), true
}

// Resolved returns the buffer with every paste token replaced by its text.
func (c composer) Resolved() string {
	return textbuf.ExpandTokenizedText(c.state.Value, func(r rune) (string, bool) {
		snippet, ok := c.snippets[r]
		return snippet.text, ok
	})
}

// Apply performs an editing intent. The second result reports whether the
// intent was an edit the composer understood.
func (c composer) Apply(in keys.Intent) (composer, bool) {
	switch in.Kind {
	case keys.Insert:
		if in.Paste && c.shouldTokenize(in.Text) {
			return c.insertPasteToken(in.Text), true
		}
		c.state = textbuf.InsertText(c.state, in.Text)
	case keys.Newline:
		c.state = textbuf.InsertText(c.state, "\n")
	case keys.Backspace:
		c.state = textbuf.Backspace(c.state)
	case keys.Delete:
		c.state = textbuf.DeleteForward(c.state)
	case keys.Left:
		c.state = textbuf.MoveCursorLeft(c.state)
	case keys.Right:
		c.state = textbuf.MoveCursorRight(c.state)
	case keys.Up:
		c.state = c.moveVertical(-1)
	case keys.Down:
		c.state = c.moveVertical(1)
	case keys.Home:
		c.state = moveToLineEdge(c.state, false)
	case keys.End:
		c.state = moveToLineEdge(c.state, true)
	default:
		return c, false
	}
	return c, true
}

func (c composer) shouldTokenize(text string) bool {
	if c.nextToken > pasteTokenLast {
		return false
	}
	return textbuf.LineCount(text) >= pasteTokenMinLines || len([]rune(text)) >= pasteTokenMinRunes
}

func (c composer) insertPasteToken(text string) composer {
	snippets := make(map[rune]pastedSnippet, len(c.snippets)+1)
	for k, v := range c.snippets {
		snippets[k] = v
	}
	token := c.nextToken
	snippets[token] = pastedSnippet{
		id:    int(token-pasteTokenFirst) + 1,
		text:  text,
		lines: textbuf.LineCount(text),
	}
	c.snippets = snippets
	c.nextToken++
	c.state = textbuf.InsertText(c.state, string(token))
	return c
}

// moveVertical steps to the neighbouring logical line at the same display
// column, where a paste token is as wide as its label. Wrapped rows of one
// logical line are not stepped through.
func (c composer) moveVertical(delta int) textbuf.State {
	s := c.state
	lines := strings.Split(s.Value, "\n")
	row, col := textbuf.TokenizedCursorCoordinates(s.Value, s.Cursor, c.label)
	target := row + delta
	if target < 0 || target >= len(lines) {
		return s
	}
	offset := 0
	for i := 0; i < target; i++ {
		offset += len([]rune(lines[i])) + 1
	}
	return textbuf.State{Value: s.Value, Cursor: offset + c.runeAtColumn(lines[target], col)}
}

// runeAtColumn returns the rune index on line whose display span holds col.
// A column inside a token label snaps to the nearer edge of the token.
func (c composer) runeAtColumn(line string, col int) int {
	runes := []rune(line)
	pos := 0
	for i, r := range runes {
		width := 1
		if text, ok := c.label(r); ok {
			width = utf8.RuneCountInString(text)
		}
		if col < pos+width {
			if col-pos > width/2 {
				return i + 1
			}
			return i
		}
		pos += width
	}
	return len(runes)
}

func moveToLineEdge(s textbuf.State, end bool) textbuf.State {
	lines := strings.Split(s.Value, "\n")
	row, _ := textbuf.CursorCoordinates(s.Value, s.Cursor)
	offset := 0
	for i := 0; i < row; i++ {
		offset += len([]rune(lines[i])) + 1
	}
	if end {
		offset += len([]rune(lines[row]))
	}
	return textbuf.State{Value: s.Value, Cursor: offset}
}

// composerView is the painted composer plus the row the cursor is on.
type composerView struct {
	rows      []string
	cursorRow int
	totalRows int
}

// Render wraps every logical line to width and windows the resulting rows
// around the cursor so at most maxRows are returned.
func (c composer) Render(width, maxRows int, styles theme.Styles, placeholder string) composerView {
	textWidth := width - len([]rune(composerPrompt))
	if textWidth < 1 {
		textWidth = 1
	}
	lines := textbuf.ExpandTokenizedLines(c.state.Value, c.label)
	cursorLine, cursorCol := textbuf.TokenizedCursorCoordinates(c.state.Value, c.state.Cursor, c.label)

	var rows []string
	cursorRow := 0
	for i, line := range lines {
		wrapped := softwrap.Line(line, softwrap.Widths{First: textWidth, Rest: textWidth})
		prefix := func(segment int) string {
			if segment == 0 && i == 0 {
				return composerPrompt
			}
			return composerContinuation
		}
		if i != cursorLine {
			for j, segment := range wrapped.Segments {
				rows = append(rows, prefix(j)+segment)
			}
			continue
		}
		projection := softwrap.CursorOffset(wrapped, cursorCol)
		cursorRow = len(rows) + projection.RowOffset
		for j, segment := range wrapped.Segments {
			if j == projection.RowOffset {
				segment = paintCursor(segment, projection.Column, styles)
				if c.Empty() && placeholder != "" {
					segment += styles.Helper.Render(truncate.String(placeholder, uint(textWidth-1)))
				}
			}
			rows = append(rows, prefix(j)+segment)
		}
		if softwrap.RowCount(wrapped, cursorCol) > len(wrapped.Segments) {
			rows = append(rows, composerContinuation+paintCursor("", 0, styles))
		}
	}

	window := listwindow.ResolveCursorWindow(len(rows), cursorRow, maxRows)
	return composerView{
		rows:      rows[window.Start:window.End],
		cursorRow: cursorRow - window.Start,
		totalRows: len(rows),
	}
}

func paintCursor(segment string, column int, styles theme.Styles) string {
	runes := []rune(segment)
	if column < 0 {
		column = 0
	}
	if column >= len(runes) {
		return segment + styles.Cursor.Render(" ")
	}
	return string(runes[:column]) + styles.Cursor.Render(string(runes[column])) + string(runes[column+1:])
}
