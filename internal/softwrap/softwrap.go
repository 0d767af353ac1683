// Package softwrap splits a display line into width-bounded segments and maps
// display columns back onto those segments.
package softwrap

import "unicode"

// Widths is the column budget of the first segment and of every segment after it.
type Widths struct {
	First int
	Rest  int
}

// Result describes a wrapped line. SegmentStarts and SegmentWidths run
// parallel to Segments; joining Segments reproduces the input.
type Result struct {
	Segments      []string
	SegmentStarts []int
	SegmentWidths []int
}

// Projection locates a cursor on a wrapped line.
type Projection struct {
	RowOffset              int
	Column                 int
	NeedsTrailingEmptyLine bool
}

// Line wraps displayLine greedily. A segment that fills its whole budget
// while more text follows is broken after its last whitespace rune, if any.
func Line(displayLine string, w Widths) Result {
	first := normalizeWidth(w.First)
	rest := normalizeWidth(w.Rest)

	runes := []rune(displayLine)
	if len(runes) == 0 {
		return Result{
			Segments:      []string{""},
			SegmentStarts: []int{0},
			SegmentWidths: []int{first},
		}
	}

	var result Result
	pos := 0
	for pos < len(runes) {
		budget := rest
		if len(result.Segments) == 0 {
			budget = first
		}
		take := len(runes) - pos
		if take > budget {
			take = budget
		}
		if take == budget && pos+take < len(runes) {
			if brk := lastSpace(runes[pos : pos+take]); brk >= 0 {
				take = brk + 1
			}
		}
		result.Segments = append(result.Segments, string(runes[pos:pos+take]))
		result.SegmentStarts = append(result.SegmentStarts, pos)
		result.SegmentWidths = append(result.SegmentWidths, budget)
		pos += take
	}
	return result
}

// CursorOffset maps a display column on the unwrapped line to a segment row
// and column. A cursor after the last rune of a full last segment moves to a
// new row so it is never confused with a continuation row.
func CursorOffset(r Result, displayColumn int) Projection {
	if len(r.Segments) == 0 {
		return Projection{}
	}
	total := 0
	for _, segment := range r.Segments {
		total += runeLen(segment)
	}
	col := displayColumn
	if col < 0 {
		col = 0
	}
	if col > total {
		col = total
	}

	if col < total {
		for i, segment := range r.Segments {
			start := r.SegmentStarts[i]
			if col >= start && col < start+runeLen(segment) {
				return Projection{RowOffset: i, Column: col - start}
			}
		}
	}

	last := len(r.Segments) - 1
	lastLen := runeLen(r.Segments[last])
	if lastLen >= r.SegmentWidths[last] {
		return Projection{RowOffset: len(r.Segments), Column: 0, NeedsTrailingEmptyLine: true}
	}
	return Projection{RowOffset: last, Column: lastLen}
}

// RowCount is the number of terminal rows the line needs when the cursor sits
// at displayColumn.
func RowCount(r Result, displayColumn int) int {
	p := CursorOffset(r, displayColumn)
	if p.NeedsTrailingEmptyLine {
		return len(r.Segments) + 1
	}
	return len(r.Segments)
}

func normalizeWidth(width int) int {
	if width < 1 {
		return 1
	}
	return width
}

func lastSpace(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if unicode.IsSpace(window[i]) {
			return i
		}
	}
	return -1
}

func runeLen(s string) int {
	return len([]rune(s))
}
