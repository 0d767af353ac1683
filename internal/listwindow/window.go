// Package listwindow computes which slice of a scrollable list is rendered
// under a fixed row budget.
package listwindow

// DefaultLead is the number of context rows kept above the focused index.
const DefaultLead = 2

// maxIndicatorRounds bounds the indicator fixed point; it settles within two
// rounds in practice.
const maxIndicatorRounds = 4

// Range is a half-open index range [Start, End) over a list.
type Range struct {
	Start int
	End   int
}

// Len is the number of indices covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Windowed is a Range plus the "more above" and "more below" indicator flags.
type Windowed struct {
	Range
	ShowBefore bool
	ShowAfter  bool
}

// ClampSelectionIndex constrains index to [0, itemCount-1], or 0 for an empty list.
func ClampSelectionIndex(itemCount, index int) int {
	if itemCount <= 0 || index < 0 {
		return 0
	}
	if index >= itemCount {
		return itemCount - 1
	}
	return index
}

// ResolveCursorWindow returns the windowSize-wide range that keeps up to
// DefaultLead rows of context before cursorIndex.
func ResolveCursorWindow(itemCount, cursorIndex, windowSize int) Range {
	return cursorWindow(itemCount, cursorIndex, windowSize, DefaultLead)
}

// ResolveWindowedList windows a list with DefaultLead rows of context.
func ResolveWindowedList(itemCount, selectedIndex, maxVisibleRows int) Windowed {
	return ResolveWindowedListLead(itemCount, selectedIndex, maxVisibleRows, DefaultLead)
}

// ResolveWindowedListLead windows a list whose indicator rows come out of
// maxVisibleRows. Reserving an indicator shrinks the item window, which can
// in turn change whether the indicator is needed, so both are refined
// together until they agree.
func ResolveWindowedListLead(itemCount, selectedIndex, maxVisibleRows, lead int) Windowed {
	if itemCount <= 0 || maxVisibleRows <= 0 {
		return Windowed{}
	}
	if itemCount <= maxVisibleRows {
		return Windowed{Range: Range{Start: 0, End: itemCount}}
	}

	showBefore, showAfter := true, true
	var window Range
	for round := 0; round < maxIndicatorRounds; round++ {
		rows := maxVisibleRows - boolRows(showBefore) - boolRows(showAfter)
		if rows < 1 {
			rows = 1
		}
		window = cursorWindow(itemCount, selectedIndex, rows, lead)
		before := window.Start > 0
		after := window.End < itemCount
		if before == showBefore && after == showAfter {
			break
		}
		showBefore, showAfter = before, after
	}
	return Windowed{
		Range:      window,
		ShowBefore: window.Start > 0,
		ShowAfter:  window.End < itemCount,
	}
}

func cursorWindow(itemCount, cursorIndex, windowSize, lead int) Range {
	if itemCount <= 0 || windowSize <= 0 {
		return Range{}
	}
	size := windowSize
	if size > itemCount {
		size = itemCount
	}
	if lead < 0 {
		lead = 0
	}
	if lead > size-1 {
		lead = size - 1
	}
	cursor := ClampSelectionIndex(itemCount, cursorIndex)
	start := cursor - lead
	if maxStart := itemCount - size; start > maxStart {
		start = maxStart
	}
	if start < 0 {
		start = 0
	}
	return Range{Start: start, End: start + size}
}

func boolRows(show bool) int {
	if show {
		return 1
	}
	return 0
}
