package listwindow

// EnsureLeadingHeaderVisible pulls a section header back into a window that
// starts on that section's first item, as long as the window has room for
// one more row. kinds tags each row of the list; any other arrangement is
// returned unchanged.
func EnsureLeadingHeaderVisible[K comparable](kinds []K, bounds Range, maxRows int, header, item K) Range {
	if bounds.Start <= 0 || bounds.Start >= len(kinds) {
		return bounds
	}
	if bounds.Len() >= maxRows {
		return bounds
	}
	if kinds[bounds.Start-1] != header || kinds[bounds.Start] != item {
		return bounds
	}
	start := bounds.Start - 1
	end := bounds.End + 1
	if end > len(kinds) {
		end = len(kinds)
	}
	if end-start > maxRows {
		end = start + maxRows
	}
	return Range{Start: start, End: end}
}
