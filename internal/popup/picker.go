package popup

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/edward-r/prompt-maker/internal/keys"
	"github.com/edward-r/prompt-maker/internal/listwindow"
)

// RowKind tags a picker row.
type RowKind int

const (
	RowHeader RowKind = iota
	RowSpacer
	RowItem
)

// Item is a selectable picker entry.
type Item struct {
	Label  string
	Value  string
	Detail string
}

// Section groups items under an optional title.
type Section struct {
	Title string
	Items []Item
}

// Row is one rendered line of a picker.
type Row struct {
	Kind  RowKind
	Label string
	Item  Item
}

// PickerState backs the model, theme and history pickers. Selected indexes
// Rows and always points at an item row when one exists.
type PickerState struct {
	Sections []Section
	Filter   string
	Rows     []Row
	Selected int
}

// NewPicker builds the rows for sections and selects the item whose value
// equals current, falling back to the first item.
func NewPicker(sections []Section, current string) PickerState {
	s := PickerState{Sections: sections}
	s.Rows = BuildRows(sections)
	s.Selected = firstItem(s.Rows)
	for i, row := range s.Rows {
		if row.Kind == RowItem && row.Item.Value == current {
			s.Selected = i
			break
		}
	}
	return s
}

// BuildRows flattens sections into headers, items and blank spacers between
// sections. Sections without items are dropped.
func BuildRows(sections []Section) []Row {
	var rows []Row
	for _, section := range sections {
		if len(section.Items) == 0 {
			continue
		}
		if len(rows) > 0 {
			rows = append(rows, Row{Kind: RowSpacer})
		}
		if section.Title != "" {
			rows = append(rows, Row{Kind: RowHeader, Label: section.Title})
		}
		for _, item := range section.Items {
			rows = append(rows, Row{Kind: RowItem, Label: item.Label, Item: item})
		}
	}
	return rows
}

// Kinds returns the row tags, parallel to Rows.
func (s PickerState) Kinds() []RowKind {
	kinds := make([]RowKind, len(s.Rows))
	for i, row := range s.Rows {
		kinds[i] = row.Kind
	}
	return kinds
}

// Current returns the selected item.
func (s PickerState) Current() (Item, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Rows) || s.Rows[s.Selected].Kind != RowItem {
		return Item{}, false
	}
	return s.Rows[s.Selected].Item, true
}

// Window picks the rows to render within maxRows, keeping the header of the
// first visible section on screen when there is room for it.
func (s PickerState) Window(maxRows int) listwindow.Windowed {
	w := listwindow.ResolveWindowedList(len(s.Rows), s.Selected, maxRows)
	if w.Len() == 0 {
		return w
	}
	capacity := maxRows - indicatorRows(w)
	if w.ShowBefore && w.Start == 1 {
		// Pulling the first header in also retires the "more above" row.
		capacity++
	}
	w.Range = listwindow.EnsureLeadingHeaderVisible(s.Kinds(), w.Range, capacity, RowHeader, RowItem)
	w.ShowBefore = w.Start > 0
	w.ShowAfter = w.End < len(s.Rows)
	return w
}

// WithFilter narrows every section to items fuzzily matching filter.
func (s PickerState) WithFilter(filter string) PickerState {
	current, _ := s.Current()
	next := PickerState{Sections: s.Sections, Filter: filter}
	next.Rows = BuildRows(filterSections(s.Sections, filter))
	next.Selected = firstItem(next.Rows)
	for i, row := range next.Rows {
		if row.Kind == RowItem && row.Item.Value == current.Value {
			next.Selected = i
			break
		}
	}
	return next
}

// HandlePickerKey reduces a key intent. Typed text narrows the list, Enter
// sets the selected value and Esc closes the picker.
func HandlePickerKey(s PickerState, in keys.Intent) (PickerState, Effect) {
	switch in.Kind {
	case keys.Up:
		s.Selected = s.step(-1, 1)
	case keys.Down:
		s.Selected = s.step(1, 1)
	case keys.PageUp:
		s.Selected = s.step(-1, pageStep)
	case keys.PageDown:
		s.Selected = s.step(1, pageStep)
	case keys.Home:
		s.Selected = firstItem(s.Rows)
	case keys.End:
		s.Selected = lastItem(s.Rows)
	case keys.Insert:
		if in.Paste {
			return s, noEffect
		}
		return s.WithFilter(s.Filter + in.Text), noEffect
	case keys.Backspace:
		if s.Filter == "" {
			return s, noEffect
		}
		runes := []rune(s.Filter)
		return s.WithFilter(string(runes[:len(runes)-1])), noEffect
	case keys.Submit, keys.Complete:
		item, ok := s.Current()
		if !ok {
			return s, noEffect
		}
		return s, Effect{Kind: EffectSet, Value: item.Value, Index: s.Selected}
	case keys.Cancel:
		if s.Filter != "" {
			return s.WithFilter(""), noEffect
		}
		return s, closeEffect()
	}
	return s, noEffect
}

// step moves the selection by count item rows in direction dir, stopping at
// the first or last item.
func (s PickerState) step(dir, count int) int {
	selected := s.Selected
	for moved := 0; moved < count; moved++ {
		next := selected + dir
		for next >= 0 && next < len(s.Rows) && s.Rows[next].Kind != RowItem {
			next += dir
		}
		if next < 0 || next >= len(s.Rows) {
			break
		}
		selected = next
	}
	return selected
}

func filterSections(sections []Section, filter string) []Section {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return sections
	}
	out := make([]Section, 0, len(sections))
	for _, section := range sections {
		labels := make([]string, len(section.Items))
		for i, item := range section.Items {
			labels[i] = item.Label
		}
		matches := fuzzy.Find(filter, labels)
		if len(matches) == 0 {
			continue
		}
		items := make([]Item, 0, len(matches))
		for _, match := range matches {
			items = append(items, section.Items[match.Index])
		}
		out = append(out, Section{Title: section.Title, Items: items})
	}
	return out
}

func firstItem(rows []Row) int {
	for i, row := range rows {
		if row.Kind == RowItem {
			return i
		}
	}
	return 0
}

func lastItem(rows []Row) int {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Kind == RowItem {
			return i
		}
	}
	return 0
}

func indicatorRows(w listwindow.Windowed) int {
	rows := 0
	if w.ShowBefore {
		rows++
	}
	if w.ShowAfter {
		rows++
	}
	return rows
}
