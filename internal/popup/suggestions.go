package popup

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/edward-r/prompt-maker/internal/keys"
	"github.com/edward-r/prompt-maker/internal/listwindow"
)

// Suggestion is one entry of the slash-command popup.
type Suggestion struct {
	Name        string
	Description string
}

// SuggestionState is the filtered command list and its selection.
type SuggestionState struct {
	Query    string
	Matches  []Suggestion
	Selected int
}

// NewSuggestionState filters all by query and selects the best match.
func NewSuggestionState(all []Suggestion, query string) SuggestionState {
	return SuggestionState{Query: query, Matches: FilterSuggestions(all, query)}
}

// Refilter keeps the selected command selected when it still matches.
func (s SuggestionState) Refilter(all []Suggestion, query string) SuggestionState {
	previous := ""
	if len(s.Matches) > 0 {
		previous = s.Matches[listwindow.ClampSelectionIndex(len(s.Matches), s.Selected)].Name
	}
	next := NewSuggestionState(all, query)
	for i, match := range next.Matches {
		if match.Name == previous {
			next.Selected = i
			break
		}
	}
	return next
}

// FilterSuggestions returns the commands fuzzily matching query, best first.
// An empty query keeps the declared order.
func FilterSuggestions(all []Suggestion, query string) []Suggestion {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]Suggestion(nil), all...)
	}
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	matches := fuzzy.Find(query, names)
	results := make([]Suggestion, 0, len(matches))
	for _, match := range matches {
		results = append(results, all[match.Index])
	}
	return results
}

// Current returns the selected suggestion.
func (s SuggestionState) Current() (Suggestion, bool) {
	if len(s.Matches) == 0 {
		return Suggestion{}, false
	}
	return s.Matches[listwindow.ClampSelectionIndex(len(s.Matches), s.Selected)], true
}

// HandleSuggestionKey reduces a navigation intent. Editing intents are not
// consumed here; the host forwards them to the composer and refilters.
func HandleSuggestionKey(s SuggestionState, in keys.Intent) (SuggestionState, Effect) {
	count := len(s.Matches)
	switch in.Kind {
	case keys.Up:
		s.Selected = wrapIndex(count, s.Selected-1)
	case keys.Down:
		s.Selected = wrapIndex(count, s.Selected+1)
	case keys.PageUp:
		s.Selected = listwindow.ClampSelectionIndex(count, s.Selected-pageStep)
	case keys.PageDown:
		s.Selected = listwindow.ClampSelectionIndex(count, s.Selected+pageStep)
	case keys.Complete, keys.Submit:
		current, ok := s.Current()
		if !ok {
			return s, closeEffect()
		}
		s.Selected = listwindow.ClampSelectionIndex(count, s.Selected)
		return s, Effect{Kind: EffectSelectSuggestion, Value: current.Name, Index: s.Selected}
	case keys.Cancel:
		return s, closeEffect()
	}
	return s, noEffect
}

const pageStep = 5

func wrapIndex(count, index int) int {
	if count <= 0 {
		return 0
	}
	index %= count
	if index < 0 {
		index += count
	}
	return index
}
