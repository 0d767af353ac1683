// Package popup holds the keyboard reducers of the composer popups. Each
// reducer is a pure function returning the next popup state and an Effect
// that the TUI applies.
package popup

import "fmt"

// EffectKind tags what the host should do after a popup handled a key.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectSet
	EffectRemove
	EffectSelectSuggestion
	EffectClose
)

func (k EffectKind) String() string {
	switch k {
	case EffectSet:
		return "set"
	case EffectRemove:
		return "remove"
	case EffectSelectSuggestion:
		return "selectSuggestion"
	case EffectClose:
		return "close"
	default:
		return "none"
	}
}

// Effect is the outcome of a popup key press. Value is used by set and
// selectSuggestion, Index by remove and selectSuggestion.
type Effect struct {
	Kind  EffectKind
	Value string
	Index int
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectSet, EffectSelectSuggestion:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Value)
	case EffectRemove:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Index)
	default:
		return e.Kind.String()
	}
}

var noEffect = Effect{Kind: EffectNone}

func closeEffect() Effect {
	return Effect{Kind: EffectClose}
}
