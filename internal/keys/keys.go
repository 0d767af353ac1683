// Package keys classifies terminal key events into editing and navigation intents.
package keys

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind names what a key press asks for.
type Kind int

const (
	None Kind = iota
	Insert
	Newline
	Backspace
	Delete
	Left
	Right
	Up
	Down
	PageUp
	PageDown
	Home
	End
	Submit
	Complete
	Cancel
	Quit
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Newline:
		return "newline"
	case Backspace:
		return "backspace"
	case Delete:
		return "delete"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case PageUp:
		return "page-up"
	case PageDown:
		return "page-down"
	case Home:
		return "home"
	case End:
		return "end"
	case Submit:
		return "submit"
	case Complete:
		return "complete"
	case Cancel:
		return "cancel"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// Intent is a decoded key press. Text carries inserted characters and Paste
// marks text that arrived through bracketed paste.
type Intent struct {
	Kind  Kind
	Text  string
	Paste bool
}

// Terminals deliver pasted line breaks as CR.
var pasteLineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Classify maps a Bubble Tea key message onto an Intent.
func Classify(msg tea.KeyMsg) Intent {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Paste {
			return Intent{Kind: Insert, Text: pasteLineBreaks.Replace(string(msg.Runes)), Paste: true}
		}
		return Intent{Kind: Insert, Text: string(msg.Runes)}
	case tea.KeySpace:
		return Intent{Kind: Insert, Text: " "}
	case tea.KeyEnter:
		if msg.Alt {
			return Intent{Kind: Newline}
		}
		return Intent{Kind: Submit}
	case tea.KeyCtrlJ:
		return Intent{Kind: Newline}
	case tea.KeyBackspace:
		return Intent{Kind: Backspace}
	case tea.KeyDelete:
		return Intent{Kind: Delete}
	case tea.KeyLeft:
		return Intent{Kind: Left}
	case tea.KeyRight:
		return Intent{Kind: Right}
	case tea.KeyUp, tea.KeyCtrlP:
		return Intent{Kind: Up}
	case tea.KeyDown, tea.KeyCtrlN:
		return Intent{Kind: Down}
	case tea.KeyPgUp:
		return Intent{Kind: PageUp}
	case tea.KeyPgDown:
		return Intent{Kind: PageDown}
	case tea.KeyHome, tea.KeyCtrlA:
		return Intent{Kind: Home}
	case tea.KeyEnd, tea.KeyCtrlE:
		return Intent{Kind: End}
	case tea.KeyTab:
		return Intent{Kind: Complete}
	case tea.KeyEsc:
		return Intent{Kind: Cancel}
	case tea.KeyCtrlC:
		return Intent{Kind: Quit}
	default:
		return Intent{Kind: None}
	}
}
