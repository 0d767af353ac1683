package tui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

type pageLayout struct {
	windowWidth      int
	windowHeight     int
	contentWidth     int
	composerWidth    int
	composerRows     int
	popupRows        int
	transcriptHeight int
}

func newPageLayout() pageLayout {
	l := pageLayout{}
	l.Update(80, 24, false)
	return l
}

// Update splits the terminal between transcript, popup and composer. The
// popup and composer keep their budgets; the transcript absorbs the rest.
func (l *pageLayout) Update(width, height int, popupOpen bool) {
	l.windowWidth = width
	l.windowHeight = height
	l.contentWidth = width
	if l.contentWidth < minComposerWidth+composerPadding {
		l.contentWidth = minComposerWidth + composerPadding
	}
	l.composerWidth = l.contentWidth - composerPadding

	const header = 1
	const footer = 2
	const composerBorder = 2
	const popupChrome = 3
	l.composerRows = maxComposerRows
	if height < 20 {
		l.composerRows = 3
	}
	l.popupRows = 0
	if popupOpen {
		l.popupRows = maxPopupRows
		if height < 20 {
			l.popupRows = 4
		}
	}
	usable := height - header - footer - composerBorder - l.composerRows
	if popupOpen {
		usable -= l.popupRows + popupChrome
	}
	if usable < transcriptMinLines {
		usable = transcriptMinLines
	}
	l.transcriptHeight = usable
}

func (m *model) buildTranscript() string {
	var cb strings.Builder
	if len(m.transcript) == 0 {
		cb.WriteString(m.styles.Helper.Render("Write a draft below and press Enter to refine it."))
		cb.WriteRune('\n')
		cb.WriteString(m.styles.Helper.Render("Type / for commands: attach files, switch models or themes, reopen history."))
		return cb.String()
	}
	wrap := m.wrapWidth(2)
	for idx, entry := range m.transcript {
		label := transcriptLabel(entry.Kind)
		if label != "" {
			style := m.styles.Label
			if entry.Kind == "error" {
				style = m.styles.Error
			}
			cb.WriteString(style.Render(label))
			cb.WriteRune('\n')
		}
		body := wordwrap.String(entry.Content, wrap)
		cb.WriteString(indentMultiline(body, "  "))
		cb.WriteRune('\n')
		if idx < len(m.transcript)-1 {
			cb.WriteRune('\n')
		}
	}
	return cb.String()
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func (m *model) wrapWidth(padding int) int {
	width := m.layout.contentWidth
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}

func transcriptLabel(kind string) string {
	switch kind {
	case "draft":
		return "You"
	case "refined":
		return "Refined"
	case "system":
		return "System"
	case "error":
		return "Error"
	default:
		return kind
	}
}
