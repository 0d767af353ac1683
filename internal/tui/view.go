package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/edward-r/prompt-maker/internal/listwindow"
	"github.com/edward-r/prompt-maker/internal/popup"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	parts := []string{m.heroView(), m.viewport.View()}
	if p := m.popupView(); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, m.composerPanel(), m.statusView())
	if m.helpVisible {
		parts = append(parts, m.helpView())
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	title := m.styles.SectionHeader.Render("prompt-maker")
	tagline := m.styles.Helper.Render(heroTagline)
	modelName := "no model"
	if m.config.LLM != nil {
		modelName = m.config.LLM.Name()
	}
	left := title + "  " + tagline
	right := m.styles.StatusBar.Render(modelName)
	gap := m.layout.contentWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *model) composerPanel() string {
	rows := m.layout.composerRows
	view := m.composer.Render(m.layout.composerWidth, rows, m.styles, composerPlaceholder)
	if view.totalRows > rows && rows > 1 {
		view = m.composer.Render(m.layout.composerWidth, rows-1, m.styles, composerPlaceholder)
	}
	body := strings.Join(view.rows, "\n")
	if hidden := view.totalRows - len(view.rows); hidden > 0 {
		body += "\n" + m.styles.Indicator.Render(fmt.Sprintf("%d more line(s)", hidden))
	}
	return m.styles.ComposerBox.Width(m.layout.composerWidth + 2).Render(body)
}

func (m *model) statusView() string {
	var parts []string
	if m.errorMessage != "" {
		parts = append(parts, m.styles.Error.Render(m.errorMessage))
	}
	message := m.infoMessage
	if m.busy() {
		message = fmt.Sprintf("%s %s", m.spinner.View(), message)
	}
	status := message
	if n := len(m.attachments); n > 0 {
		status = fmt.Sprintf("%s  ·  %d file(s) attached", status, n)
	}
	parts = append(parts, m.styles.StatusBar.Render(status))
	return joinNonEmpty(parts)
}

func (m *model) helpView() string {
	lines := []string{
		m.styles.SectionHeader.Render("Keys"),
		"Enter        refine the draft, run a /command",
		"Alt+Enter    new line (Ctrl+J also works)",
		"Tab          complete a /command",
		"PgUp/PgDn    scroll the conversation",
		"Esc          close popup, clear the composer",
		"Ctrl+C       quit",
		"",
		m.styles.SectionHeader.Render("Commands"),
	}
	for _, cmd := range slashCommands {
		name := "/" + cmd.name
		if cmd.takesArg {
			name += " …"
		}
		lines = append(lines, fmt.Sprintf("%-12s %s", name, cmd.description))
	}
	return m.styles.Helper.Render(strings.Join(lines, "\n"))
}

func (m *model) popupView() string {
	rows := m.layout.popupRows
	width := m.layout.composerWidth
	var title string
	var body []string
	switch m.popup {
	case popupSuggestions:
		title = "Commands"
		body = m.suggestionRows(rows, width)
	case popupPicker:
		title = m.pickerKind.title()
		if m.picker.Filter != "" {
			title = fmt.Sprintf("%s · %s", title, m.picker.Filter)
		}
		body = m.pickerRows(rows, width)
	case popupFiles:
		title = "Attached files"
		body = m.fileRows(rows, width)
	default:
		return ""
	}
	if len(body) == 0 {
		body = []string{m.styles.Helper.Render("No matches.")}
	}
	content := m.styles.SectionHeader.Render(title) + "\n" + strings.Join(body, "\n")
	return m.styles.PopupBox.Width(m.layout.composerWidth + 2).Render(content)
}

func (m *model) suggestionRows(maxRows, width int) []string {
	matches := m.suggestions.Matches
	w := listwindow.ResolveWindowedList(len(matches), m.suggestions.Selected, maxRows)
	return m.windowRows(w, len(matches), func(i int) string {
		match := matches[i]
		line := fmt.Sprintf("/%-10s %s", match.Name, m.styles.Helper.Render(match.Description))
		return m.selectable(truncate.StringWithTail(line, uint(width), "…"), i == m.suggestions.Selected)
	})
}

func (m *model) pickerRows(maxRows, width int) []string {
	w := m.picker.Window(maxRows)
	return m.windowRows(w, len(m.picker.Rows), func(i int) string {
		row := m.picker.Rows[i]
		switch row.Kind {
		case popup.RowHeader:
			return m.styles.Label.Render(truncate.StringWithTail(row.Label, uint(width), "…"))
		case popup.RowSpacer:
			return ""
		}
		line := "  " + row.Label
		if row.Item.Detail != "" {
			line += "  " + m.styles.Helper.Render(row.Item.Detail)
		}
		return m.selectable(truncate.StringWithTail(line, uint(width), "…"), i == m.picker.Selected)
	})
}

// fileRows keeps one row of the budget for the help line.
func (m *model) fileRows(maxRows, width int) []string {
	listRows := maxRows - 1
	if listRows < 1 {
		listRows = 1
	}
	w := m.files.Window(listRows)
	rows := m.windowRows(w, len(m.files.Paths), func(i int) string {
		return m.selectable(truncate.StringWithTail(m.files.Paths[i], uint(width), "…"), i == m.files.Selected)
	})
	return append(rows, m.styles.Helper.Render("Del removes the selected file."))
}

// windowRows renders the visible slice of a list between its overflow
// indicators.
func (m *model) windowRows(w listwindow.Windowed, total int, render func(int) string) []string {
	var rows []string
	if w.ShowBefore {
		rows = append(rows, m.styles.Indicator.Render(fmt.Sprintf("↑ %d more", w.Start)))
	}
	for i := w.Start; i < w.End; i++ {
		rows = append(rows, render(i))
	}
	if w.ShowAfter {
		rows = append(rows, m.styles.Indicator.Render(fmt.Sprintf("↓ %d more", total-w.End)))
	}
	return rows
}

func (m *model) selectable(line string, selected bool) string {
	if selected {
		return m.styles.Selected.Render(line)
	}
	return line
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n")
}
