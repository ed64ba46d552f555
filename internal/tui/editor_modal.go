package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) renderEditorModal() string {
	bodyW := modalBodyWidth(m.width)

	title := "Edit entry"
	if m.editingEntry.ID == "" {
		title = "New entry"
	}

	renderPill := func(active bool, content string) string {
		st := lipgloss.NewStyle().Background(colorInputBg).Foreground(colorSurfaceFg)
		if active {
			st = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
		}
		return st.Render(" " + content + " ")
	}

	allDayLabel := "[ ] all day"
	if m.allDay {
		allDayLabel = "[x] all day"
	}
	whenLine := lipgloss.JoinHorizontal(lipgloss.Top,
		m.whenField.View(),
		"  ",
		renderPill(m.editorFocus == editorFocusAllDay, allDayLabel),
	)

	help := styleMuted().Width(bodyW).Render("tab: focus  ctrl+s: save  esc/ctrl+g: cancel")

	lines := []string{
		styleMuted().Width(bodyW).Render("Title"),
		m.titleInput.View(),
		"",
		styleMuted().Width(bodyW).Render("When (optional)"),
		whenLine,
		"",
		styleMuted().Width(bodyW).Render("Notes"),
		m.notesArea.View(),
	}
	if strings.TrimSpace(m.editorErr) != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(colorOverdue).Render(m.editorErr))
	}
	lines = append(lines, "", help)

	return renderModalBox(m.width, title, strings.Join(lines, "\n"))
}
