package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if !m.seenWindowSize {
		return ""
	}

	switch m.modal {
	case modalEditor:
		return m.placeCentered(m.renderEditorModal())
	case modalConfirmDiscard:
		bodyW := modalBodyWidth(m.width)
		desc := styleMuted().Width(bodyW).Render("Changes are not saved until you press ctrl+s.")
		body := strings.Join([]string{
			"Discard changes to this entry?",
			desc,
			"enter/y: discard   esc/n: keep editing",
		}, "\n\n")
		return m.placeCentered(renderModalBox(m.width, "Confirm", body))
	case modalConfirmDelete:
		body := fmt.Sprintf("Delete %q?\n\nThis cannot be undone.", m.deleteTitle)
		return m.placeCentered(renderConfirmModal(m.width, "Delete entry", body, "Delete", "Cancel", m.confirmFocus))
	case modalHelp:
		return m.placeCentered(m.renderHelpModal())
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Render(fmt.Sprintf("Datebook  Dir=%s  Entries=%d", m.store.Dir, len(m.entries)))

	body := m.entriesList.View()

	footer := lipgloss.NewStyle().Faint(true).
		Render("a: add  enter: edit  d: done  x: delete  /: filter  ?: help  r: reload  q: quit")
	if strings.TrimSpace(m.statusText) != "" {
		footer = lipgloss.NewStyle().Foreground(colorAccent).Render(m.statusText)
	}

	return strings.Join([]string{header, body, footer}, "\n\n")
}

func (m appModel) placeCentered(s string) string {
	// If the modal fills the screen, Place will naturally have no padding; otherwise it centers.
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

// renderModalBox draws a modal as a bold header strip above a padded body
// surface. Borders are avoided: some terminals show background artifacts when
// nesting styled components inside a bordered box.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorModalHeaderFg).
		Background(colorModalHeaderBg).
		Padding(0, 2).
		Width(bodyW + 4).
		Render(title)

	body := lipgloss.NewStyle().
		Foreground(colorModalSurfaceFg).
		Background(colorModalSurfaceBg).
		Padding(1, 2).
		Width(bodyW + 4).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// modalBodyWidth is the usable content width inside a modal at a given
// terminal width.
func modalBodyWidth(width int) int {
	w := width - 8
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}
