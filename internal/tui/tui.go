// Package tui is the interactive datebook: an entries list with an editor
// modal built around the segmented date field.
package tui

import (
	"datebook/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(s store.Store) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	m, err := newAppModel(s)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
