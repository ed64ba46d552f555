package tui

import (
	"context"
	"strings"
	"time"

	"datebook/internal/datefield"
	"datebook/internal/model"
	"datebook/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		m.seenWindowSize = true
		return m, nil

	case reloadTickMsg:
		if m.storeChanged() {
			_ = m.reloadFromDisk()
			(&m).syncEditorFromStore()
		}
		return m, tickReload()

	case statusExpireMsg:
		// Only clear if this corresponds to the latest flash.
		if msg.seq == m.statusSeq {
			m.statusText = ""
		}
		return m, nil

	case datefield.ChangedMsg:
		// The when field completed or cleared; any stale save error is moot.
		m.editorErr = ""
		return m, nil

	case datefield.TabOutMsg:
		if m.modal == modalEditor && m.editorFocus == editorFocusWhen {
			next := editorFocusTitle
			if msg.Forward {
				next = editorFocusAllDay
			}
			return m, (&m).setEditorFocus(next)
		}
		return m, nil

	case tea.KeyMsg:
		// Write every key event to the debug log (if configured).
		m.debugKeyMsg(msg)
		switch m.modal {
		case modalEditor:
			return m.updateEditor(msg)
		case modalConfirmDiscard:
			return m.updateConfirmDiscard(msg)
		case modalConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modalHelp:
			return m.updateHelp(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// When filtering, capture all keystrokes for the filter input. This
	// prevents global bindings like "a" (add) from triggering while typing.
	if m.entriesList.SettingFilter() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.entriesList, cmd = m.entriesList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		// Reload from disk (so running CLI commands in another terminal is reflected).
		_ = m.reloadFromDisk()
		return m, nil
	case "a", "n":
		(&m).openEditor(model.Entry{})
		return m, nil
	case "enter", "e":
		if it, ok := m.entriesList.SelectedItem().(entryItem); ok {
			(&m).openEditor(it.entry)
		}
		return m, nil
	case "d":
		if it, ok := m.entriesList.SelectedItem().(entryItem); ok {
			e := it.entry
			e.Done = !e.Done
			e.UpdatedAt = time.Now().UTC()
			if err := m.store.Put(context.Background(), e); err != nil {
				return m, (&m).flashStatus("Error: " + err.Error())
			}
			_ = m.reloadFromDisk()
			m.selectEntry(e.ID)
			label := "Done: "
			if !e.Done {
				label = "Not done: "
			}
			return m, (&m).flashStatus(label + e.Title)
		}
		return m, nil
	case "x":
		if it, ok := m.entriesList.SelectedItem().(entryItem); ok {
			m.modal = modalConfirmDelete
			m.deleteID = it.entry.ID
			m.deleteTitle = it.entry.Title
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	case "?":
		m.modal = modalHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.entriesList, cmd = m.entriesList.Update(msg)
	return m, cmd
}

func (m appModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		// Confirm when there are unsaved edits, to prevent accidental loss.
		if m.editorDirty() {
			m.modal = modalConfirmDiscard
			return m, nil
		}
		(&m).closeModal()
		return m, nil
	case "ctrl+s":
		return m.saveEditor()
	}

	switch m.editorFocus {
	case editorFocusTitle:
		switch msg.String() {
		case "tab", "enter":
			return m, (&m).setEditorFocus(editorFocusWhen)
		case "shift+tab":
			return m, (&m).setEditorFocus(editorFocusNotes)
		}
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd

	case editorFocusWhen:
		// The field owns tab/shift+tab; it yields a TabOutMsg at its edges.
		var cmd tea.Cmd
		m.whenField, cmd = m.whenField.Update(msg)
		return m, cmd

	case editorFocusAllDay:
		switch msg.String() {
		case "tab":
			return m, (&m).setEditorFocus(editorFocusNotes)
		case "shift+tab":
			return m, (&m).setEditorFocus(editorFocusWhen)
		case " ", "enter", "x":
			(&m).toggleAllDay()
			return m, nil
		}
		return m, nil

	case editorFocusNotes:
		switch msg.String() {
		case "tab":
			return m, (&m).setEditorFocus(editorFocusTitle)
		case "shift+tab":
			return m, (&m).setEditorFocus(editorFocusAllDay)
		}
		var cmd tea.Cmd
		m.notesArea, cmd = m.notesArea.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		(&m).closeModal()
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.deleteConfirmed()
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.deleteConfirmed()
		}
		(&m).closeModal()
		return m, nil
	}
	return m, nil
}

func (m appModel) deleteConfirmed() (tea.Model, tea.Cmd) {
	id := m.deleteID
	title := m.deleteTitle
	(&m).closeModal()
	if err := m.store.Delete(context.Background(), id); err != nil {
		return m, (&m).flashStatus("Error: " + err.Error())
	}
	_ = m.reloadFromDisk()
	return m, (&m).flashStatus("Deleted: " + title)
}

func (m appModel) updateConfirmDiscard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		(&m).closeModal()
		return m, nil
	case "n", "esc", "ctrl+g":
		// Back to the editor as it was.
		m.modal = modalEditor
		return m, nil
	}
	return m, nil
}

// editorDirty reports whether the editor inputs differ from the entry as it
// was opened.
func (m appModel) editorDirty() bool {
	return m.titleInput.Value() != m.baseline.title ||
		m.notesArea.Value() != m.baseline.notes ||
		m.whenField.DisplayValue() != m.baseline.when ||
		m.allDay != m.baseline.allDay
}

// syncEditorFromStore pushes the refreshed When of the entry being edited
// into the open editor's date field. The field's own sync layer drops the
// update while the field is focused or mid-edit.
func (m *appModel) syncEditorFromStore() {
	if m.modal != modalEditor || m.editingEntry.ID == "" {
		return
	}
	e, ok := m.entryByID(m.editingEntry.ID)
	if !ok {
		return
	}
	before := m.whenField.DisplayValue()
	if e.When == nil {
		m.whenField.SetValue(nil)
	} else if t, ok := e.When.Resolve(); ok {
		m.whenField.SetValue(&t)
	}
	// An applied external value is the new "unchanged" state for esc.
	if after := m.whenField.DisplayValue(); after != before {
		m.baseline.when = after
	}
}

func (m appModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "q", "?", "enter":
		m.modal = modalNone
	}
	return m, nil
}

// openEditor prepares the editor modal; a zero-ID entry means "create".
func (m *appModel) openEditor(e model.Entry) {
	m.modal = modalEditor
	m.editingEntry = e
	m.editorErr = ""

	m.titleInput.SetValue(e.Title)
	m.titleInput.CursorEnd()
	m.notesArea.SetValue(e.Notes)

	m.allDay = e.When != nil && e.When.Time == nil
	mode := datefield.ModeDateTime
	if m.allDay {
		mode = datefield.ModeDate
	}
	// Fresh field per edit so leftover typing state never leaks between entries.
	m.whenField = datefield.New(datefield.WithMode(mode))
	if e.When != nil {
		if t, ok := e.When.Resolve(); ok {
			m.whenField.SetValue(&t)
		}
	}

	m.editorFocus = editorFocusTitle
	m.titleInput.Focus()
	m.notesArea.Blur()

	m.baseline = editorBaseline{
		title:  m.titleInput.Value(),
		notes:  m.notesArea.Value(),
		when:   m.whenField.DisplayValue(),
		allDay: m.allDay,
	}
}

func (m *appModel) setEditorFocus(f editorFocus) tea.Cmd {
	if m.editorFocus == f {
		return nil
	}
	var cmd tea.Cmd
	// Leaving the when field normalizes partial input (zero padding, year pivot).
	if m.editorFocus == editorFocusWhen && m.whenField.Focused() {
		cmd = m.whenField.Blur()
	}
	m.titleInput.Blur()
	m.notesArea.Blur()
	m.editorFocus = f
	switch f {
	case editorFocusTitle:
		m.titleInput.Focus()
	case editorFocusWhen:
		m.whenField.Focus()
	case editorFocusNotes:
		m.notesArea.Focus()
	}
	return cmd
}

func (m *appModel) toggleAllDay() {
	m.allDay = !m.allDay
	if m.allDay {
		m.whenField.SetMode(datefield.ModeDate)
	} else {
		m.whenField.SetMode(datefield.ModeDateTime)
	}
}

func (m appModel) saveEditor() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		m.editorErr = "title is required"
		return m, nil
	}
	// Blur first so partial input is normalized before we read the value.
	if m.whenField.Focused() {
		_ = m.whenField.Blur()
	}
	var when *model.DateTime
	if !m.whenField.Empty() {
		v := m.whenField.Value()
		if v == nil {
			m.editorErr = "incomplete date"
			// Hand the field back so the user can keep typing.
			if m.editorFocus == editorFocusWhen {
				m.whenField.Focus()
			}
			return m, nil
		}
		when = model.DateTimeFromTime(*v, m.allDay)
	}

	e := m.editingEntry
	now := time.Now().UTC()
	if e.ID == "" {
		id, err := store.NewEntryID()
		if err != nil {
			m.editorErr = err.Error()
			return m, nil
		}
		e.ID = id
		e.CreatedAt = now
	}
	e.Title = title
	e.Notes = m.notesArea.Value()
	e.When = when
	e.UpdatedAt = now

	if err := m.store.Put(context.Background(), e); err != nil {
		m.editorErr = err.Error()
		return m, nil
	}
	(&m).closeModal()
	_ = m.reloadFromDisk()
	m.selectEntry(e.ID)
	return m, (&m).flashStatus("Saved: " + e.Title)
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.editingEntry = model.Entry{}
	m.editorErr = ""
	m.editorFocus = editorFocusTitle
	m.baseline = editorBaseline{}
	m.titleInput.Blur()
	m.notesArea.Blur()
	m.deleteID = ""
	m.deleteTitle = ""
	m.confirmFocus = confirmFocusCancel
}

func (m *appModel) flashStatus(text string) tea.Cmd {
	m.statusText = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg { return statusExpireMsg{seq: seq} })
}
