package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"datebook/internal/datefield"
	"datebook/internal/model"
	"datebook/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type appModel struct {
	store   store.Store
	entries []model.Entry

	width  int
	height int
	// View renders nothing until the first WindowSizeMsg arrives; layout
	// math against a zero width draws garbage.
	seenWindowSize bool

	entriesList list.Model

	modal modalKind

	// Editor modal state. editingEntry carries the original so saves keep
	// Done/CreatedAt; a zero ID means the editor creates a new entry.
	editingEntry model.Entry
	titleInput   textinput.Model
	notesArea    textarea.Model
	whenField    datefield.Model
	allDay       bool
	editorFocus  editorFocus
	editorErr    string
	baseline     editorBaseline

	deleteID     string
	deleteTitle  string
	confirmFocus confirmModalFocus

	statusText string
	statusSeq  int

	debugEnabled bool
	debugLogPath string

	lastDBModTime time.Time
}

func newAppModel(s store.Store) (appModel, error) {
	entries, err := s.List(context.Background())
	if err != nil {
		return appModel{}, err
	}
	m := appModel{
		store:        s,
		entries:      entries,
		confirmFocus: confirmFocusCancel,
	}

	if strings.TrimSpace(os.Getenv("DATEBOOK_TUI_DEBUG")) != "" {
		m.debugEnabled = true
	}
	m.debugLogPath = strings.TrimSpace(os.Getenv("DATEBOOK_TUI_DEBUG_LOG"))

	m.entriesList = newList("Datebook", "Your entries", nil)
	m.entriesList.SetDelegate(newEntryDelegate())

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Title"
	m.titleInput.CharLimit = 200
	m.titleInput.Width = 40

	m.notesArea = textarea.New()
	m.notesArea.Placeholder = "Notes…"
	m.notesArea.CharLimit = 0
	m.notesArea.SetWidth(56)
	m.notesArea.SetHeight(5)
	m.notesArea.ShowLineNumbers = false

	m.whenField = datefield.New(datefield.WithMode(datefield.ModeDateTime))

	m.refreshEntries()
	m.captureStoreModTime()
	return m, nil
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func newList(title, statusName string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName(statusName, statusName+"s")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases (common muscle memory).
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}

// refreshEntries rebuilds the list items from m.entries, keeping the
// selection on the same entry when possible.
func (m *appModel) refreshEntries() {
	curID := ""
	if it, ok := m.entriesList.SelectedItem().(entryItem); ok {
		curID = it.entry.ID
	}
	items := make([]list.Item, 0, len(m.entries))
	for _, e := range m.entries {
		items = append(items, entryItem{entry: e})
	}
	m.entriesList.SetItems(items)
	if curID != "" {
		m.selectEntry(curID)
	}
}

func (m *appModel) selectEntry(id string) {
	for i, it := range m.entriesList.Items() {
		if e, ok := it.(entryItem); ok && e.entry.ID == id {
			m.entriesList.Select(i)
			return
		}
	}
}

func (m appModel) entryByID(id string) (model.Entry, bool) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.Entry{}, false
}

func (m *appModel) resizeLists() {
	// Leave room for header/footer.
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.entriesList.SetSize(w, h)
}

func tickReload() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

// storeModTime covers the WAL sidecar too: under journal_mode=WAL, writes land
// there first and the main db file's mtime lags.
func (m appModel) storeModTime() time.Time {
	mt := fileModTime(filepath.Join(m.store.Dir, "datebook.db"))
	if wal := fileModTime(filepath.Join(m.store.Dir, "datebook.db-wal")); wal.After(mt) {
		mt = wal
	}
	return mt
}

func (m *appModel) captureStoreModTime() {
	m.lastDBModTime = m.storeModTime()
}

func (m appModel) storeChanged() bool {
	return m.storeModTime().After(m.lastDBModTime)
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}

// reloadFromDisk re-reads all entries (so running CLI commands in another
// terminal is reflected).
func (m *appModel) reloadFromDisk() error {
	entries, err := m.store.List(context.Background())
	if err != nil {
		return err
	}
	m.entries = entries
	m.captureStoreModTime()
	m.refreshEntries()
	return nil
}
