package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalEditor
	modalConfirmDiscard
	modalConfirmDelete
	modalHelp
)

type editorFocus int

const (
	editorFocusTitle editorFocus = iota
	editorFocusWhen
	editorFocusAllDay
	editorFocusNotes
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// editorBaseline snapshots the editor inputs as opened, so esc can tell
// whether there is anything to discard.
type editorBaseline struct {
	title  string
	notes  string
	when   string
	allDay bool
}

type reloadTickMsg struct{}

type statusExpireMsg struct{ seq int }

func (m appModel) debugKeyMsg(k tea.KeyMsg) {
	if !m.debugEnabled {
		return
	}
	// Keep compact but high-signal for diagnosing modifier keys.
	m.debugLogf("key modal=%d focus=%d str=%q type=%v alt=%v runes=%q",
		int(m.modal), int(m.editorFocus), k.String(), k.Type, k.Alt, string(k.Runes))
}

// debugLogf appends one line to the debug log. Enabled with
// DATEBOOK_TUI_DEBUG; DATEBOOK_TUI_DEBUG_LOG overrides the file path
// (default: debug.log in the data dir). Best-effort, write errors are
// dropped.
func (m appModel) debugLogf(format string, args ...any) {
	if !m.debugEnabled {
		return
	}
	path := m.debugLogPath
	if path == "" {
		path = filepath.Join(m.store.Dir, "debug.log")
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	stamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(f, stamp+" "+format+"\n", args...)
}
