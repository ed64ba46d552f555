package tui

import (
	"context"
	"testing"
	"time"

	"datebook/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func TestReloadTick_PicksUpExternalWrites(t *testing.T) {
	s := seedStore(t, testEntry("entry-rld-aaaa", "First"))
	m := newTestApp(t, s)

	// Another process (e.g. the CLI) writes a second entry.
	if err := s.Put(context.Background(), testEntry("entry-rld-bbbb", "Second")); err != nil {
		t.Fatalf("external put: %v", err)
	}
	// Force the mod time comparison to see the write regardless of the
	// filesystem's timestamp resolution.
	m.lastDBModTime = time.Time{}

	mAny, cmd := m.Update(reloadTickMsg{})
	m = mAny.(appModel)
	if len(m.entries) != 2 {
		t.Fatalf("expected 2 entries after reload, got %d", len(m.entries))
	}
	if cmd == nil {
		t.Fatalf("expected the next tick to be scheduled")
	}
}

func TestReloadTick_EditorOpen_SyncsWhenField(t *testing.T) {
	e := testEntry("entry-rld-cccc", "Standup")
	e.When = &model.DateTime{Date: "2024-03-15", Time: strPtr("09:30")}
	s := seedStore(t, e)
	m := newTestApp(t, s)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // editor open, focus on title

	e.When = &model.DateTime{Date: "2024-06-01", Time: strPtr("14:00")}
	if err := s.Put(context.Background(), e); err != nil {
		t.Fatalf("external put: %v", err)
	}
	m.lastDBModTime = time.Time{}

	mAny, _ := m.Update(reloadTickMsg{})
	m = mAny.(appModel)
	if m.modal != modalEditor {
		t.Fatalf("expected the editor to stay open")
	}
	if got := m.whenField.DisplayValue(); got != "01/06/2024 14:00" {
		t.Fatalf("expected the idle field to pick up the external write, got %q", got)
	}
	if m.editorDirty() {
		t.Fatalf("an applied external value should not count as an unsaved edit")
	}
}

func TestReloadTick_EditorOpen_TypingWinsOverSync(t *testing.T) {
	e := testEntry("entry-rld-dddd", "Standup")
	e.When = &model.DateTime{Date: "2024-03-15", Time: strPtr("09:30")}
	s := seedStore(t, e)
	m := newTestApp(t, s)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}) // focus the when field
	m = typeRunes(t, m, "2")                      // day restarts with "2"

	e.When = &model.DateTime{Date: "2024-06-01", Time: strPtr("14:00")}
	if err := s.Put(context.Background(), e); err != nil {
		t.Fatalf("external put: %v", err)
	}
	m.lastDBModTime = time.Time{}

	mAny, _ := m.Update(reloadTickMsg{})
	m = mAny.(appModel)
	if len(m.entries) != 1 || m.entries[0].When == nil || m.entries[0].When.Date != "2024-06-01" {
		t.Fatalf("expected the list data to reload behind the editor")
	}
	if got := m.whenField.DisplayValue(); got != "2d/03/2024 09:30" {
		t.Fatalf("expected the focused field to keep the draft, got %q", got)
	}
}

func TestList_R_ReloadsFromDisk(t *testing.T) {
	s := seedStore(t, testEntry("entry-rld-eeee", "First"))
	m := newTestApp(t, s)

	if err := s.Put(context.Background(), testEntry("entry-rld-ffff", "Second")); err != nil {
		t.Fatalf("external put: %v", err)
	}

	m = press(t, m, keyRune('r'))
	if len(m.entries) != 2 {
		t.Fatalf("expected 2 entries after manual reload, got %d", len(m.entries))
	}
}

func TestStoreChanged_FalseWithoutWrites(t *testing.T) {
	s := seedStore(t, testEntry("entry-rld-gggg", "Only"))
	m := newTestApp(t, s)

	if m.storeChanged() {
		t.Fatalf("expected no change right after startup")
	}
}

func TestReloadKeepsSelectionByID(t *testing.T) {
	a := testEntry("entry-rld-hhhh", "First")
	b := testEntry("entry-rld-iiii", "Second")
	b.CreatedAt = a.CreatedAt.Add(time.Minute)
	s := seedStore(t, a, b)
	m := newTestApp(t, s)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	it, _ := m.entriesList.SelectedItem().(entryItem)
	if it.entry.ID != "entry-rld-iiii" {
		t.Fatalf("expected to select the second entry, got %q", it.entry.ID)
	}

	// A third entry sorts ahead of the selected one (older creation stamp).
	c := testEntry("entry-rld-jjjj", "Zeroth")
	c.CreatedAt = a.CreatedAt.Add(-time.Minute)
	if err := s.Put(context.Background(), c); err != nil {
		t.Fatalf("external put: %v", err)
	}

	m = press(t, m, keyRune('r'))
	it, _ = m.entriesList.SelectedItem().(entryItem)
	if it.entry.ID != "entry-rld-iiii" {
		t.Fatalf("expected selection to follow the entry id, got %q", it.entry.ID)
	}
}
