package tui

import (
	"context"
	"errors"
	"testing"

	"datebook/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDelete_X_OpensConfirmFocusedOnCancel(t *testing.T) {
	s := seedStore(t, testEntry("entry-del-aaaa", "Old meeting"))
	m := newTestApp(t, s)

	m = press(t, m, keyRune('x'))
	if m.modal != modalConfirmDelete {
		t.Fatalf("expected modalConfirmDelete, got %v", m.modal)
	}
	if m.deleteID != "entry-del-aaaa" {
		t.Fatalf("expected deleteID entry-del-aaaa, got %q", m.deleteID)
	}
	if m.confirmFocus != confirmFocusCancel {
		t.Fatalf("expected cancel focused by default")
	}
}

func TestDelete_Y_DeletesAndCloses(t *testing.T) {
	s := seedStore(t, testEntry("entry-del-bbbb", "Old meeting"), testEntry("entry-del-cccc", "Keep"))
	m := newTestApp(t, s)

	m = press(t, m, keyRune('x'))
	m = press(t, m, keyRune('y'))
	if m.modal != modalNone {
		t.Fatalf("expected the confirm modal to close, got %v", m.modal)
	}

	_, err := s.Get(context.Background(), "entry-del-bbbb")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected entry-del-bbbb gone, got err=%v", err)
	}
	if _, err := s.Get(context.Background(), "entry-del-cccc"); err != nil {
		t.Fatalf("expected entry-del-cccc to survive: %v", err)
	}
	if len(m.entries) != 1 {
		t.Fatalf("expected 1 entry left in the list, got %d", len(m.entries))
	}
}

func TestDelete_EnterOnCancel_KeepsEntry(t *testing.T) {
	s := seedStore(t, testEntry("entry-del-dddd", "Still here"))
	m := newTestApp(t, s)

	m = press(t, m, keyRune('x'))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != modalNone {
		t.Fatalf("expected the confirm modal to close, got %v", m.modal)
	}
	if _, err := s.Get(context.Background(), "entry-del-dddd"); err != nil {
		t.Fatalf("expected the entry to survive: %v", err)
	}
}

func TestDelete_TabThenEnter_Deletes(t *testing.T) {
	s := seedStore(t, testEntry("entry-del-eeee", "Doomed"))
	m := newTestApp(t, s)

	m = press(t, m, keyRune('x'))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.confirmFocus != confirmFocusConfirm {
		t.Fatalf("expected tab to move focus to confirm")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != modalNone {
		t.Fatalf("expected the confirm modal to close, got %v", m.modal)
	}

	_, err := s.Get(context.Background(), "entry-del-eeee")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected the entry gone, got err=%v", err)
	}
}

func TestDelete_EscCancels(t *testing.T) {
	s := seedStore(t, testEntry("entry-del-ffff", "Survivor"))
	m := newTestApp(t, s)

	m = press(t, m, keyRune('x'))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != modalNone {
		t.Fatalf("expected the confirm modal to close, got %v", m.modal)
	}
	if m.deleteID != "" {
		t.Fatalf("expected delete state to reset, got %q", m.deleteID)
	}
	if _, err := s.Get(context.Background(), "entry-del-ffff"); err != nil {
		t.Fatalf("expected the entry to survive: %v", err)
	}
}
