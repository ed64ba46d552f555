package datefield

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func pressKey(m Model, msg tea.KeyMsg) (Model, tea.Msg) {
	m2, cmd := m.Update(msg)
	if cmd == nil {
		return m2, nil
	}
	return m2, cmd()
}

// typeString feeds runes one key press at a time, collecting any messages
// the field's commands produce along the way.
func typeString(m Model, s string) (Model, []tea.Msg) {
	var msgs []tea.Msg
	for _, r := range s {
		var msg tea.Msg
		m, msg = pressKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		if msg != nil {
			msgs = append(msgs, msg)
		}
	}
	return m, msgs
}

func lastChanged(t *testing.T, msgs []tea.Msg) ChangedMsg {
	t.Helper()
	var out *ChangedMsg
	for _, msg := range msgs {
		if ch, ok := msg.(ChangedMsg); ok {
			ch := ch
			out = &ch
		}
	}
	if out == nil {
		t.Fatalf("expected a ChangedMsg, got %v", msgs)
	}
	return *out
}

func TestTypeFullDateTime_EmitsValueAndDisplay(t *testing.T) {
	m := New(WithMode(ModeDateTime), WithFormat24Hours(true))
	m.Focus()

	m, msgs := typeString(m, "15032024")
	// Date alone is not a complete datetime; nothing may have been emitted.
	for _, msg := range msgs {
		if _, ok := msg.(ChangedMsg); ok {
			t.Fatalf("change emitted before the value was complete")
		}
	}

	m, msgs = typeString(m, "0930")
	ch := lastChanged(t, msgs)
	if ch.Value == nil {
		t.Fatalf("expected a value, got nil")
	}
	want := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local)
	if !ch.Value.Equal(want) {
		t.Fatalf("emitted value: want %v, got %v", want, *ch.Value)
	}
	if got := m.DisplayValue(); got != "15/03/2024 09:30" {
		t.Fatalf("display: want %q, got %q", "15/03/2024 09:30", got)
	}
}

func TestDigit_DayAutoAdvanceThreshold(t *testing.T) {
	// "4" cannot start a valid two-digit day, so the cursor moves on.
	m := New(WithMode(ModeDate))
	m.Focus()
	m, _ = typeString(m, "4")
	if m.segs[SegDay] != "04" {
		t.Fatalf("day buffer: want %q, got %q", "04", m.segs[SegDay])
	}
	if m.activeSegment() != SegMonth {
		t.Fatalf("expected cursor on month, got %v", m.activeSegment())
	}

	// "2" could still become 20-29; the cursor stays until a second digit.
	m2 := New(WithMode(ModeDate))
	m2.Focus()
	m2, _ = typeString(m2, "2")
	if m2.segs[SegDay] != "2" {
		t.Fatalf("day buffer: want %q, got %q", "2", m2.segs[SegDay])
	}
	if m2.activeSegment() != SegDay {
		t.Fatalf("expected cursor still on day, got %v", m2.activeSegment())
	}
}

func TestDigit_SecondDigitClampsDay(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.Focus()
	m, _ = typeString(m, "39")
	if m.segs[SegDay] != "31" {
		t.Fatalf("day buffer: want %q, got %q", "31", m.segs[SegDay])
	}
	if m.activeSegment() != SegMonth {
		t.Fatalf("expected auto-advance to month after two digits")
	}
}

func TestDigit_YearAdvancesOnlyWhenFull(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.Focus()
	m, _ = typeString(m, "1512")
	if m.activeSegment() != SegYear {
		t.Fatalf("expected cursor on year, got %v", m.activeSegment())
	}
	m, _ = typeString(m, "202")
	if m.activeSegment() != SegYear {
		t.Fatalf("partial year must not advance, cursor on %v", m.activeSegment())
	}
	m, _ = typeString(m, "4")
	// Terminal segment: the cursor stays put after completing the year.
	if m.activeSegment() != SegYear {
		t.Fatalf("terminal segment should keep the cursor, got %v", m.activeSegment())
	}
	if m.segs[SegYear] != "2024" {
		t.Fatalf("year buffer: want %q, got %q", "2024", m.segs[SegYear])
	}
}

func TestDigit_HourThresholdFollowsClock(t *testing.T) {
	m := New(WithMode(ModeTime), WithFormat24Hours(true))
	m.Focus()
	m, _ = typeString(m, "3")
	if m.segs[SegHour] != "03" || m.activeSegment() != SegMinute {
		t.Fatalf("24h: digit 3 should advance, buffers %#v", m.segs)
	}

	m2 := New(WithMode(ModeTime), WithFormat24Hours(false))
	m2.Focus()
	m2, _ = typeString(m2, "2")
	if m2.segs[SegHour] != "02" || m2.activeSegment() != SegMinute {
		t.Fatalf("12h: digit 2 should advance, buffers %#v", m2.segs)
	}

	m3 := New(WithMode(ModeTime), WithFormat24Hours(true))
	m3.Focus()
	m3, _ = typeString(m3, "2")
	if m3.segs[SegHour] != "2" || m3.activeSegment() != SegHour {
		t.Fatalf("24h: digit 2 must not advance, buffers %#v", m3.segs)
	}
}

func TestDigit_MinuteThresholdWithSeconds(t *testing.T) {
	m := New(WithMode(ModeTime), WithFormat24Hours(true), WithShowSeconds(true))
	m.Focus()
	m, _ = typeString(m, "097")
	// No minute can start with 7, so the cursor moves to seconds.
	if m.segs[SegMinute] != "07" || m.activeSegment() != SegSecond {
		t.Fatalf("minute digit 7 should advance, buffers %#v", m.segs)
	}

	m2 := New(WithMode(ModeTime), WithFormat24Hours(true), WithShowSeconds(true))
	m2.Focus()
	m2, _ = typeString(m2, "094")
	if m2.segs[SegMinute] != "4" || m2.activeSegment() != SegMinute {
		t.Fatalf("minute digit 4 must not advance, buffers %#v", m2.segs)
	}
}

func TestDigit_ReplacesWhenSegmentFull(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.Focus()
	m, _ = typeString(m, "25")
	// Cursor advanced to month; come back to the full day segment.
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = typeString(m, "1")
	if m.segs[SegDay] != "1" {
		t.Fatalf("typing into a full segment should restart it, got %q", m.segs[SegDay])
	}
}

func TestArrows_MoveCursorAndStopAtBounds(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.Focus()
	if m.activeSegment() != SegDay {
		t.Fatalf("focus should select the first segment")
	}
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeSegment() != SegDay {
		t.Fatalf("left at the first segment must be a no-op")
	}
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.activeSegment() != SegYear {
		t.Fatalf("expected cursor on year, got %v", m.activeSegment())
	}
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.activeSegment() != SegYear {
		t.Fatalf("right at the last segment must be a no-op")
	}
}

func TestArrowUpDown_WrapMonth(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.Focus()
	m.cursor = 1 // month
	m.segs[SegMonth] = "12"
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.segs[SegMonth] != "01" {
		t.Fatalf("12 + up: want %q, got %q", "01", m.segs[SegMonth])
	}
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.segs[SegMonth] != "12" {
		t.Fatalf("01 + down: want %q, got %q", "12", m.segs[SegMonth])
	}
	if m.activeSegment() != SegMonth {
		t.Fatalf("arrow increments must keep the cursor in place")
	}
}

func TestBackspace_EditsThenTransfers(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.Focus()
	m, _ = typeString(m, "1503")
	if m.activeSegment() != SegYear {
		t.Fatalf("expected cursor on year")
	}
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyBackspace})
	// Year is empty: the press moves the cursor back without touching month.
	if m.activeSegment() != SegMonth {
		t.Fatalf("backspace on empty segment should move back, got %v", m.activeSegment())
	}
	if m.segs[SegMonth] != "03" {
		t.Fatalf("the transfer press must not eat data, month %q", m.segs[SegMonth])
	}
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.segs[SegMonth] != "0" {
		t.Fatalf("backspace should drop the last digit, month %q", m.segs[SegMonth])
	}
}

func TestDelete_ClearsActiveSegment(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.Focus()
	m, _ = typeString(m, "15")
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyDelete})
	if m.segs[SegDay] != "" {
		t.Fatalf("delete should clear the segment, got %q", m.segs[SegDay])
	}
	if m.activeSegment() != SegDay {
		t.Fatalf("delete must keep the cursor in place")
	}
}

func TestSeparators_AdvanceWithoutMutating(t *testing.T) {
	m := New(WithMode(ModeDateTime))
	m.Focus()
	for i, s := range []string{"/", ":", "-", " "} {
		m, _ = typeString(m, s)
		want := i + 1
		if m.cursor != want {
			t.Fatalf("separator %q: cursor %d, want %d", s, m.cursor, want)
		}
	}
	if !m.segs.emptyIn(m.order) {
		t.Fatalf("separators must not write digits: %#v", m.segs)
	}
	// At the last segment a separator is inert.
	m.cursor = len(m.order) - 1
	m, _ = typeString(m, "/")
	if m.cursor != len(m.order)-1 {
		t.Fatalf("separator at the last segment must be a no-op")
	}
}

func TestTab_CyclesAndYieldsAtBoundaries(t *testing.T) {
	m := New(WithMode(ModeTime))
	m.Focus()
	m, msg := pressKey(m, tea.KeyMsg{Type: tea.KeyTab})
	if msg != nil {
		t.Fatalf("tab inside the field must not tab out, got %v", msg)
	}
	if m.activeSegment() != SegMinute {
		t.Fatalf("tab should advance to minute")
	}
	m, msg = pressKey(m, tea.KeyMsg{Type: tea.KeyTab})
	out, ok := msg.(TabOutMsg)
	if !ok || !out.Forward {
		t.Fatalf("tab at the last segment should yield forward, got %v", msg)
	}
	m, msg = pressKey(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if msg != nil {
		t.Fatalf("shift+tab inside the field must not tab out, got %v", msg)
	}
	_, msg = pressKey(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	out, ok = msg.(TabOutMsg)
	if !ok || out.Forward {
		t.Fatalf("shift+tab at the first segment should yield backward, got %v", msg)
	}
}

func TestOtherKeysAreInert(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.Focus()
	before := m.segs
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'x'}},
		{Type: tea.KeyRunes, Runes: []rune{'.'}},
		{Type: tea.KeyEnter},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlA},
	} {
		var got tea.Msg
		m, got = pressKey(m, msg)
		if got != nil {
			t.Fatalf("key %q should be inert, produced %v", msg.String(), got)
		}
	}
	if m.segs != before || m.cursor != 0 {
		t.Fatalf("inert keys must not change state")
	}
}

func TestChange_NeverFiresIncomplete(t *testing.T) {
	m := New(WithMode(ModeDateTime))
	m.Focus()
	_, msgs := typeString(m, "3103")
	for _, msg := range msgs {
		if ch, ok := msg.(ChangedMsg); ok {
			t.Fatalf("incomplete buffers emitted %v", ch)
		}
	}
}

func TestChange_ClearingAllSegmentsEmitsNil(t *testing.T) {
	seed := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local)
	m := New(WithMode(ModeDate), WithValue(seed))
	m.Focus()

	var sawNil bool
	for i := 0; i < len(m.order); i++ {
		var msg tea.Msg
		m, msg = pressKey(m, tea.KeyMsg{Type: tea.KeyDelete})
		if ch, ok := msg.(ChangedMsg); ok {
			if ch.Value != nil {
				t.Fatalf("partial clear emitted a value: %v", *ch.Value)
			}
			sawNil = true
		}
		m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	if !sawNil {
		t.Fatalf("clearing every segment should emit a nil value")
	}
}

func TestSetValue_GatedByFocusAndDirty(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.Focus()
	m, _ = typeString(m, "1502")
	displayBefore := m.DisplayValue()

	ext := time.Date(2030, time.May, 6, 12, 0, 0, 0, time.Local)
	m.SetValue(&ext)
	if m.DisplayValue() != displayBefore {
		t.Fatalf("external update altered a focused dirty field: %q", m.DisplayValue())
	}

	// Focused but clean fields are protected too.
	m2 := New(WithMode(ModeDate))
	m2.Focus()
	m2.SetValue(&ext)
	if !m2.segs.emptyIn(m2.order) {
		t.Fatalf("external update landed on a focused field")
	}

	// After blur the next update must apply.
	if cmd := m.Blur(); cmd != nil {
		cmd()
	}
	m.SetValue(&ext)
	if m.DisplayValue() != "06/05/2030" {
		t.Fatalf("external update after blur: want %q, got %q", "06/05/2030", m.DisplayValue())
	}
}

func TestSetValue_SameSecondSkipped(t *testing.T) {
	v1 := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local)
	m := New(WithMode(ModeDateTime), WithValue(v1))

	jitter := v1.Add(300 * time.Millisecond)
	m.SetValue(&jitter)
	if !m.lastApplied.Equal(v1) {
		t.Fatalf("sub-second jitter should be ignored, lastApplied %v", m.lastApplied)
	}

	v2 := v1.Add(time.Second)
	m.SetValue(&v2)
	if !m.lastApplied.Equal(v2) {
		t.Fatalf("a full second of difference must apply, lastApplied %v", m.lastApplied)
	}
}

func TestSetValueString(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.SetValueString("2024-03-15")
	if m.DisplayValue() != "15/03/2024" {
		t.Fatalf("want %q, got %q", "15/03/2024", m.DisplayValue())
	}
	m2 := New(WithMode(ModeDate), WithValue(time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)))
	m2.SetValueString("not a date")
	if !m2.segs.emptyIn(m2.order) {
		t.Fatalf("bad strings count as empty, got %q", m2.DisplayValue())
	}
}

func TestBlur_YearPivotAndEmission(t *testing.T) {
	cases := []struct {
		typed    string
		wantYear int
	}{
		{"010225", 2025},
		{"010275", 1975},
	}
	for _, tc := range cases {
		m := New(WithMode(ModeDate))
		m.Focus()
		m, _ = typeString(m, tc.typed)
		cmd := m.Blur()
		if cmd == nil {
			t.Fatalf("blur with a pivotable year should emit, typed %q", tc.typed)
		}
		msg := cmd()
		ch, ok := msg.(ChangedMsg)
		if !ok || ch.Value == nil {
			t.Fatalf("expected a value from blur, got %v", msg)
		}
		want := time.Date(tc.wantYear, time.February, 1, 12, 0, 0, 0, time.Local)
		if !ch.Value.Equal(want) {
			t.Fatalf("typed %q: want %v, got %v", tc.typed, want, *ch.Value)
		}
		if m.Dirty() {
			t.Fatalf("blur must clear the dirty flag")
		}
	}
}

func TestBlur_ZeroPadsPartialSegments(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.Focus()
	// Single digits everywhere: day 3, month 4, full year.
	m, _ = typeString(m, "3")
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = typeString(m, "1")
	m, _ = pressKey(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = typeString(m, "2024")
	if cmd := m.Blur(); cmd != nil {
		cmd()
	}
	if got := m.DisplayValue(); got != "03/01/2024" {
		t.Fatalf("blur should zero-pad, got %q", got)
	}
}

func TestBlur_IncompleteEmitsNothing(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.Focus()
	m, _ = typeString(m, "15")
	if cmd := m.Blur(); cmd != nil {
		t.Fatalf("incomplete field must not emit on blur")
	}
}

func TestRefocus_KeepsDirtyEdit(t *testing.T) {
	m := New(WithMode(ModeDate))
	m.Focus()
	m, _ = typeString(m, "150")
	m.Focus()
	if !m.Dirty() {
		t.Fatalf("re-focus must not reset the dirty flag")
	}
	if m.segs[SegDay] != "15" || m.segs[SegMonth] != "0" {
		t.Fatalf("re-focus must not discard buffers: %#v", m.segs)
	}
	if m.activeSegment() != SegDay {
		t.Fatalf("focus should select the first segment again")
	}
}

func TestDisabled_FreezesField(t *testing.T) {
	seed := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)
	m := New(WithMode(ModeDate), WithValue(seed))
	m.SetDisabled(true)

	m.Focus()
	if m.Focused() {
		t.Fatalf("a disabled field must refuse focus")
	}
	m, msg := pressKey(m, tea.KeyMsg{Type: tea.KeyUp})
	if msg != nil || m.segs[SegDay] != "15" {
		t.Fatalf("keys must be suppressed while disabled")
	}

	// The display still follows external values.
	ext := time.Date(2031, time.July, 2, 12, 0, 0, 0, time.Local)
	m.SetValue(&ext)
	if m.DisplayValue() != "02/07/2031" {
		t.Fatalf("disabled display should track external values, got %q", m.DisplayValue())
	}
}

func TestView_PlaceholderOnlyWhenEmptyAndUnfocused(t *testing.T) {
	m := New(WithMode(ModeDate), WithPlaceholder("pick a date"))
	if !strings.Contains(m.View(), "pick a date") {
		t.Fatalf("expected placeholder in view: %q", m.View())
	}
	m.Focus()
	if strings.Contains(m.View(), "pick a date") {
		t.Fatalf("focused fields show the template, not the placeholder")
	}
	m.Blur()
	m.SetValueString("2024-03-15")
	if strings.Contains(m.View(), "pick a date") {
		t.Fatalf("non-empty fields show their value, not the placeholder")
	}
}

func TestSelectionRange_TracksActiveSegment(t *testing.T) {
	m := New(WithMode(ModeDateTime))
	m.Focus()
	// dd/mm/aaaa hh:mm
	wants := [][2]int{{0, 2}, {3, 5}, {6, 10}, {11, 13}, {14, 16}}
	for i, want := range wants {
		m.cursor = i
		start, end := m.SelectionRange()
		if start != want[0] || end != want[1] {
			t.Fatalf("segment %d: range (%d,%d), want (%d,%d)", i, start, end, want[0], want[1])
		}
	}
}
