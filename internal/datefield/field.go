// Package datefield implements a segmented date/time input for Bubble Tea
// programs: day/month/year and hour/minute/second buffers edited one segment
// at a time, with per-segment clamping, auto-advance, wraparound arrow
// increments, and dirty/focus-aware synchronization against an externally
// owned value. The display string is always derived from the segment
// buffers; the field never accepts free text.
package datefield

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	lastID int
	idMtx  sync.Mutex
)

func nextID() int {
	idMtx.Lock()
	defer idMtx.Unlock()
	lastID++
	return lastID
}

// ChangedMsg reports the field's value to the host. It travels through the
// command queue (never synchronously inside Update) and is produced once the
// buffers form a complete value for the active mode, or with a nil Value
// when the user has cleared every segment. Incomplete buffers produce no
// message at all.
type ChangedMsg struct {
	ID    int
	Value *time.Time
}

// TabOutMsg asks the host to move focus past the field. The field does not
// trap Tab at its first or last segment.
type TabOutMsg struct {
	ID      int
	Forward bool
}

// Styles for the rendered field. Selection marks the active segment while
// the field has focus; Placeholder covers template characters and
// separators.
type Styles struct {
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Selection   lipgloss.Style
	Disabled    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Faint(true),
		Selection:   lipgloss.NewStyle().Reverse(true),
		Disabled:    lipgloss.NewStyle().Faint(true),
	}
}

// syncState supervises the tug-of-war between user edits and external value
// updates: external updates land only while the field sits in syncIdle.
type syncState int

const (
	syncIdle syncState = iota
	syncEditing
)

// Model is a segmented date/time input in the shape of the other bubbles
// components: construct with New, route key messages through Update, render
// with View.
type Model struct {
	KeyMap KeyMap
	Styles Styles

	id          int
	mode        Mode
	format24h   bool
	showSeconds bool
	transparent bool
	placeholder string
	disabled    bool

	order  []Segment
	segs   segmentSet
	cursor int

	focused     bool
	state       syncState
	lastApplied *time.Time
}

// Option configures a field at construction time.
type Option func(*Model)

// WithMode selects date, time or datetime layout. The default is ModeDate.
func WithMode(mode Mode) Option {
	return func(m *Model) { m.mode = mode }
}

// WithFormat24Hours toggles the hour range between 0-23 and 0-12. Fields
// default to 24-hour.
func WithFormat24Hours(v bool) Option {
	return func(m *Model) { m.format24h = v }
}

// WithShowSeconds adds the seconds segment to time and datetime layouts.
func WithShowSeconds(v bool) Option {
	return func(m *Model) { m.showSeconds = v }
}

// WithTransparent drops the background fill from the field's styles. Purely
// cosmetic.
func WithTransparent(v bool) Option {
	return func(m *Model) { m.transparent = v }
}

// WithPlaceholder sets a text shown instead of the segment template, only
// while every segment is empty and the field is unfocused.
func WithPlaceholder(s string) Option {
	return func(m *Model) { m.placeholder = s }
}

// WithStyles replaces the default styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.Styles = s }
}

// WithValue seeds the field's initial value.
func WithValue(t time.Time) Option {
	return func(m *Model) {
		v := t
		m.segs = segmentsFromTime(v)
		m.lastApplied = &v
	}
}

// New returns a field in the requested configuration.
func New(opts ...Option) Model {
	m := Model{
		KeyMap:    DefaultKeyMap(),
		Styles:    DefaultStyles(),
		id:        nextID(),
		mode:      ModeDate,
		format24h: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.order = segmentOrder(m.mode, m.showSeconds)
	return m
}

// ID distinguishes this field's ChangedMsg/TabOutMsg from other fields'.
func (m Model) ID() int { return m.id }

func (m Model) Mode() Mode { return m.mode }

// SetMode switches the segment layout. Buffers for segments shared between
// the old and new layout survive; the cursor snaps back into range.
func (m *Model) SetMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	m.order = segmentOrder(m.mode, m.showSeconds)
	if m.cursor >= len(m.order) {
		m.cursor = len(m.order) - 1
	}
}

func (m Model) Focused() bool { return m.focused }

// Dirty reports whether the field holds edits not yet finalized by Blur.
func (m Model) Dirty() bool { return m.state == syncEditing }

func (m Model) Disabled() bool { return m.disabled }

// SetDisabled freezes the field. Disabling discards any in-progress edit and
// pins the display to the last externally applied value.
func (m *Model) SetDisabled(v bool) {
	m.disabled = v
	if !v {
		return
	}
	m.focused = false
	m.state = syncIdle
	if m.lastApplied != nil {
		m.segs = segmentsFromTime(*m.lastApplied)
	} else {
		m.segs = segmentSet{}
	}
}

// Focus starts an editing session: the cursor lands on the mode's first
// segment, selected. Dirty state from an interrupted edit survives re-focus.
func (m *Model) Focus() {
	if m.disabled {
		return
	}
	m.focused = true
	m.cursor = 0
}

// Blur finalizes the edit: buffers are normalized (zero-padding, two-digit
// year pivot), the change notification goes out through the returned
// command, and only after that snapshot does the field go back to accepting
// external updates.
func (m *Model) Blur() tea.Cmd {
	if !m.focused {
		return nil
	}
	m.focused = false
	m.segs = normalizeSegments(m.segs)
	cmd := m.changedCmd()
	m.state = syncIdle
	return cmd
}

// SetValue applies an externally supplied value. It is skipped while the
// user is editing or while the field has focus, and skipped when t matches
// the last applied value at one-second granularity. Otherwise the segment
// buffers are replaced wholesale; nil clears them.
func (m *Model) SetValue(t *time.Time) {
	if m.state == syncEditing || m.focused {
		return
	}
	if sameSecond(t, m.lastApplied) {
		return
	}
	if t == nil {
		m.segs = segmentSet{}
		m.lastApplied = nil
		return
	}
	v := *t
	m.segs = segmentsFromTime(v)
	m.lastApplied = &v
}

// SetValueString is SetValue for date-like strings; an unparseable string
// counts as empty.
func (m *Model) SetValueString(s string) {
	if t, ok := parseValueString(s); ok {
		m.SetValue(&t)
		return
	}
	m.SetValue(nil)
}

// Empty reports whether every segment in the current layout is blank.
func (m Model) Empty() bool { return m.segs.emptyIn(m.order) }

// Value returns the complete value the buffers currently describe, or nil
// while they are incomplete.
func (m Model) Value() *time.Time {
	if t, ok := timeFromSegments(m.segs, m.mode, m.showSeconds); ok {
		return &t
	}
	return nil
}

// DisplayValue is the raw display string, placeholders included.
func (m Model) DisplayValue() string {
	return displayValue(m.segs, m.mode, m.showSeconds)
}

// SelectionRange reports the active segment's offsets inside DisplayValue,
// the range a host should show as selected. The display is ASCII, so the
// offsets are both byte and rune positions.
func (m Model) SelectionRange() (start, end int) {
	pos := 0
	for i, seg := range m.order {
		if i > 0 {
			pos += len(separatorBefore(seg))
		}
		w := len(segmentDisplay(seg, m.segs[seg]))
		if i == m.cursor {
			return pos, pos + w
		}
		pos += w
	}
	return 0, 0
}

// Update implements the field's half of the Bubble Tea loop. Only key
// presses are consumed, and only while the field is focused and enabled.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || m.disabled {
		return m, nil
	}
	ev, digit := m.decodeKey(keyMsg)
	switch ev {
	case evDigit:
		return m.applyDigit(digit)
	case evLeft:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case evRight:
		if m.cursor < len(m.order)-1 {
			m.cursor++
		}
		return m, nil
	case evUp:
		return m.applyBump(1)
	case evDown:
		return m.applyBump(-1)
	case evBackspace:
		return m.applyBackspace()
	case evDelete:
		seg := m.activeSegment()
		if m.segs[seg] == "" {
			return m, nil
		}
		m.segs[seg] = ""
		m.state = syncEditing
		return m, m.changedCmd()
	case evSeparator:
		if m.cursor < len(m.order)-1 {
			m.cursor++
		}
		return m, nil
	case evTab:
		if m.cursor < len(m.order)-1 {
			m.cursor++
			return m, nil
		}
		return m, m.tabOutCmd(true)
	case evShiftTab:
		if m.cursor > 0 {
			m.cursor--
			return m, nil
		}
		return m, m.tabOutCmd(false)
	default:
		return m, nil
	}
}

// applyDigit appends to the active buffer, or restarts it when already full,
// clamps the candidate, and auto-advances once the segment is unambiguous.
// The terminal segment never advances.
func (m Model) applyDigit(r rune) (Model, tea.Cmd) {
	seg := m.activeSegment()
	buf := m.segs[seg]
	if len(buf) >= maxDigits(seg) {
		buf = string(r)
	} else {
		buf += string(r)
	}
	buf = clampSegment(seg, buf, m.format24h)
	m.segs[seg] = buf
	m.state = syncEditing
	if m.shouldAdvance(seg, buf) {
		m.segs[seg] = padSegment(seg, buf)
		if m.cursor < len(m.order)-1 {
			m.cursor++
		}
	}
	return m, m.changedCmd()
}

func (m Model) shouldAdvance(seg Segment, buf string) bool {
	if buf == "" {
		return false
	}
	if len(buf) >= maxDigits(seg) {
		return true
	}
	if len(buf) == 1 {
		if th, ok := advanceThreshold(seg, m.format24h); ok {
			return int(buf[0]-'0') > th
		}
	}
	return false
}

func (m Model) applyBump(delta int) (Model, tea.Cmd) {
	seg := m.activeSegment()
	m.segs[seg] = bumpSegment(seg, m.segs[seg], delta, m.format24h)
	m.state = syncEditing
	return m, m.changedCmd()
}

// applyBackspace drops the last digit, or steps to the previous segment when
// the active one is already empty (without touching that segment's data).
func (m Model) applyBackspace() (Model, tea.Cmd) {
	seg := m.activeSegment()
	buf := m.segs[seg]
	if buf == "" {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}
	m.segs[seg] = buf[:len(buf)-1]
	m.state = syncEditing
	return m, m.changedCmd()
}

func (m Model) activeSegment() Segment {
	if len(m.order) == 0 {
		return SegDay
	}
	if m.cursor < 0 {
		return m.order[0]
	}
	if m.cursor >= len(m.order) {
		return m.order[len(m.order)-1]
	}
	return m.order[m.cursor]
}

// changedCmd captures the deferred change notification for the current
// buffers: a value when complete, nil-value when fully empty, no command at
// all in between.
func (m Model) changedCmd() tea.Cmd {
	id := m.id
	if t, ok := timeFromSegments(m.segs, m.mode, m.showSeconds); ok {
		v := t
		return func() tea.Msg { return ChangedMsg{ID: id, Value: &v} }
	}
	if m.segs.emptyIn(m.order) {
		return func() tea.Msg { return ChangedMsg{ID: id, Value: nil} }
	}
	return nil
}

func (m Model) tabOutCmd(forward bool) tea.Cmd {
	id := m.id
	return func() tea.Msg { return TabOutMsg{ID: id, Forward: forward} }
}

// View renders the field: typed digits in the text style, placeholder tails
// and separators muted, the active segment selection-highlighted while
// focused. A configured placeholder replaces the template when the field is
// empty and unfocused.
func (m Model) View() string {
	if m.disabled {
		return m.styleFor(m.Styles.Disabled).Render(m.DisplayValue())
	}
	if !m.focused && m.placeholder != "" && m.segs.emptyIn(m.order) {
		return m.styleFor(m.Styles.Placeholder).Render(m.placeholder)
	}
	text := m.styleFor(m.Styles.Text)
	ph := m.styleFor(m.Styles.Placeholder)
	var b strings.Builder
	for i, seg := range m.order {
		if i > 0 {
			b.WriteString(ph.Render(separatorBefore(seg)))
		}
		buf := m.segs[seg]
		if m.focused && i == m.cursor {
			b.WriteString(m.Styles.Selection.Render(segmentDisplay(seg, buf)))
			continue
		}
		if buf != "" {
			b.WriteString(text.Render(buf))
		}
		if tail := segmentDisplay(seg, buf)[len(buf):]; tail != "" {
			b.WriteString(ph.Render(tail))
		}
	}
	return b.String()
}

func (m Model) styleFor(s lipgloss.Style) lipgloss.Style {
	if m.transparent {
		return s.UnsetBackground()
	}
	return s
}

func sameSecond(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Truncate(time.Second).Equal(b.Truncate(time.Second))
}
