package datefield

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// event is the decoded keyboard surface of the field. Anything that does not
// map to one of these is inert: the field is not a free-text input.
type event int

const (
	evNone event = iota
	evDigit
	evSeparator
	evLeft
	evRight
	evUp
	evDown
	evBackspace
	evDelete
	evTab
	evShiftTab
)

// KeyMap holds the named key bindings the field reacts to. Digits and the
// separator characters ("/", ":", "-", space) are matched directly.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Next      key.Binding
	Prev      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:      key.NewBinding(key.WithKeys("left")),
		Right:     key.NewBinding(key.WithKeys("right")),
		Up:        key.NewBinding(key.WithKeys("up")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Backspace: key.NewBinding(key.WithKeys("backspace")),
		Delete:    key.NewBinding(key.WithKeys("delete")),
		Next:      key.NewBinding(key.WithKeys("tab")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab")),
	}
}

func (m Model) decodeKey(msg tea.KeyMsg) (event, rune) {
	km := m.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		return evLeft, 0
	case key.Matches(msg, km.Right):
		return evRight, 0
	case key.Matches(msg, km.Up):
		return evUp, 0
	case key.Matches(msg, km.Down):
		return evDown, 0
	case key.Matches(msg, km.Backspace):
		return evBackspace, 0
	case key.Matches(msg, km.Delete):
		return evDelete, 0
	case key.Matches(msg, km.Next):
		return evTab, 0
	case key.Matches(msg, km.Prev):
		return evShiftTab, 0
	}
	s := msg.String()
	if len(s) != 1 {
		return evNone, 0
	}
	r := rune(s[0])
	switch {
	case r >= '0' && r <= '9':
		return evDigit, r
	case r == '/' || r == ':' || r == '-' || r == ' ':
		return evSeparator, 0
	}
	return evNone, 0
}

// advanceThreshold is the largest leading digit that can still begin a
// two-digit value inside the segment's range; one above it the segment is
// unambiguous and the cursor moves on after a single keystroke. Years only
// advance when full.
func advanceThreshold(seg Segment, format24h bool) (int, bool) {
	switch seg {
	case SegDay:
		return 3, true
	case SegMonth:
		return 1, true
	case SegHour:
		if format24h {
			return 2, true
		}
		return 1, true
	case SegMinute, SegSecond:
		return 5, true
	default:
		return 0, false
	}
}

// bumpSegment applies an up/down arrow: +-1 with wraparound at the range
// bounds, so month 12 steps up to 01 and month 01 steps down to 12. An empty
// buffer starts from the minimum going up and the maximum going down; a
// two-digit year is pivot-expanded before stepping.
func bumpSegment(seg Segment, buf string, delta int, format24h bool) string {
	min, max := segmentRange(seg, format24h)
	if buf == "" {
		if delta > 0 {
			return padSegment(seg, strconv.Itoa(min))
		}
		return padSegment(seg, strconv.Itoa(max))
	}
	if seg == SegYear && len(buf) == 2 {
		buf = expandYear(buf)
	}
	n := parseIntDefault(buf, min)
	if n < min {
		n = min
	}
	if n > max {
		n = max
	}
	n += delta
	if n > max {
		n = min
	}
	if n < min {
		n = max
	}
	return padSegment(seg, strconv.Itoa(n))
}
