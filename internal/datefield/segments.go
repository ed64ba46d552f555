package datefield

import (
	"strconv"
	"strings"
	"time"
)

// Mode selects which segments are active and how they are laid out. It is
// fixed when a field is constructed.
type Mode int

const (
	ModeDate Mode = iota
	ModeTime
	ModeDateTime
)

func (m Mode) String() string {
	switch m {
	case ModeDate:
		return "date"
	case ModeTime:
		return "time"
	case ModeDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Segment identifies one editable numeric piece of the composite value.
type Segment int

const (
	SegDay Segment = iota
	SegMonth
	SegYear
	SegHour
	SegMinute
	SegSecond

	segmentCount
)

func (s Segment) String() string {
	switch s {
	case SegDay:
		return "day"
	case SegMonth:
		return "month"
	case SegYear:
		return "year"
	case SegHour:
		return "hour"
	case SegMinute:
		return "minute"
	case SegSecond:
		return "second"
	default:
		return "unknown"
	}
}

// segmentSet holds the digits typed so far for each segment. Buffers are
// plain decimal strings, may be empty, and never exceed maxDigits.
type segmentSet [segmentCount]string

func (ss segmentSet) emptyIn(order []Segment) bool {
	for _, seg := range order {
		if ss[seg] != "" {
			return false
		}
	}
	return true
}

func maxDigits(seg Segment) int {
	if seg == SegYear {
		return 4
	}
	return 2
}

// placeholderFor returns the template characters shown for a segment's
// missing digits.
func placeholderFor(seg Segment) string {
	switch seg {
	case SegDay:
		return "dd"
	case SegMonth:
		return "mm"
	case SegYear:
		return "aaaa"
	case SegHour:
		return "hh"
	case SegMinute:
		return "mm"
	case SegSecond:
		return "ss"
	default:
		return ""
	}
}

// segmentOrder is the left-to-right editing order for a mode.
func segmentOrder(mode Mode, showSeconds bool) []Segment {
	switch mode {
	case ModeDate:
		return []Segment{SegDay, SegMonth, SegYear}
	case ModeTime:
		if showSeconds {
			return []Segment{SegHour, SegMinute, SegSecond}
		}
		return []Segment{SegHour, SegMinute}
	default:
		if showSeconds {
			return []Segment{SegDay, SegMonth, SegYear, SegHour, SegMinute, SegSecond}
		}
		return []Segment{SegDay, SegMonth, SegYear, SegHour, SegMinute}
	}
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func fmt2(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 99 {
		n = 99
	}
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func fmtYear(y int) string {
	if y < 0 {
		y = 0
	}
	s := strconv.Itoa(y)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// segmentsFromTime fills every buffer from t, zero-padded. The zero time
// yields all-empty buffers.
func segmentsFromTime(t time.Time) segmentSet {
	var ss segmentSet
	if t.IsZero() {
		return ss
	}
	ss[SegDay] = fmt2(t.Day())
	ss[SegMonth] = fmt2(int(t.Month()))
	ss[SegYear] = fmtYear(t.Year())
	ss[SegHour] = fmt2(t.Hour())
	ss[SegMinute] = fmt2(t.Minute())
	ss[SegSecond] = fmt2(t.Second())
	return ss
}

// segmentsFromString parses a date-like string. Unparseable input yields
// all-empty buffers, never an error.
func segmentsFromString(s string) segmentSet {
	t, ok := parseValueString(s)
	if !ok {
		return segmentSet{}
	}
	return segmentsFromTime(t)
}

var valueLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"15:04:05",
	"15:04",
}

func parseValueString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range valueLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// complete reports whether every segment the mode requires is present and
// inside its numeric range. The day is checked against 31 regardless of the
// month, so "31/02" counts as complete; seconds never gate completeness.
func complete(ss segmentSet, mode Mode) bool {
	if mode != ModeTime {
		d := parseIntDefault(ss[SegDay], -1)
		mo := parseIntDefault(ss[SegMonth], -1)
		y := parseIntDefault(ss[SegYear], -1)
		if d < 1 || d > 31 || mo < 1 || mo > 12 || y < 1900 || y > 2100 {
			return false
		}
	}
	if mode != ModeDate {
		h := parseIntDefault(ss[SegHour], -1)
		mi := parseIntDefault(ss[SegMinute], -1)
		if h < 0 || h > 23 || mi < 0 || mi > 59 {
			return false
		}
	}
	return true
}

// timeFromSegments builds the value the buffers describe, in local time.
// Date mode pins the clock to 12:00:00 so later timezone conversions cannot
// shift the day; time mode borrows today's date. Reports false while the
// segments are incomplete.
func timeFromSegments(ss segmentSet, mode Mode, showSeconds bool) (time.Time, bool) {
	if !complete(ss, mode) {
		return time.Time{}, false
	}
	now := time.Now()
	y, mo, d := now.Year(), int(now.Month()), now.Day()
	if mode != ModeTime {
		y = parseIntDefault(ss[SegYear], y)
		mo = parseIntDefault(ss[SegMonth], mo)
		d = parseIntDefault(ss[SegDay], d)
	}
	h, mi, sec := 12, 0, 0
	if mode != ModeDate {
		h = parseIntDefault(ss[SegHour], 0)
		mi = parseIntDefault(ss[SegMinute], 0)
		if showSeconds {
			sec = parseIntDefault(ss[SegSecond], 0)
		}
	}
	return time.Date(y, time.Month(mo), d, h, mi, sec, 0, time.Local), true
}

// displayValue renders the buffers the way the user sees them: typed digits
// padded out with placeholder characters, "/" between date parts, ":"
// between time parts, and a space between the two blocks.
func displayValue(ss segmentSet, mode Mode, showSeconds bool) string {
	var b strings.Builder
	for i, seg := range segmentOrder(mode, showSeconds) {
		if i > 0 {
			b.WriteString(separatorBefore(seg))
		}
		b.WriteString(segmentDisplay(seg, ss[seg]))
	}
	return b.String()
}

func separatorBefore(seg Segment) string {
	switch seg {
	case SegMonth, SegYear:
		return "/"
	case SegHour:
		return " "
	default:
		return ":"
	}
}

// segmentDisplay is the segment's digits with the placeholder tail for
// whatever is missing ("3" in the day segment renders "3d").
func segmentDisplay(seg Segment, buf string) string {
	ph := placeholderFor(seg)
	if len(buf) >= len(ph) {
		return buf
	}
	return buf + ph[len(buf):]
}

// normalizeSegments finalizes buffers the way blur does: a two-digit year is
// expanded with the 50 pivot (25 -> 2025, 75 -> 1975) and every non-empty
// buffer is zero-padded to full width. Already-normalized input comes back
// unchanged.
func normalizeSegments(ss segmentSet) segmentSet {
	out := ss
	if len(out[SegYear]) == 2 {
		out[SegYear] = expandYear(out[SegYear])
	}
	for seg := Segment(0); seg < segmentCount; seg++ {
		out[seg] = padSegment(seg, out[seg])
	}
	return out
}

func expandYear(two string) string {
	n := parseIntDefault(two, 0)
	if n < 50 {
		return fmtYear(2000 + n)
	}
	return fmtYear(1900 + n)
}

// padSegment zero-pads a non-empty buffer to the segment's full width.
func padSegment(seg Segment, buf string) string {
	if buf == "" {
		return ""
	}
	for len(buf) < maxDigits(seg) {
		buf = "0" + buf
	}
	return buf
}
