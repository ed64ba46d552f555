package datefield

import "strconv"

// segmentRange returns the numeric bounds enforced for a segment. The hour
// bound follows the 12h/24h setting.
func segmentRange(seg Segment, format24h bool) (min, max int) {
	switch seg {
	case SegDay:
		return 1, 31
	case SegMonth:
		return 1, 12
	case SegYear:
		return 1900, 2100
	case SegHour:
		if format24h {
			return 0, 23
		}
		return 0, 12
	default:
		return 0, 59
	}
}

// clampSegment constrains a candidate buffer. Non-numeric input is rejected
// to the empty string; out-of-range values are clamped once the buffer is at
// full width. Partial input (a lone day digit, a 1-3 digit year) passes
// through untouched. Never errors.
func clampSegment(seg Segment, buf string, format24h bool) string {
	if buf == "" {
		return ""
	}
	if !allDigits(buf) {
		return ""
	}
	if len(buf) > maxDigits(seg) {
		buf = buf[:maxDigits(seg)]
	}
	if len(buf) < maxDigits(seg) {
		return buf
	}
	min, max := segmentRange(seg, format24h)
	n := parseIntDefault(buf, min)
	if n < min {
		return padSegment(seg, strconv.Itoa(min))
	}
	if n > max {
		return padSegment(seg, strconv.Itoa(max))
	}
	return buf
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
