package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"datebook/internal/model"
)

var (
	reISODate      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reISODateTime  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2})(?::\d{2})?$`)
	reDayFirst     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	reDayFirstTime = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4}) (\d{1,2}):(\d{2})$`)
)

// parseWhen parses the --when flag:
// - YYYY-MM-DD (date-only)
// - YYYY-MM-DD HH:MM (local date+time; seconds accepted and dropped)
// - DD/MM/YYYY and "DD/MM/YYYY HH:MM" (what the TUI field shows)
// - RFC3339 / RFC3339Nano (timezone-aware)
//
// It returns a DateTime where Time is nil for date-only inputs.
func parseWhen(s string) (*model.DateTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty datetime")
	}

	if reISODate.MatchString(s) {
		if !validDate(s) {
			return nil, fmt.Errorf("invalid date %q", s)
		}
		return &model.DateTime{Date: s, Time: nil}, nil
	}

	if m := reISODateTime.FindStringSubmatch(s); m != nil {
		date, hm := m[1], m[2]
		if !validDate(date) || !validClock(hm) {
			return nil, fmt.Errorf("invalid datetime %q", s)
		}
		return &model.DateTime{Date: date, Time: &hm}, nil
	}

	if m := reDayFirst.FindStringSubmatch(s); m != nil {
		date := isoDate(m[3], m[2], m[1])
		if !validDate(date) {
			return nil, fmt.Errorf("invalid date %q", s)
		}
		return &model.DateTime{Date: date, Time: nil}, nil
	}

	if m := reDayFirstTime.FindStringSubmatch(s); m != nil {
		date := isoDate(m[3], m[2], m[1])
		hm := fmt.Sprintf("%02d:%s", atoi(m[4]), m[5])
		if !validDate(date) || !validClock(hm) {
			return nil, fmt.Errorf("invalid datetime %q", s)
		}
		return &model.DateTime{Date: date, Time: &hm}, nil
	}

	// RFC3339: interpret as absolute time, store as date+time in UTC.
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts = ts.UTC()
		date := ts.Format("2006-01-02")
		hm := ts.Format("15:04")
		return &model.DateTime{Date: date, Time: &hm}, nil
	}

	return nil, fmt.Errorf("invalid datetime %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM, DD/MM/YYYY, or RFC3339)", s)
}

func isoDate(year, month, day string) string {
	return fmt.Sprintf("%s-%02d-%02d", year, atoi(month), atoi(day))
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func validDate(date string) bool {
	_, err := time.ParseInLocation("2006-01-02", date, time.Local)
	return err == nil
}

func validClock(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}
