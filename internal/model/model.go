package model

import (
	"strings"
	"time"
)

// Entry is one dated item in the book: a deadline, an appointment, a
// reminder.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Notes string `json:"notes,omitempty"`

	When *DateTime `json:"when,omitempty"`
	Done bool      `json:"done"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DateTime represents an optional time attached to a date.
// If Time is nil, the value is date-only (no time semantics).
type DateTime struct {
	Date string  `json:"date"`           // YYYY-MM-DD
	Time *string `json:"time,omitempty"` // HH:MM (24h)
}

// Resolve returns the concrete local instant the value points at. Date-only
// values resolve to 12:00 so timezone conversions cannot shift the day.
func (dt *DateTime) Resolve() (time.Time, bool) {
	if dt == nil {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(dt.Date), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	h, mi := 12, 0
	if dt.Time != nil {
		t, err := time.Parse("15:04", strings.TrimSpace(*dt.Time))
		if err != nil {
			return time.Time{}, false
		}
		h, mi = t.Hour(), t.Minute()
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, mi, 0, 0, time.Local), true
}

// DateTimeFromTime captures t as a DateTime; allDay drops the clock.
func DateTimeFromTime(t time.Time, allDay bool) *DateTime {
	dt := &DateTime{Date: t.Format("2006-01-02")}
	if !allDay {
		clock := t.Format("15:04")
		dt.Time = &clock
	}
	return dt
}

// Overdue reports whether an entry's moment has passed without it being
// marked done.
func (e Entry) Overdue(now time.Time) bool {
	if e.Done {
		return false
	}
	t, ok := e.When.Resolve()
	if !ok {
		return false
	}
	return t.Before(now)
}
