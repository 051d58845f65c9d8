package model

import "time"

// dateFormat is the canonical write format for settled dates.
const dateFormat = "2006-01-02"

// Date is a settlement date with day granularity. Statement rows sometimes
// carry text that is not a date at all; those values are preserved verbatim
// and ordered after every valid date, stable among themselves, so a mixed
// pool still has one defined total order.
type Date struct {
	t     time.Time
	raw   string
	valid bool
}

// NewDate returns a valid Date for the given instant, truncated to the day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), valid: true}
}

// RawDate returns an invalid Date preserving the original unparsable text.
func RawDate(raw string) Date {
	return Date{raw: raw}
}

// Valid reports whether the date parsed as a calendar day.
func (d Date) Valid() bool { return d.valid }

// Time returns the calendar day. Only meaningful when Valid.
func (d Date) Time() time.Time { return d.t }

// Before defines the total order used for replay and matching: valid dates
// are chronological, invalid dates sort after all valid ones and are never
// reordered among themselves.
func (d Date) Before(x Date) bool {
	switch {
	case d.valid && x.valid:
		return d.t.Before(x.t)
	case d.valid:
		return true
	default:
		return false
	}
}

// WithinDays reports whether both dates are valid and at most n days apart,
// inclusive.
func (d Date) WithinDays(x Date, n int) bool {
	if !d.valid || !x.valid {
		return false
	}
	diff := d.t.Sub(x.t)
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(n)*24*time.Hour
}

// String formats a valid date as YYYY-MM-DD and returns the preserved text
// otherwise.
func (d Date) String() string {
	if d.valid {
		return d.t.Format(dateFormat)
	}
	return d.raw
}
