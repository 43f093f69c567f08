package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and persistence format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component. Streak logic
// compares whole local days, never ISO timestamps, to avoid
// timezone-boundary bugs.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its local calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a Y-M-D string as produced by String.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String formats the date as Y-M-D.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d == other
}

// AddDays returns the date n calendar days after d. time.Date normalizes
// out-of-range days, so month and year boundaries are handled.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.Local)
	return DateOf(t)
}

// DayBefore reports whether d is the calendar day immediately before other.
func (d Date) DayBefore(other Date) bool {
	return d.AddDays(1) == other
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
