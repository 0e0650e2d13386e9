package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for every stored date.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders the calendar day of t, ignoring its clock.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to midnight UTC of its own calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
