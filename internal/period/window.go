// Package period resolves calendar windows and summarizes ledger records
// over them.
package period

import (
	"fmt"
	"time"

	"localtrack/internal/models"
)

// ViewMode is the granularity of a stats window.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
	ViewYear  ViewMode = "year"
)

// ParseViewMode accepts the lowercase mode names. An empty string means month.
func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(s); m {
	case "":
		return ViewMonth, nil
	case ViewDay, ViewWeek, ViewMonth, ViewYear:
		return m, nil
	default:
		return "", fmt.Errorf("unknown view mode %q", s)
	}
}

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// StartDate renders the first day in the stored date layout.
func (w Window) StartDate() string {
	return models.FormatDate(w.Start)
}

// EndDate renders the last day in the stored date layout.
func (w Window) EndDate() string {
	return models.FormatDate(w.End)
}

// Contains reports whether the YYYY-MM-DD date falls inside the window.
func (w Window) Contains(date string) bool {
	return date >= w.StartDate() && date <= w.EndDate()
}

// Resolve returns the window of the given mode that contains anchor.
// Weeks run Monday to Sunday.
func Resolve(mode ViewMode, anchor time.Time) Window {
	d := models.Day(anchor)
	switch mode {
	case ViewDay:
		return Window{Start: d, End: d}
	case ViewWeek:
		offset := (int(d.Weekday()) + 6) % 7
		start := d.AddDate(0, 0, -offset)
		return Window{Start: start, End: start.AddDate(0, 0, 6)}
	case ViewYear:
		start := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return Window{Start: start, End: time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)}
	default:
		start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Window{Start: start, End: start.AddDate(0, 1, -1)}
	}
}

// Navigate moves anchor by step whole units of mode. Month and year moves
// keep the day of month, clamped to the length of the target month.
func Navigate(mode ViewMode, anchor time.Time, step int) time.Time {
	d := models.Day(anchor)
	switch mode {
	case ViewDay:
		return d.AddDate(0, 0, step)
	case ViewWeek:
		return d.AddDate(0, 0, 7*step)
	case ViewYear:
		return addMonthsClamped(d, 12*step)
	default:
		return addMonthsClamped(d, step)
	}
}

func addMonthsClamped(d time.Time, months int) time.Time {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	last := first.AddDate(0, 1, -1).Day()
	day := d.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
