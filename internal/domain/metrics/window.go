package metrics

import "time"

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// RollingWindow returns the window of the given number of days ending at now,
// independent of calendar boundaries.
func RollingWindow(now time.Time, days int) Window {
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}

// MonthToDate returns the window from the first instant of now's calendar month up to now.
// Calendar fields are read in now's location.
func MonthToDate(now time.Time) Window {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: now}
}

// CalendarMonth returns the full calendar month of the given year in loc.
func CalendarMonth(year int, month time.Month, loc *time.Location) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// CalendarYear returns the full calendar year in loc.
func CalendarYear(year int, loc *time.Location) Window {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(1, 0, 0)}
}

// PreviousMonth returns the full calendar month before now's month.
func PreviousMonth(now time.Time) Window {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{Start: first.AddDate(0, -1, 0), End: first}
}
