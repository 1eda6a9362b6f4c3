package timesheet

import "time"

// Window is the rolling range of calendar dates whose sessions may currently
// be mutated, half-open: Start <= date < End.
type Window struct {
	Start time.Time
	End   time.Time
}

// ComputeEditableWindow bounds how far back corrections may reach, using a
// Monday-start week. On a Monday the window reaches one extra week back so
// Monday-morning corrections can still touch the prior week, but only one
// extra day forward.
func ComputeEditableWindow(now time.Time) Window {
	today := TruncateToDay(now)
	offset := (int(today.Weekday()) + 6) % 7 // days since Monday
	monday := today.AddDate(0, 0, -offset)

	if offset == 0 {
		return Window{
			Start: monday.AddDate(0, 0, -7),
			End:   monday.AddDate(0, 0, 1),
		}
	}
	return Window{
		Start: monday,
		End:   monday.AddDate(0, 0, 8),
	}
}

// Contains reports whether the date's calendar day falls inside the window.
func (w Window) Contains(date time.Time) bool {
	d := TruncateToDay(date)
	return !d.Before(w.Start) && d.Before(w.End)
}

// TruncateToDay zeroes the time-of-day, keeping the location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
