package core

import "time"

// Window is a closed date interval used to filter transactions by event
// date. Start is the first instant and End the last instant of the
// interval, both inclusive.
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls inside the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampToMonth builds a date in the given month, pulling day back to the
// month's last valid day when it overflows. This is what keeps a day-31
// closing date from silently rolling into the next month.
func ClampToMonth(year int, month time.Month, day int) time.Time {
	if last := LastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MonthWindow returns the calendar-month window containing now shifted
// monthsAgo months into the past (0 = the month of now itself). Year
// boundaries roll naturally.
func MonthWindow(now time.Time, monthsAgo int) Window {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -monthsAgo, 0)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Window{
		Start: start,
		End:   end,
		Label: start.Format("Jan 2006"),
	}
}

// MonthSeries returns monthsBack calendar-month windows ending with the
// month of now, oldest first. monthsBack below 1 yields an empty series.
func MonthSeries(now time.Time, monthsBack int) []Window {
	if monthsBack < 1 {
		return nil
	}
	windows := make([]Window, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		windows = append(windows, MonthWindow(now, i))
	}
	return windows
}

// MonthsBetween counts whole calendar months from the month of now to the
// month of target. The same month or any past month counts as zero.
func MonthsBetween(now, target time.Time) int {
	months := (target.Year()-now.Year())*12 + int(target.Month()) - int(now.Month())
	if months < 0 {
		return 0
	}
	return months
}
