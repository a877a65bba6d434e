package calendar

import "time"

// dateKey normalizes a timestamp to its UTC calendar date. Every "today"
// comparison in the engine goes through the same UTC-midnight policy.
func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Midnight truncates a timestamp to UTC midnight.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// WorkDays counts the calendar dates in [start, end] inclusive that fall on
// Monday through Friday and are not national holidays. Returns 0 when end is
// before start; callers treat an inverted range as empty, not as an error.
func WorkDays(start, end time.Time, holidays []PublicHoliday) int {
	start = Midnight(start)
	end = Midnight(end)
	if end.Before(start) {
		return 0
	}

	national := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		if h.IsNational {
			national[dateKey(h.Date)] = struct{}{}
		}
	}

	workDays := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if _, isHoliday := national[dateKey(d)]; isHoliday {
			continue
		}
		workDays++
	}
	return workDays
}

// IsWorkday reports whether a single date counts as a workday.
func IsWorkday(d time.Time, holidays []PublicHoliday) bool {
	return WorkDays(d, d, holidays) == 1
}
