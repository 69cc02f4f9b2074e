// Package period derives the calendar windows that goal evaluation and
// leaderboards operate on. Everything here is a pure function of the supplied
// reference time so callers can pin "now" in tests.
package period

import (
	"fmt"
	"time"

	"runTrackerAPI/internal/goal"
)

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the most recent Monday at 00:00 relative to now.
func WeekStart(now time.Time) time.Time {
	d := DayStart(now)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

// MonthStart returns the first day of now's month at 00:00.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// YearStart returns January 1st of now's year at 00:00.
func YearStart(now time.Time) time.Time {
	return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
}

// Range resolves a goal time period to its current window [start, end) and the
// identifier that deduplicates awards for that window. The identifier is a
// pure function of the window start, so evaluating the same goal twice within
// one period always yields the same key.
func Range(now time.Time, p goal.TimePeriod) (start, end time.Time, id string, err error) {
	switch p {
	case goal.PeriodWeekly:
		start = WeekStart(now)
		end = start.AddDate(0, 0, 7)
		_, week := start.ISOWeek()
		id = fmt.Sprintf("%d-W%d", start.Year(), week)
	case goal.PeriodMonthly:
		start = MonthStart(now)
		end = start.AddDate(0, 1, 0)
		id = fmt.Sprintf("%d-M%d", start.Year(), int(start.Month()))
	case goal.PeriodYearly:
		start = YearStart(now)
		end = start.AddDate(1, 0, 0)
		id = fmt.Sprintf("%d", start.Year())
	default:
		err = fmt.Errorf("unsupported time period: %q", p)
	}
	return start, end, id, err
}
