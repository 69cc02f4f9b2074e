package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runTrackerAPI/internal/goal"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 30, 0, 0, time.UTC)
}

func TestWeekStart(t *testing.T) {
	// Wednesday 2025-02-12 -> Monday 2025-02-10
	got := WeekStart(date(2025, time.February, 12, 15))
	assert.Equal(t, time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC), got)

	// A Monday stays on the same day, truncated to midnight.
	got = WeekStart(date(2025, time.February, 10, 9))
	assert.Equal(t, time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC), got)

	// Sunday belongs to the week that started six days earlier.
	got = WeekStart(date(2025, time.February, 16, 23))
	assert.Equal(t, time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestRangeWeekly(t *testing.T) {
	now := date(2025, time.February, 12, 15)
	start, end, id, err := Range(now, goal.PeriodWeekly)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.February, 17, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, "2025-W7", id)
}

func TestRangeWeeklyStableWithinWeek(t *testing.T) {
	// Two evaluations inside the same ISO week must share an identifier.
	_, _, idMon, err := Range(date(2025, time.February, 10, 1), goal.PeriodWeekly)
	require.NoError(t, err)
	_, _, idSun, err := Range(date(2025, time.February, 16, 23), goal.PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, idMon, idSun)
}

func TestRangeMonthly(t *testing.T) {
	start, end, id, err := Range(date(2025, time.March, 14, 8), goal.PeriodMonthly)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, "2025-M3", id)
}

func TestRangeMonthlyDecemberRollsIntoNextYear(t *testing.T) {
	start, end, id, err := Range(date(2024, time.December, 31, 23), goal.PeriodMonthly)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, "2024-M12", id)
}

func TestRangeYearly(t *testing.T) {
	start, end, id, err := Range(date(2025, time.July, 4, 12), goal.PeriodYearly)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, "2025", id)
}

func TestRangeUnknownPeriod(t *testing.T) {
	_, _, _, err := Range(date(2025, time.July, 4, 12), goal.TimePeriod("DAILY"))
	assert.Error(t, err)
}
