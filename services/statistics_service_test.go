package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"runTrackerAPI/internal/stats"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 15, 0, 0, time.UTC)
}

func TestComputeStreaksEmptyHistory(t *testing.T) {
	got := computeStreaks(nil, day(2025, time.January, 3))
	assert.Equal(t, stats.StreakStats{}, got)
}

func TestComputeStreaksConsecutiveThroughToday(t *testing.T) {
	days := []time.Time{
		day(2025, time.January, 1),
		day(2025, time.January, 2),
		day(2025, time.January, 3),
	}
	got := computeStreaks(days, day(2025, time.January, 3))
	assert.Equal(t, stats.StreakStats{CurrentStreak: 3, LongestStreak: 3}, got)
}

func TestComputeStreaksGapBreaksEverything(t *testing.T) {
	days := []time.Time{
		day(2025, time.January, 1),
		day(2025, time.January, 3),
	}
	got := computeStreaks(days, day(2025, time.January, 5))
	assert.Equal(t, stats.StreakStats{CurrentStreak: 0, LongestStreak: 1}, got)
}

func TestComputeStreaksYesterdayKeepsStreakAlive(t *testing.T) {
	days := []time.Time{
		day(2025, time.January, 2),
		day(2025, time.January, 3),
	}
	// No run yet today; the streak still counts.
	got := computeStreaks(days, day(2025, time.January, 4))
	assert.Equal(t, stats.StreakStats{CurrentStreak: 2, LongestStreak: 2}, got)
}

func TestComputeStreaksStaleHistoryHasNoCurrentStreak(t *testing.T) {
	days := []time.Time{
		day(2025, time.January, 1),
		day(2025, time.January, 2),
		day(2025, time.January, 3),
	}
	got := computeStreaks(days, day(2025, time.January, 10))
	assert.Equal(t, stats.StreakStats{CurrentStreak: 0, LongestStreak: 3}, got)
}

func TestComputeStreaksSingleActiveDay(t *testing.T) {
	got := computeStreaks([]time.Time{day(2025, time.June, 10)}, day(2025, time.June, 10))
	assert.Equal(t, stats.StreakStats{CurrentStreak: 1, LongestStreak: 1}, got)
}

func TestComputeStreaksSameDayRunsCountOnce(t *testing.T) {
	single := []time.Time{
		at(2025, time.January, 2, 7),
		at(2025, time.January, 3, 7),
	}
	doubled := []time.Time{
		at(2025, time.January, 2, 7),
		at(2025, time.January, 2, 19),
		at(2025, time.January, 3, 7),
		at(2025, time.January, 3, 8),
	}

	today := day(2025, time.January, 3)
	assert.Equal(t, computeStreaks(single, today), computeStreaks(doubled, today))
}

func TestComputeStreaksAcrossMonthBoundary(t *testing.T) {
	days := []time.Time{
		day(2025, time.January, 31),
		day(2025, time.February, 1),
	}
	got := computeStreaks(days, day(2025, time.February, 1))
	assert.Equal(t, stats.StreakStats{CurrentStreak: 2, LongestStreak: 2}, got)
}

func TestDailyBucketsEndAtTodayWithNoGaps(t *testing.T) {
	now := at(2025, time.March, 10, 14)
	buckets := dailyBuckets(now, 7)

	assert.Len(t, buckets, 7)
	assert.Equal(t, day(2025, time.March, 4), buckets[0])
	assert.Equal(t, day(2025, time.March, 10), buckets[6])
	for i := 1; i < len(buckets); i++ {
		assert.Equal(t, buckets[i-1].AddDate(0, 0, 1), buckets[i])
	}
}

func TestMonthlyBucketsCoverTheLastYear(t *testing.T) {
	buckets := monthlyBuckets(at(2025, time.August, 31, 9))

	assert.Equal(t, day(2024, time.August, 1), buckets[0])
	assert.Equal(t, day(2025, time.August, 1), buckets[len(buckets)-1])
	assert.Len(t, buckets, 13)
}

func TestFillBucketsEmptyHistoryIsAllZeros(t *testing.T) {
	buckets := dailyBuckets(at(2025, time.March, 10, 14), 7)
	points := fillBuckets(buckets, dayLayout, map[string]stats.VisualizationPoint{})

	assert.Len(t, points, 7)
	assert.Equal(t, "2025-03-04", points[0].Label)
	assert.Equal(t, "2025-03-10", points[6].Label)
	for _, pt := range points {
		assert.Zero(t, pt.Distance)
		assert.Zero(t, pt.Duration)
		assert.Zero(t, pt.Count)
	}
}

func TestFillBucketsMergesAggregatedDays(t *testing.T) {
	buckets := dailyBuckets(at(2025, time.March, 10, 14), 7)
	byLabel := map[string]stats.VisualizationPoint{
		"2025-03-05": {Label: "2025-03-05", Distance: 12.5, Duration: 70, Count: 2},
	}

	points := fillBuckets(buckets, dayLayout, byLabel)

	assert.Len(t, points, 7)
	assert.Equal(t, byLabel["2025-03-05"], points[1])
	assert.Zero(t, points[2].Count)
}
