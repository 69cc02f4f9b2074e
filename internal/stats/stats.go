package stats

import "fmt"

type Period string

const (
	PeriodLast7Days  Period = "LAST_7_DAYS"
	PeriodLast30Days Period = "LAST_30_DAYS"
	PeriodLastYear   Period = "LAST_YEAR"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodLast7Days, PeriodLast30Days, PeriodLastYear:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown statistics period: %q", s)
}

type TotalStats struct {
	TotalDistance float64 `json:"total_distance"`
	TotalDuration float64 `json:"total_duration"`
	TotalWorkouts int     `json:"total_workouts"`
}

type StreakStats struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// PersonalRecords fields are nil until a qualifying run exists. FastestPace
// is minutes per km and only considers runs with distance > 0.
type PersonalRecords struct {
	FastestPace     *float64 `json:"fastest_pace"`
	LongestDistance *float64 `json:"longest_distance"`
	LongestDuration *float64 `json:"longest_duration"`
}

type UserStatistics struct {
	Totals          TotalStats      `json:"totals"`
	Streaks         StreakStats     `json:"streaks"`
	PersonalRecords PersonalRecords `json:"personal_records"`
}

// VisualizationPoint is one calendar bucket (day or month) of the chart
// series. Buckets with no runs are emitted with zero values.
type VisualizationPoint struct {
	Label    string  `json:"label"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Count    int     `json:"count"`
}
