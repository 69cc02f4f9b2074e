package leaderboard

import (
	"fmt"

	"github.com/google/uuid"
)

type Metric string

const (
	MetricDistance Metric = "DISTANCE"
	MetricDuration Metric = "DURATION"
	MetricRuns     Metric = "RUNS"
)

type Period string

const (
	PeriodWeek    Period = "WEEK"
	PeriodMonth   Period = "MONTH"
	PeriodAllTime Period = "ALL_TIME"
)

func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricDistance, MetricDuration, MetricRuns:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unknown leaderboard metric: %q", s)
}

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodAllTime:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown leaderboard period: %q", s)
}

// Entry ranks use standard competition ranking: tied values share a rank and
// the next distinct value skips past the tie group.
type Entry struct {
	Rank          int       `json:"rank"`
	UserUUID      uuid.UUID `json:"user_uuid"`
	Username      string    `json:"username"`
	Value         float64   `json:"value"`
	IsCurrentUser bool      `json:"is_current_user"`
}

type Leaderboard struct {
	Entries          []*Entry `json:"entries"`
	CurrentUserEntry *Entry   `json:"current_user_entry"`
}
