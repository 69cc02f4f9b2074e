package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runTrackerAPI/internal/achievement"
	"runTrackerAPI/internal/goal"
	"runTrackerAPI/internal/period"
)

func weeklyDistanceGoal(target float64) *goal.Goal {
	return &goal.Goal{
		UUID:       uuid.New(),
		UserUUID:   uuid.New(),
		GoalType:   goal.TypeDistance,
		Target:     target,
		TimePeriod: goal.PeriodWeekly,
		IsActive:   true,
	}
}

func TestBuildAwardForMetWeeklyDistanceGoal(t *testing.T) {
	g := weeklyDistanceGoal(10)
	now := time.Date(2025, time.February, 12, 18, 0, 0, 0, time.UTC)
	_, _, periodID, err := period.Range(now, g.TimePeriod)
	require.NoError(t, err)

	// Two runs of 6 km and 5 km within the week.
	a := buildAward(g, periodID, 11, now)

	assert.Equal(t, g.UserUUID, a.UserUUID)
	assert.Equal(t, g.UUID, a.GoalUUID)
	assert.Equal(t, "2025-W7", a.PeriodID)
	assert.Equal(t, "Weekly Distance Goal Met", a.Title)
	assert.Equal(t, "You achieved your goal of 10 km!", a.Description)
	assert.Equal(t, achievement.TypeGoalCompletion, a.AchievementType)
	assert.Equal(t, now, a.EarnedAt)

	assert.Equal(t, g.UUID.String(), a.MetaData["goal_id"])
	assert.Equal(t, "2025-W7", a.MetaData["period"])
	assert.Equal(t, 10.0, a.MetaData["target"])
	assert.Equal(t, 11.0, a.MetaData["achieved"])
	assert.Equal(t, "DISTANCE", a.MetaData["goal_type"])
	assert.Equal(t, "WEEKLY", a.MetaData["time_period"])
}

func TestBuildAwardIsStableWithinPeriod(t *testing.T) {
	g := weeklyDistanceGoal(10)

	monday := time.Date(2025, time.February, 10, 8, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, time.February, 16, 22, 0, 0, 0, time.UTC)

	_, _, idA, err := period.Range(monday, g.TimePeriod)
	require.NoError(t, err)
	_, _, idB, err := period.Range(sunday, g.TimePeriod)
	require.NoError(t, err)

	// Same period key both times; the unique constraint on
	// (user_uuid, goal_uuid, period_id) makes the second award a no-op.
	assert.Equal(t, buildAward(g, idA, 12, monday).PeriodID, buildAward(g, idB, 12, sunday).PeriodID)
}

func TestBuildAwardLabelsPerGoalType(t *testing.T) {
	cases := []struct {
		goalType    goal.Type
		timePeriod  goal.TimePeriod
		wantTitle   string
		wantDescEnd string
	}{
		{goal.TypeDistance, goal.PeriodWeekly, "Weekly Distance Goal Met", "5 km!"},
		{goal.TypeDuration, goal.PeriodMonthly, "Monthly Duration Goal Met", "5 minutes!"},
		{goal.TypeNumberOfRuns, goal.PeriodYearly, "Yearly Run Count Goal Met", "5 runs!"},
	}

	now := time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)
	for _, tc := range cases {
		g := &goal.Goal{
			UUID:       uuid.New(),
			UserUUID:   uuid.New(),
			GoalType:   tc.goalType,
			Target:     5,
			TimePeriod: tc.timePeriod,
		}
		_, _, periodID, err := period.Range(now, g.TimePeriod)
		require.NoError(t, err)

		a := buildAward(g, periodID, 6, now)
		assert.Equal(t, tc.wantTitle, a.Title)
		assert.Contains(t, a.Description, tc.wantDescEnd)
	}
}

func TestProgressExprClosedSet(t *testing.T) {
	for _, gt := range []goal.Type{goal.TypeDistance, goal.TypeDuration, goal.TypeNumberOfRuns} {
		expr, err := progressExpr(gt)
		require.NoError(t, err)
		assert.NotEmpty(t, expr)
	}

	_, err := progressExpr(goal.Type("STEPS"))
	assert.Error(t, err)
}
