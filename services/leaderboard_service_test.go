package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runTrackerAPI/internal/leaderboard"
)

func entry(name string, value float64) *leaderboard.Entry {
	return &leaderboard.Entry{UserUUID: uuid.New(), Username: name, Value: value}
}

func TestAssignRanksCompetitionRanking(t *testing.T) {
	entries := []*leaderboard.Entry{
		entry("alice", 50),
		entry("bob", 50),
		entry("carol", 30),
	}

	assignRanks(entries)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank) // rank 2 is skipped after the tie
}

func TestAssignRanksDistinctValues(t *testing.T) {
	entries := []*leaderboard.Entry{
		entry("alice", 90),
		entry("bob", 60),
		entry("carol", 30),
	}

	assignRanks(entries)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestAssignRanksAllTied(t *testing.T) {
	entries := []*leaderboard.Entry{
		entry("alice", 10),
		entry("bob", 10),
		entry("carol", 10),
	}

	assignRanks(entries)

	for _, e := range entries {
		assert.Equal(t, 1, e.Rank)
	}
}

func TestTopAndLocateUserOutsideTopKeepsTrueRank(t *testing.T) {
	entries := []*leaderboard.Entry{
		entry("alice", 90),
		entry("bob", 80),
		entry("carol", 70),
		entry("dave", 60),
		entry("erin", 50),
	}
	assignRanks(entries)

	me := entries[4].UserUUID
	top, mine := topAndLocate(entries, me, 2)

	assert.Len(t, top, 2)
	require.NotNil(t, mine)
	// The rank comes from the full ranked population, not from the slice.
	assert.Equal(t, 5, mine.Rank)
	assert.Equal(t, "erin", mine.Username)
}

func TestTopAndLocateReusesTopEntry(t *testing.T) {
	entries := []*leaderboard.Entry{
		entry("alice", 90),
		entry("bob", 80),
		entry("carol", 70),
	}
	assignRanks(entries)

	me := entries[0].UserUUID
	top, mine := topAndLocate(entries, me, 2)

	require.NotNil(t, mine)
	assert.Same(t, top[0], mine)
}

func TestTopAndLocateUnknownUser(t *testing.T) {
	entries := []*leaderboard.Entry{entry("alice", 90)}
	assignRanks(entries)

	top, mine := topAndLocate(entries, uuid.New(), 10)

	assert.Len(t, top, 1)
	assert.Nil(t, mine)
}

func TestMetricExprClosedSet(t *testing.T) {
	for _, m := range []leaderboard.Metric{
		leaderboard.MetricDistance,
		leaderboard.MetricDuration,
		leaderboard.MetricRuns,
	} {
		expr, err := metricExpr(m)
		require.NoError(t, err)
		assert.NotEmpty(t, expr)
	}

	_, err := metricExpr(leaderboard.Metric("CALORIES"))
	assert.Error(t, err)
}
