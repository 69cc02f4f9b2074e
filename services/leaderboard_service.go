package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"runTrackerAPI/internal/leaderboard"
	"runTrackerAPI/internal/period"
)

type LeaderboardService struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewLeaderboardService(db *pgxpool.Pool) *LeaderboardService {
	return &LeaderboardService{db: db, now: time.Now}
}

// GetLeaderboard ranks the whole population once and answers both questions
// from that single ranking: the top-limit slice and the requesting user's own
// entry, wherever it sits. Users without qualifying runs appear with value 0.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, metric leaderboard.Metric, p leaderboard.Period, currentUser uuid.UUID, limit int) (*leaderboard.Leaderboard, error) {
	expr, err := metricExpr(metric)
	if err != nil {
		return nil, err
	}

	since, bounded, err := s.periodStart(p)
	if err != nil {
		return nil, err
	}

	join := "LEFT JOIN runs r ON r.user_uuid = u.uuid"
	args := []any{}
	if bounded {
		args = append(args, since)
		join += " AND r.start_time >= $1"
	}

	// Username is the deterministic tie order; ranks for equal values are
	// assigned below.
	query := fmt.Sprintf(`
		SELECT u.uuid, u.username, %s AS value
		FROM users u
		%s
		GROUP BY u.uuid, u.username
		ORDER BY value DESC, u.username ASC
	`, expr, join)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*leaderboard.Entry
	for rows.Next() {
		e := &leaderboard.Entry{}
		if err := rows.Scan(&e.UserUUID, &e.Username, &e.Value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		e.IsCurrentUser = e.UserUUID == currentUser
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	assignRanks(entries)
	top, mine := topAndLocate(entries, currentUser, limit)

	return &leaderboard.Leaderboard{Entries: top, CurrentUserEntry: mine}, nil
}

func metricExpr(m leaderboard.Metric) (string, error) {
	switch m {
	case leaderboard.MetricDistance:
		return "COALESCE(SUM(r.distance), 0)::float8", nil
	case leaderboard.MetricDuration:
		return "COALESCE(SUM(r.duration), 0)::float8", nil
	case leaderboard.MetricRuns:
		return "COUNT(r.uuid)::float8", nil
	}
	return "", fmt.Errorf("unknown leaderboard metric: %q", m)
}

func (s *LeaderboardService) periodStart(p leaderboard.Period) (time.Time, bool, error) {
	now := s.now()
	switch p {
	case leaderboard.PeriodWeek:
		return period.WeekStart(now), true, nil
	case leaderboard.PeriodMonth:
		return period.MonthStart(now), true, nil
	case leaderboard.PeriodAllTime:
		return time.Time{}, false, nil
	}
	return time.Time{}, false, fmt.Errorf("unknown leaderboard period: %q", p)
}

// assignRanks applies standard competition ranking over entries already
// sorted by value descending: ties share a rank, the next distinct value
// resumes at its 1-based position.
func assignRanks(entries []*leaderboard.Entry) {
	for i, e := range entries {
		if i > 0 && e.Value == entries[i-1].Value {
			e.Rank = entries[i-1].Rank
		} else {
			e.Rank = i + 1
		}
	}
}

// topAndLocate slices the top entries and finds the user's own entry in the
// full ranked population, so the "my rank" answer can never disagree with the
// board itself.
func topAndLocate(entries []*leaderboard.Entry, userUUID uuid.UUID, limit int) ([]*leaderboard.Entry, *leaderboard.Entry) {
	top := entries
	if limit > 0 && len(entries) > limit {
		top = entries[:limit]
	}

	for _, e := range entries {
		if e.UserUUID == userUUID {
			return top, e
		}
	}
	return top, nil
}
