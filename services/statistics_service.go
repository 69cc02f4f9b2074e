package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"runTrackerAPI/internal/period"
	"runTrackerAPI/internal/stats"
)

const dayLayout = "2006-01-02"
const monthLayout = "2006-01"

type StatisticsService struct {
	db *pgxpool.Pool

	// now is swappable so streak and bucket boundaries are testable.
	now func() time.Time
}

func NewStatisticsService(db *pgxpool.Pool) *StatisticsService {
	return &StatisticsService{db: db, now: time.Now}
}

func (s *StatisticsService) GetUserStatistics(ctx context.Context, userUUID uuid.UUID) (*stats.UserStatistics, error) {
	totals, err := s.calculateTotals(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate totals: %w", err)
	}

	records, err := s.calculatePersonalRecords(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate personal records: %w", err)
	}

	streaks, err := s.calculateStreaks(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate streaks: %w", err)
	}

	return &stats.UserStatistics{
		Totals:          totals,
		Streaks:         streaks,
		PersonalRecords: records,
	}, nil
}

func (s *StatisticsService) calculateTotals(ctx context.Context, userUUID uuid.UUID) (stats.TotalStats, error) {
	query := `
		SELECT
			COALESCE(SUM(distance), 0),
			COALESCE(SUM(duration), 0),
			COUNT(*)
		FROM runs
		WHERE user_uuid = $1
	`

	var t stats.TotalStats
	err := s.db.QueryRow(ctx, query, userUUID).Scan(&t.TotalDistance, &t.TotalDuration, &t.TotalWorkouts)
	if err != nil {
		return stats.TotalStats{}, err
	}
	return t, nil
}

func (s *StatisticsService) calculatePersonalRecords(ctx context.Context, userUUID uuid.UUID) (stats.PersonalRecords, error) {
	// Pace only considers runs with a positive distance; the MAX aggregates
	// return NULL for an empty history, which scans into nil pointers.
	query := `
		SELECT
			MAX(distance),
			MAX(duration),
			MIN(duration / distance) FILTER (WHERE distance > 0)
		FROM runs
		WHERE user_uuid = $1
	`

	var pr stats.PersonalRecords
	err := s.db.QueryRow(ctx, query, userUUID).Scan(&pr.LongestDistance, &pr.LongestDuration, &pr.FastestPace)
	if err != nil {
		return stats.PersonalRecords{}, err
	}
	return pr, nil
}

func (s *StatisticsService) calculateStreaks(ctx context.Context, userUUID uuid.UUID) (stats.StreakStats, error) {
	rows, err := s.db.Query(ctx,
		`SELECT DISTINCT start_time::date FROM runs WHERE user_uuid = $1 ORDER BY 1`, userUUID)
	if err != nil {
		return stats.StreakStats{}, err
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return stats.StreakStats{}, err
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return stats.StreakStats{}, err
	}

	return computeStreaks(days, s.now()), nil
}

// computeStreaks derives current and longest day streaks from the set of
// active calendar days. A streak is current only while the most recent active
// day is today or yesterday.
func computeStreaks(days []time.Time, today time.Time) stats.StreakStats {
	if len(days) == 0 {
		return stats.StreakStats{}
	}

	active := make(map[string]bool, len(days))
	for _, d := range days {
		active[d.Format(dayLayout)] = true
	}

	keys := make([]string, 0, len(active))
	for k := range active {
		keys = append(keys, k)
	}
	sort.Strings(keys) // YYYY-MM-DD sorts chronologically

	longest, streak := 1, 1
	for i := 1; i < len(keys); i++ {
		prev, _ := time.Parse(dayLayout, keys[i-1])
		if keys[i] == prev.AddDate(0, 0, 1).Format(dayLayout) {
			streak++
		} else {
			if streak > longest {
				longest = streak
			}
			streak = 1
		}
	}
	if streak > longest {
		longest = streak
	}

	current := 0
	check := period.DayStart(today)
	if !active[check.Format(dayLayout)] {
		// No run yet today; the streak survives if yesterday was active.
		check = check.AddDate(0, 0, -1)
	}
	for active[check.Format(dayLayout)] {
		current++
		check = check.AddDate(0, 0, -1)
	}

	return stats.StreakStats{CurrentStreak: current, LongestStreak: longest}
}

func (s *StatisticsService) GetVisualizationData(ctx context.Context, userUUID uuid.UUID, p stats.Period) ([]stats.VisualizationPoint, error) {
	now := s.now()

	var buckets []time.Time
	var trunc, pgLayout, layout string
	switch p {
	case stats.PeriodLast7Days:
		buckets, trunc, pgLayout, layout = dailyBuckets(now, 7), "day", "YYYY-MM-DD", dayLayout
	case stats.PeriodLast30Days:
		buckets, trunc, pgLayout, layout = dailyBuckets(now, 30), "day", "YYYY-MM-DD", dayLayout
	case stats.PeriodLastYear:
		buckets, trunc, pgLayout, layout = monthlyBuckets(now), "month", "YYYY-MM", monthLayout
	default:
		return nil, fmt.Errorf("unsupported statistics period: %q", p)
	}

	query := fmt.Sprintf(`
		SELECT
			to_char(date_trunc('%s', start_time), '%s') AS label,
			COALESCE(SUM(distance), 0),
			COALESCE(SUM(duration), 0),
			COUNT(*)
		FROM runs
		WHERE user_uuid = $1 AND start_time >= $2
		GROUP BY 1
	`, trunc, pgLayout)

	rows, err := s.db.Query(ctx, query, userUUID, buckets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate runs: %w", err)
	}
	defer rows.Close()

	byLabel := make(map[string]stats.VisualizationPoint)
	for rows.Next() {
		var pt stats.VisualizationPoint
		if err := rows.Scan(&pt.Label, &pt.Distance, &pt.Duration, &pt.Count); err != nil {
			return nil, err
		}
		byLabel[pt.Label] = pt
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fillBuckets(buckets, layout, byLabel), nil
}

// dailyBuckets returns n ascending day starts ending at today.
func dailyBuckets(now time.Time, n int) []time.Time {
	start := period.DayStart(now).AddDate(0, 0, -(n - 1))
	buckets := make([]time.Time, n)
	for i := range buckets {
		buckets[i] = start.AddDate(0, 0, i)
	}
	return buckets
}

// monthlyBuckets returns ascending month starts from the month containing
// (now - 365 days) through the current month.
func monthlyBuckets(now time.Time) []time.Time {
	cur := period.MonthStart(now.AddDate(0, 0, -365))
	last := period.MonthStart(now)

	var buckets []time.Time
	for !cur.After(last) {
		buckets = append(buckets, cur)
		cur = cur.AddDate(0, 1, 0)
	}
	return buckets
}

// fillBuckets emits one point per bucket in order, zero-filling buckets with
// no aggregated data, so the series length depends only on the window.
func fillBuckets(buckets []time.Time, layout string, byLabel map[string]stats.VisualizationPoint) []stats.VisualizationPoint {
	points := make([]stats.VisualizationPoint, 0, len(buckets))
	for _, b := range buckets {
		label := b.Format(layout)
		if pt, ok := byLabel[label]; ok {
			points = append(points, pt)
		} else {
			points = append(points, stats.VisualizationPoint{Label: label})
		}
	}
	return points
}
