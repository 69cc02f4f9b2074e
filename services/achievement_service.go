package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"runTrackerAPI/internal/achievement"
	"runTrackerAPI/internal/goal"
	"runTrackerAPI/internal/period"
)

type AchievementService struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewAchievementService(db *pgxpool.Pool) *AchievementService {
	return &AchievementService{db: db, now: time.Now}
}

// EvaluateAndAward checks every active goal of the user against its current
// period window and awards an achievement for each goal that is met. It runs
// on the caller's querier so the run-creation transaction can pass its own tx
// and the evaluation sees the just-inserted run; any error aborts that whole
// transaction.
func (s *AchievementService) EvaluateAndAward(ctx context.Context, q querier, userUUID uuid.UUID) error {
	now := s.now()

	goals, err := s.activeGoals(ctx, q, userUUID)
	if err != nil {
		return fmt.Errorf("failed to load active goals: %w", err)
	}

	for _, g := range goals {
		start, end, periodID, err := period.Range(now, g.TimePeriod)
		if err != nil {
			return err
		}

		progress, err := s.progress(ctx, q, userUUID, g.GoalType, start, end)
		if err != nil {
			return fmt.Errorf("failed to calculate progress for goal %s: %w", g.UUID, err)
		}

		if progress < g.Target {
			continue
		}

		if err := s.award(ctx, q, g, buildAward(g, periodID, progress, now)); err != nil {
			return fmt.Errorf("failed to award achievement for goal %s: %w", g.UUID, err)
		}
	}

	return nil
}

func (s *AchievementService) activeGoals(ctx context.Context, q querier, userUUID uuid.UUID) ([]*goal.Goal, error) {
	rows, err := q.Query(ctx, `
		SELECT uuid, user_uuid, goal_type, target, time_period, is_active, created_at, updated_at
		FROM goals
		WHERE user_uuid = $1 AND is_active = TRUE
	`, userUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*goal.Goal
	for rows.Next() {
		g := &goal.Goal{}
		err := rows.Scan(&g.UUID, &g.UserUUID, &g.GoalType, &g.Target, &g.TimePeriod, &g.IsActive, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// progressExpr maps a goal type to its SQL aggregate. The variant set is
// closed; anything else is a programming error upstream.
func progressExpr(t goal.Type) (string, error) {
	switch t {
	case goal.TypeDistance:
		return "COALESCE(SUM(distance), 0)::float8", nil
	case goal.TypeDuration:
		return "COALESCE(SUM(duration), 0)::float8", nil
	case goal.TypeNumberOfRuns:
		return "COUNT(*)::float8", nil
	}
	return "", fmt.Errorf("unknown goal type: %q", t)
}

func (s *AchievementService) progress(ctx context.Context, q querier, userUUID uuid.UUID, t goal.Type, start, end time.Time) (float64, error) {
	expr, err := progressExpr(t)
	if err != nil {
		return 0, err
	}

	query := `SELECT ` + expr + ` FROM runs WHERE user_uuid = $1 AND start_time >= $2 AND start_time < $3`

	var progress float64
	if err := q.QueryRow(ctx, query, userUUID, start, end).Scan(&progress); err != nil {
		return 0, err
	}
	return progress, nil
}

// buildAward assembles the achievement row for a met goal.
func buildAward(g *goal.Goal, periodID string, progress float64, now time.Time) *achievement.Achievement {
	return &achievement.Achievement{
		UserUUID:        g.UserUUID,
		GoalUUID:        g.UUID,
		PeriodID:        periodID,
		Title:           fmt.Sprintf("%s %s Goal Met", periodLabel(g.TimePeriod), typeLabel(g.GoalType)),
		Description:     fmt.Sprintf("You achieved your goal of %g %s!", g.Target, unitLabel(g.GoalType)),
		EarnedAt:        now,
		AchievementType: achievement.TypeGoalCompletion,
		MetaData: map[string]any{
			"goal_id":     g.UUID.String(),
			"period":      periodID,
			"target":      g.Target,
			"achieved":    progress,
			"goal_type":   string(g.GoalType),
			"time_period": string(g.TimePeriod),
		},
	}
}

// award inserts the achievement. The unique constraint on
// (user_uuid, goal_uuid, period_id) makes this idempotent per goal and
// period, including under concurrent run submissions.
func (s *AchievementService) award(ctx context.Context, q querier, g *goal.Goal, a *achievement.Achievement) error {
	metaJSON, _ := json.Marshal(a.MetaData)

	tag, err := q.Exec(ctx, `
		INSERT INTO achievements (user_uuid, goal_uuid, period_id, title, description, earned_at, achievement_type, meta_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ON CONSTRAINT achievements_goal_period_unique DO NOTHING
	`, a.UserUUID, a.GoalUUID, a.PeriodID, a.Title, a.Description, a.EarnedAt, a.AchievementType, metaJSON)
	if err != nil {
		return err
	}

	if tag.RowsAffected() > 0 {
		log.Printf("Awarded achievement %q to user %s for period %s", a.Title, a.UserUUID, a.PeriodID)
		achievementsAwarded.Inc()
	}
	return nil
}

func (s *AchievementService) List(ctx context.Context, userUUID uuid.UUID, page, limit int) (*achievement.ListResponse, error) {
	var total int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM achievements WHERE user_uuid = $1`, userUUID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count achievements: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT uuid, user_uuid, goal_uuid, period_id, title, description, earned_at, achievement_type, meta_data
		FROM achievements
		WHERE user_uuid = $1
		ORDER BY earned_at DESC
		LIMIT $2 OFFSET $3
	`, userUUID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievements: %w", err)
	}
	defer rows.Close()

	items := []*achievement.Achievement{}
	for rows.Next() {
		a := &achievement.Achievement{}
		err := rows.Scan(&a.UUID, &a.UserUUID, &a.GoalUUID, &a.PeriodID, &a.Title, &a.Description, &a.EarnedAt, &a.AchievementType, &a.MetaData)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &achievement.ListResponse{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func periodLabel(p goal.TimePeriod) string {
	switch p {
	case goal.PeriodWeekly:
		return "Weekly"
	case goal.PeriodMonthly:
		return "Monthly"
	case goal.PeriodYearly:
		return "Yearly"
	}
	return string(p)
}

func typeLabel(t goal.Type) string {
	switch t {
	case goal.TypeDistance:
		return "Distance"
	case goal.TypeDuration:
		return "Duration"
	case goal.TypeNumberOfRuns:
		return "Run Count"
	}
	return string(t)
}

func unitLabel(t goal.Type) string {
	switch t {
	case goal.TypeDistance:
		return "km"
	case goal.TypeDuration:
		return "minutes"
	case goal.TypeNumberOfRuns:
		return "runs"
	}
	return ""
}
