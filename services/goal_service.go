package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"runTrackerAPI/internal/goal"
)

type GoalService struct {
	db *pgxpool.Pool
}

func NewGoalService(db *pgxpool.Pool) *GoalService {
	return &GoalService{db: db}
}

func (s *GoalService) Create(ctx context.Context, userUUID uuid.UUID, goalType goal.Type, target float64, timePeriod goal.TimePeriod) (*goal.Goal, error) {
	g := &goal.Goal{}
	err := s.db.QueryRow(ctx, `
		INSERT INTO goals (user_uuid, goal_type, target, time_period)
		VALUES ($1, $2, $3, $4)
		RETURNING uuid, user_uuid, goal_type, target, time_period, is_active, created_at, updated_at
	`, userUUID, goalType, target, timePeriod).Scan(
		&g.UUID, &g.UserUUID, &g.GoalType, &g.Target, &g.TimePeriod, &g.IsActive, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return g, nil
}

func (s *GoalService) List(ctx context.Context, userUUID uuid.UUID, page, limit int) (*goal.ListResponse, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM goals WHERE user_uuid = $1`, userUUID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count goals: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT uuid, user_uuid, goal_type, target, time_period, is_active, created_at, updated_at
		FROM goals
		WHERE user_uuid = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userUUID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	defer rows.Close()

	items := []*goal.Goal{}
	for rows.Next() {
		g := &goal.Goal{}
		err := rows.Scan(&g.UUID, &g.UserUUID, &g.GoalType, &g.Target, &g.TimePeriod, &g.IsActive, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &goal.ListResponse{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *GoalService) Get(ctx context.Context, userUUID, goalUUID uuid.UUID) (*goal.Goal, error) {
	g := &goal.Goal{}
	err := s.db.QueryRow(ctx, `
		SELECT uuid, user_uuid, goal_type, target, time_period, is_active, created_at, updated_at
		FROM goals
		WHERE uuid = $1 AND user_uuid = $2
	`, goalUUID, userUUID).Scan(
		&g.UUID, &g.UserUUID, &g.GoalType, &g.Target, &g.TimePeriod, &g.IsActive, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goal: %w", err)
	}
	return g, nil
}

// Deactivate takes a goal out of evaluation without losing its history.
func (s *GoalService) Deactivate(ctx context.Context, userUUID, goalUUID uuid.UUID) (*goal.Goal, error) {
	g := &goal.Goal{}
	err := s.db.QueryRow(ctx, `
		UPDATE goals
		SET is_active = FALSE, updated_at = NOW()
		WHERE uuid = $1 AND user_uuid = $2
		RETURNING uuid, user_uuid, goal_type, target, time_period, is_active, created_at, updated_at
	`, goalUUID, userUUID).Scan(
		&g.UUID, &g.UserUUID, &g.GoalType, &g.Target, &g.TimePeriod, &g.IsActive, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate goal: %w", err)
	}
	return g, nil
}

func (s *GoalService) Delete(ctx context.Context, userUUID, goalUUID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM goals WHERE uuid = $1 AND user_uuid = $2`, goalUUID, userUUID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
