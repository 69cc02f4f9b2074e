package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"runTrackerAPI/internal/run"
	"runTrackerAPI/internal/stats"
)

const runColumns = `uuid, user_uuid, name, start_time, end_time, duration, distance, calories, route, created_at, updated_at`

type RunService struct {
	db           *pgxpool.Pool
	achievements *AchievementService
	now          func() time.Time
}

func NewRunService(db *pgxpool.Pool, achievements *AchievementService) *RunService {
	return &RunService{db: db, achievements: achievements, now: time.Now}
}

// Create inserts the run and evaluates the user's active goals in one
// transaction. If the evaluation or an award fails, the run insert is rolled
// back too, so a run is never recorded without its achievement check.
func (s *RunService) Create(ctx context.Context, userUUID uuid.UUID, req *run.CreateRunRequest) (*run.Run, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var routeJSON []byte
	if req.Route != nil {
		routeJSON, err = json.Marshal(req.Route)
		if err != nil {
			return nil, fmt.Errorf("failed to encode route: %w", err)
		}
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO runs (user_uuid, name, start_time, end_time, duration, distance, calories, route)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+runColumns,
		userUUID, req.Name, req.StartTime, req.EndTime, req.Duration, req.Distance, req.Calories, routeJSON)

	r, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	if err := s.achievements.EvaluateAndAward(ctx, tx, userUUID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return r, nil
}

func (s *RunService) List(ctx context.Context, userUUID uuid.UUID, p run.ListParams) (*run.ListResponse, error) {
	where := "WHERE user_uuid = $1"
	args := []any{userUUID}

	if p.Period != nil {
		since, err := listPeriodStart(s.now(), *p.Period)
		if err != nil {
			return nil, err
		}
		args = append(args, since)
		where += fmt.Sprintf(" AND start_time >= $%d", len(args))
	}
	if p.MinDistance != nil {
		args = append(args, *p.MinDistance)
		where += fmt.Sprintf(" AND distance >= $%d", len(args))
	}
	if p.MaxDistance != nil {
		args = append(args, *p.MaxDistance)
		where += fmt.Sprintf(" AND distance <= $%d", len(args))
	}

	var total int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM runs "+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}

	orderCol := "start_time"
	switch p.SortBy {
	case run.SortByDistance:
		orderCol = "distance"
	case run.SortByDuration:
		orderCol = "duration"
	}
	dir := "DESC"
	if p.Order == run.OrderAsc {
		dir = "ASC"
	}

	args = append(args, p.Limit, (p.Page-1)*p.Limit)
	query := fmt.Sprintf("SELECT %s FROM runs %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		runColumns, where, orderCol, dir, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	defer rows.Close()

	items := []*run.Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &run.ListResponse{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *RunService) Get(ctx context.Context, userUUID, runUUID uuid.UUID) (*run.Run, error) {
	row := s.db.QueryRow(ctx,
		"SELECT "+runColumns+" FROM runs WHERE uuid = $1 AND user_uuid = $2", runUUID, userUUID)

	r, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run: %w", err)
	}
	return r, nil
}

// UpdateName renames a run; no other field of a recorded run is mutable.
func (s *RunService) UpdateName(ctx context.Context, userUUID, runUUID uuid.UUID, name *string) (*run.Run, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE runs
		SET name = $3, updated_at = NOW()
		WHERE uuid = $1 AND user_uuid = $2
		RETURNING `+runColumns, runUUID, userUUID, name)

	r, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update run: %w", err)
	}
	return r, nil
}

func (s *RunService) Delete(ctx context.Context, userUUID, runUUID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM runs WHERE uuid = $1 AND user_uuid = $2`, runUUID, userUUID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// listPeriodStart maps a list filter period to its lower time bound. Unlike
// the visualization windows these are plain rolling offsets from now.
func listPeriodStart(now time.Time, p stats.Period) (time.Time, error) {
	switch p {
	case stats.PeriodLast7Days:
		return now.AddDate(0, 0, -7), nil
	case stats.PeriodLast30Days:
		return now.AddDate(0, 0, -30), nil
	case stats.PeriodLastYear:
		return now.AddDate(0, 0, -365), nil
	}
	return time.Time{}, fmt.Errorf("unsupported statistics period: %q", p)
}

func scanRun(row pgx.Row) (*run.Run, error) {
	r := &run.Run{}
	var routeJSON []byte
	err := row.Scan(&r.UUID, &r.UserUUID, &r.Name, &r.StartTime, &r.EndTime,
		&r.Duration, &r.Distance, &r.Calories, &routeJSON, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if routeJSON != nil {
		if err := json.Unmarshal(routeJSON, &r.Route); err != nil {
			return nil, fmt.Errorf("failed to decode route: %w", err)
		}
	}
	return r, nil
}
