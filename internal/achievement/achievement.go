package achievement

import (
	"time"

	"github.com/google/uuid"
)

const TypeGoalCompletion = "GOAL_COMPLETION"

type Achievement struct {
	UUID            uuid.UUID      `json:"uuid" db:"uuid"`
	UserUUID        uuid.UUID      `json:"user_uuid" db:"user_uuid"`
	GoalUUID        uuid.UUID      `json:"goal_uuid" db:"goal_uuid"`
	PeriodID        string         `json:"period_id" db:"period_id"`
	Title           string         `json:"title" db:"title"`
	Description     string         `json:"description" db:"description"`
	EarnedAt        time.Time      `json:"earned_at" db:"earned_at"`
	AchievementType string         `json:"achievement_type" db:"achievement_type"`
	MetaData        map[string]any `json:"meta_data" db:"meta_data"`
}

type ListResponse struct {
	Items []*Achievement `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
