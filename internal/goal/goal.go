package goal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeDistance     Type = "DISTANCE"
	TypeDuration     Type = "DURATION"
	TypeNumberOfRuns Type = "NUMBER_OF_RUNS"
)

type TimePeriod string

const (
	PeriodWeekly  TimePeriod = "WEEKLY"
	PeriodMonthly TimePeriod = "MONTHLY"
	PeriodYearly  TimePeriod = "YEARLY"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeDistance, TypeDuration, TypeNumberOfRuns:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown goal type: %q", s)
}

func ParseTimePeriod(s string) (TimePeriod, error) {
	switch TimePeriod(s) {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return TimePeriod(s), nil
	}
	return "", fmt.Errorf("unknown time period: %q", s)
}

type Goal struct {
	UUID       uuid.UUID  `json:"uuid" db:"uuid"`
	UserUUID   uuid.UUID  `json:"user_uuid" db:"user_uuid"`
	GoalType   Type       `json:"goal_type" db:"goal_type"`
	Target     float64    `json:"target" db:"target"`
	TimePeriod TimePeriod `json:"time_period" db:"time_period"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateGoalRequest struct {
	GoalType   string  `json:"goal_type" validate:"required"`
	Target     float64 `json:"target" validate:"required,gt=0"`
	TimePeriod string  `json:"time_period" validate:"required"`
}

type ListResponse struct {
	Items []*Goal `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}
