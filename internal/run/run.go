package run

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"runTrackerAPI/internal/stats"
)

type SortBy string

const (
	SortByDate     SortBy = "DATE"
	SortByDistance SortBy = "DISTANCE"
	SortByDuration SortBy = "DURATION"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(s) {
	case SortByDate, SortByDistance, SortByDuration:
		return SortBy(s), nil
	}
	return "", fmt.Errorf("unknown sort field: %q", s)
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case OrderAsc, OrderDesc:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unknown sort order: %q", s)
}

// RoutePoint is one GPS sample of a recorded route.
type RoutePoint struct {
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Speed     *float64 `json:"speed,omitempty"`
	Timestamp *int64   `json:"timestamp,omitempty"`
}

type Run struct {
	UUID      uuid.UUID    `json:"uuid" db:"uuid"`
	UserUUID  uuid.UUID    `json:"user_uuid" db:"user_uuid"`
	Name      *string      `json:"name" db:"name"`
	StartTime time.Time    `json:"start_time" db:"start_time"`
	EndTime   time.Time    `json:"end_time" db:"end_time"`
	Duration  float64      `json:"duration" db:"duration"` // minutes
	Distance  float64      `json:"distance" db:"distance"` // km
	Calories  *int         `json:"calories,omitempty" db:"calories"`
	Route     []RoutePoint `json:"route,omitempty" db:"route"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}

type CreateRunRequest struct {
	Name      *string      `json:"name"`
	StartTime time.Time    `json:"start_time" validate:"required"`
	EndTime   time.Time    `json:"end_time" validate:"required"`
	Duration  float64      `json:"duration" validate:"required,gte=0"`
	Distance  float64      `json:"distance" validate:"required,gte=0"`
	Calories  *int         `json:"calories"`
	Route     []RoutePoint `json:"route"`
}

// UpdateRunRequest only covers the display name; everything else about a
// recorded run is immutable.
type UpdateRunRequest struct {
	Name *string `json:"name"`
}

type ListParams struct {
	Page        int
	Limit       int
	Period      *stats.Period
	MinDistance *float64
	MaxDistance *float64
	SortBy      SortBy
	Order       SortOrder
}

type ListResponse struct {
	Items []*Run `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}
