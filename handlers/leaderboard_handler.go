package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"runTrackerAPI/internal/leaderboard"
	"runTrackerAPI/middleware"
	"runTrackerAPI/services"
)

const defaultLeaderboardLimit = 50

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	q := r.URL.Query()

	metric := leaderboard.MetricDistance
	if v := q.Get("metric"); v != "" {
		m, err := leaderboard.ParseMetric(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid metric")
			return
		}
		metric = m
	}

	period := leaderboard.PeriodAllTime
	if v := q.Get("period"); v != "" {
		p, err := leaderboard.ParsePeriod(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid period")
			return
		}
		period = p
	}

	limit := defaultLeaderboardLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	board, err := h.leaderboardService.GetLeaderboard(ctx, metric, period, userUUID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch leaderboard")
		return
	}

	respondWithJSON(w, http.StatusOK, board)
}
