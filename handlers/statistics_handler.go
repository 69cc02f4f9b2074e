package handlers

import (
	"context"
	"net/http"
	"time"

	"runTrackerAPI/internal/stats"
	"runTrackerAPI/middleware"
	"runTrackerAPI/services"
)

type StatisticsHandler struct {
	statisticsService *services.StatisticsService
}

func NewStatisticsHandler(statisticsService *services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	result, err := h.statisticsService.GetUserStatistics(ctx, userUUID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *StatisticsHandler) GetVisualization(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	p, err := stats.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid period")
		return
	}

	points, err := h.statisticsService.GetVisualizationData(ctx, userUUID, p)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to aggregate runs")
		return
	}

	respondWithJSON(w, http.StatusOK, points)
}
