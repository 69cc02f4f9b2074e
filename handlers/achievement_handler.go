package handlers

import (
	"context"
	"net/http"
	"time"

	"runTrackerAPI/middleware"
	"runTrackerAPI/services"
)

type AchievementHandler struct {
	achievementService *services.AchievementService
}

func NewAchievementHandler(achievementService *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

func (h *AchievementHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	page, limit := parsePagination(r)
	resp, err := h.achievementService.List(ctx, userUUID, page, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch achievements")
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
