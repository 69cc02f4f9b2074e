package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"runTrackerAPI/internal/goal"
	"runTrackerAPI/middleware"
	"runTrackerAPI/services"
)

type GoalHandler struct {
	goalService *services.GoalService
}

func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req goal.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goalType, err := goal.ParseType(req.GoalType)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid goal_type")
		return
	}
	timePeriod, err := goal.ParseTimePeriod(req.TimePeriod)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid time_period")
		return
	}
	if req.Target <= 0 {
		respondWithError(w, http.StatusBadRequest, "target must be greater than zero")
		return
	}

	created, err := h.goalService.Create(ctx, userUUID, goalType, req.Target, timePeriod)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	page, limit := parsePagination(r)
	resp, err := h.goalService.List(ctx, userUUID, page, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch goals")
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	goalUUID, err := uuid.Parse(mux.Vars(r)["uuid"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid goal id")
		return
	}

	found, err := h.goalService.Get(ctx, userUUID, goalUUID)
	if errors.Is(err, services.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "Goal not found")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch goal")
		return
	}

	respondWithJSON(w, http.StatusOK, found)
}

func (h *GoalHandler) DeactivateGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	goalUUID, err := uuid.Parse(mux.Vars(r)["uuid"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid goal id")
		return
	}

	updated, err := h.goalService.Deactivate(ctx, userUUID, goalUUID)
	if errors.Is(err, services.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "Goal not found")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to deactivate goal")
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	goalUUID, err := uuid.Parse(mux.Vars(r)["uuid"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid goal id")
		return
	}

	err = h.goalService.Delete(ctx, userUUID, goalUUID)
	if errors.Is(err, services.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "Goal not found")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
