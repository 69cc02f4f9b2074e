package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"runTrackerAPI/internal/run"
	"runTrackerAPI/internal/stats"
	"runTrackerAPI/middleware"
	"runTrackerAPI/services"
)

type RunHandler struct {
	runService *services.RunService
}

func NewRunHandler(runService *services.RunService) *RunHandler {
	return &RunHandler{runService: runService}
}

func (h *RunHandler) CreateRun(w http.ResponseWriter, r *http.Request) {
	// Run creation also evaluates goals and writes achievements, give it a
	// little more room than plain reads.
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req run.CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		respondWithError(w, http.StatusBadRequest, "start_time and end_time are required")
		return
	}
	if !req.EndTime.After(req.StartTime) {
		respondWithError(w, http.StatusBadRequest, "end_time must be after start_time")
		return
	}
	if req.Duration < 0 || req.Distance < 0 {
		respondWithError(w, http.StatusBadRequest, "duration and distance must be non-negative")
		return
	}

	created, err := h.runService.Create(ctx, userUUID, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create run")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	page, limit := parsePagination(r)
	params := run.ListParams{
		Page:   page,
		Limit:  limit,
		SortBy: run.SortByDate,
		Order:  run.OrderDesc,
	}

	q := r.URL.Query()
	if v := q.Get("period"); v != "" {
		p, err := stats.ParsePeriod(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid period")
			return
		}
		params.Period = &p
	}
	if v := q.Get("min_distance"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid min_distance")
			return
		}
		params.MinDistance = &f
	}
	if v := q.Get("max_distance"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid max_distance")
			return
		}
		params.MaxDistance = &f
	}
	if v := q.Get("sort_by"); v != "" {
		sortBy, err := run.ParseSortBy(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid sort_by")
			return
		}
		params.SortBy = sortBy
	}
	if v := q.Get("order"); v != "" {
		order, err := run.ParseSortOrder(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid order")
			return
		}
		params.Order = order
	}

	resp, err := h.runService.List(ctx, userUUID, params)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch runs")
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *RunHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	runUUID, err := uuid.Parse(mux.Vars(r)["uuid"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid run id")
		return
	}

	found, err := h.runService.Get(ctx, userUUID, runUUID)
	if errors.Is(err, services.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "Run not found")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch run")
		return
	}

	respondWithJSON(w, http.StatusOK, found)
}

func (h *RunHandler) UpdateRun(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	runUUID, err := uuid.Parse(mux.Vars(r)["uuid"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid run id")
		return
	}

	var req run.UpdateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.runService.UpdateName(ctx, userUUID, runUUID, req.Name)
	if errors.Is(err, services.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "Run not found")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update run")
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *RunHandler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userUUID, ok := middleware.GetUserUUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	runUUID, err := uuid.Parse(mux.Vars(r)["uuid"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid run id")
		return
	}

	err = h.runService.Delete(ctx, userUUID, runUUID)
	if errors.Is(err, services.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "Run not found")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete run")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parsePagination(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}
