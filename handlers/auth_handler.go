package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"runTrackerAPI/internal/user"
	"runTrackerAPI/middleware"
	"runTrackerAPI/services"
)

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Username == "" || len(req.Password) < 8 {
		respondWithError(w, http.StatusBadRequest, "email, username and a password of at least 8 characters are required")
		return
	}

	u, err := h.userService.Register(ctx, &req)
	if errors.Is(err, services.ErrConflict) {
		respondWithError(w, http.StatusConflict, "Email or username already taken")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := middleware.GenerateToken(u.UUID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondWithJSON(w, http.StatusCreated, user.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        u,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.userService.Login(ctx, &req)
	if errors.Is(err, services.ErrInvalidCredentials) {
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := middleware.GenerateToken(u.UUID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondWithJSON(w, http.StatusOK, user.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        u,
	})
}
