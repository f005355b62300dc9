package streaks

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codeclimb-2025.net/internal/core/ports/primary"
	"gitlab.com/codeclimb-2025.net/internal/core/services/streak"
	"gitlab.com/codeclimb-2025.net/internal/handlers"
	"gitlab.com/codeclimb-2025.net/internal/handlers/response"
)

// ActivityRequest is the streak update endpoint's input shape.
type ActivityRequest struct {
	ActivityType string `json:"activityType"`
	Points       *int   `json:"points,omitempty"`
}

// StreakHandler handles streak/XP API requests
type StreakHandler struct {
	streakService streak.IStreakService
	logger        primary.Logger
}

// NewStreakHandler creates a new streak handler
func NewStreakHandler(streakService streak.IStreakService, logger primary.Logger) *StreakHandler {
	return &StreakHandler{
		streakService: streakService,
		logger:        logger,
	}
}

// RegisterRoutes registers the routes for StreakHandler under the API subrouter
func (h *StreakHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/streaks/activity", h.RecordActivity).Methods("POST")
	router.HandleFunc("/streaks", h.GetStatus).Methods("GET")
}

// RecordActivity applies one qualifying activity to the caller's streak state
func (h *StreakHandler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request body", StatusCode: http.StatusBadRequest})
		return
	}

	result, err := h.streakService.RecordActivity(r.Context(), userID, req.ActivityType, req.Points)
	if err != nil {
		if errors.Is(err, streak.ErrUnknownActivity) {
			response.WriteError(w, response.ErrorMessage{Message: "invalid activityType: " + req.ActivityType, StatusCode: http.StatusBadRequest})
			return
		}
		h.logger.Error("Failed to record activity", "userId", userID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to record activity", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, result)
}

// GetStatus returns the caller's streak state, corrected for inactivity
func (h *StreakHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	state, err := h.streakService.GetStatus(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get streak status", "userId", userID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to get streak status", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, state)
}
