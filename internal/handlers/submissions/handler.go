package submissions

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codeclimb-2025.net/internal/core/ports/primary"
	"gitlab.com/codeclimb-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeclimb-2025.net/internal/domain"
	"gitlab.com/codeclimb-2025.net/internal/handlers"
	"gitlab.com/codeclimb-2025.net/internal/handlers/response"
)

const (
	defaultListLimit = 50
	summaryListLimit = 1000
)

// SubmissionHandler serves a user's submission history and summary statistics
type SubmissionHandler struct {
	submissions secondary.SubmissionRepository
	logger      primary.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissions secondary.SubmissionRepository, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		logger:      logger,
	}
}

// RegisterRoutes registers the routes for SubmissionHandler under the API subrouter
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/submissions/summary", h.Summary).Methods("GET")
	router.HandleFunc("/submissions", h.List).Methods("GET")
}

// List returns the caller's recent submissions
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	records, err := h.submissions.ListByUser(r.Context(), userID, defaultListLimit)
	if err != nil {
		h.logger.Error("Failed to list submissions", "userId", userID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to list submissions", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, records)
}

// Summary returns aggregate statistics over the caller's submission history
func (h *SubmissionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	records, err := h.submissions.ListByUser(r.Context(), userID, summaryListLimit)
	if err != nil {
		h.logger.Error("Failed to load submissions for summary", "userId", userID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to build summary", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, domain.SummarizeSubmissions(records))
}
