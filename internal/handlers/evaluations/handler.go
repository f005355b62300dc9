package evaluations

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codeclimb-2025.net/internal/core/ports/primary"
	"gitlab.com/codeclimb-2025.net/internal/core/services/evaluation"
	"gitlab.com/codeclimb-2025.net/internal/domain"
	"gitlab.com/codeclimb-2025.net/internal/handlers"
	"gitlab.com/codeclimb-2025.net/internal/handlers/response"
)

// EvaluationHandler handles submission evaluation requests
type EvaluationHandler struct {
	evalService evaluation.IEvaluationService
	logger      primary.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evalService evaluation.IEvaluationService, logger primary.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evalService: evalService,
		logger:      logger,
	}
}

// RegisterRoutes registers the routes for EvaluationHandler under the API subrouter
func (h *EvaluationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/evaluations", h.Evaluate).Methods("POST")
}

// Evaluate handles evaluate requests for both run and submit actions
func (h *EvaluationHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request body", StatusCode: http.StatusBadRequest})
		return
	}

	if req.Code == "" {
		response.WriteError(w, response.ErrorMessage{Message: "invalid code: must not be empty", StatusCode: http.StatusBadRequest})
		return
	}

	outcome, err := h.evalService.Evaluate(r.Context(), userID, evaluation.Request{
		Code:      req.Code,
		Language:  req.Language,
		TestCases: req.TestCases,
		Policy:    evaluation.Policy(req.Action),
	})
	if err != nil {
		h.writeEvaluateError(w, err)
		return
	}

	response.WriteSuccess(w, outcome)
}

func (h *EvaluationHandler) writeEvaluateError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, evaluation.ErrUnsupportedLanguage),
		errors.Is(err, evaluation.ErrNoTestCases):
		response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadRequest})
	case errors.Is(err, evaluation.ErrRateLimited):
		response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusTooManyRequests})
	default:
		h.logger.Error("Failed to evaluate submission", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to evaluate submission", StatusCode: http.StatusInternalServerError})
	}
}
