package evaluations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codeclimb-2025.net/internal/adapter/logging"
	"gitlab.com/codeclimb-2025.net/internal/core/services/evaluation"
	"gitlab.com/codeclimb-2025.net/internal/domain"
	"gitlab.com/codeclimb-2025.net/internal/handlers"
)

type fakeEvalService struct {
	outcome *domain.SubmissionOutcome
	err     error
	lastReq evaluation.Request
}

func (f *fakeEvalService) Evaluate(_ context.Context, _ string, req evaluation.Request) (*domain.SubmissionOutcome, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func newTestRouter(svc *fakeEvalService) *mux.Router {
	router := mux.NewRouter()
	NewEvaluationHandler(svc, logging.NewZapLogger()).RegisterRoutes(router)
	return router
}

func doEvaluate(t *testing.T, router *mux.Router, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/evaluations", strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(handlers.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestEvaluateSuccess(t *testing.T) {
	svc := &fakeEvalService{outcome: &domain.SubmissionOutcome{
		Verdict:     domain.VerdictAccepted,
		TotalTests:  2,
		PassedTests: 2,
	}}
	router := newTestRouter(svc)

	body := `{
		"code": "print(1)",
		"language": "python",
		"testCases": [{"input":"1","expectedOutput":"1"}],
		"action": "submit"
	}`
	rec := doEvaluate(t, router, "user-1", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, evaluation.PolicySubmit, svc.lastReq.Policy)
	assert.Equal(t, "python", svc.lastReq.Language)

	var got domain.SubmissionOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.VerdictAccepted, got.Verdict)
	assert.Equal(t, 2, got.PassedTests)
}

func TestEvaluateRequiresIdentity(t *testing.T) {
	router := newTestRouter(&fakeEvalService{})

	rec := doEvaluate(t, router, "", `{"code":"x","language":"python","action":"run"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEvaluateMalformedBody(t *testing.T) {
	router := newTestRouter(&fakeEvalService{})

	rec := doEvaluate(t, router, "user-1", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateEmptyCode(t *testing.T) {
	svc := &fakeEvalService{}
	router := newTestRouter(svc)

	rec := doEvaluate(t, router, "user-1", `{"code":"","language":"python","action":"run"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.lastReq.Language)
}

func TestEvaluateErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &domain.ValidationError{Field: "action", Reason: "bad"}, http.StatusBadRequest},
		{"unsupported language", evaluation.ErrUnsupportedLanguage, http.StatusBadRequest},
		{"no test cases", evaluation.ErrNoTestCases, http.StatusBadRequest},
		{"rate limited", evaluation.ErrRateLimited, http.StatusTooManyRequests},
		{"engine failure", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&fakeEvalService{err: tc.err})

			rec := doEvaluate(t, router, "user-1", `{"code":"x","language":"python","action":"run"}`)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
