package evaluation

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/codeclimb-2025.net/internal/core/ports/primary"
	"gitlab.com/codeclimb-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeclimb-2025.net/internal/domain"
)

// Policy selects which test cases run and how failures are handled.
type Policy string

const (
	// PolicyRun evaluates only non-hidden test cases and continues past failures.
	PolicyRun Policy = "run"

	// PolicySubmit evaluates the full set and stops at the first failure.
	PolicySubmit Policy = "submit"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNoTestCases         = errors.New("no test cases selected")
	ErrRateLimited         = errors.New("evaluation request budget exhausted")
)

var _ IEvaluationService = (*Service)(nil)

// IEvaluationService is the verdict aggregation contract.
type IEvaluationService interface {
	Evaluate(ctx context.Context, userID string, req Request) (*domain.SubmissionOutcome, error)
}

// Request is one evaluation of a user's source against a set of test cases.
type Request struct {
	Code      string
	Language  string
	TestCases []domain.TestCase
	Policy    Policy
}

// Service runs test cases through the execution client and reduces the
// per-test results into a single verdict.
type Service struct {
	executor        secondary.CodeExecutor
	submissions     secondary.SubmissionRepository
	limiter         secondary.RateLimiter
	logger          primary.Logger
	maxPollAttempts int
}

// NewService creates a new evaluation service
func NewService(
	executor secondary.CodeExecutor,
	submissions secondary.SubmissionRepository,
	limiter secondary.RateLimiter,
	logger primary.Logger,
	maxPollAttempts int,
) *Service {
	return &Service{
		executor:        executor,
		submissions:     submissions,
		limiter:         limiter,
		logger:          logger,
		maxPollAttempts: maxPollAttempts,
	}
}

// Evaluate validates the request, applies the request budget, then executes
// the selected test cases in order under the given policy. Client failures
// for a single test become failed results, so the evaluation produces a
// verdict unless validation or the budget rejects it up front. Context
// cancellation is the exception: it aborts the whole evaluation with an
// error and no partial results.
func (s *Service) Evaluate(ctx context.Context, userID string, req Request) (*domain.SubmissionOutcome, error) {
	if req.Policy != PolicyRun && req.Policy != PolicySubmit {
		return nil, &domain.ValidationError{Field: "action", Reason: "must be \"run\" or \"submit\""}
	}

	languageID, ok := domain.EngineLanguageID(req.Language)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, req.Language)
	}

	if err := domain.ValidateTestCases(req.TestCases); err != nil {
		return nil, err
	}

	selected := selectTestCases(req.TestCases, req.Policy)
	if len(selected) == 0 {
		return nil, ErrNoTestCases
	}

	allowed, err := s.limiter.Allow(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check request budget: %w", err)
	}
	if !allowed {
		return nil, ErrRateLimited
	}

	s.logger.Info("Starting evaluation",
		"userId", userID,
		"language", req.Language,
		"policy", req.Policy,
		"testCases", len(selected))

	results := make([]domain.TestResult, 0, len(selected))
	for i, tc := range selected {
		result, err := s.runTestCase(ctx, req.Code, languageID, tc)
		if err != nil {
			return nil, err
		}
		results = append(results, result)

		if req.Policy == PolicySubmit && !result.Passed {
			s.logger.Debug("Stopping at first failure", "testCase", i)
			break
		}
	}

	outcome := buildOutcome(results, len(selected))
	s.logger.Info("Evaluation finished",
		"userId", userID,
		"verdict", outcome.Verdict,
		"passed", outcome.PassedTests,
		"total", outcome.TotalTests)

	if req.Policy == PolicySubmit {
		record := domain.NewSubmissionRecord(userID, req.Language, outcome)
		if err := s.submissions.Save(ctx, record); err != nil {
			// The verdict still stands; losing the history row is not fatal.
			s.logger.Error("Failed to persist submission", "userId", userID, "error", err)
		}
	}

	return outcome, nil
}

// runTestCase executes one test case end to end. Dispatch and poll-timeout
// failures are captured as failed results instead of aborting the evaluation;
// a non-nil error is returned only for context cancellation.
func (s *Service) runTestCase(ctx context.Context, code string, languageID int, tc domain.TestCase) (domain.TestResult, error) {
	token, err := s.executor.Submit(ctx, domain.ExecutionRequest{
		SourceCode:     code,
		LanguageID:     languageID,
		Stdin:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
	})
	if err != nil {
		if cErr := cancellation(ctx, err); cErr != nil {
			return domain.TestResult{}, cErr
		}
		s.logger.Warn("Test case dispatch failed", "error", err)
		return domain.FailedTestResult(tc, err), nil
	}

	out, err := s.executor.AwaitResult(ctx, token, s.maxPollAttempts)
	if err != nil {
		if cErr := cancellation(ctx, err); cErr != nil {
			return domain.TestResult{}, cErr
		}
		s.logger.Warn("Test case result not obtained", "token", token, "error", err)
		return domain.FailedTestResult(tc, err), nil
	}

	return domain.BuildTestResult(tc, *out), nil
}

// cancellation reports the context error behind a failed engine call, nil when
// the failure is the engine's own. The ctx check also catches adapters that
// stringify the cause instead of wrapping it.
func cancellation(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return ctx.Err()
}

func selectTestCases(tcs []domain.TestCase, policy Policy) []domain.TestCase {
	if policy == PolicySubmit {
		return tcs
	}
	selected := make([]domain.TestCase, 0, len(tcs))
	for _, tc := range tcs {
		if !tc.IsHidden {
			selected = append(selected, tc)
		}
	}
	return selected
}

func buildOutcome(results []domain.TestResult, totalTests int) *domain.SubmissionOutcome {
	outcome := &domain.SubmissionOutcome{
		Verdict:    domain.ReduceVerdict(results),
		Results:    results,
		TotalTests: totalTests,
	}
	for _, r := range results {
		if r.Passed {
			outcome.PassedTests++
		}
		if r.ExecutionTimeMs > outcome.MaxTimeMs {
			outcome.MaxTimeMs = r.ExecutionTimeMs
		}
		if r.MemoryBytes > outcome.MaxMemoryBytes {
			outcome.MaxMemoryBytes = r.MemoryBytes
		}
	}
	return outcome
}
