package evaluation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codeclimb-2025.net/internal/adapter/logging"
	"gitlab.com/codeclimb-2025.net/internal/domain"
)

// fakeExecutor replays scripted engine outputs in submission order.
type fakeExecutor struct {
	mu        sync.Mutex
	submitted []domain.ExecutionRequest
	outputs   []domain.ExecutionOutput
	submitErr error
	awaitErr  error
}

func (f *fakeExecutor) Submit(_ context.Context, req domain.ExecutionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitted = append(f.submitted, req)
	return fmt.Sprintf("tok-%d", len(f.submitted)), nil
}

func (f *fakeExecutor) AwaitResult(_ context.Context, token string, _ int) (*domain.ExecutionOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.awaitErr != nil {
		return nil, f.awaitErr
	}
	var idx int
	fmt.Sscanf(token, "tok-%d", &idx)
	out := f.outputs[idx-1]
	return &out, nil
}

func (f *fakeExecutor) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted)
}

type fakeLimiter struct {
	allowed bool
	calls   int
}

func (f *fakeLimiter) Allow(context.Context, string) (bool, error) {
	f.calls++
	return f.allowed, nil
}

type memSubmissionRepo struct {
	mu    sync.Mutex
	saved []*domain.SubmissionRecord
}

func (r *memSubmissionRepo) Save(_ context.Context, rec *domain.SubmissionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, rec)
	return nil
}

func (r *memSubmissionRepo) ListByUser(context.Context, string, int) ([]*domain.SubmissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved, nil
}

func acceptedOutput(stdout string) domain.ExecutionOutput {
	return domain.ExecutionOutput{
		StatusID:   domain.StatusAccepted,
		StatusDesc: "Accepted",
		Stdout:     stdout,
		TimeSec:    "0.01",
		MemoryKB:   1024,
	}
}

func newTestService(executor *fakeExecutor) (*Service, *fakeLimiter, *memSubmissionRepo) {
	limiter := &fakeLimiter{allowed: true}
	repo := &memSubmissionRepo{}
	svc := NewService(executor, repo, limiter, logging.NewZapLogger(), 10)
	return svc, limiter, repo
}

func TestRunPolicyCoversAllVisibleTests(t *testing.T) {
	executor := &fakeExecutor{outputs: []domain.ExecutionOutput{
		acceptedOutput("wrong"),
		acceptedOutput("2"),
	}}
	svc, _, _ := newTestService(executor)

	outcome, err := svc.Evaluate(context.Background(), "user-1", Request{
		Code:     "print(x)",
		Language: domain.LanguagePython,
		TestCases: []domain.TestCase{
			{Input: "1", ExpectedOutput: "1"},
			{Input: "2", ExpectedOutput: "2"},
			{Input: "3", ExpectedOutput: "3", IsHidden: true},
		},
		Policy: PolicyRun,
	})

	require.NoError(t, err)
	// Hidden test case is excluded, failures do not stop the run.
	assert.Len(t, outcome.Results, 2)
	assert.Equal(t, 2, outcome.TotalTests)
	assert.Equal(t, 1, outcome.PassedTests)
	assert.Equal(t, domain.VerdictWrongAnswer, outcome.Verdict)
	assert.Equal(t, 2, executor.submitCount())
}

func TestSubmitPolicyStopsAtFirstFailure(t *testing.T) {
	executor := &fakeExecutor{outputs: []domain.ExecutionOutput{
		acceptedOutput("1"),
		acceptedOutput("wrong"),
		acceptedOutput("3"),
	}}
	svc, _, repo := newTestService(executor)

	outcome, err := svc.Evaluate(context.Background(), "user-1", Request{
		Code:     "print(x)",
		Language: domain.LanguagePython,
		TestCases: []domain.TestCase{
			{Input: "1", ExpectedOutput: "1"},
			{Input: "2", ExpectedOutput: "2", IsHidden: true},
			{Input: "3", ExpectedOutput: "3", IsHidden: true},
		},
		Policy: PolicySubmit,
	})

	require.NoError(t, err)
	// Results are a prefix truncated at the first failure; the third test
	// never reaches the engine.
	assert.Len(t, outcome.Results, 2)
	assert.Equal(t, 3, outcome.TotalTests)
	assert.Equal(t, 1, outcome.PassedTests)
	assert.Equal(t, domain.VerdictWrongAnswer, outcome.Verdict)
	assert.Equal(t, 2, executor.submitCount())

	require.Len(t, repo.saved, 1)
	assert.Equal(t, domain.VerdictWrongAnswer, repo.saved[0].Verdict)
	assert.Equal(t, "user-1", repo.saved[0].UserID)
}

func TestSubmitPolicyAllPass(t *testing.T) {
	executor := &fakeExecutor{outputs: []domain.ExecutionOutput{
		{StatusID: domain.StatusAccepted, Stdout: "1", TimeSec: "0.2", MemoryKB: 2048},
		{StatusID: domain.StatusAccepted, Stdout: "2", TimeSec: "0.1", MemoryKB: 1024},
	}}
	svc, _, repo := newTestService(executor)

	outcome, err := svc.Evaluate(context.Background(), "user-1", Request{
		Code:     "print(x)",
		Language: domain.LanguageCpp,
		TestCases: []domain.TestCase{
			{Input: "1", ExpectedOutput: "1"},
			{Input: "2", ExpectedOutput: "2"},
		},
		Policy: PolicySubmit,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.VerdictAccepted, outcome.Verdict)
	assert.Equal(t, 2, outcome.PassedTests)
	assert.InDelta(t, 200.0, outcome.MaxTimeMs, 0.001)
	assert.Equal(t, int64(2048*1024), outcome.MaxMemoryBytes)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, domain.VerdictAccepted, repo.saved[0].Verdict)
}

func TestRunPolicyDoesNotPersist(t *testing.T) {
	executor := &fakeExecutor{outputs: []domain.ExecutionOutput{acceptedOutput("1")}}
	svc, _, repo := newTestService(executor)

	_, err := svc.Evaluate(context.Background(), "user-1", Request{
		Code:      "print(x)",
		Language:  domain.LanguagePython,
		TestCases: []domain.TestCase{{Input: "1", ExpectedOutput: "1"}},
		Policy:    PolicyRun,
	})

	require.NoError(t, err)
	assert.Empty(t, repo.saved)
}

func TestUnsupportedLanguageFailsBeforeDispatch(t *testing.T) {
	executor := &fakeExecutor{}
	svc, _, _ := newTestService(executor)

	_, err := svc.Evaluate(context.Background(), "user-1", Request{
		Code:      "print(x)",
		Language:  "cobol",
		TestCases: []domain.TestCase{{Input: "1", ExpectedOutput: "1"}},
		Policy:    PolicyRun,
	})

	require.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.Zero(t, executor.submitCount())
}

func TestInvalidPolicyRejected(t *testing.T) {
	executor := &fakeExecutor{}
	svc, _, _ := newTestService(executor)

	_, err := svc.Evaluate(context.Background(), "user-1", Request{
		Code:      "print(x)",
		Language:  domain.LanguagePython,
		TestCases: []domain.TestCase{{Input: "1", ExpectedOutput: "1"}},
		Policy:    Policy("compile"),
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "action", vErr.Field)
}

func TestAllHiddenTestCasesRejected(t *testing.T) {
	executor := &fakeExecutor{}
	svc, _, _ := newTestService(executor)

	_, err := svc.Evaluate(context.Background(), "user-1", Request{
		Code:      "print(x)",
		Language:  domain.LanguagePython,
		TestCases: []domain.TestCase{{Input: "1", ExpectedOutput: "1", IsHidden: true}},
		Policy:    PolicyRun,
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, executor.submitCount())
}

func TestRateLimitEnforcedBeforeDispatch(t *testing.T) {
	executor := &fakeExecutor{outputs: []domain.ExecutionOutput{acceptedOutput("1")}}
	svc, limiter, _ := newTestService(executor)
	limiter.allowed = false

	_, err := svc.Evaluate(context.Background(), "user-1", Request{
		Code:      "print(x)",
		Language:  domain.LanguagePython,
		TestCases: []domain.TestCase{{Input: "1", ExpectedOutput: "1"}},
		Policy:    PolicyRun,
	})

	require.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 1, limiter.calls)
	assert.Zero(t, executor.submitCount())
}

func TestDispatchFailureCapturedPerTest(t *testing.T) {
	executor := &fakeExecutor{submitErr: errors.New("engine unreachable")}
	svc, _, _ := newTestService(executor)

	outcome, err := svc.Evaluate(context.Background(), "user-1", Request{
		Code:      "print(x)",
		Language:  domain.LanguagePython,
		TestCases: []domain.TestCase{{Input: "1", ExpectedOutput: "1"}},
		Policy:    PolicyRun,
	})

	require.NoError(t, err)
	require.Len(t, outcome.Results, 1)
	assert.False(t, outcome.Results[0].Passed)
	assert.Empty(t, outcome.Results[0].ActualOutput)
	assert.Contains(t, outcome.Results[0].Error, "engine unreachable")
	assert.Equal(t, domain.VerdictRuntimeError, outcome.Verdict)
}

func TestCancellationAbortsEvaluation(t *testing.T) {
	executor := &fakeExecutor{submitErr: context.Canceled}
	svc, _, repo := newTestService(executor)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := svc.Evaluate(ctx, "user-1", Request{
		Code:      "print(x)",
		Language:  domain.LanguagePython,
		TestCases: []domain.TestCase{{Input: "1", ExpectedOutput: "1"}},
		Policy:    PolicySubmit,
	})

	// No partial results and no verdict, nothing persisted.
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, outcome)
	assert.Empty(t, repo.saved)
}

func TestDeadlineDuringPollAbortsEvaluation(t *testing.T) {
	executor := &fakeExecutor{
		outputs:  []domain.ExecutionOutput{acceptedOutput("1")},
		awaitErr: fmt.Errorf("failed to fetch result: %w", context.DeadlineExceeded),
	}
	svc, _, _ := newTestService(executor)

	outcome, err := svc.Evaluate(context.Background(), "user-1", Request{
		Code:      "print(x)",
		Language:  domain.LanguagePython,
		TestCases: []domain.TestCase{{Input: "1", ExpectedOutput: "1"}},
		Policy:    PolicyRun,
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, outcome)
}

func TestPollTimeoutCapturedPerTest(t *testing.T) {
	executor := &fakeExecutor{
		outputs:  []domain.ExecutionOutput{acceptedOutput("1")},
		awaitErr: errors.New("execution result not ready after 10 attempts"),
	}
	svc, _, _ := newTestService(executor)

	outcome, err := svc.Evaluate(context.Background(), "user-1", Request{
		Code:      "print(x)",
		Language:  domain.LanguagePython,
		TestCases: []domain.TestCase{{Input: "1", ExpectedOutput: "1"}},
		Policy:    PolicyRun,
	})

	require.NoError(t, err)
	require.Len(t, outcome.Results, 1)
	assert.False(t, outcome.Results[0].Passed)
	assert.Contains(t, outcome.Results[0].Error, "not ready")
}
