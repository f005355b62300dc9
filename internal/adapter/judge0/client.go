// package judge0 is the HTTP adapter for the remote code-execution engine.
package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitlab.com/codeclimb-2025.net/internal/config"
	"gitlab.com/codeclimb-2025.net/internal/core/ports/primary"
	"gitlab.com/codeclimb-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeclimb-2025.net/internal/domain"
)

var (
	// ErrDispatch means the engine did not accept the submission.
	ErrDispatch = errors.New("execution engine rejected submission")

	// ErrPollTimeout means no terminal result arrived within the attempt budget.
	// It is surfaced to the caller as a per-test error, never retried further.
	ErrPollTimeout = errors.New("execution result not ready")
)

var _ secondary.CodeExecutor = (*Client)(nil)

// Client talks to the engine's submit/poll REST contract. Calls are
// independent and safe to run concurrently; there is no shared mutable state.
type Client struct {
	baseUrl      string
	apiKey       string
	pollInterval time.Duration
	httpClient   *http.Client
	logger       primary.Logger
}

// NewClient creates an engine client from configuration.
func NewClient(cfg *config.JudgeConfig, logger primary.Logger) *Client {
	return &Client{
		baseUrl:      cfg.BaseUrl,
		apiKey:       cfg.ApiKey,
		pollInterval: cfg.PollInterval,
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		logger:       logger,
	}
}

type submitRequest struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
}

type submitResponse struct {
	Token string `json:"token"`
}

type resultResponse struct {
	Status struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output"`
	Time          *string `json:"time"`
	Memory        *int64  `json:"memory"`
}

// Submit dispatches one execution unit and returns the engine's opaque token.
// The token is never inspected, only round-tripped back on polls.
func (c *Client) Submit(ctx context.Context, req domain.ExecutionRequest) (string, error) {
	body, err := json.Marshal(submitRequest{
		SourceCode:     req.SourceCode,
		LanguageID:     req.LanguageID,
		Stdin:          req.Stdin,
		ExpectedOutput: req.ExpectedOutput,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal submission: %w", err)
	}

	url := c.baseUrl + "/submissions?base64_encoded=false&wait=false"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build submit request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("Engine rejected submission", "status", resp.StatusCode, "body", string(payload))
		return "", fmt.Errorf("%w: engine returned status %d", ErrDispatch, resp.StatusCode)
	}

	var sr submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("%w: failed to decode accept response: %v", ErrDispatch, err)
	}
	if sr.Token == "" {
		return "", fmt.Errorf("%w: accept response carried no token", ErrDispatch)
	}

	c.logger.Debug("Submission dispatched", "token", sr.Token)
	return sr.Token, nil
}

// AwaitResult polls the engine once per interval until the result is terminal
// or maxAttempts is reached. The wait between attempts is cancellable.
func (c *Client) AwaitResult(ctx context.Context, token string, maxAttempts int) (*domain.ExecutionOutput, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(c.pollInterval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		out, err := c.fetchResult(ctx, token)
		if err != nil {
			return nil, err
		}
		if out.Terminal() {
			return out, nil
		}
		c.logger.Debug("Result not terminal yet", "token", token, "status", out.StatusDesc, "attempt", attempt+1)
	}

	return nil, fmt.Errorf("%w after %d attempts", ErrPollTimeout, maxAttempts)
}

func (c *Client) fetchResult(ctx context.Context, token string) (*domain.ExecutionOutput, error) {
	url := fmt.Sprintf("%s/submissions/%s?base64_encoded=false", c.baseUrl, token)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build result request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch result: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("result fetch returned status %d", resp.StatusCode)
	}

	var rr resultResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("failed to decode result response: %w", err)
	}

	out := &domain.ExecutionOutput{
		StatusID:   rr.Status.ID,
		StatusDesc: rr.Status.Description,
	}
	if rr.Stdout != nil {
		out.Stdout = *rr.Stdout
	}
	if rr.Stderr != nil {
		out.Stderr = *rr.Stderr
	}
	if rr.CompileOutput != nil {
		out.CompileOutput = *rr.CompileOutput
	}
	if rr.Time != nil {
		out.TimeSec = *rr.Time
	}
	if rr.Memory != nil {
		out.MemoryKB = *rr.Memory
	}
	return out, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Auth-Token", c.apiKey)
	}
}
