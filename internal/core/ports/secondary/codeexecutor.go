package secondary

import (
	"context"

	"gitlab.com/codeclimb-2025.net/internal/domain"
)

// CodeExecutor wraps the remote execution engine's submit/poll contract.
type CodeExecutor interface {
	// Submit dispatches one execution unit and returns the engine's opaque token.
	Submit(ctx context.Context, req domain.ExecutionRequest) (string, error)

	// AwaitResult polls the engine for a terminal result, at most maxAttempts times.
	AwaitResult(ctx context.Context, token string, maxAttempts int) (*domain.ExecutionOutput, error)
}
