package secondary

import "context"

// RateLimiter applies the per-caller evaluation request budget. Allow must be
// checked before any test case is dispatched to the engine.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
