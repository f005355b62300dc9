package secondary

import (
	"context"

	"gitlab.com/codeclimb-2025.net/internal/domain"
)

// StreakRepository stores per-user streak state. Mutate must run the whole
// read-modify-write as one serialized transaction per user key: concurrent
// calls for the same user commit in some serial order, different users do
// not block each other.
type StreakRepository interface {
	// Mutate loads the user's state (creating zeroed state on first activity),
	// applies fn, and persists the result atomically.
	Mutate(ctx context.Context, userID string, fn func(state *domain.UserStreakState) error) (*domain.UserStreakState, error)

	// Get returns the stored state without mutation, or nil when the user has
	// no recorded activity.
	Get(ctx context.Context, userID string) (*domain.UserStreakState, error)
}
