// package streakrepository contains the PostgreSQL implementation of the streak state store
package streakrepository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/codeclimb-2025.net/internal/core/ports/primary"
	"gitlab.com/codeclimb-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeclimb-2025.net/internal/domain"
)

var _ secondary.StreakRepository = (*StreakRepository)(nil)

// StreakRepository implements the StreakRepository interface with PostgreSQL.
// Each user's state lives in one row; Mutate serializes concurrent updates for
// the same user via a row lock while leaving other users untouched.
type StreakRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewStreakRepository creates a new PostgreSQL streak repository
func NewStreakRepository(db *sqlx.DB, logger primary.Logger) *StreakRepository {
	return &StreakRepository{
		db:     db,
		logger: logger,
	}
}

// Mutate runs fn against the user's state inside a single transaction holding
// a SELECT ... FOR UPDATE lock on the row. The row is created lazily with
// zero defaults on first activity.
func (r *StreakRepository) Mutate(ctx context.Context, userID string, fn func(state *domain.UserStreakState) error) (*domain.UserStreakState, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		r.logger.Error("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if the transaction is committed

	// Lazily create the row so the lock below always has a target.
	insertQuery := `
		INSERT INTO user_streaks (user_id, current_streak, longest_streak, total_xp, daily_xp, streak_multiplier, achievements)
		VALUES ($1, 0, 0, 0, 0, 1.0, '{}')
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, insertQuery, userID); err != nil {
		r.logger.Error("Failed to initialize streak state", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to initialize streak state: %w", err)
	}

	state, err := scanState(tx.QueryRowContext(ctx, selectQuery+" FOR UPDATE", userID))
	if err != nil {
		r.logger.Error("Failed to load streak state", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to load streak state: %w", err)
	}

	if err := fn(state); err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE user_streaks
		SET current_streak = $1, longest_streak = $2, last_activity_date = $3,
			total_xp = $4, daily_xp = $5, streak_multiplier = $6, achievements = $7
		WHERE user_id = $8
	`
	_, err = tx.ExecContext(
		ctx,
		updateQuery,
		state.CurrentStreak,
		state.LongestStreak,
		state.LastActivityDate,
		state.TotalXP,
		state.DailyXP,
		state.StreakMultiplier,
		pq.Array(state.Achievements),
		userID,
	)
	if err != nil {
		r.logger.Error("Failed to save streak state", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to save streak state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit transaction", "error", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return state, nil
}

// Get retrieves the stored state without mutation, nil when no row exists.
func (r *StreakRepository) Get(ctx context.Context, userID string) (*domain.UserStreakState, error) {
	state, err := scanState(r.db.QueryRowContext(ctx, selectQuery, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get streak state", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to get streak state: %w", err)
	}
	return state, nil
}

const selectQuery = `
	SELECT user_id, current_streak, longest_streak, last_activity_date,
		   total_xp, daily_xp, streak_multiplier, achievements
	FROM user_streaks
	WHERE user_id = $1
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanState(row rowScanner) (*domain.UserStreakState, error) {
	var state domain.UserStreakState
	var lastActivity sql.NullTime
	var achievements pq.StringArray

	err := row.Scan(
		&state.UserID,
		&state.CurrentStreak,
		&state.LongestStreak,
		&lastActivity,
		&state.TotalXP,
		&state.DailyXP,
		&state.StreakMultiplier,
		&achievements,
	)
	if err != nil {
		return nil, err
	}

	if lastActivity.Valid {
		t := lastActivity.Time
		state.LastActivityDate = &t
	}
	state.Achievements = []string(achievements)
	return &state, nil
}
