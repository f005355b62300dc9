// package submissionrepository contains the PostgreSQL store for finished submissions
package submissionrepository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codeclimb-2025.net/internal/core/ports/primary"
	"gitlab.com/codeclimb-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeclimb-2025.net/internal/domain"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository implements the SubmissionRepository interface with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

// Save persists a finished submission summary.
func (r *SubmissionRepository) Save(ctx context.Context, record *domain.SubmissionRecord) error {
	query := `
		INSERT INTO submissions (
			id, user_id, language, verdict, total_tests, passed_tests,
			max_time_ms, max_memory_bytes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		record.ID,
		record.UserID,
		record.Language,
		record.Verdict,
		record.TotalTests,
		record.PassedTests,
		record.MaxTimeMs,
		record.MaxMemoryBytes,
		record.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save submission", "submissionId", record.ID, "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's submissions, newest first.
func (r *SubmissionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.SubmissionRecord, error) {
	query := `
		SELECT id, user_id, language, verdict, total_tests, passed_tests,
			   max_time_ms, max_memory_bytes, created_at
		FROM submissions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("Failed to list submissions", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.SubmissionRecord, 0)
	for rows.Next() {
		var rec domain.SubmissionRecord
		err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Language,
			&rec.Verdict,
			&rec.TotalTests,
			&rec.PassedTests,
			&rec.MaxTimeMs,
			&rec.MaxMemoryBytes,
			&rec.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan submission row", "error", err)
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating submission rows", "error", err)
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	return records, nil
}
