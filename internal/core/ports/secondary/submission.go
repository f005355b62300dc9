package secondary

import (
	"context"

	"gitlab.com/codeclimb-2025.net/internal/domain"
)

// SubmissionRepository persists finished submission summaries.
type SubmissionRepository interface {
	Save(ctx context.Context, record *domain.SubmissionRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.SubmissionRecord, error)
}
