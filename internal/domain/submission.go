package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionOutcome is the aggregated result of evaluating one submission
// against its selected test cases. Owned by the caller after return.
type SubmissionOutcome struct {
	Verdict        Verdict      `json:"verdict"`
	Results        []TestResult `json:"results"`
	TotalTests     int          `json:"totalTests"`
	PassedTests    int          `json:"passedTests"`
	MaxTimeMs      float64      `json:"executionTime"`
	MaxMemoryBytes int64        `json:"memoryUsage"`
}

// SubmissionRecord is a persisted summary of a finished final submission.
type SubmissionRecord struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"userId"`
	Language       string    `json:"language"`
	Verdict        Verdict   `json:"verdict"`
	TotalTests     int       `json:"totalTests"`
	PassedTests    int       `json:"passedTests"`
	MaxTimeMs      float64   `json:"executionTime"`
	MaxMemoryBytes int64     `json:"memoryUsage"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewSubmissionRecord creates a record from a finished outcome.
func NewSubmissionRecord(userID, language string, outcome *SubmissionOutcome) *SubmissionRecord {
	return &SubmissionRecord{
		ID:             uuid.New(),
		UserID:         userID,
		Language:       language,
		Verdict:        outcome.Verdict,
		TotalTests:     outcome.TotalTests,
		PassedTests:    outcome.PassedTests,
		MaxTimeMs:      outcome.MaxTimeMs,
		MaxMemoryBytes: outcome.MaxMemoryBytes,
		CreatedAt:      time.Now(),
	}
}
