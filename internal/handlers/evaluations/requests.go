package evaluations

import "gitlab.com/codeclimb-2025.net/internal/domain"

// EvaluateRequest is the evaluate endpoint's input shape.
type EvaluateRequest struct {
	Code      string            `json:"code"`
	Language  string            `json:"language"`
	TestCases []domain.TestCase `json:"testCases"`
	Action    string            `json:"action"`
}
