package domain

import "fmt"

const (
	// MaxTestCaseTextLen bounds both the input and the expected output of a single test case.
	MaxTestCaseTextLen = 10000

	// MinTestCases and MaxTestCases bound the size of a test-case collection.
	MinTestCases = 1
	MaxTestCases = 100
)

// TestCase represents a test case for code execution
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	IsHidden       bool   `json:"isHidden"`
}

// ValidationError reports a rejected field before any external call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateTestCase checks the length bounds of a single test case.
func ValidateTestCase(tc TestCase) error {
	if len(tc.Input) > MaxTestCaseTextLen {
		return &ValidationError{Field: "input", Reason: fmt.Sprintf("exceeds %d characters", MaxTestCaseTextLen)}
	}
	if len(tc.ExpectedOutput) > MaxTestCaseTextLen {
		return &ValidationError{Field: "expectedOutput", Reason: fmt.Sprintf("exceeds %d characters", MaxTestCaseTextLen)}
	}
	return nil
}

// ValidateTestCases checks a collection: 1-100 entries and at least one visible test case.
func ValidateTestCases(tcs []TestCase) error {
	if len(tcs) < MinTestCases {
		return &ValidationError{Field: "testCases", Reason: "at least one test case is required"}
	}
	if len(tcs) > MaxTestCases {
		return &ValidationError{Field: "testCases", Reason: fmt.Sprintf("at most %d test cases are allowed", MaxTestCases)}
	}
	visible := false
	for i, tc := range tcs {
		if err := ValidateTestCase(tc); err != nil {
			return &ValidationError{Field: fmt.Sprintf("testCases[%d]", i), Reason: err.Error()}
		}
		if !tc.IsHidden {
			visible = true
		}
	}
	if !visible {
		return &ValidationError{Field: "testCases", Reason: "at least one non-hidden test case is required"}
	}
	return nil
}
