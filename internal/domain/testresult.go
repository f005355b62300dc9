package domain

import (
	"strconv"
	"strings"
)

// TestResult represents the outcome of a single test case execution.
// It is created once and never mutated afterwards.
type TestResult struct {
	Passed          bool    `json:"passed"`
	Input           string  `json:"input"`
	ExpectedOutput  string  `json:"expectedOutput"`
	ActualOutput    string  `json:"actualOutput"`
	ExecutionTimeMs float64 `json:"executionTime"`
	MemoryBytes     int64   `json:"memoryUsage"`
	Error           string  `json:"error,omitempty"`
}

// ExecutionRequest is one (source, stdin, expected output) unit sent to the engine.
type ExecutionRequest struct {
	SourceCode     string
	LanguageID     int
	Stdin          string
	ExpectedOutput string
}

// ExecutionOutput is the terminal response of the execution engine for one run,
// passed through without interpretation. Time is in seconds encoded as a decimal
// string, memory in kilobytes, both as the engine reports them.
type ExecutionOutput struct {
	StatusID      int
	StatusDesc    string
	Stdout        string
	Stderr        string
	CompileOutput string
	TimeSec       string
	MemoryKB      int64
}

// Terminal reports whether the engine considers this run finished.
// Status ids 1 and 2 mean queued and processing.
func (o ExecutionOutput) Terminal() bool {
	return o.StatusID > 2
}

// Engine status ids the aggregation logic cares about. Anything above
// StatusAccepted that is not a time limit is treated as an execution error.
const (
	StatusAccepted          = 3
	StatusWrongAnswer       = 4
	StatusTimeLimitExceeded = 5
	StatusCompilationError  = 6
)

// BuildTestResult turns raw engine output into a TestResult, converting the
// engine's units (seconds, kilobytes) to milliseconds and bytes.
func BuildTestResult(tc TestCase, out ExecutionOutput) TestResult {
	res := TestResult{
		Input:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
		ActualOutput:   out.Stdout,
		MemoryBytes:    out.MemoryKB * 1024,
	}
	if sec, err := strconv.ParseFloat(strings.TrimSpace(out.TimeSec), 64); err == nil {
		res.ExecutionTimeMs = sec * 1000
	}
	switch {
	case strings.TrimSpace(out.CompileOutput) != "":
		res.Error = "compilation error: " + strings.TrimSpace(out.CompileOutput)
	case out.StatusID == StatusTimeLimitExceeded:
		res.Error = "time limit exceeded"
	case strings.TrimSpace(out.Stderr) != "":
		res.Error = strings.TrimSpace(out.Stderr)
	case out.StatusID > StatusAccepted:
		res.Error = out.StatusDesc
	}
	res.Passed = res.Error == "" && CompareOutputs(tc.ExpectedOutput, out.Stdout)
	return res
}

// FailedTestResult captures a per-test client failure (dispatch or poll timeout)
// as a failed result instead of aborting the whole evaluation.
func FailedTestResult(tc TestCase, err error) TestResult {
	return TestResult{
		Input:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
		Error:          err.Error(),
	}
}
