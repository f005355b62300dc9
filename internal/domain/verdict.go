package domain

import "strings"

// Verdict is the final categorical judgment of a submission. It is derived
// from the collected TestResults, never stored independently of them.
type Verdict string

const (
	VerdictAccepted          Verdict = "Accepted"
	VerdictWrongAnswer       Verdict = "Wrong Answer"
	VerdictTimeLimitExceeded Verdict = "Time Limit Exceeded"
	VerdictRuntimeError      Verdict = "Runtime Error"
	VerdictCompilationError  Verdict = "Compilation Error"
)

// ReduceVerdict collapses a non-empty result set into a single verdict:
//  1. every result errored with a compilation message -> Compilation Error
//  2. any non-timeout error -> Runtime Error
//  3. any time-limit error -> Time Limit Exceeded
//  4. all passed -> Accepted
//  5. otherwise -> Wrong Answer
func ReduceVerdict(results []TestResult) Verdict {
	allCompilation := len(results) > 0
	anyRuntime := false
	anyTimeLimit := false
	allPassed := true
	for _, r := range results {
		errMsg := strings.ToLower(r.Error)
		if !strings.Contains(errMsg, "compilation") {
			allCompilation = false
		}
		if r.Error != "" {
			if strings.Contains(errMsg, "time limit") {
				anyTimeLimit = true
			} else {
				anyRuntime = true
			}
		}
		if !r.Passed {
			allPassed = false
		}
	}
	switch {
	case allCompilation:
		return VerdictCompilationError
	case anyRuntime:
		return VerdictRuntimeError
	case anyTimeLimit:
		return VerdictTimeLimitExceeded
	case allPassed:
		return VerdictAccepted
	default:
		return VerdictWrongAnswer
	}
}
