package domain

// ResultStats are aggregate statistics over a sequence of test results.
type ResultStats struct {
	Total          int     `json:"total"`
	Passed         int     `json:"passed"`
	ScorePercent   float64 `json:"scorePercent"`
	AvgTimeMs      float64 `json:"avgExecutionTime"`
	MaxTimeMs      float64 `json:"maxExecutionTime"`
	AvgMemoryBytes int64   `json:"avgMemoryUsage"`
	MaxMemoryBytes int64   `json:"maxMemoryUsage"`
}

// ComputeStats aggregates pass count, score percentage and execution metrics.
func ComputeStats(results []TestResult) ResultStats {
	stats := ResultStats{Total: len(results)}
	if len(results) == 0 {
		return stats
	}
	var timeSum float64
	var memSum int64
	for _, r := range results {
		if r.Passed {
			stats.Passed++
		}
		timeSum += r.ExecutionTimeMs
		memSum += r.MemoryBytes
		if r.ExecutionTimeMs > stats.MaxTimeMs {
			stats.MaxTimeMs = r.ExecutionTimeMs
		}
		if r.MemoryBytes > stats.MaxMemoryBytes {
			stats.MaxMemoryBytes = r.MemoryBytes
		}
	}
	stats.ScorePercent = float64(stats.Passed) / float64(stats.Total) * 100
	stats.AvgTimeMs = timeSum / float64(stats.Total)
	stats.AvgMemoryBytes = memSum / int64(stats.Total)
	return stats
}

// SubmissionSummary aggregates a user's historical submissions.
type SubmissionSummary struct {
	Total       int            `json:"total"`
	ByLanguage  map[string]int `json:"byLanguage"`
	ByVerdict   map[string]int `json:"byVerdict"`
	SuccessRate float64        `json:"successRate"`
}

// SummarizeSubmissions computes counts by language and verdict plus the
// overall success rate over a submission history.
func SummarizeSubmissions(records []*SubmissionRecord) SubmissionSummary {
	summary := SubmissionSummary{
		Total:      len(records),
		ByLanguage: make(map[string]int),
		ByVerdict:  make(map[string]int),
	}
	accepted := 0
	for _, rec := range records {
		summary.ByLanguage[rec.Language]++
		summary.ByVerdict[string(rec.Verdict)]++
		if rec.Verdict == VerdictAccepted {
			accepted++
		}
	}
	if summary.Total > 0 {
		summary.SuccessRate = float64(accepted) / float64(summary.Total) * 100
	}
	return summary
}
