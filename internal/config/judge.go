package config

import (
	"strconv"
	"time"
)

// JudgeConfig configures the remote execution engine client.
type JudgeConfig struct {
	BaseUrl         string
	ApiKey          string
	PollInterval    time.Duration
	MaxPollAttempts int
	RequestTimeout  time.Duration
}

func NewJudgeConfig() *JudgeConfig {
	pollIntervalSec, err := strconv.Atoi(getEnv("JUDGE_POLL_INTERVAL_SEC", "1"))
	if err != nil || pollIntervalSec < 1 {
		pollIntervalSec = 1
	}
	maxAttempts, err := strconv.Atoi(getEnv("JUDGE_MAX_POLL_ATTEMPTS", "10"))
	if err != nil || maxAttempts < 1 {
		maxAttempts = 10
	}
	return &JudgeConfig{
		BaseUrl:         getEnv("JUDGE_URL", "http://localhost:2358"),
		ApiKey:          getEnv("JUDGE_API_KEY", ""),
		PollInterval:    time.Duration(pollIntervalSec) * time.Second,
		MaxPollAttempts: maxAttempts,
		RequestTimeout:  15 * time.Second,
	}
}
