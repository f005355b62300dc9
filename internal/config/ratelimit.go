package config

import (
	"strconv"
	"time"
)

// RateLimitConfig is the per-caller evaluation request budget.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

func NewRateLimitConfig() *RateLimitConfig {
	limit, err := strconv.Atoi(getEnv("EVAL_RATE_LIMIT", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}
	windowMin, err := strconv.Atoi(getEnv("EVAL_RATE_WINDOW_MIN", "15"))
	if err != nil || windowMin < 1 {
		windowMin = 15
	}
	return &RateLimitConfig{
		Limit:  limit,
		Window: time.Duration(windowMin) * time.Minute,
	}
}
