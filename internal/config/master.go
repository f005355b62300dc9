package config

import "os"

type AppConfig struct {
	DebugMode       bool
	PostgresConfig  *PostgresConfig
	RedisConfig     *RedisConfig
	JwtConfig       *JwtConfig
	JudgeConfig     *JudgeConfig
	RateLimitConfig *RateLimitConfig
	StreakConfig    *StreakConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:       os.Getenv("DEBUG_MODE") == "true",
		PostgresConfig:  NewPostgresConfig(),
		RedisConfig:     NewRedisConfig(),
		JwtConfig:       NewJwtConfig(),
		JudgeConfig:     NewJudgeConfig(),
		RateLimitConfig: NewRateLimitConfig(),
		StreakConfig:    NewStreakConfig(),
	}
}

// getEnv gets an environment variable with a fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
