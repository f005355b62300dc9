package config

// StreakConfig controls calendar-day handling for streak transitions.
type StreakConfig struct {
	Timezone string
}

func NewStreakConfig() *StreakConfig {
	return &StreakConfig{
		Timezone: getEnv("STREAK_TIMEZONE", "UTC"),
	}
}
