package domain

import "time"

// Activity types that award XP.
const (
	ActivityProblemSolved   = "problem_solved"
	ActivityDailyChallenge  = "daily_challenge"
	ActivityPracticeSession = "practice_session"
)

// UserStreakState is the per-user gamification state. One instance per user,
// created lazily with zero defaults and mutated only inside the streak
// engine's transaction. longestStreak >= currentStreak always holds and the
// achievement set only grows.
type UserStreakState struct {
	UserID           string     `json:"-"`
	CurrentStreak    int        `json:"currentStreak"`
	LongestStreak    int        `json:"longestStreak"`
	LastActivityDate *time.Time `json:"lastActivityDate,omitempty"`
	TotalXP          int        `json:"totalXP"`
	DailyXP          int        `json:"dailyXP"`
	StreakMultiplier float64    `json:"streakMultiplier"`
	Achievements     []string   `json:"achievements"`
}

// HasAchievement reports whether the achievement id is already unlocked.
func (s *UserStreakState) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// ActivityResult describes the effect of one recorded activity.
type ActivityResult struct {
	CurrentStreak    int      `json:"currentStreak"`
	LongestStreak    int      `json:"longestStreak"`
	TotalXP          int      `json:"totalXP"`
	DailyXP          int      `json:"dailyXP"`
	StreakMultiplier float64  `json:"streakMultiplier"`
	EarnedXP         int      `json:"earnedXP"`
	BaseXP           int      `json:"baseXP"`
	StreakBonus      int      `json:"streakBonus"`
	StreakBroken     bool     `json:"streakBroken"`
	StreakContinued  bool     `json:"streakContinued"`
	NewAchievements  []string `json:"newAchievements"`
	IsNewDay         bool     `json:"isNewDay"`
}
