package streak

import (
	"fmt"

	"gitlab.com/codeclimb-2025.net/internal/domain"
)

// milestone is one rung of a monotonic achievement ladder.
type milestone struct {
	threshold int
	id        string
}

func ladder(prefix string, thresholds ...int) []milestone {
	ms := make([]milestone, 0, len(thresholds))
	for _, t := range thresholds {
		ms = append(ms, milestone{threshold: t, id: fmt.Sprintf("%s_%d", prefix, t)})
	}
	return ms
}

var (
	streakMilestones  = ladder("streak", 3, 7, 14, 30, 60, 100)
	xpMilestones      = ladder("xp", 100, 500, 1000, 5000, 10000)
	longestMilestones = ladder("best_streak", 7, 30, 100)
)

// unlockAchievements appends any newly met milestones to the state's
// achievement set and returns their ids. Already-unlocked ids are never
// re-added, so the set only grows.
func unlockAchievements(state *domain.UserStreakState) []string {
	newly := make([]string, 0)

	check := func(value int, ms []milestone) {
		for _, m := range ms {
			if value >= m.threshold && !state.HasAchievement(m.id) {
				state.Achievements = append(state.Achievements, m.id)
				newly = append(newly, m.id)
			}
		}
	}

	check(state.CurrentStreak, streakMilestones)
	check(state.TotalXP, xpMilestones)
	check(state.LongestStreak, longestMilestones)

	return newly
}
