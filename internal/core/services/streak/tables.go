package streak

import "gitlab.com/codeclimb-2025.net/internal/domain"

// multiplierTier maps a minimum streak length to its XP multiplier. Lookup
// takes the largest threshold not exceeding the current streak.
type multiplierTier struct {
	minStreak  int
	multiplier float64
}

var multiplierTiers = []multiplierTier{
	{0, 1.0},
	{3, 1.1},
	{7, 1.2},
	{14, 1.3},
	{30, 1.5},
	{60, 1.7},
	{100, 2.0},
}

// MultiplierFor returns the XP multiplier for a streak length.
func MultiplierFor(streak int) float64 {
	multiplier := multiplierTiers[0].multiplier
	for _, tier := range multiplierTiers {
		if streak >= tier.minStreak {
			multiplier = tier.multiplier
		}
	}
	return multiplier
}

// Base XP per activity type, used when the caller supplies no override.
var baseXPByActivity = map[string]int{
	domain.ActivityProblemSolved:   10,
	domain.ActivityDailyChallenge:  25,
	domain.ActivityPracticeSession: 5,
}

// BaseXPFor returns the base XP for an activity type.
func BaseXPFor(activityType string) (int, bool) {
	xp, ok := baseXPByActivity[activityType]
	return xp, ok
}
