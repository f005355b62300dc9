package streak

import (
	"context"
	"errors"
	"math"
	"time"

	"gitlab.com/codeclimb-2025.net/internal/core/ports/primary"
	"gitlab.com/codeclimb-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeclimb-2025.net/internal/domain"
)

var ErrUnknownActivity = errors.New("unknown activity type")

var _ IStreakService = (*Service)(nil)

// IStreakService is the streak/XP transaction engine contract.
type IStreakService interface {
	RecordActivity(ctx context.Context, userID, activityType string, points *int) (*domain.ActivityResult, error)
	GetStatus(ctx context.Context, userID string) (*domain.UserStreakState, error)
}

// Service computes day-boundary streak transitions, multiplier tiers, XP
// awards and achievement unlocks, committing them atomically per user.
type Service struct {
	repo   secondary.StreakRepository
	loc    *time.Location
	now    func() time.Time
	logger primary.Logger
}

// NewService creates a new streak service. The location defines the calendar
// used for day-gap computation.
func NewService(repo secondary.StreakRepository, loc *time.Location, logger primary.Logger) *Service {
	return &Service{
		repo:   repo,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// RecordActivity applies one qualifying activity to the user's state. The
// whole read-compute-write runs inside the repository's per-user transaction,
// so concurrent calls for the same user commit in some serial order.
func (s *Service) RecordActivity(ctx context.Context, userID, activityType string, points *int) (*domain.ActivityResult, error) {
	baseXP, err := resolveBaseXP(activityType, points)
	if err != nil {
		return nil, err
	}

	var result domain.ActivityResult

	_, err = s.repo.Mutate(ctx, userID, func(state *domain.UserStreakState) error {
		now := s.now().In(s.loc)
		gap, hadActivity := s.dayGap(state.LastActivityDate, now)

		result.IsNewDay = !hadActivity || gap != 0

		switch {
		case !hadActivity:
			state.CurrentStreak = 1
		case gap == 0:
			// Same calendar day, streak unchanged.
		case gap == 1:
			state.CurrentStreak++
			result.StreakContinued = true
		default:
			result.StreakBroken = state.CurrentStreak > 0
			state.CurrentStreak = 1
		}

		if state.CurrentStreak > state.LongestStreak {
			state.LongestStreak = state.CurrentStreak
		}

		multiplier := MultiplierFor(state.CurrentStreak)
		earnedXP := int(math.Floor(float64(baseXP) * multiplier))

		state.StreakMultiplier = multiplier
		state.TotalXP += earnedXP
		if result.IsNewDay {
			state.DailyXP = earnedXP
		} else {
			state.DailyXP += earnedXP
		}
		state.LastActivityDate = &now

		result.NewAchievements = unlockAchievements(state)

		result.CurrentStreak = state.CurrentStreak
		result.LongestStreak = state.LongestStreak
		result.TotalXP = state.TotalXP
		result.DailyXP = state.DailyXP
		result.StreakMultiplier = multiplier
		result.EarnedXP = earnedXP
		result.BaseXP = baseXP
		result.StreakBonus = earnedXP - baseXP
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Activity recorded",
		"userId", userID,
		"activity", activityType,
		"streak", result.CurrentStreak,
		"earnedXP", result.EarnedXP,
		"newAchievements", len(result.NewAchievements))

	return &result, nil
}

// GetStatus returns the user's state, re-deriving whether the stored streak
// is stale. A streak broken by inactivity is eagerly corrected in storage as
// a side effect of the read.
func (s *Service) GetStatus(ctx context.Context, userID string) (*domain.UserStreakState, error) {
	state, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &domain.UserStreakState{
			UserID:           userID,
			StreakMultiplier: MultiplierFor(0),
			Achievements:     []string{},
		}, nil
	}

	gap, hadActivity := s.dayGap(state.LastActivityDate, s.now().In(s.loc))
	if !hadActivity || gap <= 1 {
		return state, nil
	}
	if state.CurrentStreak == 0 && state.DailyXP == 0 {
		return state, nil
	}

	s.logger.Info("Correcting stale streak on read", "userId", userID, "gapDays", gap)
	return s.repo.Mutate(ctx, userID, func(st *domain.UserStreakState) error {
		// Re-derive staleness from the locked row. An activity committed
		// after the read above makes the correction a no-op.
		gap, hadActivity := s.dayGap(st.LastActivityDate, s.now().In(s.loc))
		if !hadActivity || gap <= 1 {
			return nil
		}
		st.CurrentStreak = 0
		st.DailyXP = 0
		st.StreakMultiplier = MultiplierFor(0)
		return nil
	})
}

// dayGap returns the whole-day difference between the last activity's
// calendar date and now's calendar date.
func (s *Service) dayGap(last *time.Time, now time.Time) (int, bool) {
	if last == nil {
		return 0, false
	}
	prev := calendarDate(*last, s.loc)
	cur := calendarDate(now, s.loc)
	return int(cur.Sub(prev).Hours() / 24), true
}

// calendarDate collapses a timestamp to its calendar date in loc, expressed
// as midnight UTC so date subtraction is DST-proof.
func calendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func resolveBaseXP(activityType string, points *int) (int, error) {
	baseXP, ok := BaseXPFor(activityType)
	if !ok {
		return 0, ErrUnknownActivity
	}
	if points != nil {
		return *points, nil
	}
	return baseXP, nil
}
