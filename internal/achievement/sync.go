package achievement

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sadopc/studytrackr/internal/pomodoro"
	"github.com/sadopc/studytrackr/internal/store"
	"github.com/sadopc/studytrackr/internal/streak"
)

// Syncer persists newly earned achievements.
type Syncer struct {
	store  *store.Store
	logger *zap.Logger
}

func NewSyncer(st *store.Store, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{store: st, logger: logger}
}

// Gather reads the counters the unlock rules need. The streak summary comes
// from the caller, which already has the aggregated series.
func (s *Syncer) Gather(userID int64, summary streak.Summary) (Stats, error) {
	stats := Stats{Summary: summary}
	var err error
	if stats.Sessions, stats.TotalMinutes, err = s.store.SessionStats(userID); err != nil {
		return stats, fmt.Errorf("gather stats: %w", err)
	}
	if stats.Pomodoros, err = s.store.CountPomodoros(userID, pomodoro.Focus.Key()); err != nil {
		return stats, fmt.Errorf("gather stats: %w", err)
	}
	if stats.GoalsCompleted, err = s.store.CountGoals(userID, store.GoalCompleted); err != nil {
		return stats, fmt.Errorf("gather stats: %w", err)
	}
	subjects, err := s.store.ListSubjects(userID, true)
	if err != nil {
		return stats, fmt.Errorf("gather stats: %w", err)
	}
	stats.Subjects = len(subjects)
	return stats, nil
}

// Sync unlocks every earned achievement and returns the ones that were new.
func (s *Syncer) Sync(userID int64, stats Stats) ([]Definition, error) {
	var unlocked []Definition
	for _, d := range Evaluate(stats) {
		isNew, err := s.store.UnlockAchievement(userID, d.Code, d.Kind.Key(), d.Title, d.Description)
		if err != nil {
			return unlocked, err
		}
		if isNew {
			s.logger.Info("achievement unlocked", zap.Int64("user_id", userID), zap.String("code", d.Code))
			unlocked = append(unlocked, d)
		}
	}
	return unlocked, nil
}
