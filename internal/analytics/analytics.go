// Package analytics turns stored sessions into the numbers the views show.
package analytics

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/sadopc/studytrackr/internal/store"
	"github.com/sadopc/studytrackr/internal/streak"
)

// Source is the part of the store the service reads from.
type Source interface {
	DailyTotals(userID int64, since streak.Date) ([]streak.DaySample, error)
	DailySubjectSummary(userID int64, from, to streak.Date) ([]store.DailySummary, error)
	SubjectTotals(userID int64) ([]store.SubjectTotal, error)
	SessionStats(userID int64) (count, minutes int, err error)
	CountGoals(userID int64, status string) (int, error)
	ListGoalProgress(userID int64) ([]store.GoalProgress, error)
	SetGoalStatus(userID, id int64, status string) error
}

type Service struct {
	src    Source
	logger *zap.Logger
	window int
	levels streak.Levels
}

func NewService(src Source, logger *zap.Logger, windowDays int) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if windowDays <= 0 {
		windowDays = streak.DefaultWindowDays
	}
	return &Service{src: src, logger: logger, window: windowDays, levels: streak.DefaultLevels}
}

func (s *Service) Window() int           { return s.window }
func (s *Service) Levels() streak.Levels { return s.levels }

// Contributions aggregates the configured trailing window ending at today.
func (s *Service) Contributions(userID int64, today streak.Date) (streak.Result, error) {
	return s.ContributionsWindow(userID, s.window, today)
}

// ContributionsWindow aggregates windowDays ending at today. The caller
// validates windowDays. When the daily totals cannot be read it logs the
// failure and aggregates an empty sample set, so the result is always
// renderable; the error is returned alongside for the caller to surface.
func (s *Service) ContributionsWindow(userID int64, w int, today streak.Date) (streak.Result, error) {
	if w == 0 {
		return streak.Aggregate(nil, 0, today), nil
	}
	since := today.AddDays(-(w - 1))
	samples, err := s.src.DailyTotals(userID, since)
	if err != nil {
		s.logger.Warn("fetch daily totals failed",
			zap.Int64("user_id", userID), zap.String("since", since.String()), zap.Error(err))
		return streak.Aggregate(nil, w, today), fmt.Errorf("fetch daily totals: %w", err)
	}
	return streak.Aggregate(samples, w, today), nil
}

type Overview struct {
	TotalMinutes   int
	Sessions       int
	AverageMinutes int
	CurrentStreak  int
	LongestStreak  int
	GoalsCompleted int
	Subjects       []store.SubjectTotal
}

// Overview combines all-time totals with the streak summary of the window.
func (s *Service) Overview(userID int64, today streak.Date) (Overview, error) {
	var o Overview
	res, err := s.Contributions(userID, today)
	if err != nil {
		return o, err
	}
	o.CurrentStreak = res.Summary.CurrentStreak
	o.LongestStreak = res.Summary.LongestStreak

	if o.Sessions, o.TotalMinutes, err = s.src.SessionStats(userID); err != nil {
		return o, fmt.Errorf("overview: %w", err)
	}
	if o.Sessions > 0 {
		o.AverageMinutes = o.TotalMinutes / o.Sessions
	}
	if o.GoalsCompleted, err = s.src.CountGoals(userID, store.GoalCompleted); err != nil {
		return o, fmt.Errorf("overview: %w", err)
	}
	if o.Subjects, err = s.src.SubjectTotals(userID); err != nil {
		return o, fmt.Errorf("overview: %w", err)
	}
	return o, nil
}

// WeekSubject is one subject's minutes for each day of a Week.
type WeekSubject struct {
	Name    string
	Color   string
	Minutes [7]int
	Total   int
}

type Week struct {
	Days     [7]streak.Date // oldest first, last is today
	Subjects []WeekSubject  // largest total first
}

// DayTotal sums every subject on day i.
func (w Week) DayTotal(i int) int {
	total := 0
	for _, sub := range w.Subjects {
		total += sub.Minutes[i]
	}
	return total
}

// Week returns minutes per subject for the seven days ending at today.
func (s *Service) Week(userID int64, today streak.Date) (Week, error) {
	var w Week
	from := today.AddDays(-6)
	for i := range w.Days {
		w.Days[i] = from.AddDays(i)
	}

	rows, err := s.src.DailySubjectSummary(userID, from, today)
	if err != nil {
		return w, fmt.Errorf("week: %w", err)
	}

	index := map[string]int{}
	for _, r := range rows {
		d, err := streak.ParseDate(r.Date)
		if err != nil {
			continue
		}
		day := streak.DaysBetween(from, d)
		if day < 0 || day > 6 {
			continue
		}
		i, ok := index[r.SubjectName]
		if !ok {
			i = len(w.Subjects)
			index[r.SubjectName] = i
			w.Subjects = append(w.Subjects, WeekSubject{Name: r.SubjectName, Color: r.SubjectColor})
		}
		w.Subjects[i].Minutes[day] += r.Minutes
		w.Subjects[i].Total += r.Minutes
	}
	sort.SliceStable(w.Subjects, func(a, b int) bool {
		return w.Subjects[a].Total > w.Subjects[b].Total
	})
	return w, nil
}

// RefreshGoals completes in-progress goals whose target has been reached
// and expires those whose end date has passed. It returns the number of
// goals changed.
func (s *Service) RefreshGoals(userID int64, today streak.Date) (int, error) {
	goals, err := s.src.ListGoalProgress(userID)
	if err != nil {
		return 0, fmt.Errorf("refresh goals: %w", err)
	}
	changed := 0
	for _, g := range goals {
		if g.Status != store.GoalInProgress {
			continue
		}
		status := ""
		switch {
		case g.Minutes >= g.TargetMinutes:
			status = store.GoalCompleted
		case today.After(g.EndDate):
			status = store.GoalExpired
		}
		if status == "" {
			continue
		}
		if err := s.src.SetGoalStatus(userID, g.ID, status); err != nil {
			return changed, fmt.Errorf("refresh goals: %w", err)
		}
		s.logger.Info("goal status changed",
			zap.Int64("user_id", userID), zap.Int64("goal_id", g.ID), zap.String("status", status))
		changed++
	}
	return changed, nil
}
