package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sadopc/studytrackr/internal/store"
	"github.com/sadopc/studytrackr/internal/streak"
)

type failingTotals struct {
	*store.Store
}

func (failingTotals) DailyTotals(int64, streak.Date) ([]streak.DaySample, error) {
	return nil, errors.New("connection reset")
}

func setup(t *testing.T) (*store.Store, int64, streak.Date) {
	t.Helper()
	st, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	u, err := st.CreateUser("a@example.com", "x", "A")
	require.NoError(t, err)
	return st, u.ID, streak.DateOf(time.Now())
}

func TestContributions(t *testing.T) {
	st, uid, today := setup(t)
	for i := 0; i < 3; i++ {
		_, err := st.LogSession(uid, nil, today.AddDays(-i), 30, store.SourceManual, "")
		require.NoError(t, err)
	}
	_, err := st.LogSession(uid, nil, today.AddDays(-10), 60, store.SourceManual, "")
	require.NoError(t, err)

	svc := NewService(st, zap.NewNop(), 7)
	res, err := svc.Contributions(uid, today)
	require.NoError(t, err)
	assert.Len(t, res.Series, 7)
	assert.Equal(t, today, res.Series[6].Date)
	assert.Equal(t, 3, res.Summary.CurrentStreak)
	assert.Equal(t, 90, res.Summary.TotalMinutes)
}

func TestContributionsFetchFailureFallsBack(t *testing.T) {
	st, uid, today := setup(t)
	core, logs := observer.New(zap.WarnLevel)

	svc := NewService(failingTotals{st}, zap.New(core), 30)
	res, err := svc.Contributions(uid, today)
	require.Error(t, err)
	assert.Len(t, res.Series, 30)
	assert.Equal(t, streak.Summary{}, res.Summary)
	for _, d := range res.Series {
		assert.Zero(t, d.TotalMinutes)
	}
	assert.Equal(t, 1, logs.FilterMessage("fetch daily totals failed").Len())
}

func TestContributionsWindow(t *testing.T) {
	st, uid, today := setup(t)
	_, err := st.LogSession(uid, nil, today.AddDays(-10), 45, store.SourceManual, "")
	require.NoError(t, err)
	_, err = st.LogSession(uid, nil, today, 20, store.SourceManual, "")
	require.NoError(t, err)

	svc := NewService(st, zap.NewNop(), 365)
	res, err := svc.ContributionsWindow(uid, 7, today)
	require.NoError(t, err)
	assert.Len(t, res.Series, 7)
	assert.Equal(t, 20, res.Summary.TotalMinutes, "the day outside the week is ignored")

	res, err = svc.ContributionsWindow(uid, 0, today)
	require.NoError(t, err)
	assert.Empty(t, res.Series)
	assert.Equal(t, streak.Summary{}, res.Summary)
}

func TestNewServiceDefaultWindow(t *testing.T) {
	svc := NewService(nil, nil, 0)
	assert.Equal(t, streak.DefaultWindowDays, svc.Window())
	assert.Equal(t, streak.DefaultLevels, svc.Levels())
}

func TestOverview(t *testing.T) {
	st, uid, today := setup(t)
	math, err := st.CreateSubject(uid, "Math", "#111111")
	require.NoError(t, err)
	st.LogSession(uid, &math.ID, today, 40, store.SourceManual, "")
	st.LogSession(uid, nil, today.AddDays(-1), 20, store.SourceManual, "")
	g, _ := st.CreateGoal(uid, "g", 10, today, today)
	st.SetGoalStatus(uid, g.ID, store.GoalCompleted)

	o, err := NewService(st, zap.NewNop(), 365).Overview(uid, today)
	require.NoError(t, err)
	assert.Equal(t, 60, o.TotalMinutes)
	assert.Equal(t, 2, o.Sessions)
	assert.Equal(t, 30, o.AverageMinutes)
	assert.Equal(t, 2, o.CurrentStreak)
	assert.Equal(t, 1, o.GoalsCompleted)
	require.Len(t, o.Subjects, 2)
}

func TestWeek(t *testing.T) {
	st, uid, today := setup(t)
	math, _ := st.CreateSubject(uid, "Math", "#111111")
	bio, _ := st.CreateSubject(uid, "Biology", "#222222")
	st.LogSession(uid, &math.ID, today, 10, store.SourceManual, "")
	st.LogSession(uid, &bio.ID, today, 50, store.SourceManual, "")
	st.LogSession(uid, &bio.ID, today.AddDays(-6), 5, store.SourceManual, "")
	st.LogSession(uid, &bio.ID, today.AddDays(-7), 500, store.SourceManual, "")

	w, err := NewService(st, zap.NewNop(), 365).Week(uid, today)
	require.NoError(t, err)
	assert.Equal(t, today, w.Days[6])
	assert.Equal(t, today.AddDays(-6), w.Days[0])
	require.Len(t, w.Subjects, 2)
	assert.Equal(t, "Biology", w.Subjects[0].Name)
	assert.Equal(t, 55, w.Subjects[0].Total)
	assert.Equal(t, 5, w.Subjects[0].Minutes[0])
	assert.Equal(t, 60, w.DayTotal(6))
}

func TestRefreshGoals(t *testing.T) {
	st, uid, today := setup(t)
	reached, _ := st.CreateGoal(uid, "reached", 30, today.AddDays(-2), today)
	past, _ := st.CreateGoal(uid, "past", 1000, today.AddDays(-20), today.AddDays(-10))
	open, _ := st.CreateGoal(uid, "open", 1000, today, today.AddDays(5))
	st.LogSession(uid, nil, today, 45, store.SourceManual, "")

	svc := NewService(st, zap.NewNop(), 365)
	n, err := svc.RefreshGoals(uid, today)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for id, want := range map[int64]string{
		reached.ID: store.GoalCompleted,
		past.ID:    store.GoalExpired,
		open.ID:    store.GoalInProgress,
	} {
		g, err := st.GetGoal(uid, id)
		require.NoError(t, err)
		assert.Equal(t, want, g.Status, g.Title)
	}

	n, err = svc.RefreshGoals(uid, today)
	require.NoError(t, err)
	assert.Zero(t, n)
}
