package store

import (
	"errors"
	"testing"
	"time"

	"github.com/sadopc/studytrackr/internal/streak"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestUser(t *testing.T, s *Store, email string) *User {
	t.Helper()
	u, err := s.CreateUser(email, "hash", "Test")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func today() streak.Date { return streak.DateOf(time.Now()) }

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != currentVersion {
		t.Fatalf("expected user_version %d, got %d", currentVersion, version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/studytrackr.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestForeignKeysOn(t *testing.T) {
	s := newTestStore(t)
	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestMigrateV2CopiesSharedSettingsToUsers(t *testing.T) {
	s := newTestStore(t)
	a := newTestUser(t, s, "a@example.com")
	b := newTestUser(t, s, "b@example.com")

	// Rebuild the v1 layout: one settings row shared by every account.
	for _, q := range []string{
		`DROP TABLE settings`,
		`CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
		`INSERT INTO settings (key, value) VALUES ('daily_goal', '45')`,
		`PRAGMA user_version = 1`,
	} {
		if _, err := s.db.Exec(q); err != nil {
			t.Fatalf("%s: %v", q, err)
		}
	}
	if err := s.migrate(); err != nil {
		t.Fatal(err)
	}

	for _, u := range []*User{a, b} {
		if v := s.GetIntSetting(u.ID, "daily_goal", 0); v != 45 {
			t.Fatalf("user %d: expected inherited 45, got %d", u.ID, v)
		}
	}
	s.SetSetting(a.ID, "daily_goal", "90")
	if v := s.GetIntSetting(b.ID, "daily_goal", 0); v != 45 {
		t.Fatalf("after migration settings should be per user, got %d", v)
	}
}

// ============================================================
// Users and auth sessions
// ============================================================

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	if u.ID == 0 || u.Email != "a@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	got, err := s.GetUserByEmail("a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected id %d, got %d", u.ID, got.ID)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	newTestUser(t, s, "dup@example.com")
	if _, err := s.CreateUser("dup@example.com", "x", ""); err == nil {
		t.Fatal("expected error for duplicate email")
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetUserByEmail("nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthSessionRevoke(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	if _, err := s.CreateAuthSession("tok", u.ID); err != nil {
		t.Fatal(err)
	}
	a, err := s.GetAuthSession("tok")
	if err != nil {
		t.Fatal(err)
	}
	if a.RevokedAt != nil || a.UserID != u.ID {
		t.Fatalf("unexpected session: %+v", a)
	}
	if err := s.RevokeAuthSession("tok"); err != nil {
		t.Fatal(err)
	}
	a, _ = s.GetAuthSession("tok")
	if a.RevokedAt == nil {
		t.Fatal("expected session to be revoked")
	}
}

// ============================================================
// Subjects
// ============================================================

func TestCreateSubjectScopedPerUser(t *testing.T) {
	s := newTestStore(t)
	a := newTestUser(t, s, "a@example.com")
	b := newTestUser(t, s, "b@example.com")

	if _, err := s.CreateSubject(a.ID, "Math", "#FF0000"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateSubject(a.ID, "Math", "#00FF00"); err == nil {
		t.Fatal("expected error for duplicate subject name")
	}
	if _, err := s.CreateSubject(b.ID, "Math", "#00FF00"); err != nil {
		t.Fatalf("other user should be able to reuse the name: %v", err)
	}

	subs, _ := s.ListSubjects(b.ID, false)
	if len(subs) != 1 {
		t.Fatalf("expected 1 subject for b, got %d", len(subs))
	}
}

func TestFindSubjectCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	sub, _ := s.CreateSubject(u.ID, "Physics", "#123456")

	got, err := s.FindSubject(u.ID, "physics")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != sub.ID {
		t.Fatalf("expected subject %d, got %d", sub.ID, got.ID)
	}
}

func TestArchiveSubject(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	sub, _ := s.CreateSubject(u.ID, "Old", "#333333")
	s.ArchiveSubject(u.ID, sub.ID)

	subs, _ := s.ListSubjects(u.ID, false)
	if len(subs) != 0 {
		t.Fatal("archived subject should be hidden")
	}
	subs, _ = s.ListSubjects(u.ID, true)
	if len(subs) != 1 || !subs[0].Archived {
		t.Fatal("archived subject should appear with includeArchived")
	}
}

func TestUpdateSubject(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	sub, _ := s.CreateSubject(u.ID, "Old", "#333333")
	if err := s.UpdateSubject(u.ID, sub.ID, "New", "#444444"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetSubject(u.ID, sub.ID)
	if got.Name != "New" || got.Color != "#444444" {
		t.Fatalf("update not applied: %+v", got)
	}
}

// ============================================================
// Study sessions
// ============================================================

func TestStartStopSession(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")

	ss, err := s.StartSession(u.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ss.EndTime != nil {
		t.Fatal("new session should be running")
	}
	if !ss.StudyDate.Equal(today()) {
		t.Fatalf("expected study date %s, got %s", today(), ss.StudyDate)
	}

	running, err := s.GetRunningSession(u.ID)
	if err != nil || running == nil || running.ID != ss.ID {
		t.Fatalf("expected running session %d, got %+v (%v)", ss.ID, running, err)
	}

	stopped, err := s.StopSession(u.ID, ss.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if stopped.EndTime == nil {
		t.Fatal("stopped session should have an end time")
	}
	running, _ = s.GetRunningSession(u.ID)
	if running != nil {
		t.Fatal("expected no running session")
	}
}

func TestStopSessionNotFound(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	if _, err := s.StopSession(u.ID, 42, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStopSessionSubtractsPause(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	ss, _ := s.StartSession(u.ID, nil)

	stopped, err := s.StopSession(u.ID, ss.ID, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if stopped.Minutes != 0 {
		t.Fatalf("expected minutes clamped to 0, got %d", stopped.Minutes)
	}
}

func TestLogSessionPastDay(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	day := today().AddDays(-3)

	ss, err := s.LogSession(u.ID, nil, day, 45, SourceManual, "reading")
	if err != nil {
		t.Fatal(err)
	}
	if !ss.StudyDate.Equal(day) || ss.Minutes != 45 || ss.Source != SourceManual || ss.Notes != "reading" {
		t.Fatalf("unexpected session: %+v", ss)
	}
	if ss.EndTime == nil || ss.EndTime.Sub(ss.StartTime) != 45*time.Minute {
		t.Fatalf("expected 45 minute span, got %v..%v", ss.StartTime, ss.EndTime)
	}
}

func TestLogSessionNegativeMinutes(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	if _, err := s.LogSession(u.ID, nil, today(), -1, SourceManual, ""); err == nil {
		t.Fatal("expected error for negative minutes")
	}
}

func TestListSessionsFilter(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	math, _ := s.CreateSubject(u.ID, "Math", "#111111")

	s.LogSession(u.ID, &math.ID, today(), 30, SourceManual, "")
	s.LogSession(u.ID, nil, today(), 20, SourceManual, "")
	s.LogSession(u.ID, &math.ID, today().AddDays(-10), 10, SourceManual, "")

	all, _ := s.ListSessions(u.ID, SessionFilter{})
	if len(all) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(all))
	}

	bySubject, _ := s.ListSessions(u.ID, SessionFilter{SubjectID: &math.ID})
	if len(bySubject) != 2 {
		t.Fatalf("expected 2 math sessions, got %d", len(bySubject))
	}

	from := today().AddDays(-1)
	recent, _ := s.ListSessions(u.ID, SessionFilter{From: &from})
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent sessions, got %d", len(recent))
	}

	limited, _ := s.ListSessions(u.ID, SessionFilter{Limit: 1})
	if len(limited) != 1 {
		t.Fatalf("expected 1 session with limit, got %d", len(limited))
	}
}

func TestSessionsIsolatedByUser(t *testing.T) {
	s := newTestStore(t)
	a := newTestUser(t, s, "a@example.com")
	b := newTestUser(t, s, "b@example.com")
	ss, _ := s.LogSession(a.ID, nil, today(), 30, SourceManual, "")

	if _, err := s.GetSession(b.ID, ss.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
	if err := s.DeleteSession(b.ID, ss.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting other user's session, got %v", err)
	}
	if err := s.DeleteSession(a.ID, ss.ID); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateSessionNotes(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	ss, _ := s.LogSession(u.ID, nil, today(), 5, SourceManual, "")
	s.UpdateSessionNotes(u.ID, ss.ID, "chapter 4")
	got, _ := s.GetSession(u.ID, ss.ID)
	if got.Notes != "chapter 4" {
		t.Fatalf("expected notes to update, got %q", got.Notes)
	}
}

// ============================================================
// Totals
// ============================================================

func TestDailyTotals(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	d := today()

	s.LogSession(u.ID, nil, d, 30, SourceManual, "")
	s.LogSession(u.ID, nil, d, 15, SourcePomodoro, "")
	s.LogSession(u.ID, nil, d.AddDays(-2), 60, SourceManual, "")
	s.LogSession(u.ID, nil, d.AddDays(-400), 60, SourceManual, "")
	s.StartSession(u.ID, nil) // running sessions are not counted

	totals, err := s.DailyTotals(u.ID, d.AddDays(-364))
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 days, got %d: %+v", len(totals), totals)
	}
	if !totals[0].Date.Equal(d.AddDays(-2)) || totals[0].TotalMinutes != 60 {
		t.Fatalf("unexpected first day: %+v", totals[0])
	}
	if !totals[1].Date.Equal(d) || totals[1].TotalMinutes != 45 {
		t.Fatalf("unexpected second day: %+v", totals[1])
	}
}

func TestDailyTotalsFeedStreak(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	d := today()
	for i := 0; i < 3; i++ {
		s.LogSession(u.ID, nil, d.AddDays(-i), 10, SourceManual, "")
	}

	totals, _ := s.DailyTotals(u.ID, d.AddDays(-6))
	res := streak.Aggregate(totals, 7, d)
	if res.Summary.CurrentStreak != 3 || res.Summary.TotalMinutes != 30 {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}
}

func TestDailySubjectSummaryUncategorized(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	math, _ := s.CreateSubject(u.ID, "Math", "#111111")
	d := today()

	s.LogSession(u.ID, &math.ID, d, 30, SourceManual, "")
	s.LogSession(u.ID, &math.ID, d, 10, SourceManual, "")
	s.LogSession(u.ID, nil, d, 20, SourceManual, "")

	rows, err := s.DailySubjectSummary(u.ID, d, d)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	byName := map[string]DailySummary{}
	for _, r := range rows {
		byName[r.SubjectName] = r
	}
	if m := byName["Math"]; m.Minutes != 40 || m.SessionCount != 2 {
		t.Fatalf("unexpected math row: %+v", m)
	}
	if un := byName["Uncategorized"]; un.Minutes != 20 || un.SubjectID != nil {
		t.Fatalf("unexpected uncategorized row: %+v", un)
	}
}

func TestSubjectTotalsAndStats(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	math, _ := s.CreateSubject(u.ID, "Math", "#111111")
	s.LogSession(u.ID, &math.ID, today(), 30, SourceManual, "")
	s.LogSession(u.ID, &math.ID, today().AddDays(-1), 30, SourceManual, "")

	totals, err := s.SubjectTotals(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 1 || totals[0].Minutes != 60 || totals[0].SessionCount != 2 {
		t.Fatalf("unexpected totals: %+v", totals)
	}

	n, mins, err := s.SessionStats(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || mins != 60 {
		t.Fatalf("expected 2 sessions / 60 minutes, got %d / %d", n, mins)
	}

	todayMins, _ := s.TodayTotal(u.ID, today())
	if todayMins != 30 {
		t.Fatalf("expected 30 minutes today, got %d", todayMins)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestUpcomingTasksOrder(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	later := today().AddDays(5)
	sooner := today().AddDays(1)

	s.CreateTask(u.ID, nil, "no due", "", nil, 1)
	s.CreateTask(u.ID, nil, "later", "", &later, 2)
	done, _ := s.CreateTask(u.ID, nil, "done", "", &sooner, 2)
	s.CreateTask(u.ID, nil, "sooner", "", &sooner, 2)
	s.CompleteTask(u.ID, done.ID)

	tasks, err := s.ListUpcomingTasks(u.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 pending tasks, got %d", len(tasks))
	}
	want := []string{"sooner", "later", "no due"}
	for i, w := range want {
		if tasks[i].Title != w {
			t.Fatalf("task %d: expected %q, got %q", i, w, tasks[i].Title)
		}
	}
	if tasks[0].DueDate == nil || !tasks[0].DueDate.Equal(sooner) {
		t.Fatalf("expected due date %s, got %v", sooner, tasks[0].DueDate)
	}
}

func TestCompleteTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	if err := s.CompleteTask(u.ID, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================
// Goals
// ============================================================

func TestGoalProgress(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	d := today()

	g, err := s.CreateGoal(u.ID, "Week", 100, d.AddDays(-6), d)
	if err != nil {
		t.Fatal(err)
	}
	s.LogSession(u.ID, nil, d, 40, SourceManual, "")
	s.LogSession(u.ID, nil, d.AddDays(-1), 20, SourceManual, "")
	s.LogSession(u.ID, nil, d.AddDays(-30), 500, SourceManual, "")

	goals, err := s.ListGoalProgress(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 1 || goals[0].ID != g.ID {
		t.Fatalf("unexpected goals: %+v", goals)
	}
	if goals[0].Minutes != 60 || goals[0].Percent() != 60 {
		t.Fatalf("expected 60 minutes / 60%%, got %d / %d", goals[0].Minutes, goals[0].Percent())
	}
}

func TestGoalPercentCapped(t *testing.T) {
	gp := GoalProgress{Goal: Goal{TargetMinutes: 10}, Minutes: 50}
	if gp.Percent() != 100 {
		t.Fatalf("expected 100, got %d", gp.Percent())
	}
}

func TestCreateGoalValidation(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	d := today()
	if _, err := s.CreateGoal(u.ID, "bad", 0, d, d); err == nil {
		t.Fatal("expected error for zero target")
	}
	if _, err := s.CreateGoal(u.ID, "bad", 10, d, d.AddDays(-1)); err == nil {
		t.Fatal("expected error for end before start")
	}
}

func TestGoalStatusAndCount(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	d := today()
	g, _ := s.CreateGoal(u.ID, "A", 10, d, d)
	s.CreateGoal(u.ID, "B", 10, d, d)

	if err := s.SetGoalStatus(u.ID, g.ID, GoalCompleted); err != nil {
		t.Fatal(err)
	}
	n, _ := s.CountGoals(u.ID, GoalCompleted)
	if n != 1 {
		t.Fatalf("expected 1 completed goal, got %d", n)
	}
	s.DeleteGoal(u.ID, g.ID)
	n, _ = s.CountGoals(u.ID, GoalCompleted)
	if n != 0 {
		t.Fatalf("expected 0 completed goals after delete, got %d", n)
	}
}

// ============================================================
// Achievements
// ============================================================

func TestUnlockAchievementOnce(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")

	isNew, err := s.UnlockAchievement(u.ID, "streak_7", "streak", "Week streak", "")
	if err != nil || !isNew {
		t.Fatalf("expected first unlock to be new, got %v (%v)", isNew, err)
	}
	isNew, err = s.UnlockAchievement(u.ID, "streak_7", "streak", "Week streak", "")
	if err != nil || isNew {
		t.Fatalf("expected second unlock to be a no-op, got %v (%v)", isNew, err)
	}

	list, _ := s.ListAchievements(u.ID)
	if len(list) != 1 || list[0].Code != "streak_7" {
		t.Fatalf("unexpected achievements: %+v", list)
	}
}

// ============================================================
// Pomodoro
// ============================================================

func TestPomodoroStats(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	s.RecordPomodoro(u.ID, "focus", 1500)
	s.RecordPomodoro(u.ID, "focus", 1500)
	s.RecordPomodoro(u.ID, "break", 300)

	now := time.Now()
	n, secs, err := s.PomodoroStats(u.ID, "focus", now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || secs != 3000 {
		t.Fatalf("expected 2 / 3000, got %d / %d", n, secs)
	}
	total, _ := s.CountPomodoros(u.ID, "break")
	if total != 1 {
		t.Fatalf("expected 1 break, got %d", total)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	if v := s.GetIntSetting(u.ID, "pomodoro_focus", 0); v != 1500 {
		t.Fatalf("expected 1500, got %d", v)
	}
	if v := s.GetIntSetting(u.ID, "missing", 7); v != 7 {
		t.Fatalf("expected fallback 7, got %d", v)
	}
	if _, err := s.GetSetting(u.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	s.SetSetting(u.ID, "daily_goal", "abc")
	if v := s.GetIntSetting(u.ID, "daily_goal", 120); v != 120 {
		t.Fatalf("expected fallback for non-number, got %d", v)
	}
}

func TestSetSettingOverwrite(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "a@example.com")
	s.SetSetting(u.ID, "week_start", "sunday")
	s.SetSetting(u.ID, "week_start", "monday")
	v, err := s.GetSetting(u.ID, "week_start")
	if err != nil || v != "monday" {
		t.Fatalf("expected monday, got %q (%v)", v, err)
	}
	all, _ := s.GetAllSettings(u.ID)
	if len(all) != 4 {
		t.Fatalf("expected 4 settings, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key > all[i].Key {
			t.Fatalf("settings not sorted by key: %v", all)
		}
	}
}

func TestSettingsArePerUser(t *testing.T) {
	s := newTestStore(t)
	a := newTestUser(t, s, "a@example.com")
	b := newTestUser(t, s, "b@example.com")

	if err := s.SetSetting(a.ID, "daily_goal", "999"); err != nil {
		t.Fatal(err)
	}
	s.SetSetting(a.ID, "week_start", "sunday")

	if v := s.GetIntSetting(a.ID, "daily_goal", 0); v != 999 {
		t.Fatalf("expected 999 for a, got %d", v)
	}
	if v := s.GetIntSetting(b.ID, "daily_goal", 0); v != 120 {
		t.Fatalf("b should keep the default daily goal, got %d", v)
	}
	if _, err := s.GetSetting(b.ID, "week_start"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("b has no week_start, got %v", err)
	}
	all, _ := s.GetAllSettings(b.ID)
	if len(all) != 3 {
		t.Fatalf("expected only defaults for b, got %v", all)
	}
}
