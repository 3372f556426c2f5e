package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sadopc/studytrackr/internal/achievement"
	"github.com/sadopc/studytrackr/internal/analytics"
	"github.com/sadopc/studytrackr/internal/auth"
	"github.com/sadopc/studytrackr/internal/config"
	"github.com/sadopc/studytrackr/internal/store"
	"github.com/sadopc/studytrackr/internal/streak"
)

// Deps is what the TUI needs from the rest of the program.
type Deps struct {
	Store        *store.Store
	Auth         *auth.Provider
	Session      *auth.Session
	Tokens       auth.TokenFile
	Analytics    *analytics.Service
	Achievements *achievement.Syncer
	Logger       *zap.Logger
	WeekStart    time.Weekday
}

// env is shared by pointer between the view models, which are copied on
// every update.
type env struct {
	Deps
	now func() time.Time
}

func newEnv(d Deps) *env {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Session == nil {
		d.Session = auth.NewSession()
	}
	return &env{Deps: d, now: time.Now}
}

func (e *env) userID() int64 {
	id, _ := e.Session.UserID()
	return id
}

func (e *env) today() streak.Date {
	return streak.DateOf(e.now())
}

// weekStart prefers the saved week_start setting over Deps.WeekStart.
func (e *env) weekStart() time.Weekday {
	if v, err := e.Store.GetSetting(e.userID(), "week_start"); err == nil {
		if wd, err := config.ParseWeekStart(v); err == nil {
			return wd
		}
	}
	return e.WeekStart
}

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewCalendar
	viewAnalytics
	viewPomodoro
	viewGoals
	viewAchievements
	viewSubjects
	viewSettings
	viewLogin
)

const tabCount = int(viewLogin)

var viewNames = []string{"Dashboard", "Calendar", "Analytics", "Pomodoro", "Goals", "Achievements", "Subjects", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// loadedMsg carries the result of a view load. Results from an older
// generation than the app's current one are dropped.
type loadedMsg struct {
	view viewState
	gen  int
	msg  tea.Msg
}

type timerStartedMsg struct {
	session *store.StudySession
}

type timerStoppedMsg struct {
	session *store.StudySession
}

type sessionLoggedMsg struct {
	session *store.StudySession
}

type signedInMsg struct{}
type signedOutMsg struct{}

type achievementsUnlockedMsg struct {
	unlocked []achievement.Definition
}

type exportDoneMsg struct {
	path string
}

func errStatus(prefix string, err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
	}
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}

func formatHours(mins int) string {
	return fmt.Sprintf("%.1fh", float64(mins)/60)
}
