package store

import (
	"time"

	"github.com/sadopc/studytrackr/internal/streak"
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
}

type AuthSession struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	RevokedAt *time.Time
}

type Subject struct {
	ID        int64
	UserID    int64
	Name      string
	Color     string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session sources.
const (
	SourceTimer    = "timer"
	SourceManual   = "manual"
	SourcePomodoro = "pomodoro"
)

type StudySession struct {
	ID        int64
	UserID    int64
	SubjectID *int64
	StudyDate streak.Date
	StartTime time.Time
	EndTime   *time.Time
	Minutes   int
	Source    string
	Notes     string
	CreatedAt time.Time
}

// Task statuses.
const (
	TaskPending   = "pending"
	TaskCompleted = "completed"
)

type Task struct {
	ID          int64
	UserID      int64
	SubjectID   *int64
	Title       string
	Description string
	DueDate     *streak.Date
	Priority    int // 1 high, 2 normal, 3 low
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Goal statuses.
const (
	GoalInProgress = "in_progress"
	GoalCompleted  = "completed"
	GoalExpired    = "expired"
)

type Goal struct {
	ID            int64
	UserID        int64
	Title         string
	TargetMinutes int
	StartDate     streak.Date
	EndDate       streak.Date
	Status        string
	CreatedAt     time.Time
}

// GoalProgress pairs a goal with the minutes logged inside its date range.
type GoalProgress struct {
	Goal
	Minutes int
}

// Percent is the share of the target reached, capped at 100.
func (g GoalProgress) Percent() int {
	if g.TargetMinutes <= 0 {
		return 0
	}
	p := g.Minutes * 100 / g.TargetMinutes
	if p > 100 {
		p = 100
	}
	return p
}

type Achievement struct {
	ID          int64
	UserID      int64
	Code        string
	Kind        string
	Title       string
	Description string
	UnlockedAt  time.Time
}

type PomodoroSession struct {
	ID          int64
	UserID      int64
	Phase       string
	Duration    int // seconds
	CompletedAt time.Time
}

type Setting struct {
	Key   string
	Value string
}

// SessionFilter is used to filter study sessions in queries.
type SessionFilter struct {
	SubjectID *int64
	From      *streak.Date
	To        *streak.Date // inclusive
	Limit     int
}

// DailySummary is the time spent on one subject on one day. SubjectID is
// nil for sessions logged without a subject.
type DailySummary struct {
	Date         string
	SubjectID    *int64
	SubjectName  string
	SubjectColor string
	Minutes      int
	SessionCount int
}

// SubjectTotal is the all-time total for one subject.
type SubjectTotal struct {
	SubjectID    *int64
	SubjectName  string
	SubjectColor string
	Minutes      int
	SessionCount int
}
