// Package achievement decides which achievements a user has earned and
// records new unlocks.
package achievement

import "github.com/sadopc/studytrackr/internal/streak"

// Stats is everything the unlock rules look at.
type Stats struct {
	Summary        streak.Summary
	Sessions       int
	// TotalMinutes is all-time study, not limited to the streak window.
	TotalMinutes   int
	Pomodoros      int
	GoalsCompleted int
	Subjects       int
}

type Definition struct {
	Code        string
	Kind        Kind
	Title       string
	Description string
	Earned      func(Stats) bool
}

var Catalog = []Definition{
	{"first_session", Milestone, "First Steps", "Log your first study session.",
		func(s Stats) bool { return s.Sessions >= 1 }},
	{"sessions_50", Milestone, "Regular", "Log 50 study sessions.",
		func(s Stats) bool { return s.Sessions >= 50 }},
	{"streak_3", Streak, "Warming Up", "Study three days in a row.",
		func(s Stats) bool { return s.Summary.LongestStreak >= 3 }},
	{"streak_7", Streak, "Week Warrior", "Study seven days in a row.",
		func(s Stats) bool { return s.Summary.LongestStreak >= 7 }},
	{"streak_30", Streak, "Unstoppable", "Study thirty days in a row.",
		func(s Stats) bool { return s.Summary.LongestStreak >= 30 }},
	{"time_10h", Time, "Ten Hours", "Study for a total of 10 hours.",
		func(s Stats) bool { return s.TotalMinutes >= 600 }},
	{"time_100h", Time, "Centurion", "Study for a total of 100 hours.",
		func(s Stats) bool { return s.TotalMinutes >= 6000 }},
	{"goal_1", Goal, "On Target", "Complete a study goal.",
		func(s Stats) bool { return s.GoalsCompleted >= 1 }},
	{"goal_5", Goal, "Goal Getter", "Complete five study goals.",
		func(s Stats) bool { return s.GoalsCompleted >= 5 }},
	{"subjects_3", Subject, "Well Rounded", "Create three subjects.",
		func(s Stats) bool { return s.Subjects >= 3 }},
	{"focus_1", Focus, "In the Zone", "Finish a pomodoro focus block.",
		func(s Stats) bool { return s.Pomodoros >= 1 }},
	{"focus_25", Focus, "Deep Worker", "Finish 25 pomodoro focus blocks.",
		func(s Stats) bool { return s.Pomodoros >= 25 }},
}

// Lookup finds a catalog entry by code.
func Lookup(code string) (Definition, bool) {
	for _, d := range Catalog {
		if d.Code == code {
			return d, true
		}
	}
	return Definition{}, false
}

// Evaluate returns the catalog entries earned by stats, in catalog order.
func Evaluate(stats Stats) []Definition {
	var earned []Definition
	for _, d := range Catalog {
		if d.Earned(stats) {
			earned = append(earned, d)
		}
	}
	return earned
}
