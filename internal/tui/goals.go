package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrackr/internal/store"
	"github.com/sadopc/studytrackr/internal/streak"
)

type goalsModel struct {
	env    *env
	width  int
	height int

	goals  []store.GoalProgress
	cursor int

	formActive bool
	form       *huh.Form
	formTitle  *string
	formHours  *string
	formDays   *string

	confirmDelete bool
}

func newGoalsModel(e *env) goalsModel {
	title, hours, days := "", "", ""
	return goalsModel{
		env:       e,
		formTitle: &title,
		formHours: &hours,
		formDays:  &days,
	}
}

func (g *goalsModel) setSize(w, h int) {
	g.width = w
	g.height = h
}

type goalsDataMsg struct {
	goals   []store.GoalProgress
	changed int
	err     error
}

// refresh settles finished or expired goals before listing them.
func (g goalsModel) refresh() tea.Cmd {
	e := g.env
	return func() tea.Msg {
		uid := e.userID()
		changed, err := e.Analytics.RefreshGoals(uid, e.today())
		if err != nil {
			return goalsDataMsg{err: err}
		}
		goals, err := e.Store.ListGoalProgress(uid)
		return goalsDataMsg{goals: goals, changed: changed, err: err}
	}
}

func (g goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if g.formActive && g.form != nil {
		return g.updateForm(msg)
	}

	switch msg := msg.(type) {
	case goalsDataMsg:
		if msg.err != nil {
			return g, errStatus("Load goals", msg.err)
		}
		g.goals = msg.goals
		if g.cursor >= len(g.goals) {
			g.cursor = max(0, len(g.goals)-1)
		}
		if msg.changed > 0 {
			return g, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("%d goal(s) updated", msg.changed)}
			}
		}
		return g, nil

	case tea.KeyMsg:
		if g.confirmDelete {
			g.confirmDelete = false
			if msg.String() == "y" && len(g.goals) > 0 {
				goal := g.goals[g.cursor]
				if err := g.env.Store.DeleteGoal(g.env.userID(), goal.ID); err != nil {
					return g, errStatus("Delete goal", err)
				}
				return g, g.refresh()
			}
			return g, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if g.cursor > 0 {
				g.cursor--
			}
		case key.Matches(msg, keys.Down):
			if g.cursor < len(g.goals)-1 {
				g.cursor++
			}
		case key.Matches(msg, keys.New):
			return g.showForm()
		case key.Matches(msg, keys.Delete):
			if len(g.goals) > 0 {
				g.confirmDelete = true
			}
		}
	}
	return g, nil
}

func (g goalsModel) showForm() (goalsModel, tea.Cmd) {
	*g.formTitle = ""
	*g.formHours = "10"
	*g.formDays = "7"

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Goal").Placeholder("e.g. Finish linear algebra").Value(g.formTitle).Validate(validateRequired),
			huh.NewInput().Title("Target hours").Value(g.formHours).Validate(validatePositiveInt),
			huh.NewInput().Title("Days from today").Value(g.formDays).Validate(validatePositiveInt),
		),
	).WithShowHelp(true).WithShowErrors(true)

	g.formActive = true
	return g, g.form.Init()
}

func (g goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			g.formActive = false
			g.form = nil
			return g, nil
		}
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.formActive = false
		g.form = nil

		hours, _ := strconv.Atoi(strings.TrimSpace(*g.formHours))
		days, _ := strconv.Atoi(strings.TrimSpace(*g.formDays))
		start := g.env.today()
		end := start.AddDays(days - 1)
		if _, err := g.env.Store.CreateGoal(g.env.userID(), strings.TrimSpace(*g.formTitle), hours*60, start, end); err != nil {
			return g, errStatus("Create goal", err)
		}
		return g, g.refresh()
	}

	return g, cmd
}

func (g goalsModel) view() string {
	w := g.width - 4

	if g.formActive && g.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Goal"), "", g.form.View()),
		)
	}

	rows := []string{titleStyle.Render("Goals"), ""}
	if len(g.goals) == 0 {
		rows = append(rows, mutedStyle.Render("  No goals yet. Press n to set one."))
	}

	today := g.env.today()
	for i, goal := range g.goals {
		cursor := "  "
		style := normalItemStyle
		if i == g.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+goal.Title)+"  "+goalStatus(goal, today))
		rows = append(rows, fmt.Sprintf("    %s %3d%%  %s / %s  %s",
			progressBar(goal.Percent(), min(30, max(10, w-50))),
			goal.Percent(),
			formatMinutes(goal.Minutes),
			formatMinutes(goal.TargetMinutes),
			mutedStyle.Render(goal.StartDate.String()+" to "+goal.EndDate.String()),
		))
	}

	if g.confirmDelete && len(g.goals) > 0 {
		rows = append(rows, "", warningStyle.Render(fmt.Sprintf("  Delete %q? (y/n)", g.goals[g.cursor].Title)))
	}

	rows = append(rows, "", mutedStyle.Render("  n: new  d: delete  ↑/↓: navigate"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func goalStatus(g store.GoalProgress, today streak.Date) string {
	switch g.Status {
	case store.GoalCompleted:
		return successStyle.Render("✓ completed")
	case store.GoalExpired:
		return errorStyle.Render("✗ expired")
	}
	left := streak.DaysBetween(today, g.EndDate)
	if left == 0 {
		return warningStyle.Render("ends today")
	}
	return mutedStyle.Render(fmt.Sprintf("%d days left", left))
}
