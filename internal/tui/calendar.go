package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrackr/internal/streak"
)

// calendarModel draws the contribution calendar: one column per week, one
// row per weekday, coloured by the band each day falls in.
type calendarModel struct {
	env    *env
	width  int
	height int

	result    streak.Result
	weekStart time.Weekday
	failed    bool
}

func newCalendarModel(e *env) calendarModel {
	return calendarModel{env: e, weekStart: e.WeekStart}
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type calendarDataMsg struct {
	result    streak.Result
	weekStart time.Weekday
	err       error
}

func (c calendarModel) refresh() tea.Cmd {
	e := c.env
	return func() tea.Msg {
		res, err := e.Analytics.Contributions(e.userID(), e.today())
		return calendarDataMsg{result: res, weekStart: e.weekStart(), err: err}
	}
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	if msg, ok := msg.(calendarDataMsg); ok {
		c.result = msg.result
		c.weekStart = msg.weekStart
		c.failed = msg.err != nil
		if msg.err != nil {
			return c, errStatus("Load calendar", msg.err)
		}
	}
	return c, nil
}

// visibleWeeks trims the grid to the most recent weeks that fit the width.
func (c calendarModel) visibleWeeks(weeks [][]streak.Cell) [][]streak.Cell {
	fit := (c.width - 12) / 2
	if fit > 0 && len(weeks) > fit {
		return weeks[len(weeks)-fit:]
	}
	return weeks
}

func (c calendarModel) view() string {
	if c.width < 20 {
		return "Terminal too small"
	}
	contentWidth := c.width - 4
	levels := c.env.Analytics.Levels()

	weeks := c.visibleWeeks(c.result.Series.Weeks(c.weekStart))

	var grid []string
	grid = append(grid, "     "+monthRow(weeks))
	for day := 0; day < 7; day++ {
		var b strings.Builder
		label := time.Weekday((int(c.weekStart) + day) % 7).String()[:3]
		if day%2 == 1 {
			label = "   "
		}
		b.WriteString(mutedStyle.Render(label) + "  ")
		for _, week := range weeks {
			if day >= len(week) || week[day].Pad {
				b.WriteString("  ")
				continue
			}
			band := levels.Band(week[day].TotalMinutes)
			b.WriteString(levelStyle(band.Token).Render("■") + " ")
		}
		grid = append(grid, b.String())
	}

	var legend strings.Builder
	legend.WriteString(mutedStyle.Render("Less "))
	for _, band := range levels {
		legend.WriteString(levelStyle(band.Token).Render("■") + " ")
	}
	legend.WriteString(mutedStyle.Render("More"))

	s := c.result.Summary
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statBox("Current streak", fmt.Sprintf("%d days", s.CurrentStreak)),
		statBox("Longest streak", fmt.Sprintf("%d days", s.LongestStreak)),
		statBox("Active days", fmt.Sprintf("%d", c.result.Series.ActiveDays())),
		statBox("Total", formatHours(s.TotalMinutes)),
	)

	title := titleStyle.Render(fmt.Sprintf("Last %d days", len(c.result.Series)))
	if c.failed {
		title += "  " + errorStyle.Render("(could not load study history)")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(contentWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", strings.Join(grid, "\n"), "", legend.String(),
		)),
		stats,
	)
}

// monthRow labels the first week of each month above the grid.
func monthRow(weeks [][]streak.Cell) string {
	var b strings.Builder
	var last time.Month
	skip := 0
	for _, week := range weeks {
		if skip > 0 {
			skip--
			continue
		}
		m := week[len(week)-1].Date.Time().Month()
		if m != last {
			last = m
			b.WriteString(mutedStyle.Render(m.String()[:3]) + " ")
			skip = 1
			continue
		}
		b.WriteString("  ")
	}
	return b.String()
}

func statBox(label, value string) string {
	return panelStyle.Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(label),
		highlightStyle.Render(value),
	))
}
