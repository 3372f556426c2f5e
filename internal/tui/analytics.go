package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrackr/internal/analytics"
)

type analyticsModel struct {
	env    *env
	width  int
	height int

	overview analytics.Overview
	week     analytics.Week
	offset   int // weeks back from the current one

	chart barchart.Model
}

func newAnalyticsModel(e *env) analyticsModel {
	return analyticsModel{
		env:   e,
		chart: barchart.New(60, 12),
	}
}

func (r *analyticsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type analyticsDataMsg struct {
	overview analytics.Overview
	week     analytics.Week
	err      error
}

func (r analyticsModel) refresh() tea.Cmd {
	e := r.env
	offset := r.offset
	return func() tea.Msg {
		uid := e.userID()
		today := e.today()
		var msg analyticsDataMsg
		msg.overview, msg.err = e.Analytics.Overview(uid, today)
		if msg.err != nil {
			return msg
		}
		msg.week, msg.err = e.Analytics.Week(uid, today.AddDays(-7*offset))
		return msg
	}
}

func (r analyticsModel) update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsDataMsg:
		r.overview = msg.overview
		r.week = msg.week
		r.buildChart()
		if msg.err != nil {
			return r, errStatus("Load analytics", msg.err)
		}
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *analyticsModel) buildChart() {
	chartWidth := max(20, r.width-8)
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for i, day := range r.week.Days {
		var values []barchart.BarValue
		for _, sub := range r.week.Subjects {
			if sub.Minutes[i] == 0 {
				continue
			}
			values = append(values, barchart.BarValue{
				Name:  sub.Name,
				Value: float64(sub.Minutes[i]) / 60.0,
				Style: lipgloss.NewStyle().Foreground(lipgloss.Color(sub.Color)),
			})
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  day.Time().Format("Mon 02"),
			Values: values,
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r analyticsModel) view() string {
	w := r.width - 4
	o := r.overview

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statBox("Total", formatHours(o.TotalMinutes)),
		statBox("Sessions", fmt.Sprintf("%d", o.Sessions)),
		statBox("Average", formatMinutes(o.AverageMinutes)),
		statBox("Streak", fmt.Sprintf("%d / %d days", o.CurrentStreak, o.LongestStreak)),
		statBox("Goals met", fmt.Sprintf("%d", o.GoalsCompleted)),
	)

	dateLabel := ""
	if !r.week.Days[0].IsZero() {
		dateLabel = mutedStyle.Render(fmt.Sprintf("%s to %s",
			r.week.Days[0].Time().Format("Jan 02"), r.week.Days[6].Time().Format("Jan 02, 2006")))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Last 7 days"), "  ", dateLabel,
	)

	nav := mutedStyle.Render("  ←/→: previous/next week")

	return lipgloss.JoinVertical(lipgloss.Left,
		stats,
		panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				header, "", r.chart.View(), "", r.renderLegend(), "", r.renderSubjectTable(w), "", nav,
			),
		),
	)
}

func (r analyticsModel) renderSubjectTable(w int) string {
	if len(r.overview.Subjects) == 0 {
		return mutedStyle.Render("  No study time logged yet")
	}

	grand := 0
	for _, t := range r.overview.Subjects {
		grand += t.Minutes
	}

	rows := []string{
		mutedStyle.Render(fmt.Sprintf("  %-22s %10s %8s %6s", "Subject", "Time", "Sessions", "Share")),
		mutedStyle.Render("  " + strings.Repeat("─", min(w-6, 50))),
	}
	for _, t := range r.overview.Subjects {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(t.SubjectColor)).Render("●")
		share := 0
		if grand > 0 {
			share = t.Minutes * 100 / grand
		}
		rows = append(rows, fmt.Sprintf("  %s %-20s %10s %8d %5d%%",
			colorDot, t.SubjectName, formatMinutes(t.Minutes), t.SessionCount, share,
		))
	}
	return strings.Join(rows, "\n")
}

func (r analyticsModel) renderLegend() string {
	var items []string
	for _, sub := range r.week.Subjects {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(sub.Color)).Render("●")
		items = append(items, fmt.Sprintf("%s %s %s", dot, sub.Name, mutedStyle.Render(formatMinutes(sub.Total))))
	}
	if len(items) == 0 {
		return mutedStyle.Render("  No data for this week")
	}
	return "  " + strings.Join(items, "  ")
}
