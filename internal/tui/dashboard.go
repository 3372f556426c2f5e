package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrackr/internal/store"
	"github.com/sadopc/studytrackr/internal/streak"
)

type dashboardModel struct {
	env    *env
	timer  timerModel
	width  int
	height int

	todayTotal     int
	dailyGoal      int
	todaySummary   []store.DailySummary
	recentSessions []store.StudySession
	tasks          []store.Task
	subjects       []store.Subject
	taskCursor     int

	// Subject picker state
	picking      bool
	pickerCursor int

	formActive bool
	form       *huh.Form
	formType   string // "log", "task"
	formA      *string
	formB      *string
	formC      *string
	formSubj   *int64
}

func newDashboardModel(e *env) dashboardModel {
	a, b, c := "", "", ""
	var subj int64
	return dashboardModel{
		env:      e,
		timer:    newTimerModel(e),
		formA:    &a,
		formB:    &b,
		formC:    &c,
		formSubj: &subj,
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) isRunning() bool { return d.timer.running() }
func (d dashboardModel) isPaused() bool  { return d.timer.paused() }
func (d dashboardModel) elapsed() time.Duration {
	return d.timer.currentElapsed()
}

type dashboardDataMsg struct {
	todayTotal     int
	dailyGoal      int
	todaySummary   []store.DailySummary
	recentSessions []store.StudySession
	tasks          []store.Task
	subjects       []store.Subject
	running        *store.StudySession
}

func (d dashboardModel) loadData() tea.Cmd {
	e := d.env
	return func() tea.Msg {
		uid := e.userID()
		today := e.today()
		msg := dashboardDataMsg{dailyGoal: e.Store.GetIntSetting(e.userID(), "daily_goal", 120)}
		msg.todayTotal, _ = e.Store.TodayTotal(uid, today)
		msg.todaySummary, _ = e.Store.DailySubjectSummary(uid, today, today)
		msg.recentSessions, _ = e.Store.ListSessions(uid, store.SessionFilter{Limit: 5})
		msg.tasks, _ = e.Store.ListUpcomingTasks(uid, 5)
		msg.subjects, _ = e.Store.ListSubjects(uid, false)
		msg.running, _ = e.Store.GetRunningSession(uid)
		return msg
	}
}

func (d dashboardModel) subjectName(id *int64) string {
	if id == nil {
		return "Uncategorized"
	}
	for _, s := range d.subjects {
		if s.ID == *id {
			return s.Name
		}
	}
	return "?"
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.todayTotal = msg.todayTotal
		d.dailyGoal = msg.dailyGoal
		d.todaySummary = msg.todaySummary
		d.recentSessions = msg.recentSessions
		d.tasks = msg.tasks
		d.subjects = msg.subjects
		if d.taskCursor >= len(d.tasks) {
			d.taskCursor = max(0, len(d.tasks)-1)
		}
		if msg.running != nil && !d.timer.running() {
			d.timer.adopt(msg.running, d.subjectName(msg.running.SubjectID))
		}
		return d, nil

	case tickMsg:
		d.timer.tick()
		return d, nil

	case tea.KeyMsg:
		d.timer.recordActivity()

		if d.picking {
			return d.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			if d.timer.running() {
				return d, nil
			}
			if len(d.subjects) == 0 {
				return d.startTimer(nil, "Uncategorized")
			}
			d.picking = true
			d.pickerCursor = 0
			return d, nil

		case key.Matches(msg, keys.Stop):
			return d.stopTimer()

		case key.Matches(msg, keys.Pause):
			d.timer.toggle()
			return d, nil

		case key.Matches(msg, keys.Log):
			return d.showLogForm()

		case key.Matches(msg, keys.New):
			return d.showTaskForm()

		case key.Matches(msg, keys.Up):
			if d.taskCursor > 0 {
				d.taskCursor--
			}
		case key.Matches(msg, keys.Down):
			if d.taskCursor < len(d.tasks)-1 {
				d.taskCursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(d.tasks) > 0 {
				t := d.tasks[d.taskCursor]
				if err := d.env.Store.CompleteTask(d.env.userID(), t.ID); err != nil {
					return d, errStatus("Complete task", err)
				}
				return d, tea.Batch(d.loadData(), func() tea.Msg {
					return statusMsg{text: "Completed " + t.Title}
				})
			}
		}
	}
	return d, nil
}

// pickerLen is the number of picker rows: every subject plus Uncategorized.
func (d dashboardModel) pickerLen() int { return len(d.subjects) + 1 }

func (d dashboardModel) updatePicker(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if d.pickerCursor > 0 {
			d.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if d.pickerCursor < d.pickerLen()-1 {
			d.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		d.picking = false
		if d.pickerCursor == len(d.subjects) {
			return d.startTimer(nil, "Uncategorized")
		}
		s := d.subjects[d.pickerCursor]
		id := s.ID
		return d.startTimer(&id, s.Name)
	case key.Matches(msg, keys.Back):
		d.picking = false
	}
	return d, nil
}

func (d dashboardModel) startTimer(subjectID *int64, name string) (dashboardModel, tea.Cmd) {
	ss, err := d.timer.start(subjectID, name)
	if err != nil {
		return d, errStatus("Start session", err)
	}
	return d, func() tea.Msg { return timerStartedMsg{session: ss} }
}

func (d dashboardModel) stopTimer() (dashboardModel, tea.Cmd) {
	ss, err := d.timer.stop()
	if err != nil {
		return d, errStatus("Stop session", err)
	}
	if ss == nil {
		return d, nil
	}
	return d, tea.Batch(
		d.loadData(),
		func() tea.Msg { return timerStoppedMsg{session: ss} },
	)
}

func (d dashboardModel) subjectOptions() []huh.Option[int64] {
	opts := []huh.Option[int64]{huh.NewOption("Uncategorized", int64(0))}
	for _, s := range d.subjects {
		opts = append(opts, huh.NewOption(s.Name, s.ID))
	}
	return opts
}

func (d dashboardModel) showLogForm() (dashboardModel, tea.Cmd) {
	*d.formA = ""
	*d.formB = ""
	*d.formC = ""
	*d.formSubj = 0
	d.formType = "log"

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Subject").Options(d.subjectOptions()...).Value(d.formSubj),
			huh.NewInput().Title("Minutes").Value(d.formA).Validate(validatePositiveInt),
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD (empty = today)").Value(d.formB).Validate(validateOptionalDate),
			huh.NewInput().Title("Notes").Value(d.formC),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) showTaskForm() (dashboardModel, tea.Cmd) {
	*d.formA = ""
	*d.formB = ""
	*d.formC = "2"
	*d.formSubj = 0
	d.formType = "task"

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(d.formA).Validate(validateRequired),
			huh.NewSelect[int64]().Title("Subject").Options(d.subjectOptions()...).Value(d.formSubj),
			huh.NewInput().Title("Due date").Placeholder("YYYY-MM-DD (optional)").Value(d.formB).Validate(validateOptionalDate),
			huh.NewSelect[string]().Title("Priority").Options(
				huh.NewOption("High", "1"),
				huh.NewOption("Normal", "2"),
				huh.NewOption("Low", "3"),
			).Value(d.formC),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		d.form = nil
		var subjectID *int64
		if *d.formSubj != 0 {
			id := *d.formSubj
			subjectID = &id
		}
		uid := d.env.userID()

		switch d.formType {
		case "log":
			mins, _ := strconv.Atoi(strings.TrimSpace(*d.formA))
			day := d.env.today()
			if v := strings.TrimSpace(*d.formB); v != "" {
				day, _ = streak.ParseDate(v)
			}
			ss, err := d.env.Store.LogSession(uid, subjectID, day, mins, store.SourceManual, *d.formC)
			if err != nil {
				return d, errStatus("Log session", err)
			}
			return d, tea.Batch(d.loadData(), func() tea.Msg { return sessionLoggedMsg{session: ss} })
		case "task":
			var due *streak.Date
			if v := strings.TrimSpace(*d.formB); v != "" {
				if parsed, err := streak.ParseDate(v); err == nil {
					due = &parsed
				}
			}
			prio, _ := strconv.Atoi(*d.formC)
			if _, err := d.env.Store.CreateTask(uid, subjectID, strings.TrimSpace(*d.formA), "", due, prio); err != nil {
				return d, errStatus("Add task", err)
			}
			return d, d.loadData()
		}
	}

	return d, cmd
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	if d.formActive && d.form != nil {
		title := "Log Study Session"
		if d.formType == "task" {
			title = "New Task"
		}
		return panelStyle.Width(contentWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", d.form.View()),
		)
	}

	timerPanel := d.renderTimerPanel(contentWidth)
	summaryPanel := d.renderSummaryPanel(contentWidth)

	var bottom string
	if d.picking {
		bottom = d.renderSubjectPicker(contentWidth)
	} else {
		half := contentWidth / 2
		bottom = lipgloss.JoinHorizontal(lipgloss.Top,
			d.renderTasksPanel(half),
			d.renderRecentPanel(contentWidth-half),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, summaryPanel, bottom)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	if d.timer.running() {
		timeStr := formatDuration(d.timer.currentElapsed())

		var timeDisplay, indicator string
		if d.timer.paused() {
			timeDisplay = timerPausedStyle.Width(w - 6).Render(timeStr)
			if d.timer.idle() {
				indicator = warningStyle.Render("⏸  IDLE")
			} else {
				indicator = warningStyle.Render("⏸  PAUSED")
			}
		} else {
			timeDisplay = timerRunningStyle.Width(w - 6).Render(timeStr)
			indicator = successStyle.Render("●  STUDYING")
		}

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			highlightStyle.Render(d.timer.subjectName),
		)
		return activePanelStyle.Width(w).Render(content)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		timerStyle.Width(w-6).Render("00:00:00"),
		mutedStyle.Render("■  STOPPED"),
		mutedStyle.Render("Press s to start studying, l to log a past session"),
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderSummaryPanel(w int) string {
	header := fmt.Sprintf("%s  %s", titleStyle.Render("Today"), highlightStyle.Render(formatMinutes(d.todayTotal)))
	if d.dailyGoal > 0 {
		pct := min(100, d.todayTotal*100/d.dailyGoal)
		header += mutedStyle.Render(fmt.Sprintf("  %s %d%% of %s goal", progressBar(pct, 20), pct, formatMinutes(d.dailyGoal)))
	}

	if len(d.todaySummary) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("No study sessions today"),
		))
	}

	rows := []string{header}
	for _, s := range d.todaySummary {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.SubjectColor)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-20s %8s  (%d sessions)",
			colorDot, s.SubjectName, formatMinutes(s.Minutes), s.SessionCount))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderTasksPanel(w int) string {
	rows := []string{titleStyle.Render("Upcoming Tasks")}
	if len(d.tasks) == 0 {
		rows = append(rows, mutedStyle.Render("No tasks. Press n to add one."))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}
	today := d.env.today()
	for i, t := range d.tasks {
		cursor := "  "
		style := normalItemStyle
		if i == d.taskCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.String()
			if t.DueDate.Before(today) {
				due = errorStyle.Render(due)
			} else {
				due = mutedStyle.Render(due)
			}
		}
		rows = append(rows, style.Render(cursor+priorityMark(t.Priority)+" "+t.Title)+" "+due)
	}
	rows = append(rows, "", mutedStyle.Render("  enter: complete  n: new"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func priorityMark(p int) string {
	switch p {
	case 1:
		return "!"
	case 3:
		return "·"
	default:
		return "-"
	}
}

func (d dashboardModel) renderRecentPanel(w int) string {
	rows := []string{titleStyle.Render("Recent Sessions")}
	if len(d.recentSessions) == 0 {
		rows = append(rows, mutedStyle.Render("No sessions yet"))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}
	for _, ss := range d.recentSessions {
		status := "✓"
		dur := formatMinutes(ss.Minutes)
		if ss.EndTime == nil {
			status = "●"
			dur = "running"
		}
		rows = append(rows, fmt.Sprintf("  %s %s  %-14s %s",
			status, ss.StudyDate.Time().Format("Jan 02"), d.subjectName(ss.SubjectID), dur))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderSubjectPicker(w int) string {
	rows := []string{titleStyle.Render("Select Subject")}
	for i := 0; i < d.pickerLen(); i++ {
		name, color := "Uncategorized", "#6B7280"
		if i < len(d.subjects) {
			name, color = d.subjects[i].Name, d.subjects[i].Color
		}
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == d.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, colorDot, name)))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: select  esc: cancel"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// progressBar renders pct (0-100) as a bar of the given width.
func progressBar(pct, width int) string {
	pct = max(0, min(100, pct))
	filled := pct * width / 100
	return successStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := streak.ParseDate(strings.TrimSpace(s))
	return err
}
