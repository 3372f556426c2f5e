package tui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/studytrackr/internal/export"
	"github.com/sadopc/studytrackr/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	env    *env
	width  int
	height int

	activeView    viewState
	gen           int
	showHelp      bool
	exportPicking bool
	exportCursor  int

	login        loginModel
	dashboard    dashboardModel
	calendar     calendarModel
	analytics    analyticsModel
	pomodoro     pomodoroModel
	goals        goalsModel
	achievements achievementsModel
	subjects     subjectsModel
	settings     settingsModel

	help      help.Model
	status    string
	statusErr bool
}

// NewApp builds the root model. Without a signed-in session the login view
// is shown and every other view stays locked until sign-in succeeds.
func NewApp(d Deps) App {
	e := newEnv(d)
	h := help.New()
	h.ShowAll = false

	a := App{
		env:          e,
		activeView:   viewDashboard,
		login:        newLoginModel(e),
		dashboard:    newDashboardModel(e),
		calendar:     newCalendarModel(e),
		analytics:    newAnalyticsModel(e),
		pomodoro:     newPomodoroModel(e),
		goals:        newGoalsModel(e),
		achievements: newAchievementsModel(e),
		subjects:     newSubjectsModel(e),
		settings:     newSettingsModel(e),
		help:         h,
	}
	if !e.Session.SignedIn() {
		a.activeView = viewLogin
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.activeView == viewLogin {
		return tea.Batch(a.login.init(), tickCmd())
	}
	return tea.Batch(a.load(viewDashboard), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// load wraps the refresh command of a view so its result is tagged with the
// current generation.
func (a App) load(v viewState) tea.Cmd {
	var cmd tea.Cmd
	switch v {
	case viewDashboard:
		cmd = a.dashboard.loadData()
	case viewCalendar:
		cmd = a.calendar.refresh()
	case viewAnalytics:
		cmd = a.analytics.refresh()
	case viewPomodoro:
		cmd = a.pomodoro.refresh()
	case viewGoals:
		cmd = a.goals.refresh()
	case viewAchievements:
		cmd = a.achievements.refresh()
	case viewSubjects:
		cmd = a.subjects.refresh()
	case viewSettings:
		cmd = a.settings.refresh()
	}
	if cmd == nil {
		return nil
	}
	gen := a.gen
	return func() tea.Msg {
		return loadedMsg{view: v, gen: gen, msg: cmd()}
	}
}

// switchTo activates v and starts a fresh load generation.
func (a App) switchTo(v viewState) (App, tea.Cmd) {
	a.activeView = v
	a.gen++
	return a, a.load(v)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.login.setSize(a.width, contentHeight)
		a.dashboard.setSize(a.width, contentHeight)
		a.calendar.setSize(a.width, contentHeight)
		a.analytics.setSize(a.width, contentHeight)
		a.pomodoro.setSize(a.width, contentHeight)
		a.goals.setSize(a.width, contentHeight)
		a.achievements.setSize(a.width, contentHeight)
		a.subjects.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.activeView == viewLogin {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			return a.updateActiveView(msg)
		}

		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Logout):
			return a, a.signOut()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab):
			return a.switchTo(viewState((int(a.activeView) + 1) % tabCount))
		}
		for i, b := range tabKeys {
			if key.Matches(msg, b) {
				return a.switchTo(viewState(i))
			}
		}

	case loadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		return a.updateView(msg.view, msg.msg)

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// Always route ticks to dashboard timer
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case pomodoroTickMsg, pomodoroCompletedMsg:
		var cmd tea.Cmd
		a.pomodoro, cmd = a.pomodoro.update(msg)
		return a, cmd

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		if msg.isError {
			a.env.Logger.Warn("tui error", zap.String("status", msg.text))
		}
		return a, nil

	case timerStoppedMsg:
		a.setStatus(fmt.Sprintf("Session saved: %s", formatMinutes(msg.session.Minutes)))
		return a, a.syncAchievements()

	case timerStartedMsg:
		a.setStatus("Timer started")
		return a, nil

	case sessionLoggedMsg:
		a.setStatus(fmt.Sprintf("Logged %s", formatMinutes(msg.session.Minutes)))
		return a, a.syncAchievements()

	case achievementsUnlockedMsg:
		if len(msg.unlocked) > 0 {
			d := msg.unlocked[len(msg.unlocked)-1]
			a.setStatus(fmt.Sprintf("%s Achievement unlocked: %s", d.Kind.Icon(), d.Title))
		}
		return a, nil

	case signedInMsg:
		a.setStatus("Signed in as " + a.env.Session.User().DisplayName)
		return a.switchTo(viewDashboard)

	case signedOutMsg:
		a.activeView = viewLogin
		a.gen++
		a.dashboard = newDashboardModel(a.env)
		a.pomodoro = newPomodoroModel(a.env)
		a.login = newLoginModel(a.env)
		a.login.setSize(a.width, a.height-4)
		a.setStatus("Signed out")
		return a, a.login.init()

	case exportDoneMsg:
		a.setStatus("Exported to " + msg.path)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string) {
	a.status = text
	a.statusErr = false
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a.updateView(a.activeView, msg)
}

func (a App) updateView(v viewState, msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch v {
	case viewLogin:
		a.login, cmd = a.login.update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewAnalytics:
		a.analytics, cmd = a.analytics.update(msg)
	case viewPomodoro:
		a.pomodoro, cmd = a.pomodoro.update(msg)
	case viewGoals:
		a.goals, cmd = a.goals.update(msg)
	case viewAchievements:
		a.achievements, cmd = a.achievements.update(msg)
	case viewSubjects:
		a.subjects, cmd = a.subjects.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive || a.dashboard.picking
	case viewGoals:
		return a.goals.formActive
	case viewSubjects:
		return a.subjects.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

// signOut stops a running timer so its time is kept, then revokes the token.
func (a App) signOut() tea.Cmd {
	e := a.env
	timer := a.dashboard.timer
	return func() tea.Msg {
		if timer.running() {
			if _, err := timer.stop(); err != nil {
				e.Logger.Warn("stop timer on sign out", zap.Error(err))
			}
		}
		if err := e.Auth.SignOut(e.Session); err != nil {
			return statusMsg{text: fmt.Sprintf("Sign out: %v", err), isError: true}
		}
		if err := e.Tokens.Clear(); err != nil {
			e.Logger.Warn("clear session file", zap.Error(err))
		}
		return signedOutMsg{}
	}
}

// syncAchievements unlocks anything the latest change earned.
func (a App) syncAchievements() tea.Cmd {
	e := a.env
	return func() tea.Msg {
		uid := e.userID()
		res, err := e.Analytics.Contributions(uid, e.today())
		if err != nil {
			return nil
		}
		stats, err := e.Achievements.Gather(uid, res.Summary)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Achievements: %v", err), isError: true}
		}
		unlocked, err := e.Achievements.Sync(uid, stats)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Achievements: %v", err), isError: true}
		}
		return achievementsUnlockedMsg{unlocked: unlocked}
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewLogin:
		content = a.login.view()
	case viewDashboard:
		content = a.dashboard.view()
	case viewCalendar:
		content = a.calendar.view()
	case viewAnalytics:
		content = a.analytics.view()
	case viewPomodoro:
		content = a.pomodoro.view()
	case viewGoals:
		content = a.goals.view()
	case viewAchievements:
		content = a.achievements.view()
	case viewSubjects:
		content = a.subjects.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("studytrackr")

	if a.activeView == viewLogin {
		return headerStyle.Render(title)
	}

	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)
	if a.activeView == viewLogin {
		helpView = mutedStyle.Render("tab: next field  enter: submit  ctrl+c: quit")
	}

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Timer indicator in footer
	timerInfo := ""
	if a.dashboard.isRunning() {
		elapsed := a.dashboard.elapsed()
		timerInfo = successStyle.Render(" ● " + formatDuration(elapsed))
		if a.dashboard.isPaused() {
			timerInfo = warningStyle.Render(" ⏸ " + formatDuration(elapsed))
		}
	}
	if a.pomodoro.clock.Running() {
		timerInfo += accentStyle.Render(" 🍅 " + a.pomodoro.remaining())
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

// exportFormats is the order of the export picker rows.
var exportFormats = []string{"CSV", "JSON", "Contributions"}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export Format"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	e := a.env
	return func() tea.Msg {
		uid := e.userID()
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		dateStr := e.today().String()

		if exportFormats[format] == "Contributions" {
			res, err := e.Analytics.Contributions(uid, e.today())
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			var buf bytes.Buffer
			if err := export.ContributionsCSV(&buf, res.Series, e.Analytics.Levels()); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
			path := filepath.Join(home, fmt.Sprintf("studytrackr-contributions-%s.csv", dateStr))
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
			return exportDoneMsg{path: path}
		}

		sessions, err := e.Store.ListSessions(uid, store.SessionFilter{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		// Build subject lookup
		subjects := make(map[int64]*store.Subject)
		slist, _ := e.Store.ListSubjects(uid, true)
		for i := range slist {
			subjects[slist[i].ID] = &slist[i]
		}

		var path string
		if exportFormats[format] == "CSV" {
			path = filepath.Join(home, fmt.Sprintf("studytrackr-export-%s.csv", dateStr))
			if err := export.ToCSV(sessions, subjects, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("studytrackr-export-%s.json", dateStr))
			if err := export.ToJSON(sessions, subjects, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
