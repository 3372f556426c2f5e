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
)

type settingsModel struct {
	env    *env
	width  int
	height int

	settings   []store.Setting
	weekStart  string
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	pomodoroFocus *string
	pomodoroBreak *string
	dailyGoal     *string
	weekStartVal  *string
}

func newSettingsModel(e *env) settingsModel {
	pf, pb, dg, ws := "", "", "", ""
	return settingsModel{
		env:           e,
		pomodoroFocus: &pf,
		pomodoroBreak: &pb,
		dailyGoal:     &dg,
		weekStartVal:  &ws,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings  []store.Setting
	weekStart string
}

func (s settingsModel) refresh() tea.Cmd {
	e := s.env
	return func() tea.Msg {
		settings, _ := e.Store.GetAllSettings(e.userID())
		return settingsDataMsg{settings: settings, weekStart: strings.ToLower(e.weekStart().String())}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		s.weekStart = msg.weekStart
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.pomodoroFocus = secsToMin(s.getVal("pomodoro_focus", "1500"))
	*s.pomodoroBreak = secsToMin(s.getVal("pomodoro_break", "300"))
	*s.dailyGoal = s.getVal("daily_goal", "120")
	*s.weekStartVal = s.weekStart
	if *s.weekStartVal == "" {
		*s.weekStartVal = "monday"
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus block (min)").Value(s.pomodoroFocus).Validate(validatePositiveInt),
			huh.NewInput().Title("Break (min)").Value(s.pomodoroBreak).Validate(validatePositiveInt),
		).Title("Pomodoro"),
		huh.NewGroup(
			huh.NewInput().Title("Daily goal (min)").Value(s.dailyGoal).Validate(validatePositiveInt),
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(s.weekStartVal),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if err := s.saveSettings(); err != nil {
			return s, errStatus("Save settings", err)
		}
		return s, tea.Batch(s.refresh(), func() tea.Msg { return statusMsg{text: "Settings saved"} })
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	values := [][2]string{
		{"pomodoro_focus", minToSecs(*s.pomodoroFocus)},
		{"pomodoro_break", minToSecs(*s.pomodoroBreak)},
		{"daily_goal", strings.TrimSpace(*s.dailyGoal)},
		{"week_start", *s.weekStartVal},
	}
	for _, kv := range values {
		if err := s.env.Store.SetSetting(s.env.userID(), kv[0], kv[1]); err != nil {
			return fmt.Errorf("%s: %w", kv[0], err)
		}
	}
	return nil
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.env.Store.GetSetting(s.env.userID(), k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	rows := []string{titleStyle.Render("Settings"), ""}

	if u := s.env.Session.User(); u != nil {
		rows = append(rows,
			fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render("account"), highlightStyle.Render(u.DisplayName+" <"+u.Email+">")),
		)
	}

	for _, setting := range s.settings {
		if setting.Key == "week_start" {
			continue
		}
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}
	if s.weekStart != "" {
		rows = append(rows, fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render("week_start"), highlightStyle.Render(s.weekStart)))
	}

	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings, ctrl+l to sign out"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case "pomodoro_focus", "pomodoro_break":
		if secs, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d min", secs/60)
		}
	case "daily_goal":
		if mins, err := strconv.Atoi(v); err == nil {
			return formatMinutes(mins)
		}
	}
	return v
}

func secsToMin(s string) string {
	if secs, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(secs / 60)
	}
	return s
}

func minToSecs(s string) string {
	if mins, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return strconv.Itoa(mins * 60)
	}
	return s
}
