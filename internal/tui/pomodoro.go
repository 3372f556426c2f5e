package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/studytrackr/internal/pomodoro"
	"github.com/sadopc/studytrackr/internal/store"
)

// pomodoroTickMsg drives the clock. Each start, pause, reset and phase
// boundary bumps the model's tag, so ticks scheduled before it are dropped
// and at most one tick chain is ever live.
type pomodoroTickMsg struct {
	tag int
}

// pomodoroCompletedMsg reports a finished phase once it has been recorded.
type pomodoroCompletedMsg struct {
	transition pomodoro.Transition
	session    *store.StudySession
	err        error
}

type pomodoroModel struct {
	env    *env
	width  int
	height int

	clock *pomodoro.Clock
	tag   int

	subjects   []store.Subject
	subjectIdx int // 0 is Uncategorized, i+1 is subjects[i]

	todayFocus     int
	todayFocusSecs int64
}

func newPomodoroModel(e *env) pomodoroModel {
	return pomodoroModel{
		env:   e,
		clock: pomodoro.NewDefaultClock(),
	}
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type pomodoroDataMsg struct {
	subjects   []store.Subject
	focusSecs  int
	breakSecs  int
	todayFocus int
	todaySecs  int64
}

func (p pomodoroModel) refresh() tea.Cmd {
	e := p.env
	return func() tea.Msg {
		uid := e.userID()
		msg := pomodoroDataMsg{
			focusSecs: e.Store.GetIntSetting(e.userID(), "pomodoro_focus", pomodoro.FocusDuration),
			breakSecs: e.Store.GetIntSetting(e.userID(), "pomodoro_break", pomodoro.BreakDuration),
		}
		msg.subjects, _ = e.Store.ListSubjects(uid, false)
		start := e.today().In(time.Local)
		msg.todayFocus, msg.todaySecs, _ = e.Store.PomodoroStats(uid, pomodoro.Focus.Key(), start, start.AddDate(0, 0, 1))
		return msg
	}
}

// fresh reports whether the clock sits untouched at the start of a focus
// phase, where new durations can be applied without losing progress.
func (p pomodoroModel) fresh() bool {
	s := p.clock.State()
	return !s.Running && s.Phase == pomodoro.Focus && s.Remaining == p.clock.FocusDuration()
}

func (p pomodoroModel) subjectID() *int64 {
	if p.subjectIdx == 0 || p.subjectIdx > len(p.subjects) {
		return nil
	}
	id := p.subjects[p.subjectIdx-1].ID
	return &id
}

func (p pomodoroModel) subjectName() string {
	if p.subjectIdx == 0 || p.subjectIdx > len(p.subjects) {
		return "Uncategorized"
	}
	return p.subjects[p.subjectIdx-1].Name
}

func (p pomodoroModel) remaining() string {
	return pomodoro.Format(p.clock.Remaining())
}

func (p pomodoroModel) tickCmd() tea.Cmd {
	tag := p.tag
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return pomodoroTickMsg{tag: tag}
	})
}

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	switch msg := msg.(type) {
	case pomodoroDataMsg:
		p.subjects = msg.subjects
		if p.subjectIdx > len(p.subjects) {
			p.subjectIdx = 0
		}
		p.todayFocus = msg.todayFocus
		p.todayFocusSecs = msg.todaySecs
		if p.fresh() && (msg.focusSecs != p.clock.FocusDuration() || msg.breakSecs != p.clock.BreakDuration()) {
			p.clock = pomodoro.NewClock(msg.focusSecs, msg.breakSecs)
		}
		return p, nil

	case pomodoroTickMsg:
		if msg.tag != p.tag {
			return p, nil
		}
		tr, done := p.clock.Tick()
		if done {
			p.tag++
			return p, p.record(tr)
		}
		if p.clock.Running() {
			return p, p.tickCmd()
		}
		return p, nil

	case pomodoroCompletedMsg:
		if msg.err != nil {
			return p, errStatus("Record pomodoro", msg.err)
		}
		if msg.transition.From == pomodoro.Focus {
			p.todayFocus++
			p.todayFocusSecs += int64(msg.transition.Completed)
			if msg.session != nil {
				ss := msg.session
				return p, func() tea.Msg { return sessionLoggedMsg{session: ss} }
			}
			return p, func() tea.Msg { return statusMsg{text: "Focus block done. Take a break! \a"} }
		}
		return p, func() tea.Msg { return statusMsg{text: "Break over. Ready to focus \a"} }

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			return p.start()
		case key.Matches(msg, keys.Pause):
			if p.clock.Running() {
				p.clock.Pause()
				p.tag++
				return p, nil
			}
			return p.start()
		case key.Matches(msg, keys.Stop):
			p.clock.Pause()
			p.tag++
		case key.Matches(msg, keys.Reset):
			p.clock.Reset()
			p.tag++
		case key.Matches(msg, keys.Left):
			if !p.clock.Running() {
				p.subjectIdx = (p.subjectIdx + len(p.subjects)) % (len(p.subjects) + 1)
			}
		case key.Matches(msg, keys.Right):
			if !p.clock.Running() {
				p.subjectIdx = (p.subjectIdx + 1) % (len(p.subjects) + 1)
			}
		}
	}
	return p, nil
}

func (p pomodoroModel) start() (pomodoroModel, tea.Cmd) {
	if !p.clock.Start() {
		return p, nil
	}
	p.tag++
	return p, p.tickCmd()
}

// record stores the finished phase and, for focus, logs its minutes as a
// study session against the selected subject.
func (p pomodoroModel) record(tr pomodoro.Transition) tea.Cmd {
	e := p.env
	subjectID := p.subjectID()
	return func() tea.Msg {
		uid := e.userID()
		if _, err := e.Store.RecordPomodoro(uid, tr.From.Key(), tr.Completed); err != nil {
			return pomodoroCompletedMsg{transition: tr, err: err}
		}
		msg := pomodoroCompletedMsg{transition: tr}
		if mins := tr.Completed / 60; tr.From == pomodoro.Focus && mins > 0 {
			ss, err := e.Store.LogSession(uid, subjectID, e.today(), mins, store.SourcePomodoro, "")
			if err != nil {
				e.Logger.Warn("log pomodoro session", zap.Error(err))
			}
			msg.session = ss
		}
		return msg
	}
}

func (p pomodoroModel) view() string {
	w := p.width - 4
	s := p.clock.State()

	phaseStyle := accentStyle
	if s.Phase == pomodoro.Break {
		phaseStyle = successStyle
	}

	timeDisplay := phaseStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(pomodoro.Format(s.Remaining))
	label := strings.ToUpper(s.Phase.String())
	if !s.Running {
		if p.fresh() {
			label = "READY"
		} else {
			label += " (PAUSED)"
		}
	}

	bar := progressBar(int(p.clock.Progress()*100), min(40, max(10, w-20)))

	subject := fmt.Sprintf("Subject: %s", highlightStyle.Render(p.subjectName()))
	if !s.Running && len(p.subjects) > 0 {
		subject += mutedStyle.Render("  ←/→ to change")
	}

	today := mutedStyle.Render(fmt.Sprintf("Today: %d focus blocks, %s",
		p.todayFocus, formatMinutes(int(p.todayFocusSecs/60))))

	var controls string
	switch {
	case s.Running:
		controls = mutedStyle.Render("space: pause  r: reset")
	case p.fresh():
		controls = mutedStyle.Render("s: start  ←/→: subject")
	default:
		controls = mutedStyle.Render("space: resume  r: reset")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Pomodoro"),
		"",
		timeDisplay,
		phaseStyle.Bold(true).Render(label),
		"",
		bar,
		"",
		subject,
		today,
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}
