package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrackr/internal/store"
)

var subjectColors = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

type subjectsModel struct {
	env    *env
	width  int
	height int

	subjects        []store.Subject
	minutes         map[int64]int
	sessions        []store.StudySession
	cursor          int
	sessionCursor   int
	showArchived    bool
	viewingSessions bool // true = viewing sessions of selected subject

	formActive bool
	form       *huh.Form
	formType   string // "subject", "edit_subject", "notes"

	// Form field pointers (survive value copies)
	formName  *string
	formColor *string

	editingID int64
}

func newSubjectsModel(e *env) subjectsModel {
	name, color := "", subjectColors[0]
	return subjectsModel{
		env:       e,
		formName:  &name,
		formColor: &color,
	}
}

func (p *subjectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type subjectsDataMsg struct {
	subjects []store.Subject
	minutes  map[int64]int
}

type subjectSessionsMsg struct {
	sessions []store.StudySession
}

func (p subjectsModel) refresh() tea.Cmd {
	e := p.env
	archived := p.showArchived
	return func() tea.Msg {
		uid := e.userID()
		subjects, _ := e.Store.ListSubjects(uid, archived)
		minutes := make(map[int64]int)
		totals, _ := e.Store.SubjectTotals(uid)
		for _, t := range totals {
			if t.SubjectID != nil {
				minutes[*t.SubjectID] = t.Minutes
			}
		}
		return subjectsDataMsg{subjects: subjects, minutes: minutes}
	}
}

func (p subjectsModel) refreshSessions() tea.Cmd {
	if p.cursor >= len(p.subjects) {
		return nil
	}
	e := p.env
	sid := p.subjects[p.cursor].ID
	return func() tea.Msg {
		sessions, _ := e.Store.ListSessions(e.userID(), store.SessionFilter{SubjectID: &sid, Limit: 50})
		return subjectSessionsMsg{sessions: sessions}
	}
}

func (p subjectsModel) update(msg tea.Msg) (subjectsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case subjectsDataMsg:
		p.subjects = msg.subjects
		p.minutes = msg.minutes
		if p.cursor >= len(p.subjects) {
			p.cursor = max(0, len(p.subjects)-1)
		}
		return p, nil

	case subjectSessionsMsg:
		p.sessions = msg.sessions
		if p.sessionCursor >= len(p.sessions) {
			p.sessionCursor = max(0, len(p.sessions)-1)
		}
		return p, nil

	case tea.KeyMsg:
		if p.viewingSessions {
			return p.updateSessionView(msg)
		}
		return p.updateSubjectList(msg)
	}
	return p, nil
}

func (p subjectsModel) updateSubjectList(msg tea.KeyMsg) (subjectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.subjects)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(p.subjects) > 0 {
			p.viewingSessions = true
			p.sessionCursor = 0
			return p, p.refreshSessions()
		}
	case key.Matches(msg, keys.New):
		return p.showSubjectForm(nil)
	case key.Matches(msg, keys.Edit):
		if len(p.subjects) > 0 {
			s := p.subjects[p.cursor]
			return p.showSubjectForm(&s)
		}
	case key.Matches(msg, keys.Delete):
		if len(p.subjects) > 0 {
			s := p.subjects[p.cursor]
			if err := p.env.Store.ArchiveSubject(p.env.userID(), s.ID); err != nil {
				return p, errStatus("Archive subject", err)
			}
			return p, p.refresh()
		}
	case key.Matches(msg, keys.Archived):
		p.showArchived = !p.showArchived
		p.cursor = 0
		return p, p.refresh()
	}
	return p, nil
}

func (p subjectsModel) updateSessionView(msg tea.KeyMsg) (subjectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		p.viewingSessions = false
		return p, p.refresh()
	case key.Matches(msg, keys.Up):
		if p.sessionCursor > 0 {
			p.sessionCursor--
		}
	case key.Matches(msg, keys.Down):
		if p.sessionCursor < len(p.sessions)-1 {
			p.sessionCursor++
		}
	case key.Matches(msg, keys.Edit):
		if len(p.sessions) > 0 {
			return p.showNotesForm(p.sessions[p.sessionCursor])
		}
	case key.Matches(msg, keys.Delete):
		if len(p.sessions) > 0 {
			ss := p.sessions[p.sessionCursor]
			if ss.EndTime == nil {
				return p, func() tea.Msg { return statusMsg{text: "Stop the running session first", isError: true} }
			}
			if err := p.env.Store.DeleteSession(p.env.userID(), ss.ID); err != nil {
				return p, errStatus("Delete session", err)
			}
			return p, p.refreshSessions()
		}
	}
	return p, nil
}

func (p subjectsModel) showSubjectForm(existing *store.Subject) (subjectsModel, tea.Cmd) {
	*p.formName = ""
	*p.formColor = subjectColors[0]
	p.formType = "subject"
	if existing != nil {
		*p.formName = existing.Name
		*p.formColor = existing.Color
		p.formType = "edit_subject"
		p.editingID = existing.ID
	}

	colorOptions := make([]huh.Option[string], len(subjectColors))
	for i, c := range subjectColors {
		colorOptions[i] = huh.NewOption(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("●")+" "+c, c)
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Subject Name").Value(p.formName).Validate(validateRequired),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(p.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p subjectsModel) showNotesForm(ss store.StudySession) (subjectsModel, tea.Cmd) {
	*p.formName = ss.Notes
	p.formType = "notes"
	p.editingID = ss.ID

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Notes").Value(p.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p subjectsModel) updateForm(msg tea.Msg) (subjectsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		p.form = nil
		uid := p.env.userID()
		name := strings.TrimSpace(*p.formName)
		switch p.formType {
		case "subject":
			if _, err := p.env.Store.CreateSubject(uid, name, *p.formColor); err != nil {
				return p, errStatus("Create subject", err)
			}
			return p, p.refresh()
		case "edit_subject":
			if err := p.env.Store.UpdateSubject(uid, p.editingID, name, *p.formColor); err != nil {
				return p, errStatus("Update subject", err)
			}
			return p, p.refresh()
		case "notes":
			if err := p.env.Store.UpdateSessionNotes(uid, p.editingID, strings.TrimSpace(*p.formName)); err != nil {
				return p, errStatus("Update notes", err)
			}
			return p, p.refreshSessions()
		}
	}

	return p, cmd
}

func (p subjectsModel) view() string {
	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Subject")
		switch p.formType {
		case "edit_subject":
			title = titleStyle.Render("Edit Subject")
		case "notes":
			title = titleStyle.Render("Session Notes")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(p.width - 4).Render(content)
	}

	if p.viewingSessions && p.cursor < len(p.subjects) {
		return p.renderSessionView()
	}
	return p.renderSubjectList()
}

func (p subjectsModel) renderSubjectList() string {
	w := p.width - 4
	title := titleStyle.Render("Subjects")
	if p.showArchived {
		title += mutedStyle.Render("  (including archived)")
	}

	if len(p.subjects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No subjects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{title, ""}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %10s", "", "Name", "Studied")))

	for i, s := range p.subjects {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		if s.Archived {
			style = lockedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-24s %10s", cursor, colorDot, s.Name, formatMinutes(p.minutes[s.ID]))))
	}

	rows = append(rows, "", mutedStyle.Render("  n: new  e: edit  d: archive  a: toggle archived  enter: sessions"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p subjectsModel) renderSessionView() string {
	w := p.width - 4
	s := p.subjects[p.cursor]
	colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("●")
	title := titleStyle.Render(fmt.Sprintf("%s %s: sessions", colorDot, s.Name))

	if len(p.sessions) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No sessions logged for this subject."),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{title, ""}
	for i, ss := range p.sessions {
		cursor := "  "
		style := normalItemStyle
		if i == p.sessionCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		dur := formatMinutes(ss.Minutes)
		if ss.EndTime == nil {
			dur = "running"
		}
		line := style.Render(fmt.Sprintf("%s%s  %8s  %-8s", cursor, ss.StudyDate, dur, ss.Source))
		if ss.Notes != "" {
			line += mutedStyle.Render("  " + ss.Notes)
		}
		rows = append(rows, line)
	}

	rows = append(rows, "", mutedStyle.Render("  e: notes  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
