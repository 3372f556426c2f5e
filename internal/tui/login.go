package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/studytrackr/internal/auth"
)

const (
	modeSignIn   = "signin"
	modeRegister = "register"
)

// loginModel gates the app until the user signs in or registers.
type loginModel struct {
	env    *env
	width  int
	height int

	form     *huh.Form
	mode     *string
	email    *string
	password *string
	name     *string
	err      string
}

func newLoginModel(e *env) loginModel {
	mode, email, password, name := modeSignIn, "", "", ""
	m := loginModel{
		env:      e,
		mode:     &mode,
		email:    &email,
		password: &password,
		name:     &name,
	}
	m.form = m.buildForm()
	return m
}

func (m loginModel) buildForm() *huh.Form {
	*m.password = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome").
				Options(
					huh.NewOption("Sign in", modeSignIn),
					huh.NewOption("Create account", modeRegister),
				).
				Value(m.mode),
			huh.NewInput().Title("Email").Placeholder("you@example.com").Value(m.email).Validate(validateRequired),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(m.password).Validate(validateRequired),
			huh.NewInput().Title("Display name").Placeholder("only used when creating an account").Value(m.name),
		),
	).WithShowHelp(false).WithShowErrors(true)
}

func (m *loginModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m loginModel) init() tea.Cmd {
	return m.form.Init()
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		err := m.submit()
		if err == nil {
			m.err = ""
			return m, func() tea.Msg { return signedInMsg{} }
		}
		m.err = loginError(err)
		m.form = m.buildForm()
		return m, m.form.Init()
	case huh.StateAborted:
		return m, tea.Quit
	}
	return m, cmd
}

func (m loginModel) submit() error {
	e := m.env
	email := strings.TrimSpace(*m.email)
	var err error
	if *m.mode == modeRegister {
		err = e.Auth.SignUp(e.Session, email, *m.password, strings.TrimSpace(*m.name))
	} else {
		err = e.Auth.SignIn(e.Session, email, *m.password)
	}
	if err != nil {
		return err
	}
	if err := e.Tokens.Save(e.Session.Token()); err != nil {
		e.Logger.Warn("save session file", zap.Error(err))
	}
	return nil
}

// loginError maps auth failures to something worth showing under the form.
func loginError(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Wrong email or password"
	case errors.Is(err, auth.ErrEmailTaken):
		return "That email already has an account"
	case errors.Is(err, auth.ErrInvalidEmail):
		return "That does not look like an email address"
	case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordTooLong), errors.Is(err, auth.ErrPasswordCommon):
		return err.Error()
	}
	return "Something went wrong: " + err.Error()
}

func (m loginModel) view() string {
	w := min(60, max(20, m.width-4))
	rows := []string{
		titleStyle.Render("Sign in to studytrackr"),
		subtitleStyle.Render("Your sessions, streaks and goals are kept per account."),
		"",
		m.form.View(),
	}
	if m.err != "" {
		rows = append(rows, "", errorStyle.Render(m.err))
	}
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
