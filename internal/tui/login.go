package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/sprout/internal/account"
)

type authMode int

const (
	authLogin authMode = iota
	authSignup
)

var authModeNames = []string{"Log in", "Create account"}

// authModel is the sign-in gate shown in front of views that need a user.
type authModel struct {
	acct   *account.Service
	width  int
	height int

	mode       authMode
	formActive bool
	form       *huh.Form
	errs       account.FieldErrors
	failure    string

	// Form values as pointers (survive value copies)
	name     *string
	email    *string
	password *string
	confirm  *string
}

type authFailedMsg struct {
	errs    account.FieldErrors
	failure string
}

func newAuthModel(acct *account.Service) authModel {
	n, e, p, c := "", "", "", ""
	return authModel{
		acct:     acct,
		name:     &n,
		email:    &e,
		password: &p,
		confirm:  &c,
	}
}

func (m *authModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// reset clears the form but keeps the chosen mode.
func (m authModel) reset() authModel {
	*m.name, *m.email, *m.password, *m.confirm = "", "", "", ""
	m.formActive = false
	m.form = nil
	m.errs = nil
	m.failure = ""
	return m
}

func (m authModel) update(msg tea.Msg) (authModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case authFailedMsg:
		m.errs = msg.errs
		m.failure = msg.failure
		// keep what was typed, except the secrets
		*m.password, *m.confirm = "", ""
		return m.showForm()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up), key.Matches(msg, keys.Left):
			m.mode = authLogin
		case key.Matches(msg, keys.Down), key.Matches(msg, keys.Right):
			m.mode = authSignup
		case key.Matches(msg, keys.Enter):
			m.errs = nil
			m.failure = ""
			return m.showForm()
		}
	}
	return m, nil
}

func (m authModel) showForm() (authModel, tea.Cmd) {
	fields := []huh.Field{
		huh.NewInput().Title("Email").Placeholder("you@example.com").Value(m.email),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(m.password),
	}
	if m.mode == authSignup {
		fields = append([]huh.Field{huh.NewInput().Title("Name").Value(m.name)}, fields...)
		fields = append(fields, huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(m.confirm))
	}

	m.form = huh.NewForm(
		huh.NewGroup(fields...).Title(authModeNames[m.mode]).Description(m.hint()),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m authModel) hint() string {
	if m.mode == authSignup {
		return "Nothing but your name and email is kept."
	}
	return "Your name is taken from the email address."
}

func (m authModel) updateForm(msg tea.Msg) (authModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.submit()
	}

	return m, cmd
}

func (m authModel) submit() tea.Cmd {
	acct := m.acct
	mode := m.mode
	name, email, password, confirm := *m.name, *m.email, *m.password, *m.confirm
	return func() tea.Msg {
		var err error
		if mode == authSignup {
			user, e := acct.Signup(name, email, password, confirm)
			if e == nil {
				return signedInMsg{user: user}
			}
			err = e
		} else {
			user, e := acct.Login(email, password)
			if e == nil {
				return signedInMsg{user: user}
			}
			err = e
		}

		var fe account.FieldErrors
		if errors.As(err, &fe) {
			return authFailedMsg{errs: fe}
		}
		return authFailedMsg{failure: err.Error()}
	}
}

func (m authModel) view(target string) string {
	w := m.width - 4
	title := titleStyle.Render("Sign in to continue to " + target)

	if m.formActive && m.form != nil {
		rows := []string{title, "", m.form.View()}
		rows = append(rows, m.renderErrors()...)
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	rows := []string{
		title,
		subtitleStyle.Render("Any well-formed email and a password of 6+ characters will do."),
		"",
	}
	for i, name := range authModeNames {
		rows = append(rows, cursorRow(authMode(i) == m.mode, name))
	}
	rows = append(rows, m.renderErrors()...)
	rows = append(rows, "", mutedStyle.Render("  enter: continue  esc: back to dashboard"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m authModel) renderErrors() []string {
	var rows []string
	for _, f := range []string{account.FieldName, account.FieldEmail, account.FieldPassword, account.FieldConfirmPassword} {
		if msg, ok := m.errs[f]; ok {
			rows = append(rows, errorStyle.Render("  ✗ "+msg))
		}
	}
	if m.failure != "" {
		rows = append(rows, errorStyle.Render("  ✗ "+m.failure))
	}
	if len(rows) > 0 {
		rows = append([]string{""}, rows...)
	}
	return rows
}
