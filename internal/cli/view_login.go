package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pocdesk/internal/api"
	"pocdesk/internal/cli/formatter"
)

// loginDoneMsg signals the outcome of an authentication attempt.
type loginDoneMsg struct {
	result *api.LoginResult
	err    error
}

// loginView collects credentials and establishes the session. It is the only
// reachable view while no session exists.
type loginView struct {
	state      *SharedState
	username   textinput.Model
	password   textinput.Model
	focusIdx   int
	submitting bool
	notice     string
	errText    string
}

func newLoginView(state *SharedState, notice string) *loginView {
	user := textinput.New()
	user.Placeholder = "employee id or email"
	user.CharLimit = 100
	user.Width = 40
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 100
	pass.Width = 40

	return &loginView{
		state:    state,
		username: user,
		password: pass,
		notice:   notice,
	}
}

func (v *loginView) ID() ViewID          { return ViewLogin }
func (v *loginView) Title() string       { return "Login" }
func (v *loginView) CapturesInput() bool { return true }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in")),
	}
}

func (v *loginView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *loginView) submit() tea.Cmd {
	app := v.state.App
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()
	return func() tea.Msg {
		result, err := app.Backend.Login(context.Background(), username, password)
		return loginDoneMsg{result: result, err: err}
	}
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		v.submitting = false
		if msg.err != nil {
			v.errText = api.UserMessage(msg.err)
			return v, nil
		}
		if err := v.state.App.Sessions.Save(context.Background(), msg.result.Token, msg.result.Profile); err != nil {
			v.errText = "Could not save the session locally: " + err.Error()
			return v, nil
		}
		v.state.SetLogin(msg.result.Profile)
		return v, replaceView(newDashboardView(v.state))

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		switch msg.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			v.focusIdx = 1 - v.focusIdx
			if v.focusIdx == 0 {
				v.password.Blur()
				return v, v.username.Focus()
			}
			v.username.Blur()
			return v, v.password.Focus()

		case tea.KeyEnter:
			if v.focusIdx == 0 {
				v.focusIdx = 1
				v.username.Blur()
				return v, v.password.Focus()
			}
			if strings.TrimSpace(v.username.Value()) == "" {
				v.errText = "Enter your employee id or email."
				return v, nil
			}
			if v.password.Value() == "" {
				v.errText = "Enter your password."
				return v, nil
			}
			v.submitting = true
			v.errText = ""
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	if v.focusIdx == 0 {
		v.username, cmd = v.username.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

func (v *loginView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render("SIGN IN") + "\n\n")

	if v.notice != "" {
		b.WriteString("  " + formatter.Warn(v.notice) + "\n\n")
	}

	b.WriteString("  " + formatter.Dim("User     ") + v.username.View() + "\n")
	b.WriteString("  " + formatter.Dim("Password ") + v.password.View() + "\n\n")

	switch {
	case v.submitting:
		b.WriteString("  " + formatter.Dim("Signing in...") + "\n")
	case v.errText != "":
		b.WriteString("  " + formatter.Error(v.errText) + "\n")
	}

	return b.String()
}
