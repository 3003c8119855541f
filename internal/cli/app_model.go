package cli

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pocdesk/internal/cli/formatter"
)

// appModel is the root bubbletea Model for the TUI.
// It manages the view stack and the shared login context.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	// Transient status-bar notice.
	flash     string
	flashWarn bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}

	m := appModel{state: state}

	// Session-presence gate: without a stored login the login view is the
	// only reachable view.
	if sess := app.Sessions.Current(); sess != nil {
		state.SetLogin(sess.Profile)
		m.viewStack = []View{newDashboardView(state)}
	} else {
		m.viewStack = []View{newLoginView(state, "")}
	}

	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	// Navigation messages from views
	case pushViewMsg:
		m.flash = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case replaceViewMsg:
		m.flash = ""
		if len(m.viewStack) > 0 {
			m.viewStack[len(m.viewStack)-1] = msg.view
		} else {
			m.viewStack = append(m.viewStack, msg.view)
		}
		return m, msg.view.Init()

	case refreshViewMsg:
		// Broadcast to ALL views in the stack so underlying views (e.g. a
		// record list) reload data after mutations made in views above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case wizardCompleteMsg:
		// Atomically pop the form view and execute the follow-up command.
		// Mutation outcomes patch the list underneath in place; no blanket
		// refresh here.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, msg.nextCmd

	case flashMsg:
		m.flash = msg.text
		m.flashWarn = msg.warn
		return m, nil

	case logoutMsg:
		return m.handleLogout(msg.notice)

	case conflictRedirectMsg:
		m.flash = msg.message
		m.flashWarn = true
		return m, tea.Tick(conflictRedirectDelay, func(time.Time) tea.Msg {
			return conflictRedirectFireMsg{}
		})

	case conflictRedirectFireMsg:
		// Fall back to the list view underneath whatever modal stack the
		// refused mutation came from.
		for len(m.viewStack) > 1 {
			id := m.activeView().ID()
			if id != ViewForm && id != ViewActionMenu {
				break
			}
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		m.flash = ""
		return m, func() tea.Msg { return refreshViewMsg{} }
	}

	// Forward other messages (loaded data, blink ticks) to the active view.
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

// handleLogout is the shared logout procedure: clear the local session, tell
// the server (fire-and-forget), reset to the login view.
func (m appModel) handleLogout(notice string) (tea.Model, tea.Cmd) {
	app := m.state.App
	_ = app.Sessions.Clear(context.Background())
	m.state.ClearLogin()
	m.viewStack = []View{newLoginView(m.state, notice)}
	m.flash = ""

	serverLogout := func() tea.Msg {
		// Outcome deliberately ignored: local state is already cleared.
		_ = app.Backend.Logout(context.Background())
		return nil
	}
	return m, tea.Batch(m.activeView().Init(), serverLogout)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// If the active view owns a focused text input, forward directly. This
	// bypasses global keybindings so search boxes and forms receive all
	// characters including 'q'.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		// Pop view stack (go back)
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
			m.flash = ""
			return m, nil
		}
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("pocdesk")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	user := ""
	if m.state.LoggedIn() {
		user = formatter.Dim(m.state.Profile.Name)
		gap := m.state.Width - len("pocdesk") - lipgloss.Width(breadcrumb) - len(m.state.Profile.Name) - 2
		if gap > 0 {
			user = strings.Repeat(" ", gap) + user
		} else {
			user = "  " + user
		}
	}

	line := title + breadcrumb + user
	sep := formatter.Dim(strings.Repeat("─", max(0, m.state.Width)))
	return line + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	sep := formatter.Dim(strings.Repeat("─", max(0, m.state.Width)))

	if m.flash != "" {
		if m.flashWarn {
			return sep + "\n " + formatter.Warn(m.flash)
		}
		return sep + "\n " + formatter.StyleGreen.Render(m.flash)
	}

	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			h := b.Help()
			hints = append(hints, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
		}
	}
	hints = append(hints, formatter.Bold("q")+" "+formatter.Dim("quit"))
	return sep + "\n " + strings.Join(hints, "  ")
}
