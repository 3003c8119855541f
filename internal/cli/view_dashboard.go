package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pocdesk/internal/api"
	"pocdesk/internal/cli/formatter"
	"pocdesk/internal/domain"
)

// ── messages ─────────────────────────────────────────────────────────────────

// permissionsLoadedMsg signals that permission flags have been fetched.
type permissionsLoadedMsg struct {
	flags *domain.PermissionFlags
	err   error
}

// tokenCheckedMsg is the outcome of the background token validation that runs
// after the first render.
type tokenCheckedMsg struct {
	valid bool
	err   error
}

// ── view ─────────────────────────────────────────────────────────────────────

// menuEntry is one permission-gated navigation option on the dashboard.
type menuEntry struct {
	label   string
	enabled func(f *domain.PermissionFlags) bool
	open    func(state *SharedState) View
}

// dashboardView is the home screen: a menu of sections the logged-in user's
// permission flags allow.
type dashboardView struct {
	state   *SharedState
	loading bool
	err     error
	cursor  int
	entries []menuEntry // visible entries, recomputed when flags load
}

var allMenuEntries = []menuEntry{
	{
		label:   "Usecases",
		enabled: func(f *domain.PermissionFlags) bool { return f.DashboardAccess },
		open:    func(s *SharedState) View { return newUsecaseListView(s) },
	},
	{
		label:   "Project Codes",
		enabled: func(f *domain.PermissionFlags) bool { return f.DashboardAccess },
		open:    func(s *SharedState) View { return newProjectCodeListView(s) },
	},
	{
		label:   "Daily Status",
		enabled: func(f *domain.PermissionFlags) bool { return f.StatusAccess },
		open:    func(s *SharedState) View { return newDailyStatusView(s) },
	},
	{
		label:   "Report",
		enabled: func(f *domain.PermissionFlags) bool { return f.ReportAccess },
		open:    func(s *SharedState) View { return newReportView(s) },
	},
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		loading: state.Flags == nil,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	cmds := []tea.Cmd{v.validateToken()}
	if v.state.Flags == nil {
		cmds = append(cmds, v.loadPermissions())
	} else {
		v.recomputeEntries()
	}
	return tea.Batch(cmds...)
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *dashboardView) loadPermissions() tea.Cmd {
	app := v.state.App
	employeeID := v.state.Profile.EmployeeID
	return func() tea.Msg {
		flags, err := app.Backend.Permissions(context.Background(), employeeID)
		return permissionsLoadedMsg{flags: flags, err: err}
	}
}

// validateToken checks the restored session against the backend in the
// background. It never blocks the first render.
func (v *dashboardView) validateToken() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		valid, err := app.Backend.ValidateToken(context.Background())
		return tokenCheckedMsg{valid: valid, err: err}
	}
}

func (v *dashboardView) recomputeEntries() {
	v.entries = nil
	if v.state.Flags == nil {
		return
	}
	for _, e := range allMenuEntries {
		if e.enabled(v.state.Flags) {
			v.entries = append(v.entries, e)
		}
	}
	if v.cursor >= len(v.entries) {
		v.cursor = max(0, len(v.entries)-1)
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case permissionsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthenticated) {
				return v, logout(api.UserMessage(msg.err))
			}
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.state.Flags = msg.flags
		v.recomputeEntries()
		return v, nil

	case tokenCheckedMsg:
		if msg.err != nil {
			// Could not reach the server; keep the session and move on.
			log.Printf("token validation skipped: %v", msg.err)
			return v, nil
		}
		if !msg.valid {
			return v, logout("Session expired. Please log in again.")
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		v.err = nil
		return v, v.loadPermissions()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.entries)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(v.entries) {
				return v, pushView(v.entries[v.cursor].open(v.state))
			}
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadPermissions()
		case "L":
			return v, logout("")
		}
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.Error(api.UserMessage(v.err)) +
			"\n\n  " + formatter.Dim("Press 'r' to retry.")
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render("SECTIONS") + "\n\n")

	if len(v.entries) == 0 {
		b.WriteString("  " + formatter.Dim("No sections available for your account.") + "\n")
		return b.String()
	}

	for i, e := range v.entries {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, style.Render(e.label)))
	}

	b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("Signed in as %s (%s)", v.state.Profile.Name, v.state.Profile.EmployeeID)) + "\n")
	return b.String()
}
