package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"pocdesk/internal/api"
	"pocdesk/internal/cli/formatter"
	"pocdesk/internal/domain"
	"pocdesk/internal/tableview"
)

type projectCodesLoadedMsg struct {
	records []*domain.ProjectCode
	err     error
}

// projectCodeMutatedMsg mirrors usecaseMutatedMsg for the project code table.
type projectCodeMutatedMsg struct {
	patch   *domain.ProjectCode
	removed string
	created *domain.ProjectCode
	notice  string
	err     error
}

func displayDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func projectCodeColumns() []tableview.Column[*domain.ProjectCode] {
	return []tableview.Column[*domain.ProjectCode]{
		{Key: "code", Label: "Code", Value: func(r *domain.ProjectCode) string { return r.Code },
			Render: func(r *domain.ProjectCode) string { return r.DisplayID() }},
		{Key: "name", Label: "Name", Truncate: 24, Value: func(r *domain.ProjectCode) string { return r.Name }},
		{Key: "usecaseId", Label: "Usecase", Value: func(r *domain.ProjectCode) string { return r.UsecaseID }},
		{Key: "startDate", Label: "Start", Value: func(r *domain.ProjectCode) string { return displayDate(r.StartDate) }},
		{Key: "endDate", Label: "End", Value: func(r *domain.ProjectCode) string { return displayDate(r.EndDate) }},
		{Key: "actualStart", Label: "Act. Start", Value: func(r *domain.ProjectCode) string { return displayDate(r.ActualStart) }},
		{Key: "actualEnd", Label: "Act. End", Value: func(r *domain.ProjectCode) string { return displayDate(r.ActualEnd) }},
		{Key: "estimatedEfforts", Label: "Est. Days", Value: func(r *domain.ProjectCode) string { return strconv.Itoa(r.EstimatedEfforts) }},
		{Key: "totalEfforts", Label: "Total Days", Value: func(r *domain.ProjectCode) string { return strconv.Itoa(r.TotalEfforts) }},
		{Key: "variance", Label: "Variance", Value: func(r *domain.ProjectCode) string { return strconv.Itoa(r.VarianceDays) }},
		{Key: "assignedTo", Label: "Assigned", Truncate: 20, Value: func(r *domain.ProjectCode) string { return strings.Join(r.AssignedTo, ", ") }},
		{Key: "tags", Label: "Tags", Truncate: 16, Value: func(r *domain.ProjectCode) string { return strings.Join(r.Tags, ", ") }},
		{Key: "billable", Label: "Billable", Exact: true, Value: func(r *domain.ProjectCode) string {
			if r.Billable {
				return "Yes"
			}
			return "No"
		}},
		{Key: "approver", Label: "Approver", Truncate: 16, Value: func(r *domain.ProjectCode) string { return r.Approver }},
		{Key: "status", Label: "Status", Exact: true,
			Value: func(r *domain.ProjectCode) string { return string(r.Status) },
			Style: formatter.Status},
	}
}

type projectCodeListView struct {
	state    *SharedState
	controls *listControls[*domain.ProjectCode]
	loading  bool
	err      error
}

func newProjectCodeListView(state *SharedState) *projectCodeListView {
	table := tableview.New(
		projectCodeColumns(),
		"code",
		func(r *domain.ProjectCode) string { return r.ID },
		"code", "name", "usecaseId", "assignedTo", "tags", "approver",
	)
	return &projectCodeListView{
		state:    state,
		controls: newListControls(table),
		loading:  true,
	}
}

func (v *projectCodeListView) ID() ViewID          { return ViewProjectCodeList }
func (v *projectCodeListView) Title() string       { return "Project Codes" }
func (v *projectCodeListView) CapturesInput() bool { return v.controls.capturingInput() }

func (v *projectCodeListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "actions")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "columns")),
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "select")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *projectCodeListView) Init() tea.Cmd {
	return v.loadData()
}

func (v *projectCodeListView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		records, err := app.Backend.ListProjectCodes(context.Background())
		return projectCodesLoadedMsg{records: records, err: err}
	}
}

func (v *projectCodeListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectCodesLoadedMsg:
		v.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthenticated) {
				return v, logout(api.UserMessage(msg.err))
			}
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.controls.table.SetRecords(msg.records)
		v.controls.clampCursor()
		return v, nil

	case projectCodeMutatedMsg:
		return v.applyMutation(msg)

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case tea.KeyMsg:
		if handled, cmd := v.controls.handleKey(msg); handled {
			return v, cmd
		}
		switch msg.String() {
		case "enter":
			if r, ok := v.controls.cursorRecord(); ok {
				return v, pushView(newProjectCodeActionMenu(v.state, r))
			}
		case "a":
			return v, openProjectCodeForm(v.state, nil, false)
		case "e":
			return v, pushView(newExportScopeForm(v.state, "project-codes", v.controls.table))
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}

	return v, nil
}

func (v *projectCodeListView) applyMutation(msg projectCodeMutatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, api.ErrUnauthenticated):
			return v, logout(api.UserMessage(msg.err))
		case errors.Is(msg.err, api.ErrConflict):
			return v, func() tea.Msg {
				return conflictRedirectMsg{message: api.UserMessage(msg.err)}
			}
		}
		return v, flashWarn(api.UserMessage(msg.err))
	}

	switch {
	case msg.patch != nil:
		v.controls.table.Patch(msg.patch)
	case msg.removed != "":
		v.controls.table.Remove(msg.removed)
		v.controls.clampCursor()
	case msg.created != nil:
		v.controls.table.Append(msg.created)
		v.controls.cursor = 0
	}
	if msg.notice != "" {
		return v, flash(msg.notice)
	}
	return v, nil
}

func (v *projectCodeListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.Error(api.UserMessage(v.err)) +
			"\n\n  " + formatter.Dim("Press 'r' to retry.")
	}

	if v.controls.mode == modeColumns {
		return "\n" + v.controls.renderColumnsPanel()
	}

	var b strings.Builder
	b.WriteString("\n")
	if line := v.controls.renderInputLine(); line != "" {
		b.WriteString(line + "\n\n")
	}

	if len(v.controls.table.Filtered()) == 0 {
		b.WriteString("  " + formatter.Dim("No records match.") + "\n")
	} else {
		b.WriteString(indent(v.controls.renderRows(), "  "))
	}

	b.WriteString("\n  " + v.controls.renderFooter() + "\n")
	return b.String()
}

// ── project code actions ─────────────────────────────────────────────────────

func newProjectCodeActionMenu(state *SharedState, record *domain.ProjectCode) *actionMenuView {
	v := &actionMenuView{
		state:   state,
		heading: record.DisplayID() + " · " + record.Name,
	}
	v.actions = []menuAction{
		{label: "Change Status", key: "s", fn: func() tea.Cmd {
			return replaceView(newProjectCodeStatusForm(state, record))
		}},
		{label: "Edit Record", key: "e", fn: func() tea.Cmd {
			return openProjectCodeForm(state, record, true)
		}},
		{label: "Delete", key: "x", fn: func() tea.Cmd {
			return replaceView(newProjectCodeDeleteForm(state, record))
		}},
	}
	return v
}

var projectCodeStatusOrder = []string{
	"Draft", "Pending", "In Progress", "Completed",
	"Dropped/Cancelled", "Awaiting", "Hold", "Closed", "Converted",
}

func newProjectCodeStatusForm(state *SharedState, record *domain.ProjectCode) View {
	status := string(record.Status)

	options := make([]huh.Option[string], 0, len(projectCodeStatusOrder))
	for _, s := range projectCodeStatusOrder {
		options = append(options, huh.NewOption(s, s))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("New status for " + record.DisplayID()).
				Options(options...).
				Value(&status),
		),
	).WithTheme(pocdeskHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			err := app.Backend.PatchProjectCodeStatus(context.Background(), record.ID, domain.ProjectCodeStatus(status))
			if err != nil {
				return projectCodeMutatedMsg{err: err}
			}
			patched := *record
			patched.Status = domain.ProjectCodeStatus(status)
			return projectCodeMutatedMsg{patch: &patched, notice: "Status updated."}
		}
	}

	return newModalFormView(state, "Change Status", form, done)
}

func newProjectCodeDeleteForm(state *SharedState, record *domain.ProjectCode) View {
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete " + record.DisplayID() + " · " + record.Name + "?").
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	).WithTheme(pocdeskHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			if !confirmed {
				return nil
			}
			if err := app.Backend.DeleteProjectCode(context.Background(), record.ID); err != nil {
				return projectCodeMutatedMsg{err: err}
			}
			return projectCodeMutatedMsg{removed: record.ID, notice: "Record deleted."}
		}
	}

	return newModalFormView(state, "Delete", form, done)
}
