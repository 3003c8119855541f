package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pocdesk/internal/api"
	"pocdesk/internal/cli/formatter"
	"pocdesk/internal/domain"
	"pocdesk/internal/tableview"
)

// usecasesLoadedMsg signals that the record list has been fetched.
type usecasesLoadedMsg struct {
	records []*domain.UsecaseRecord
	err     error
}

// usecaseMutatedMsg reports the outcome of an in-place mutation (status,
// remark, delete, edit) so the list can patch local state without a refetch.
type usecaseMutatedMsg struct {
	patch   *domain.UsecaseRecord // non-nil: replace by id
	removed string                // non-empty: remove by id
	created *domain.UsecaseRecord // non-nil: append
	notice  string
	err     error
}

func usecaseColumns() []tableview.Column[*domain.UsecaseRecord] {
	return []tableview.Column[*domain.UsecaseRecord]{
		{Key: "id", Label: "ID", Value: func(r *domain.UsecaseRecord) string { return r.ID },
			Render: func(r *domain.UsecaseRecord) string { return r.DisplayID() }},
		{Key: "companyName", Label: "Company", Truncate: 20, Value: func(r *domain.UsecaseRecord) string { return r.CompanyName }},
		{Key: "partnerName", Label: "Partner", Truncate: 16, Value: func(r *domain.UsecaseRecord) string { return r.PartnerName }},
		{Key: "spocName", Label: "SPOC", Truncate: 16, Value: func(r *domain.UsecaseRecord) string { return r.SpocName }},
		{Key: "spocEmail", Label: "SPOC Email", Truncate: 24, Value: func(r *domain.UsecaseRecord) string { return r.SpocEmail }},
		{Key: "spocMobile", Label: "SPOC Mobile", Value: func(r *domain.UsecaseRecord) string { return r.SpocMobile }},
		{Key: "region", Label: "Region", Value: func(r *domain.UsecaseRecord) string { return r.Region }},
		{Key: "customerType", Label: "Customer", Exact: true, Value: func(r *domain.UsecaseRecord) string { return string(r.CustomerType) }},
		{Key: "processType", Label: "Type", Exact: true, Value: func(r *domain.UsecaseRecord) string { return string(r.ProcessType) }},
		{Key: "usecase", Label: "Usecase", Truncate: 24, Value: func(r *domain.UsecaseRecord) string { return r.Usecase }},
		{Key: "status", Label: "Status", Exact: true,
			Value: func(r *domain.UsecaseRecord) string { return string(r.Status) },
			Style: formatter.Status},
		{Key: "salesPerson", Label: "Sales", Truncate: 16, Value: func(r *domain.UsecaseRecord) string { return r.SalesPerson }},
		{Key: "remark", Label: "Remark", Truncate: 24, Value: func(r *domain.UsecaseRecord) string { return r.Remark }},
	}
}

// usecaseListView is the main record table: search, filters, column toggles,
// paging, selection, export, and entry to the create/edit wizard.
type usecaseListView struct {
	state    *SharedState
	controls *listControls[*domain.UsecaseRecord]
	loading  bool
	err      error
}

func newUsecaseListView(state *SharedState) *usecaseListView {
	table := newUsecaseTable(nil)
	return &usecaseListView{
		state:    state,
		controls: newListControls(table),
		loading:  true,
	}
}

func (v *usecaseListView) ID() ViewID          { return ViewUsecaseList }
func (v *usecaseListView) Title() string       { return "Usecases" }
func (v *usecaseListView) CapturesInput() bool { return v.controls.capturingInput() }

// canCreate mirrors the dashboard's permission gating: record creation is a
// server-granted flag, never derived client-side.
func (v *usecaseListView) canCreate() bool {
	return v.state.Flags != nil && v.state.Flags.UsecaseCreationAccess
}

func (v *usecaseListView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "actions")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "columns")),
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "select")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
	}
	if v.canCreate() {
		bindings = append(bindings, key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")))
	}
	return append(bindings, key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")))
}

func (v *usecaseListView) Init() tea.Cmd {
	return v.loadData()
}

func (v *usecaseListView) loadData() tea.Cmd {
	app := v.state.App
	employeeID := v.state.Profile.EmployeeID
	adminScope := v.state.AdminScope()
	return func() tea.Msg {
		records, err := app.Backend.ListUsecases(context.Background(), employeeID, adminScope)
		return usecasesLoadedMsg{records: records, err: err}
	}
}

func (v *usecaseListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case usecasesLoadedMsg:
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

	case usecaseMutatedMsg:
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
				return v, pushView(newUsecaseActionMenu(v.state, r))
			}
		case "a":
			if v.canCreate() {
				return v, openUsecaseForm(v.state, nil, false)
			}
		case "e":
			return v, pushView(newExportScopeForm(v.state, "usecases", v.controls.table))
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}

	return v, nil
}

// applyMutation patches local table state per mutation contract: replace in
// place by id, remove exactly one, or append, never a full refetch.
func (v *usecaseListView) applyMutation(msg usecaseMutatedMsg) (tea.Model, tea.Cmd) {
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

func (v *usecaseListView) View() string {
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

// indent prefixes every non-empty line.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

// exportTimeNow is swapped in tests for deterministic filenames.
var exportTimeNow = time.Now
