package cli

import (
	"context"
	"errors"
	"fmt"
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

type dailyEntriesLoadedMsg struct {
	date    time.Time
	entries []*domain.DailyStatusEntry
	err     error
}

type dailyMutatedMsg struct {
	patch   *domain.DailyStatusEntry
	removed string
	created *domain.DailyStatusEntry
	notice  string
	err     error
}

func formatWorked(hours, minutes int) string {
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}

func dailyStatusColumns() []tableview.Column[*domain.DailyStatusEntry] {
	return []tableview.Column[*domain.DailyStatusEntry]{
		{Key: "usecase", Label: "Usecase", Truncate: 24, Value: func(e *domain.DailyStatusEntry) string { return e.UsecaseName }},
		{Key: "leads", Label: "Leads", Truncate: 20, Value: func(e *domain.DailyStatusEntry) string { return strings.Join(e.LeadIDs, ", ") }},
		{Key: "status", Label: "Status", Truncate: 32, Value: func(e *domain.DailyStatusEntry) string { return e.StatusText }},
		{Key: "time", Label: "Time", Value: func(e *domain.DailyStatusEntry) string { return formatWorked(e.Hours, e.Minutes) }},
	}
}

// dailyStatusView tracks one day's time entries: the shared table controls on
// top of a per-day record set, with date navigation.
type dailyStatusView struct {
	state    *SharedState
	controls *listControls[*domain.DailyStatusEntry]
	date     time.Time
	loading  bool
	err      error
}

func newDailyStatusView(state *SharedState) *dailyStatusView {
	table := tableview.New(
		dailyStatusColumns(),
		"usecase",
		func(e *domain.DailyStatusEntry) string { return e.ID },
		"usecase", "leads", "status",
	)
	return &dailyStatusView{
		state:    state,
		controls: newListControls(table),
		date:     truncateToDay(time.Now()),
		loading:  true,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (v *dailyStatusView) ID() ViewID          { return ViewDailyStatus }
func (v *dailyStatusView) Title() string       { return "Daily Status" }
func (v *dailyStatusView) CapturesInput() bool { return v.controls.capturingInput() }

func (v *dailyStatusView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "prev/next day")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
	}
}

func (v *dailyStatusView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dailyStatusView) loadData() tea.Cmd {
	app := v.state.App
	employeeID := v.state.Profile.EmployeeID
	date := v.date
	return func() tea.Msg {
		entries, err := app.Backend.ListDailyStatus(context.Background(), employeeID, date)
		return dailyEntriesLoadedMsg{date: date, entries: entries, err: err}
	}
}

func (v *dailyStatusView) setDate(d time.Time) tea.Cmd {
	v.date = d
	v.loading = true
	v.controls.cursor = 0
	return v.loadData()
}

func (v *dailyStatusView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dailyEntriesLoadedMsg:
		// A stale response for a day the user already navigated away from is dropped.
		if !msg.date.Equal(v.date) {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthenticated) {
				return v, logout(api.UserMessage(msg.err))
			}
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.controls.table.SetRecords(msg.entries)
		v.controls.clampCursor()
		return v, nil

	case dailyMutatedMsg:
		return v.applyMutation(msg)

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case tea.KeyMsg:
		if handled, cmd := v.controls.handleKey(msg); handled {
			return v, cmd
		}
		switch msg.String() {
		case "[":
			return v, v.setDate(v.date.AddDate(0, 0, -1))
		case "]":
			return v, v.setDate(v.date.AddDate(0, 0, 1))
		case "t":
			return v, v.setDate(truncateToDay(time.Now()))
		case "a":
			return v, openDailyEntryForm(v.state, v.date, nil)
		case "enter":
			if e, ok := v.controls.cursorRecord(); ok {
				return v, openDailyEntryForm(v.state, v.date, e)
			}
		case "d":
			if e, ok := v.controls.cursorRecord(); ok {
				return v, pushView(newDailyDeleteForm(v.state, e))
			}
		case "e":
			return v, pushView(newExportScopeForm(v.state, "daily-status", v.controls.table))
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}

	return v, nil
}

func (v *dailyStatusView) applyMutation(msg dailyMutatedMsg) (tea.Model, tea.Cmd) {
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

func (v *dailyStatusView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render(v.date.Format("Mon, 02 Jan 2006")))
	if v.date.Equal(truncateToDay(time.Now())) {
		b.WriteString(" " + formatter.Dim("(today)"))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString("  " + formatter.Dim("Loading...") + "\n")
		return b.String()
	case v.err != nil:
		b.WriteString("  " + formatter.Error(api.UserMessage(v.err)) +
			"\n\n  " + formatter.Dim("Press 'r' to retry.") + "\n")
		return b.String()
	case v.controls.mode == modeColumns:
		b.WriteString(v.controls.renderColumnsPanel())
		return b.String()
	}

	if line := v.controls.renderInputLine(); line != "" {
		b.WriteString(line + "\n\n")
	}

	filtered := v.controls.table.Filtered()
	if len(filtered) == 0 {
		b.WriteString("  " + formatter.Dim("No entries for this day. Press 'a' to add one.") + "\n")
	} else {
		total := 0
		for _, e := range filtered {
			total += e.WorkedMinutes()
		}
		b.WriteString(indent(v.controls.renderRows(), "  "))
		b.WriteString("\n  " + formatter.Bold("Total: "+formatWorked(total/60, total%60)) + "\n")
	}

	b.WriteString("\n  " + v.controls.renderFooter() + "\n")
	return b.String()
}

// ── entry forms ──────────────────────────────────────────────────────────────

// openDailyEntryForm loads select options (usecases for the day's work, lead
// reviewers from the cached users lookup) before pushing the form.
func openDailyEntryForm(state *SharedState, date time.Time, existing *domain.DailyStatusEntry) tea.Cmd {
	app := state.App
	employeeID := state.Profile.EmployeeID
	adminScope := state.AdminScope()
	return func() tea.Msg {
		ctx := context.Background()
		usecases, err := app.Backend.ListUsecases(ctx, employeeID, adminScope)
		if err != nil {
			return dailyMutatedMsg{err: err}
		}
		leads, err := cachedUsers(ctx, app)
		if err != nil {
			return dailyMutatedMsg{err: err}
		}
		return pushViewMsg{view: newDailyEntryForm(state, date, existing, usecases, leads)}
	}
}

func newDailyEntryForm(state *SharedState, date time.Time, existing *domain.DailyStatusEntry, usecases []*domain.UsecaseRecord, leads []api.Person) View {
	var (
		usecaseID  string
		leadIDs    []string
		statusText string
		hoursStr   = "0"
		minutesStr = "0"
	)
	if existing != nil {
		usecaseID = existing.UsecaseID
		leadIDs = append(leadIDs, existing.LeadIDs...)
		statusText = existing.StatusText
		hoursStr = strconv.Itoa(existing.Hours)
		minutesStr = strconv.Itoa(existing.Minutes)
	}

	usecaseOptions := make([]huh.Option[string], 0, len(usecases))
	for _, u := range usecases {
		usecaseOptions = append(usecaseOptions, huh.NewOption(u.CompanyName+" · "+u.Usecase, u.ID))
	}
	leadOptions := make([]huh.Option[string], 0, len(leads))
	for _, p := range leads {
		leadOptions = append(leadOptions, huh.NewOption(p.Name, p.EmployeeID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Usecase").
				Options(usecaseOptions...).
				Value(&usecaseID).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("pick a usecase")
					}
					return nil
				}),
			huh.NewMultiSelect[string]().
				Title("Lead Reviewers").
				Options(leadOptions...).
				Value(&leadIDs),
			huh.NewText().
				Title("Status").
				CharLimit(500).
				Value(&statusText).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("status is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Hours").
				Value(&hoursStr).
				Validate(boundedInt(0, 23)),
			huh.NewInput().
				Title("Minutes").
				Value(&minutesStr).
				Validate(boundedInt(0, 59)),
		),
	).WithTheme(pocdeskHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		employeeID := state.Profile.EmployeeID
		return func() tea.Msg {
			hours, _ := strconv.Atoi(hoursStr)
			minutes, _ := strconv.Atoi(minutesStr)
			entry := &domain.DailyStatusEntry{
				EmployeeID: employeeID,
				Date:       date,
				UsecaseID:  usecaseID,
				LeadIDs:    leadIDs,
				StatusText: statusText,
				Hours:      hours,
				Minutes:    minutes,
			}
			ctx := context.Background()
			if existing == nil {
				created, err := app.Backend.CreateDailyStatus(ctx, entry)
				if err != nil {
					return dailyMutatedMsg{err: err}
				}
				return dailyMutatedMsg{created: created, notice: "Entry added."}
			}
			entry.ID = existing.ID
			updated, err := app.Backend.UpdateDailyStatus(ctx, entry)
			if err != nil {
				return dailyMutatedMsg{err: err}
			}
			return dailyMutatedMsg{patch: updated, notice: "Entry updated."}
		}
	}

	title := "Add Entry"
	if existing != nil {
		title = "Edit Entry"
	}
	return newModalFormView(state, title, form, done)
}

func boundedInt(min, max int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n < min || n > max {
			return fmt.Errorf("enter %d-%d", min, max)
		}
		return nil
	}
}

func newDailyDeleteForm(state *SharedState, entry *domain.DailyStatusEntry) View {
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete the entry for " + entry.UsecaseName + "?").
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
			if err := app.Backend.DeleteDailyStatus(context.Background(), entry.ID); err != nil {
				return dailyMutatedMsg{err: err}
			}
			return dailyMutatedMsg{removed: entry.ID, notice: "Entry deleted."}
		}
	}

	return newModalFormView(state, "Delete Entry", form, done)
}
