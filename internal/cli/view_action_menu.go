package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"pocdesk/internal/cli/formatter"
	"pocdesk/internal/domain"
)

// menuAction represents a single option in an action menu.
type menuAction struct {
	label string
	key   string // single-key shortcut
	fn    func() tea.Cmd
}

// actionMenuView presents the per-record actions for a selected row.
type actionMenuView struct {
	state   *SharedState
	heading string
	cursor  int
	actions []menuAction
}

func (v *actionMenuView) ID() ViewID    { return ViewActionMenu }
func (v *actionMenuView) Title() string { return "Actions" }

func (v *actionMenuView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *actionMenuView) Init() tea.Cmd { return nil }

func (v *actionMenuView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.actions)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(v.actions) {
				return v, v.actions[v.cursor].fn()
			}
		default:
			for i, a := range v.actions {
				if msg.String() == a.key {
					v.cursor = i
					return v, a.fn()
				}
			}
		}
	}
	return v, nil
}

func (v *actionMenuView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + formatter.StyleHeader.Render("ACTIONS") + "\n")
	b.WriteString("  " + formatter.Dim("for ") + formatter.Bold(v.heading) + "\n\n")

	for i, a := range v.actions {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}
		keyHint := formatter.Dim("[" + a.key + "]")
		b.WriteString(fmt.Sprintf("%s%s  %s\n", cursor, style.Render(a.label), keyHint))
	}

	return b.String()
}

// ── usecase actions ──────────────────────────────────────────────────────────

func newUsecaseActionMenu(state *SharedState, record *domain.UsecaseRecord) *actionMenuView {
	v := &actionMenuView{
		state:   state,
		heading: record.CompanyName + " · " + record.DisplayID(),
	}
	v.actions = []menuAction{
		{label: "Change Status", key: "s", fn: func() tea.Cmd {
			return replaceView(newUsecaseStatusForm(state, record))
		}},
		{label: "Edit Remark", key: "m", fn: func() tea.Cmd {
			return replaceView(newUsecaseRemarkForm(state, record))
		}},
		{label: "Edit Record", key: "e", fn: func() tea.Cmd {
			return openUsecaseForm(state, record, true)
		}},
		{label: "Delete", key: "x", fn: func() tea.Cmd {
			return replaceView(newUsecaseDeleteForm(state, record))
		}},
	}
	return v
}

// newUsecaseStatusForm changes only the record's status via the patch call.
func newUsecaseStatusForm(state *SharedState, record *domain.UsecaseRecord) View {
	status := string(record.Status)

	options := make([]huh.Option[string], 0, len(domain.ValidUsecaseStatuses))
	for _, s := range []string{"Initiated", "Ongoing", "Completed", "On Hold", "Dropped"} {
		options = append(options, huh.NewOption(s, s))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("New status for " + record.CompanyName).
				Options(options...).
				Value(&status),
		),
	).WithTheme(pocdeskHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			err := app.Backend.PatchUsecaseStatus(context.Background(), record.ID, domain.UsecaseStatus(status))
			if err != nil {
				return usecaseMutatedMsg{err: err}
			}
			patched := *record
			patched.Status = domain.UsecaseStatus(status)
			return usecaseMutatedMsg{patch: &patched, notice: "Status updated."}
		}
	}

	return newModalFormView(state, "Change Status", form, done)
}

// newUsecaseRemarkForm edits only the record's remark via the patch call.
func newUsecaseRemarkForm(state *SharedState, record *domain.UsecaseRecord) View {
	remark := record.Remark

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Remark for " + record.CompanyName).
				CharLimit(500).
				Value(&remark),
		),
	).WithTheme(pocdeskHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			err := app.Backend.PatchUsecaseRemark(context.Background(), record.ID, remark)
			if err != nil {
				return usecaseMutatedMsg{err: err}
			}
			patched := *record
			patched.Remark = remark
			return usecaseMutatedMsg{patch: &patched, notice: "Remark saved."}
		}
	}

	return newModalFormView(state, "Edit Remark", form, done)
}

// newUsecaseDeleteForm confirms and deletes the record.
func newUsecaseDeleteForm(state *SharedState, record *domain.UsecaseRecord) View {
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete " + record.CompanyName + " · " + record.DisplayID() + "?").
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
			if err := app.Backend.DeleteUsecase(context.Background(), record.ID); err != nil {
				return usecaseMutatedMsg{err: err}
			}
			return usecaseMutatedMsg{removed: record.ID, notice: "Record deleted."}
		}
	}

	return newModalFormView(state, "Delete", form, done)
}
