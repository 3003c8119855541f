package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// modalFormView wraps a huh.Form as a View on the navigation stack. It backs
// the small inline mutations (status change, remark edit, delete confirm,
// export scope, daily status entry). When the form completes, it sends a
// wizardCompleteMsg carrying the done callback's command.
type modalFormView struct {
	state    *SharedState
	form     *huh.Form
	titleStr string
	done     func() tea.Cmd
}

func newModalFormView(state *SharedState, title string, form *huh.Form, done func() tea.Cmd) *modalFormView {
	return &modalFormView{
		state:    state,
		form:     form,
		titleStr: title,
		done:     done,
	}
}

func (v *modalFormView) Init() tea.Cmd {
	return v.form.Init()
}

// CapturesInput keeps raw keys flowing to the form's inputs.
func (v *modalFormView) CapturesInput() bool { return true }

func (v *modalFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape cancels the form without running done.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, func() tea.Msg { return wizardCompleteMsg{} }
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		var doneCmd tea.Cmd
		if v.done != nil {
			doneCmd = v.done()
		}
		return v, func() tea.Msg {
			return wizardCompleteMsg{nextCmd: tea.Batch(cmd, doneCmd)}
		}
	}

	return v, cmd
}

func (v *modalFormView) View() string {
	return "\n" + v.form.View()
}

func (v *modalFormView) ID() ViewID    { return ViewForm }
func (v *modalFormView) Title() string { return v.titleStr }
func (v *modalFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
