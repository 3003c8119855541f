package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pocdesk/internal/api"
	"pocdesk/internal/cli/formatter"
	"pocdesk/internal/wizard"
)

// fieldKind selects the input widget for a form field.
type fieldKind int

const (
	fieldText   fieldKind = iota
	fieldSelect           // fixed option set, cycled with left/right
)

// formFieldSpec describes how one wizard field is rendered and edited.
type formFieldSpec struct {
	key         string
	kind        fieldKind
	options     []string // fieldSelect only
	placeholder string
	hidden      func(values map[string]string) bool // field not shown (nor focused) when true
}

// recordFormSubmittedMsg reports the outcome of the form's submit call.
type recordFormSubmittedMsg struct {
	outcome tea.Msg // delivered to the list view after the form pops
	err     error
}

// recordFormView renders a multi-step validated form over the wizard engine.
// The final step is a review of all entered values; submit runs the caller's
// backend call and hands its outcome message to the list below.
type recordFormView struct {
	state    *SharedState
	titleStr string
	wiz      *wizard.Wizard
	specs    map[string]formFieldSpec
	inputs   map[string]textinput.Model

	focusIdx   int
	submitting bool
	errText    string

	// submit builds the backend call from the validated values.
	submit func(values map[string]string) tea.Cmd
}

func newRecordFormView(state *SharedState, title string, steps []wizard.Step, specs []formFieldSpec, submit func(map[string]string) tea.Cmd) *recordFormView {
	v := &recordFormView{
		state:    state,
		titleStr: title,
		wiz:      wizard.New(steps),
		specs:    make(map[string]formFieldSpec, len(specs)),
		inputs:   make(map[string]textinput.Model),
		submit:   submit,
	}
	for _, s := range specs {
		v.specs[s.key] = s
	}
	for _, step := range steps {
		for _, f := range step.Fields {
			in := textinput.New()
			in.CharLimit = 200
			in.Width = 40
			in.Placeholder = v.specs[f.Key].placeholder
			v.inputs[f.Key] = in
		}
	}
	v.focusFirst()
	return v
}

func (v *recordFormView) ID() ViewID          { return ViewForm }
func (v *recordFormView) Title() string       { return v.titleStr }
func (v *recordFormView) CapturesInput() bool { return true }

func (v *recordFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "back")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *recordFormView) Init() tea.Cmd {
	return textinput.Blink
}

// setInitialValues seeds the wizard (edit flows) and syncs the inputs.
func (v *recordFormView) setInitialValues(values map[string]string) {
	for k, val := range values {
		v.wiz.SetValue(k, val)
		if in, ok := v.inputs[k]; ok {
			in.SetValue(val)
			v.inputs[k] = in
		}
	}
}

// stepFields lists the fields of the active step that are currently shown.
func (v *recordFormView) stepFields() []wizard.Field {
	var out []wizard.Field
	values := v.wiz.Values()
	for _, f := range v.wiz.CurrentStep().Fields {
		if spec, ok := v.specs[f.Key]; ok && spec.hidden != nil && spec.hidden(values) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (v *recordFormView) focusFirst() {
	v.focusIdx = 0
	v.syncFocus()
}

func (v *recordFormView) syncFocus() {
	fields := v.stepFields()
	for i, f := range fields {
		in := v.inputs[f.Key]
		if i == v.focusIdx {
			in.Focus()
		} else {
			in.Blur()
		}
		v.inputs[f.Key] = in
	}
}

func (v *recordFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordFormSubmittedMsg:
		v.submitting = false
		if msg.err != nil {
			v.errText = api.UserMessage(msg.err)
			return v, nil
		}
		outcome := msg.outcome
		return v, func() tea.Msg {
			return wizardCompleteMsg{nextCmd: func() tea.Msg { return outcome }}
		}

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		return v.handleKey(msg)
	}

	// Cursor blink and friends go to the focused input.
	fields := v.stepFields()
	if v.focusIdx < len(fields) {
		k := fields[v.focusIdx].Key
		in, cmd := v.inputs[k].Update(msg)
		v.inputs[k] = in
		return v, cmd
	}
	return v, nil
}

func (v *recordFormView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := v.stepFields()

	switch msg.Type {
	case tea.KeyEsc:
		return v, func() tea.Msg { return wizardCompleteMsg{} }

	case tea.KeyCtrlB:
		// Back never validates.
		v.wiz.Back()
		v.focusFirst()
		return v, nil

	case tea.KeyTab, tea.KeyDown:
		if v.focusIdx < len(fields)-1 {
			v.focusIdx++
			v.syncFocus()
		}
		return v, nil

	case tea.KeyShiftTab, tea.KeyUp:
		if v.focusIdx > 0 {
			v.focusIdx--
			v.syncFocus()
		}
		return v, nil

	case tea.KeyLeft, tea.KeyRight:
		if v.focusIdx < len(fields) {
			if spec := v.specs[fields[v.focusIdx].Key]; spec.kind == fieldSelect {
				v.cycleSelect(fields[v.focusIdx].Key, spec.options, msg.Type == tea.KeyRight)
				return v, nil
			}
		}

	case tea.KeyEnter:
		if v.wiz.OnFinalStep() {
			return v.trySubmit()
		}
		if v.focusIdx < len(fields)-1 {
			v.focusIdx++
			v.syncFocus()
			return v, nil
		}
		// Leaving the step: validate it.
		if v.wiz.Next() {
			v.focusFirst()
		}
		return v, nil
	}

	// Typed characters land in the focused input; select fields ignore them.
	if v.focusIdx < len(fields) {
		f := fields[v.focusIdx]
		if v.specs[f.Key].kind == fieldSelect {
			return v, nil
		}
		in, cmd := v.inputs[f.Key].Update(msg)
		v.inputs[f.Key] = in
		v.wiz.SetValue(f.Key, in.Value())
		return v, cmd
	}
	return v, nil
}

func (v *recordFormView) cycleSelect(key string, options []string, forward bool) {
	if len(options) == 0 {
		return
	}
	cur := v.wiz.Value(key)
	idx := 0
	for i, o := range options {
		if o == cur {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(options)
	} else {
		idx = (idx - 1 + len(options)) % len(options)
	}
	v.wiz.SetValue(key, options[idx])
}

func (v *recordFormView) trySubmit() (tea.Model, tea.Cmd) {
	if !v.wiz.ValidateAll() {
		v.errText = "Fix the highlighted fields first."
		return v, nil
	}
	v.errText = ""
	v.submitting = true
	return v, v.submit(v.wiz.Values())
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *recordFormView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render(strings.ToUpper(v.titleStr)) + "\n")
	b.WriteString("  " + v.renderStepIndicator() + "\n\n")

	if v.wiz.OnFinalStep() {
		b.WriteString(v.renderReview())
	} else {
		b.WriteString(v.renderFields())
	}

	switch {
	case v.submitting:
		b.WriteString("\n  " + formatter.Dim("Submitting...") + "\n")
	case v.errText != "":
		b.WriteString("\n  " + formatter.Error(v.errText) + "\n")
	}

	return b.String()
}

func (v *recordFormView) renderStepIndicator() string {
	var parts []string
	for i, s := range v.wiz.Steps() {
		label := fmt.Sprintf("%d. %s", i+1, s.Title)
		if i == v.wiz.Active() {
			parts = append(parts, formatter.StyleHeader.Render(label))
		} else {
			parts = append(parts, formatter.Dim(label))
		}
	}
	return strings.Join(parts, formatter.Dim("  ›  "))
}

func (v *recordFormView) renderFields() string {
	var b strings.Builder
	for i, f := range v.stepFields() {
		marker := "  "
		if i == v.focusIdx {
			marker = formatter.StyleGreen.Render("▸ ")
		}

		label := f.Label
		if fieldRequired(f, v.wiz.Values()) {
			label += " *"
		}
		b.WriteString(fmt.Sprintf("  %s%s\n", marker, formatter.Dim(label)))

		spec := v.specs[f.Key]
		if spec.kind == fieldSelect {
			b.WriteString("      " + v.renderSelectValue(f.Key, spec.options) + "\n")
		} else {
			b.WriteString("      " + v.inputs[f.Key].View() + "\n")
		}

		if e := v.wiz.Error(f.Key); e != "" {
			b.WriteString("      " + formatter.StyleRed.Render(e) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v *recordFormView) renderSelectValue(key string, options []string) string {
	cur := v.wiz.Value(key)
	if cur == "" && len(options) > 0 {
		cur = formatter.Dim("(←/→ to choose)")
		return cur
	}
	return formatter.StyleGreen.Render("◂ " + cur + " ▸")
}

func (v *recordFormView) renderReview() string {
	var b strings.Builder
	b.WriteString("  " + formatter.Dim("Review and press enter to submit.") + "\n\n")
	values := v.wiz.Values()
	for _, step := range v.wiz.Steps()[:len(v.wiz.Steps())-1] {
		for _, f := range step.Fields {
			if spec, ok := v.specs[f.Key]; ok && spec.hidden != nil && spec.hidden(values) {
				continue
			}
			val := values[f.Key]
			if val == "" {
				val = "-"
			}
			line := fmt.Sprintf("  %-18s %s", f.Label, formatter.Bold(val))
			if e := v.wiz.Error(f.Key); e != "" {
				line += "  " + formatter.StyleRed.Render(e)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// fieldRequired evaluates a field's effective requiredness for labeling.
func fieldRequired(f wizard.Field, values map[string]string) bool {
	if f.RequiredWhen != nil {
		return f.RequiredWhen(values)
	}
	return f.Required
}
