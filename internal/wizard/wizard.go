// Package wizard implements the multi-step form state machine shared by the
// record entry flows: a fixed sequence of steps, per-step validation when
// leaving a step forward, unconditional backward navigation, and a full-form
// re-validation before submit. It holds no UI concerns; views bind inputs to
// field values and render the error map.
package wizard

import "regexp"

// Validator checks one field value; a nil error means the value conforms.
type Validator func(value string) error

// Condition decides requiredness of a conditional field from the full value
// set, e.g. partner fields required only while customer type is "Partner".
type Condition func(values map[string]string) bool

// Field describes a single input of a step.
type Field struct {
	Key          string
	Label        string
	Required     bool
	RequiredWhen Condition // overrides Required when set
	Validate     Validator // extra format rule, applied to non-empty values
}

// Step is one page of the wizard.
type Step struct {
	Title  string
	Fields []Field
}

// Wizard tracks values, errors, and the active step index.
type Wizard struct {
	steps  []Step
	active int
	values map[string]string
	errors map[string]string
}

// New creates a wizard positioned on the first step.
func New(steps []Step) *Wizard {
	return &Wizard{
		steps:  steps,
		values: make(map[string]string),
		errors: make(map[string]string),
	}
}

// Steps returns the step definitions.
func (w *Wizard) Steps() []Step { return w.steps }

// Active returns the current step index.
func (w *Wizard) Active() int { return w.active }

// CurrentStep returns the active step definition.
func (w *Wizard) CurrentStep() Step { return w.steps[w.active] }

// OnFinalStep reports whether the wizard is on its last step, the only place
// submit is reachable from.
func (w *Wizard) OnFinalStep() bool { return w.active == len(w.steps)-1 }

// Value returns the current value of a field.
func (w *Wizard) Value(key string) string { return w.values[key] }

// Values returns a copy of all field values.
func (w *Wizard) Values() map[string]string {
	out := make(map[string]string, len(w.values))
	for k, v := range w.values {
		out[k] = v
	}
	return out
}

// Error returns the validation error for a field, or "" if none.
func (w *Wizard) Error(key string) string { return w.errors[key] }

// HasErrors reports whether any field currently carries an error.
func (w *Wizard) HasErrors() bool { return len(w.errors) > 0 }

// SetValue records a field value and re-validates every field that currently
// carries an error, so an error clears the moment its field becomes non-empty
// or newly conformant, and conditional requiredness is re-evaluated on every
// change of the controlling field.
func (w *Wizard) SetValue(key, value string) {
	w.values[key] = value
	for errKey := range w.errors {
		if f, ok := w.findField(errKey); ok {
			w.validateField(f)
		}
	}
}

// Next validates only the fields of the step being left and advances when they
// all pass. On failure the step stays and the field errors are set.
func (w *Wizard) Next() bool {
	if !w.validateStep(w.steps[w.active]) {
		return false
	}
	if !w.OnFinalStep() {
		w.active++
	}
	return true
}

// Back moves one step backward unconditionally.
func (w *Wizard) Back() {
	if w.active > 0 {
		w.active--
	}
}

// ValidateAll re-validates every step's fields, as required before submit.
// Returns true when the entire form passes.
func (w *Wizard) ValidateAll() bool {
	ok := true
	for _, s := range w.steps {
		if !w.validateStep(s) {
			ok = false
		}
	}
	return ok
}

// ── validation internals ─────────────────────────────────────────────────────

func (w *Wizard) validateStep(s Step) bool {
	ok := true
	for _, f := range s.Fields {
		if !w.validateField(f) {
			ok = false
		}
	}
	return ok
}

// validateField checks one field, updating the error map. Returns true when
// the field conforms.
func (w *Wizard) validateField(f Field) bool {
	value := w.values[f.Key]

	required := f.Required
	if f.RequiredWhen != nil {
		required = f.RequiredWhen(w.values)
	}

	if required && value == "" {
		w.errors[f.Key] = "Required"
		return false
	}
	if value != "" && f.Validate != nil {
		if err := f.Validate(value); err != nil {
			w.errors[f.Key] = err.Error()
			return false
		}
	}
	delete(w.errors, f.Key)
	return true
}

func (w *Wizard) findField(key string) (Field, bool) {
	for _, s := range w.steps {
		for _, f := range s.Fields {
			if f.Key == key {
				return f, true
			}
		}
	}
	return Field{}, false
}

// ── shared validators ────────────────────────────────────────────────────────

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Phone accepts exactly ten digits.
func Phone(value string) error {
	if !phonePattern.MatchString(value) {
		return errMustBe10Digits
	}
	return nil
}

type validationError string

func (e validationError) Error() string { return string(e) }

const errMustBe10Digits = validationError("Must be 10 digits")
