package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pocdesk/internal/domain"
	"pocdesk/internal/wizard"
)

const formDateLayout = "2006-01-02"

// formDate accepts an ISO calendar date.
func formDate(value string) error {
	if _, err := time.Parse(formDateLayout, value); err != nil {
		return fmt.Errorf("Use YYYY-MM-DD")
	}
	return nil
}

// formWholeDays accepts a non-negative whole number.
func formWholeDays(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("Must be a whole number")
	}
	return nil
}

// formList accepts a comma-separated list whose items survive the wire
// round trip.
func formList(value string) error {
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if err := domain.ValidateListItem(item); err != nil {
			return err
		}
	}
	return nil
}

func projectCodeFormSteps() []wizard.Step {
	return []wizard.Step{
		{
			Title: "Basics",
			Fields: []wizard.Field{
				{Key: "name", Label: "Project Name", Required: true},
				{Key: "usecaseId", Label: "Usecase ID"},
				{Key: "startDate", Label: "Planned Start", Required: true, Validate: formDate},
				{Key: "endDate", Label: "Planned End", Required: true, Validate: formDate},
			},
		},
		{
			Title: "Efforts",
			Fields: []wizard.Field{
				{Key: "actualStart", Label: "Actual Start", Validate: formDate},
				{Key: "actualEnd", Label: "Actual End", Validate: formDate},
				{Key: "estimatedEfforts", Label: "Estimated Days", Required: true, Validate: formWholeDays},
				{Key: "totalEfforts", Label: "Total Days", Validate: formWholeDays},
			},
		},
		{
			Title: "Assignment",
			Fields: []wizard.Field{
				{Key: "assignedTo", Label: "Assigned To", Validate: formList},
				{Key: "tags", Label: "Tags", Validate: formList},
				{Key: "billable", Label: "Billable", Required: true},
				{Key: "approver", Label: "Approver"},
			},
		},
		{
			Title: "Review",
		},
	}
}

func projectCodeFormSpecs() []formFieldSpec {
	return []formFieldSpec{
		{key: "name", placeholder: "project name"},
		{key: "usecaseId", placeholder: "originating usecase id"},
		{key: "startDate", placeholder: "YYYY-MM-DD"},
		{key: "endDate", placeholder: "YYYY-MM-DD"},
		{key: "actualStart", placeholder: "YYYY-MM-DD"},
		{key: "actualEnd", placeholder: "YYYY-MM-DD"},
		{key: "estimatedEfforts", placeholder: "working days"},
		{key: "totalEfforts", placeholder: "working days"},
		{key: "assignedTo", placeholder: "ids, comma separated"},
		{key: "tags", placeholder: "tags, comma separated"},
		{key: "billable", kind: fieldSelect, options: []string{"Yes", "No"}},
		{key: "approver", placeholder: "approver id"},
	}
}

// openProjectCodeForm loads the approver lookup before building the form.
func openProjectCodeForm(state *SharedState, existing *domain.ProjectCode, replace bool) tea.Cmd {
	app := state.App
	return func() tea.Msg {
		people, err := cachedApprovers(context.Background(), app)
		if err != nil {
			return projectCodeMutatedMsg{err: err}
		}
		ids := make([]string, 0, len(people))
		for _, p := range people {
			ids = append(ids, p.EmployeeID)
		}
		form := newProjectCodeFormView(state, existing, ids)
		if replace {
			return replaceViewMsg{view: form}
		}
		return pushViewMsg{view: form}
	}
}

// newProjectCodeFormView builds the create/edit wizard for a project code.
// The code itself stays server-assigned and never appears as a form field.
func newProjectCodeFormView(state *SharedState, existing *domain.ProjectCode, approvers []string) View {
	title := "New Project Code"
	if existing != nil {
		title = "Edit " + existing.DisplayID()
	}

	submit := func(values map[string]string) tea.Cmd {
		app := state.App
		record := projectCodeFromValues(values, existing)
		return func() tea.Msg {
			ctx := context.Background()
			if existing == nil {
				created, err := app.Backend.CreateProjectCode(ctx, record)
				if err != nil {
					return recordFormSubmittedMsg{err: err}
				}
				return recordFormSubmittedMsg{outcome: projectCodeMutatedMsg{created: created, notice: "Project code created."}}
			}
			updated, err := app.Backend.UpdateProjectCode(ctx, record)
			if err != nil {
				return recordFormSubmittedMsg{err: err}
			}
			return recordFormSubmittedMsg{outcome: projectCodeMutatedMsg{patch: updated, notice: "Project code updated."}}
		}
	}

	specs := projectCodeFormSpecs()
	if len(approvers) > 0 {
		for i := range specs {
			if specs[i].key == "approver" {
				specs[i].kind = fieldSelect
				specs[i].options = append([]string{""}, approvers...)
			}
		}
	}

	v := newRecordFormView(state, title, projectCodeFormSteps(), specs, submit)
	if existing != nil {
		v.setInitialValues(projectCodeToValues(existing))
	}
	return v
}

func parseFormDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(formDateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func parseFormInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseFormList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return domain.SplitList(s)
}

// projectCodeFromValues builds the wire record from form values. On edit,
// identity and the server-maintained fields carry over unchanged so the
// update payload never zeroes them.
func projectCodeFromValues(values map[string]string, existing *domain.ProjectCode) *domain.ProjectCode {
	record := &domain.ProjectCode{
		Name:             values["name"],
		UsecaseID:        values["usecaseId"],
		StartDate:        parseFormDate(values["startDate"]),
		EndDate:          parseFormDate(values["endDate"]),
		ActualStart:      parseFormDate(values["actualStart"]),
		ActualEnd:        parseFormDate(values["actualEnd"]),
		EstimatedEfforts: parseFormInt(values["estimatedEfforts"]),
		TotalEfforts:     parseFormInt(values["totalEfforts"]),
		AssignedTo:       parseFormList(values["assignedTo"]),
		Tags:             parseFormList(values["tags"]),
		Billable:         values["billable"] == "Yes",
		Approver:         values["approver"],
	}
	if existing != nil {
		record.ID = existing.ID
		record.Code = existing.Code
		record.Status = existing.Status
		record.VarianceDays = existing.VarianceDays
		record.CreatedAt = existing.CreatedAt
		record.UpdatedAt = existing.UpdatedAt
	}
	return record
}

func projectCodeToValues(r *domain.ProjectCode) map[string]string {
	billable := "No"
	if r.Billable {
		billable = "Yes"
	}
	return map[string]string{
		"name":             r.Name,
		"usecaseId":        r.UsecaseID,
		"startDate":        valueDate(r.StartDate),
		"endDate":          valueDate(r.EndDate),
		"actualStart":      valueDate(r.ActualStart),
		"actualEnd":        valueDate(r.ActualEnd),
		"estimatedEfforts": strconv.Itoa(r.EstimatedEfforts),
		"totalEfforts":     strconv.Itoa(r.TotalEfforts),
		"assignedTo":       strings.Join(r.AssignedTo, ", "),
		"tags":             strings.Join(r.Tags, ", "),
		"billable":         billable,
		"approver":         r.Approver,
	}
}

func valueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(formDateLayout)
}
