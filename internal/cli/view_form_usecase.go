package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"pocdesk/internal/domain"
	"pocdesk/internal/wizard"
)

// isPartner gates the partner-only fields on the live customerType value.
func isPartner(values map[string]string) bool {
	return values["customerType"] == string(domain.CustomerPartner)
}

func usecaseFormSteps() []wizard.Step {
	return []wizard.Step{
		{
			Title: "Company & Contact",
			Fields: []wizard.Field{
				{Key: "companyName", Label: "Company Name", Required: true},
				{Key: "customerType", Label: "Customer Type", Required: true},
				{Key: "partnerName", Label: "Partner Name", RequiredWhen: isPartner},
				{Key: "spocName", Label: "SPOC Name", Required: true},
				{Key: "spocEmail", Label: "SPOC Email", Required: true},
				{Key: "spocMobile", Label: "SPOC Mobile", Required: true, Validate: wizard.Phone},
				{Key: "region", Label: "Region", Required: true},
			},
		},
		{
			Title: "Usecase Details",
			Fields: []wizard.Field{
				{Key: "processType", Label: "Process Type", Required: true},
				{Key: "usecase", Label: "Usecase", Required: true},
				{Key: "brief", Label: "Brief"},
				{Key: "salesPerson", Label: "Sales Person"},
			},
		},
		{
			Title: "Review",
		},
	}
}

func usecaseFormSpecs() []formFieldSpec {
	return []formFieldSpec{
		{key: "companyName", placeholder: "Acme Industries"},
		{key: "customerType", kind: fieldSelect, options: []string{"Direct", "Partner"}},
		{key: "partnerName", placeholder: "reselling partner",
			hidden: func(values map[string]string) bool { return !isPartner(values) }},
		{key: "spocName", placeholder: "primary contact"},
		{key: "spocEmail", placeholder: "contact@example.com"},
		{key: "spocMobile", placeholder: "10 digits"},
		{key: "region", placeholder: "North / South / ..."},
		{key: "processType", kind: fieldSelect, options: []string{"POC", "Usecase", "Demo"}},
		{key: "usecase", placeholder: "what is being evaluated"},
		{key: "brief", placeholder: "optional description"},
		{key: "salesPerson", placeholder: "optional owner"},
	}
}

// openUsecaseForm loads the sales person lookup before building the form so
// the owner field offers a select instead of free text. The lookup comes from
// the local cache when warm.
func openUsecaseForm(state *SharedState, existing *domain.UsecaseRecord, replace bool) tea.Cmd {
	app := state.App
	return func() tea.Msg {
		people, err := cachedSalesPersons(context.Background(), app)
		if err != nil {
			return usecaseMutatedMsg{err: err}
		}
		names := make([]string, 0, len(people))
		for _, p := range people {
			names = append(names, p.Name)
		}
		form := newUsecaseFormView(state, existing, names)
		if replace {
			return replaceViewMsg{view: form}
		}
		return pushViewMsg{view: form}
	}
}

// newUsecaseFormView builds the create/edit wizard for a usecase record.
// existing == nil creates; otherwise the form is seeded and submits an update
// keyed by the existing identifier.
func newUsecaseFormView(state *SharedState, existing *domain.UsecaseRecord, salesPersons []string) View {
	title := "New Usecase"
	if existing != nil {
		title = "Edit Usecase"
	}

	submit := func(values map[string]string) tea.Cmd {
		app := state.App
		record := usecaseFromValues(values)
		if existing != nil {
			// Fields managed outside this form survive an edit untouched.
			record.ID = existing.ID
			record.Remark = existing.Remark
			record.Status = existing.Status
			record.CreatedBy = existing.CreatedBy
			record.CreatedAt = existing.CreatedAt
			record.UpdatedAt = existing.UpdatedAt
		}
		return func() tea.Msg {
			ctx := context.Background()
			if existing == nil {
				created, err := app.Backend.CreateUsecase(ctx, record)
				if err != nil {
					return recordFormSubmittedMsg{err: err}
				}
				return recordFormSubmittedMsg{outcome: usecaseMutatedMsg{created: created, notice: "Record created."}}
			}
			updated, err := app.Backend.UpdateUsecase(ctx, record)
			if err != nil {
				return recordFormSubmittedMsg{err: err}
			}
			return recordFormSubmittedMsg{outcome: usecaseMutatedMsg{patch: updated, notice: "Record updated."}}
		}
	}

	specs := usecaseFormSpecs()
	if len(salesPersons) > 0 {
		for i := range specs {
			if specs[i].key == "salesPerson" {
				specs[i].kind = fieldSelect
				specs[i].options = append([]string{""}, salesPersons...)
			}
		}
	}

	v := newRecordFormView(state, title, usecaseFormSteps(), specs, submit)
	if existing != nil {
		v.setInitialValues(usecaseToValues(existing))
	}
	return v
}

// usecaseFromValues builds the payload from fixed field names only.
func usecaseFromValues(values map[string]string) *domain.UsecaseRecord {
	r := &domain.UsecaseRecord{
		CompanyName:  values["companyName"],
		CustomerType: domain.CustomerType(values["customerType"]),
		SpocName:     values["spocName"],
		SpocEmail:    values["spocEmail"],
		SpocMobile:   values["spocMobile"],
		Region:       values["region"],
		ProcessType:  domain.ProcessType(values["processType"]),
		Usecase:      values["usecase"],
		Brief:        values["brief"],
		SalesPerson:  values["salesPerson"],
	}
	// A partner name entered before switching back to Direct is dropped.
	if r.CustomerType == domain.CustomerPartner {
		r.PartnerName = values["partnerName"]
	}
	return r
}

func usecaseToValues(r *domain.UsecaseRecord) map[string]string {
	return map[string]string{
		"companyName":  r.CompanyName,
		"customerType": string(r.CustomerType),
		"partnerName":  r.PartnerName,
		"spocName":     r.SpocName,
		"spocEmail":    r.SpocEmail,
		"spocMobile":   r.SpocMobile,
		"region":       r.Region,
		"processType":  string(r.ProcessType),
		"usecase":      r.Usecase,
		"brief":        r.Brief,
		"salesPerson":  r.SalesPerson,
	}
}
