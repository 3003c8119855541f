package domain

import (
	"fmt"
	"regexp"
	"time"
)

var projectCodePattern = regexp.MustCompile(`^[A-Z]{2,6}-[0-9]{3,6}$`)

// ProjectCode is the richer project-tracking entity behind a converted usecase.
// Its code is generated server-side as prefix + zero-padded sequence (POC-0042).
type ProjectCode struct {
	ID               string
	Code             string
	UsecaseID        string
	Name             string
	StartDate        *time.Time
	EndDate          *time.Time
	ActualStart      *time.Time
	ActualEnd        *time.Time
	EstimatedEfforts int
	TotalEfforts     int
	VarianceDays     int
	AssignedTo       []string
	Tags             []string
	Billable         bool
	Approver         string
	Status           ProjectCodeStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidateCode checks the generated code format: 2-6 uppercase letters, a
// hyphen, then 3-6 digits (e.g. POC-0042).
func (p *ProjectCode) ValidateCode() error {
	if p.Code == "" {
		return fmt.Errorf("project code is required")
	}
	if !projectCodePattern.MatchString(p.Code) {
		return fmt.Errorf("project code %q must be 2-6 uppercase letters, a hyphen, and 3-6 digits (e.g. POC-0042)", p.Code)
	}
	return nil
}

// DisplayID prefers the generated code, falling back to a truncated id.
func (p *ProjectCode) DisplayID() string {
	if p.Code != "" {
		return p.Code
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
