package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"pocdesk/internal/domain"
)

var fixtureCounter atomic.Int64

// Usecase options
type UsecaseOption func(*domain.UsecaseRecord)

func WithStatus(s domain.UsecaseStatus) UsecaseOption {
	return func(u *domain.UsecaseRecord) {
		u.Status = s
	}
}

func WithRegion(region string) UsecaseOption {
	return func(u *domain.UsecaseRecord) {
		u.Region = region
	}
}

func WithProcessType(pt domain.ProcessType) UsecaseOption {
	return func(u *domain.UsecaseRecord) {
		u.ProcessType = pt
	}
}

func WithPartner(name string) UsecaseOption {
	return func(u *domain.UsecaseRecord) {
		u.CustomerType = domain.CustomerPartner
		u.PartnerName = name
	}
}

func WithSalesPerson(name string) UsecaseOption {
	return func(u *domain.UsecaseRecord) {
		u.SalesPerson = name
	}
}

func WithRemark(remark string) UsecaseOption {
	return func(u *domain.UsecaseRecord) {
		u.Remark = remark
	}
}

func NewTestUsecase(company string, opts ...UsecaseOption) *domain.UsecaseRecord {
	now := time.Now().UTC()
	n := fixtureCounter.Add(1)
	u := &domain.UsecaseRecord{
		ID:           uuid.New().String(),
		CompanyName:  company,
		SpocName:     fmt.Sprintf("Contact %d", n),
		SpocEmail:    fmt.Sprintf("contact%d@example.com", n),
		SpocMobile:   "9876543210",
		Region:       "North",
		CustomerType: domain.CustomerDirect,
		ProcessType:  domain.ProcessPOC,
		Usecase:      "Evaluation",
		Status:       domain.UsecaseOngoing,
		CreatedBy:    "E100",
		CreatedAt:    now.Add(-24 * time.Hour),
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ProjectCode options
type ProjectCodeOption func(*domain.ProjectCode)

func WithProjectStatus(s domain.ProjectCodeStatus) ProjectCodeOption {
	return func(p *domain.ProjectCode) {
		p.Status = s
	}
}

func WithAssignees(ids ...string) ProjectCodeOption {
	return func(p *domain.ProjectCode) {
		p.AssignedTo = ids
	}
}

func WithTags(tags ...string) ProjectCodeOption {
	return func(p *domain.ProjectCode) {
		p.Tags = tags
	}
}

func WithSchedule(start, end time.Time) ProjectCodeOption {
	return func(p *domain.ProjectCode) {
		p.StartDate = &start
		p.EndDate = &end
	}
}

func NewTestProjectCode(name string, opts ...ProjectCodeOption) *domain.ProjectCode {
	now := time.Now().UTC()
	n := fixtureCounter.Add(1)
	p := &domain.ProjectCode{
		ID:               uuid.New().String(),
		Code:             fmt.Sprintf("POC-%04d", n),
		Name:             name,
		EstimatedEfforts: 10,
		Billable:         true,
		Status:           domain.ProjectInProgress,
		CreatedAt:        now.Add(-24 * time.Hour),
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DailyStatus options
type DailyStatusOption func(*domain.DailyStatusEntry)

func WithWorked(hours, minutes int) DailyStatusOption {
	return func(d *domain.DailyStatusEntry) {
		d.Hours = hours
		d.Minutes = minutes
	}
}

func WithUsecaseName(name string) DailyStatusOption {
	return func(d *domain.DailyStatusEntry) {
		d.UsecaseName = name
	}
}

func WithLeads(ids ...string) DailyStatusOption {
	return func(d *domain.DailyStatusEntry) {
		d.LeadIDs = ids
	}
}

func NewTestDailyStatus(employeeID string, date time.Time, opts ...DailyStatusOption) *domain.DailyStatusEntry {
	now := time.Now().UTC()
	d := &domain.DailyStatusEntry{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		Date:        date,
		UsecaseID:   uuid.New().String(),
		UsecaseName: "Evaluation",
		StatusText:  "In progress",
		Hours:       2,
		Minutes:     30,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewTestProfile returns a profile with a distinct employee id.
func NewTestProfile(name string) domain.UserProfile {
	n := fixtureCounter.Add(1)
	return domain.UserProfile{
		EmployeeID: fmt.Sprintf("E%03d", n),
		Name:       name,
		Email:      fmt.Sprintf("%d@example.com", n),
		Role:       "Engineer",
	}
}
