package domain

import "time"

// UsecaseRecord is a tracked POC/usecase initiative. The backend owns its
// identity and lifecycle; the client holds records verbatim between fetches.
type UsecaseRecord struct {
	ID           string
	CompanyName  string
	PartnerName  string
	SpocName     string
	SpocEmail    string
	SpocMobile   string
	Region       string
	CustomerType CustomerType
	ProcessType  ProcessType
	Usecase      string
	Brief        string
	Remark       string
	SalesPerson  string
	Status       UsecaseStatus
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPartner reports whether the record belongs to a partner-sourced customer,
// which makes the partner contact fields mandatory.
func (u *UsecaseRecord) IsPartner() bool {
	return u.CustomerType == CustomerPartner
}

// DisplayID returns a short identifier for list rendering.
func (u *UsecaseRecord) DisplayID() string {
	if len(u.ID) >= 8 {
		return u.ID[:8]
	}
	return u.ID
}
