package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"pocdesk/internal/domain"
)

// wireUsecase is the backend's JSON shape for a usecase record.
type wireUsecase struct {
	ID           string `json:"id,omitempty"`
	CompanyName  string `json:"companyName"`
	PartnerName  string `json:"partnerName,omitempty"`
	SpocName     string `json:"spocName"`
	SpocEmail    string `json:"spocEmail"`
	SpocMobile   string `json:"spocMobile"`
	Region       string `json:"region"`
	CustomerType string `json:"customerType"`
	ProcessType  string `json:"processType"`
	Usecase      string `json:"usecase"`
	Brief        string `json:"brief,omitempty"`
	Remark       string `json:"remark,omitempty"`
	SalesPerson  string `json:"salesPerson,omitempty"`
	Status       string `json:"status,omitempty"`
	CreatedBy    string `json:"createdBy,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

func usecaseToWire(u *domain.UsecaseRecord) wireUsecase {
	return wireUsecase{
		ID:           u.ID,
		CompanyName:  u.CompanyName,
		PartnerName:  u.PartnerName,
		SpocName:     u.SpocName,
		SpocEmail:    u.SpocEmail,
		SpocMobile:   u.SpocMobile,
		Region:       u.Region,
		CustomerType: string(u.CustomerType),
		ProcessType:  string(u.ProcessType),
		Usecase:      u.Usecase,
		Brief:        u.Brief,
		Remark:       u.Remark,
		SalesPerson:  u.SalesPerson,
		Status:       string(u.Status),
	}
}

func usecaseFromWire(w wireUsecase) *domain.UsecaseRecord {
	u := &domain.UsecaseRecord{
		ID:           w.ID,
		CompanyName:  w.CompanyName,
		PartnerName:  w.PartnerName,
		SpocName:     w.SpocName,
		SpocEmail:    w.SpocEmail,
		SpocMobile:   w.SpocMobile,
		Region:       w.Region,
		CustomerType: domain.CustomerType(w.CustomerType),
		ProcessType:  domain.ProcessType(w.ProcessType),
		Usecase:      w.Usecase,
		Brief:        w.Brief,
		Remark:       w.Remark,
		SalesPerson:  w.SalesPerson,
		Status:       domain.UsecaseStatus(w.Status),
		CreatedBy:    w.CreatedBy,
	}
	u.CreatedAt = parseWireTime(w.CreatedAt)
	u.UpdatedAt = parseWireTime(w.UpdatedAt)
	return u
}

func parseWireTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// ListUsecases fetches the record list for one employee. With adminScope the
// backend returns every record instead of just the employee's own; the server
// still enforces whether the caller may ask for that.
func (c *Client) ListUsecases(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
	q := url.Values{"employeeId": {employeeID}}
	if adminScope {
		q.Set("scope", "all")
	}
	var resp []wireUsecase
	if err := c.get(ctx, "/api/usecases?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	records := make([]*domain.UsecaseRecord, 0, len(resp))
	for _, w := range resp {
		records = append(records, usecaseFromWire(w))
	}
	return records, nil
}

// CreateUsecase posts a new record and returns it with server-assigned fields
// (identifier, status, timestamps) merged in.
func (c *Client) CreateUsecase(ctx context.Context, u *domain.UsecaseRecord) (*domain.UsecaseRecord, error) {
	var resp wireUsecase
	if err := c.send(ctx, http.MethodPost, "/api/usecases", usecaseToWire(u), &resp); err != nil {
		return nil, err
	}
	return usecaseFromWire(resp), nil
}

// UpdateUsecase puts a full edit of an existing record.
func (c *Client) UpdateUsecase(ctx context.Context, u *domain.UsecaseRecord) (*domain.UsecaseRecord, error) {
	var resp wireUsecase
	if err := c.send(ctx, http.MethodPut, "/api/usecases/"+u.ID, usecaseToWire(u), &resp); err != nil {
		return nil, err
	}
	return usecaseFromWire(resp), nil
}

// DeleteUsecase removes a record server-side.
func (c *Client) DeleteUsecase(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/usecases/"+id, nil, nil)
}

// PatchUsecaseStatus changes only the status of a record.
func (c *Client) PatchUsecaseStatus(ctx context.Context, id string, status domain.UsecaseStatus) error {
	body := struct {
		Status string `json:"status"`
	}{Status: string(status)}
	return c.send(ctx, http.MethodPut, "/api/usecases/"+id+"/status", body, nil)
}

// PatchUsecaseRemark changes only the remark of a record.
func (c *Client) PatchUsecaseRemark(ctx context.Context, id, remark string) error {
	body := struct {
		Remark string `json:"remark"`
	}{Remark: remark}
	return c.send(ctx, http.MethodPut, "/api/usecases/"+id+"/remark", body, nil)
}
