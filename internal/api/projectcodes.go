package api

import (
	"context"
	"net/http"
	"time"

	"pocdesk/internal/domain"
)

// wireProjectCode mirrors the backend's project-code JSON. Multi-value fields
// (assignedTo, tags) travel as comma-joined strings on the wire.
type wireProjectCode struct {
	ID               string `json:"id,omitempty"`
	Code             string `json:"code,omitempty"`
	UsecaseID        string `json:"usecaseId"`
	Name             string `json:"name"`
	StartDate        string `json:"startDate,omitempty"`
	EndDate          string `json:"endDate,omitempty"`
	ActualStart      string `json:"actualStart,omitempty"`
	ActualEnd        string `json:"actualEnd,omitempty"`
	EstimatedEfforts int    `json:"estimatedEfforts"`
	TotalEfforts     int    `json:"totalEfforts"`
	VarianceDays     int    `json:"varianceDays"`
	AssignedTo       string `json:"assignedTo,omitempty"`
	Tags             string `json:"tags,omitempty"`
	Billable         bool   `json:"billable"`
	Approver         string `json:"approver,omitempty"`
	Status           string `json:"status,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
	UpdatedAt        string `json:"updatedAt,omitempty"`
}

const wireDateLayout = "2006-01-02"

func formatWireDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(wireDateLayout)
}

func parseWireDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(wireDateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func projectCodeToWire(p *domain.ProjectCode) wireProjectCode {
	return wireProjectCode{
		ID:               p.ID,
		Code:             p.Code,
		UsecaseID:        p.UsecaseID,
		Name:             p.Name,
		StartDate:        formatWireDate(p.StartDate),
		EndDate:          formatWireDate(p.EndDate),
		ActualStart:      formatWireDate(p.ActualStart),
		ActualEnd:        formatWireDate(p.ActualEnd),
		EstimatedEfforts: p.EstimatedEfforts,
		TotalEfforts:     p.TotalEfforts,
		VarianceDays:     p.VarianceDays,
		AssignedTo:       domain.JoinList(p.AssignedTo),
		Tags:             domain.JoinList(p.Tags),
		Billable:         p.Billable,
		Approver:         p.Approver,
		Status:           string(p.Status),
	}
}

func projectCodeFromWire(w wireProjectCode) *domain.ProjectCode {
	return &domain.ProjectCode{
		ID:               w.ID,
		Code:             w.Code,
		UsecaseID:        w.UsecaseID,
		Name:             w.Name,
		StartDate:        parseWireDate(w.StartDate),
		EndDate:          parseWireDate(w.EndDate),
		ActualStart:      parseWireDate(w.ActualStart),
		ActualEnd:        parseWireDate(w.ActualEnd),
		EstimatedEfforts: w.EstimatedEfforts,
		TotalEfforts:     w.TotalEfforts,
		VarianceDays:     w.VarianceDays,
		AssignedTo:       domain.SplitList(w.AssignedTo),
		Tags:             domain.SplitList(w.Tags),
		Billable:         w.Billable,
		Approver:         w.Approver,
		Status:           domain.ProjectCodeStatus(w.Status),
		CreatedAt:        parseWireTime(w.CreatedAt),
		UpdatedAt:        parseWireTime(w.UpdatedAt),
	}
}

// ListProjectCodes fetches every project code visible to the caller.
func (c *Client) ListProjectCodes(ctx context.Context) ([]*domain.ProjectCode, error) {
	var resp []wireProjectCode
	if err := c.get(ctx, "/api/project-codes", &resp); err != nil {
		return nil, err
	}
	codes := make([]*domain.ProjectCode, 0, len(resp))
	for _, w := range resp {
		codes = append(codes, projectCodeFromWire(w))
	}
	return codes, nil
}

// CreateProjectCode posts a new project code. The generated code (POC-0042
// style) comes back from the server, never from the client.
func (c *Client) CreateProjectCode(ctx context.Context, p *domain.ProjectCode) (*domain.ProjectCode, error) {
	var resp wireProjectCode
	if err := c.send(ctx, http.MethodPost, "/api/project-codes", projectCodeToWire(p), &resp); err != nil {
		return nil, err
	}
	return projectCodeFromWire(resp), nil
}

// UpdateProjectCode puts a full edit of an existing project code.
func (c *Client) UpdateProjectCode(ctx context.Context, p *domain.ProjectCode) (*domain.ProjectCode, error) {
	var resp wireProjectCode
	if err := c.send(ctx, http.MethodPut, "/api/project-codes/"+p.ID, projectCodeToWire(p), &resp); err != nil {
		return nil, err
	}
	return projectCodeFromWire(resp), nil
}

// DeleteProjectCode removes a project code server-side.
func (c *Client) DeleteProjectCode(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/project-codes/"+id, nil, nil)
}

// PatchProjectCodeStatus changes only the status of a project code.
func (c *Client) PatchProjectCodeStatus(ctx context.Context, id string, status domain.ProjectCodeStatus) error {
	body := struct {
		Status string `json:"status"`
	}{Status: string(status)}
	return c.send(ctx, http.MethodPut, "/api/project-codes/"+id+"/status", body, nil)
}
