package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"pocdesk/internal/domain"
)

type wireDailyStatus struct {
	ID          string `json:"id,omitempty"`
	EmployeeID  string `json:"employeeId"`
	Date        string `json:"date"`
	UsecaseID   string `json:"usecaseId"`
	UsecaseName string `json:"usecaseName,omitempty"`
	LeadIDs     string `json:"leadIds,omitempty"`
	StatusText  string `json:"statusText"`
	Hours       int    `json:"hours"`
	Minutes     int    `json:"minutes"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

func dailyStatusToWire(d *domain.DailyStatusEntry) wireDailyStatus {
	return wireDailyStatus{
		ID:          d.ID,
		EmployeeID:  d.EmployeeID,
		Date:        d.Date.Format(wireDateLayout),
		UsecaseID:   d.UsecaseID,
		UsecaseName: d.UsecaseName,
		LeadIDs:     domain.JoinList(d.LeadIDs),
		StatusText:  d.StatusText,
		Hours:       d.Hours,
		Minutes:     d.Minutes,
	}
}

func dailyStatusFromWire(w wireDailyStatus) *domain.DailyStatusEntry {
	d := &domain.DailyStatusEntry{
		ID:          w.ID,
		EmployeeID:  w.EmployeeID,
		UsecaseID:   w.UsecaseID,
		UsecaseName: w.UsecaseName,
		LeadIDs:     domain.SplitList(w.LeadIDs),
		StatusText:  w.StatusText,
		Hours:       w.Hours,
		Minutes:     w.Minutes,
		CreatedAt:   parseWireTime(w.CreatedAt),
		UpdatedAt:   parseWireTime(w.UpdatedAt),
	}
	if t := parseWireDate(w.Date); t != nil {
		d.Date = *t
	}
	return d
}

// ListDailyStatus fetches an employee's entries for one calendar date.
func (c *Client) ListDailyStatus(ctx context.Context, employeeID string, date time.Time) ([]*domain.DailyStatusEntry, error) {
	q := url.Values{
		"employeeId": {employeeID},
		"date":       {date.Format(wireDateLayout)},
	}
	var resp []wireDailyStatus
	if err := c.get(ctx, "/api/daily-status?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	entries := make([]*domain.DailyStatusEntry, 0, len(resp))
	for _, w := range resp {
		entries = append(entries, dailyStatusFromWire(w))
	}
	return entries, nil
}

// CreateDailyStatus posts a new entry and returns it with the server-assigned
// identifier merged in.
func (c *Client) CreateDailyStatus(ctx context.Context, d *domain.DailyStatusEntry) (*domain.DailyStatusEntry, error) {
	var resp wireDailyStatus
	if err := c.send(ctx, http.MethodPost, "/api/daily-status", dailyStatusToWire(d), &resp); err != nil {
		return nil, err
	}
	return dailyStatusFromWire(resp), nil
}

// UpdateDailyStatus puts a full edit of an existing entry.
func (c *Client) UpdateDailyStatus(ctx context.Context, d *domain.DailyStatusEntry) (*domain.DailyStatusEntry, error) {
	var resp wireDailyStatus
	if err := c.send(ctx, http.MethodPut, "/api/daily-status/"+d.ID, dailyStatusToWire(d), &resp); err != nil {
		return nil, err
	}
	return dailyStatusFromWire(resp), nil
}

// DeleteDailyStatus removes an entry server-side.
func (c *Client) DeleteDailyStatus(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/daily-status/"+id, nil, nil)
}
