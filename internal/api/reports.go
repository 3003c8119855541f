package api

import (
	"context"
	"net/url"
)

// ReportSummary carries the server-aggregated record counts the report view
// charts. Each map is category label to record count.
type ReportSummary struct {
	Total          int            `json:"total"`
	ByProcessType  map[string]int `json:"byProcessType"`
	ByStatus       map[string]int `json:"byStatus"`
	ByRegion       map[string]int `json:"byRegion"`
	ByCustomerType map[string]int `json:"byCustomerType"`
}

// ReportSummary fetches aggregate counts, optionally scoped to one employee.
// An empty employeeID asks for the organisation-wide rollup.
func (c *Client) ReportSummary(ctx context.Context, employeeID string) (*ReportSummary, error) {
	path := "/api/reports/summary"
	if employeeID != "" {
		path += "?" + url.Values{"employeeId": {employeeID}}.Encode()
	}
	var resp ReportSummary
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
