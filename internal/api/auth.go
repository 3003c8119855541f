package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pocdesk/internal/domain"
)

// LoginResult is the backend's reply to a successful authentication.
type LoginResult struct {
	Token   string
	Profile domain.UserProfile
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string      `json:"token"`
	Profile wireProfile `json:"profile"`
}

type wireProfile struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

// Login authenticates with username/password. It is the only call issued
// without a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var resp loginResponse
	err := c.send(ctx, http.MethodPost, "/api/login", loginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token: resp.Token,
		Profile: domain.UserProfile{
			EmployeeID: resp.Profile.EmployeeID,
			Name:       resp.Profile.Name,
			Email:      resp.Profile.Email,
			Role:       resp.Profile.Role,
		},
	}, nil
}

// Logout tells the backend to invalidate the token. Callers treat it as
// fire-and-forget: local session state is cleared whether or not it succeeds.
func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// ValidateToken asks the backend whether the stored token is still good. It
// runs in the background after initial render, so it carries its own short
// fixed timeout. A definitive rejection returns (false, nil); failure to reach
// the server returns an error the caller logs without surfacing.
func (c *Client) ValidateToken(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.ValidateTimeoutMs)*time.Millisecond)
	defer cancel()

	err := c.call(ctx, http.MethodGet, "/api/validate-token", nil, nil, 1)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrUnauthenticated) {
		return false, nil
	}
	return false, err
}

// Permissions fetches the server-computed flags for one employee.
func (c *Client) Permissions(ctx context.Context, employeeID string) (*domain.PermissionFlags, error) {
	var resp struct {
		DashboardAccess       bool `json:"dashboard_access"`
		ReportAccess          bool `json:"report_access"`
		UsecaseCreationAccess bool `json:"usecase_creation_access"`
		StatusAccess          bool `json:"status_access"`
		SalesAccess           bool `json:"sales_access"`
	}
	if err := c.get(ctx, "/api/permissions/"+employeeID, &resp); err != nil {
		return nil, err
	}
	return &domain.PermissionFlags{
		DashboardAccess:       resp.DashboardAccess,
		ReportAccess:          resp.ReportAccess,
		UsecaseCreationAccess: resp.UsecaseCreationAccess,
		StatusAccess:          resp.StatusAccess,
		SalesAccess:           resp.SalesAccess,
	}, nil
}
