package domain

// UserProfile is the logged-in employee profile returned by the backend on
// authentication and persisted alongside the bearer token.
type UserProfile struct {
	EmployeeID string
	Name       string
	Email      string
	Role       string
}

// PermissionFlags are server-computed booleans gating which navigation options
// a logged-in user sees. The client never derives or overrides them.
type PermissionFlags struct {
	DashboardAccess       bool
	ReportAccess          bool
	UsecaseCreationAccess bool
	StatusAccess          bool
	SalesAccess           bool
}
