package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"pocdesk/internal/api"
	"pocdesk/internal/domain"
	"pocdesk/internal/session"
	"pocdesk/internal/teatest"
)

// stubBackend implements Backend with overridable func fields. Unset fields
// return zero values so tests only wire what they exercise.
type stubBackend struct {
	LoginFn         func(ctx context.Context, username, password string) (*api.LoginResult, error)
	LogoutFn        func(ctx context.Context) error
	ValidateTokenFn func(ctx context.Context) (bool, error)
	PermissionsFn   func(ctx context.Context, employeeID string) (*domain.PermissionFlags, error)

	ListUsecasesFn       func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error)
	CreateUsecaseFn      func(ctx context.Context, u *domain.UsecaseRecord) (*domain.UsecaseRecord, error)
	UpdateUsecaseFn      func(ctx context.Context, u *domain.UsecaseRecord) (*domain.UsecaseRecord, error)
	DeleteUsecaseFn      func(ctx context.Context, id string) error
	PatchUsecaseStatusFn func(ctx context.Context, id string, status domain.UsecaseStatus) error
	PatchUsecaseRemarkFn func(ctx context.Context, id, remark string) error

	ListProjectCodesFn       func(ctx context.Context) ([]*domain.ProjectCode, error)
	CreateProjectCodeFn      func(ctx context.Context, p *domain.ProjectCode) (*domain.ProjectCode, error)
	UpdateProjectCodeFn      func(ctx context.Context, p *domain.ProjectCode) (*domain.ProjectCode, error)
	DeleteProjectCodeFn      func(ctx context.Context, id string) error
	PatchProjectCodeStatusFn func(ctx context.Context, id string, status domain.ProjectCodeStatus) error

	ListDailyStatusFn   func(ctx context.Context, employeeID string, date time.Time) ([]*domain.DailyStatusEntry, error)
	CreateDailyStatusFn func(ctx context.Context, d *domain.DailyStatusEntry) (*domain.DailyStatusEntry, error)
	UpdateDailyStatusFn func(ctx context.Context, d *domain.DailyStatusEntry) (*domain.DailyStatusEntry, error)
	DeleteDailyStatusFn func(ctx context.Context, id string) error

	ReportSummaryFn   func(ctx context.Context, employeeID string) (*api.ReportSummary, error)
	SalesPersonsFn    func(ctx context.Context) ([]api.Person, error)
	AssignableUsersFn func(ctx context.Context) ([]api.Person, error)
	ApproversFn       func(ctx context.Context) ([]api.Person, error)
}

func (s *stubBackend) Login(ctx context.Context, username, password string) (*api.LoginResult, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, username, password)
	}
	return &api.LoginResult{Token: "stub-token", Profile: domain.UserProfile{EmployeeID: "E100", Name: "Test User"}}, nil
}

func (s *stubBackend) Logout(ctx context.Context) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx)
	}
	return nil
}

func (s *stubBackend) ValidateToken(ctx context.Context) (bool, error) {
	if s.ValidateTokenFn != nil {
		return s.ValidateTokenFn(ctx)
	}
	return true, nil
}

func (s *stubBackend) Permissions(ctx context.Context, employeeID string) (*domain.PermissionFlags, error) {
	if s.PermissionsFn != nil {
		return s.PermissionsFn(ctx, employeeID)
	}
	return &domain.PermissionFlags{
		DashboardAccess:       true,
		ReportAccess:          true,
		UsecaseCreationAccess: true,
		StatusAccess:          true,
	}, nil
}

func (s *stubBackend) ListUsecases(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
	if s.ListUsecasesFn != nil {
		return s.ListUsecasesFn(ctx, employeeID, adminScope)
	}
	return nil, nil
}

func (s *stubBackend) CreateUsecase(ctx context.Context, u *domain.UsecaseRecord) (*domain.UsecaseRecord, error) {
	if s.CreateUsecaseFn != nil {
		return s.CreateUsecaseFn(ctx, u)
	}
	return u, nil
}

func (s *stubBackend) UpdateUsecase(ctx context.Context, u *domain.UsecaseRecord) (*domain.UsecaseRecord, error) {
	if s.UpdateUsecaseFn != nil {
		return s.UpdateUsecaseFn(ctx, u)
	}
	return u, nil
}

func (s *stubBackend) DeleteUsecase(ctx context.Context, id string) error {
	if s.DeleteUsecaseFn != nil {
		return s.DeleteUsecaseFn(ctx, id)
	}
	return nil
}

func (s *stubBackend) PatchUsecaseStatus(ctx context.Context, id string, status domain.UsecaseStatus) error {
	if s.PatchUsecaseStatusFn != nil {
		return s.PatchUsecaseStatusFn(ctx, id, status)
	}
	return nil
}

func (s *stubBackend) PatchUsecaseRemark(ctx context.Context, id, remark string) error {
	if s.PatchUsecaseRemarkFn != nil {
		return s.PatchUsecaseRemarkFn(ctx, id, remark)
	}
	return nil
}

func (s *stubBackend) ListProjectCodes(ctx context.Context) ([]*domain.ProjectCode, error) {
	if s.ListProjectCodesFn != nil {
		return s.ListProjectCodesFn(ctx)
	}
	return nil, nil
}

func (s *stubBackend) CreateProjectCode(ctx context.Context, p *domain.ProjectCode) (*domain.ProjectCode, error) {
	if s.CreateProjectCodeFn != nil {
		return s.CreateProjectCodeFn(ctx, p)
	}
	return p, nil
}

func (s *stubBackend) UpdateProjectCode(ctx context.Context, p *domain.ProjectCode) (*domain.ProjectCode, error) {
	if s.UpdateProjectCodeFn != nil {
		return s.UpdateProjectCodeFn(ctx, p)
	}
	return p, nil
}

func (s *stubBackend) DeleteProjectCode(ctx context.Context, id string) error {
	if s.DeleteProjectCodeFn != nil {
		return s.DeleteProjectCodeFn(ctx, id)
	}
	return nil
}

func (s *stubBackend) PatchProjectCodeStatus(ctx context.Context, id string, status domain.ProjectCodeStatus) error {
	if s.PatchProjectCodeStatusFn != nil {
		return s.PatchProjectCodeStatusFn(ctx, id, status)
	}
	return nil
}

func (s *stubBackend) ListDailyStatus(ctx context.Context, employeeID string, date time.Time) ([]*domain.DailyStatusEntry, error) {
	if s.ListDailyStatusFn != nil {
		return s.ListDailyStatusFn(ctx, employeeID, date)
	}
	return nil, nil
}

func (s *stubBackend) CreateDailyStatus(ctx context.Context, d *domain.DailyStatusEntry) (*domain.DailyStatusEntry, error) {
	if s.CreateDailyStatusFn != nil {
		return s.CreateDailyStatusFn(ctx, d)
	}
	return d, nil
}

func (s *stubBackend) UpdateDailyStatus(ctx context.Context, d *domain.DailyStatusEntry) (*domain.DailyStatusEntry, error) {
	if s.UpdateDailyStatusFn != nil {
		return s.UpdateDailyStatusFn(ctx, d)
	}
	return d, nil
}

func (s *stubBackend) DeleteDailyStatus(ctx context.Context, id string) error {
	if s.DeleteDailyStatusFn != nil {
		return s.DeleteDailyStatusFn(ctx, id)
	}
	return nil
}

func (s *stubBackend) ReportSummary(ctx context.Context, employeeID string) (*api.ReportSummary, error) {
	if s.ReportSummaryFn != nil {
		return s.ReportSummaryFn(ctx, employeeID)
	}
	return &api.ReportSummary{}, nil
}

func (s *stubBackend) SalesPersons(ctx context.Context) ([]api.Person, error) {
	if s.SalesPersonsFn != nil {
		return s.SalesPersonsFn(ctx)
	}
	return nil, nil
}

func (s *stubBackend) AssignableUsers(ctx context.Context) ([]api.Person, error) {
	if s.AssignableUsersFn != nil {
		return s.AssignableUsersFn(ctx)
	}
	return nil, nil
}

func (s *stubBackend) Approvers(ctx context.Context) ([]api.Person, error) {
	if s.ApproversFn != nil {
		return s.ApproversFn(ctx)
	}
	return nil, nil
}

// stubSessions is an in-memory SessionStore.
type stubSessions struct {
	current *session.Session
	lookups map[string][]api.Person
}

func newStubSessions() *stubSessions {
	return &stubSessions{lookups: make(map[string][]api.Person)}
}

func (s *stubSessions) Save(ctx context.Context, token string, profile domain.UserProfile) error {
	s.current = &session.Session{Token: token, Profile: profile, SavedAt: time.Now()}
	return nil
}

func (s *stubSessions) Clear(ctx context.Context) error {
	s.current = nil
	return nil
}

func (s *stubSessions) Current() *session.Session {
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

func (s *stubSessions) CachedLookup(ctx context.Context, kind string, ttl time.Duration) ([]api.Person, bool, error) {
	people, ok := s.lookups[kind]
	return people, ok, nil
}

func (s *stubSessions) SaveLookup(ctx context.Context, kind string, people []api.Person) error {
	s.lookups[kind] = people
	return nil
}

// newTestApp builds an App with a logged-in session by default.
func newTestApp(backend *stubBackend) *App {
	sessions := newStubSessions()
	sessions.current = &session.Session{
		Token:   "test-token",
		Profile: domain.UserProfile{EmployeeID: "E100", Name: "Test User", Email: "test@example.com", Role: "Engineer"},
		SavedAt: time.Now(),
	}
	return &App{
		Backend:       backend,
		Sessions:      sessions,
		IsInteractive: func() bool { return true },
	}
}

// TestDriver wraps teatest.Driver with app-specific inspection helpers.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver constructs the appModel, sets terminal size, and drains Init.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// StackLen returns the current view stack depth.
func (d *TestDriver) StackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state pointer.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// ViewContains reports whether the rendered output contains the substring.
func (d *TestDriver) ViewContains(sub string) bool {
	return strings.Contains(d.View(), sub)
}
