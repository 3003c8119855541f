package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocdesk/internal/api"
	"pocdesk/internal/domain"
	"pocdesk/internal/testutil"
)

func TestLoginGateWithoutSession(t *testing.T) {
	app := newTestApp(&stubBackend{})
	app.Sessions.(*stubSessions).current = nil

	d := NewTestDriver(t, app)

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.True(t, d.ViewContains("SIGN IN"))
}

func TestDashboardWithStoredSession(t *testing.T) {
	d := NewTestDriver(t, newTestApp(&stubBackend{}))

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.True(t, d.ViewContains("SECTIONS"))
	assert.True(t, d.ViewContains("Usecases"))
	assert.True(t, d.ViewContains("Signed in as Test User"))
}

func TestLoginFlowEstablishesSession(t *testing.T) {
	backend := &stubBackend{
		LoginFn: func(ctx context.Context, username, password string) (*api.LoginResult, error) {
			assert.Equal(t, "e100", username)
			assert.Equal(t, "secret", password)
			return &api.LoginResult{
				Token:   "fresh-token",
				Profile: domain.UserProfile{EmployeeID: "E100", Name: "Fresh User"},
			}, nil
		},
	}
	app := newTestApp(backend)
	sessions := app.Sessions.(*stubSessions)
	sessions.current = nil

	d := NewTestDriver(t, app)
	d.Type("e100")
	d.PressEnter() // to password
	d.Type("secret")
	d.PressEnter() // submit

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	require.NotNil(t, sessions.current)
	assert.Equal(t, "fresh-token", sessions.current.Token)
	assert.Equal(t, "Fresh User", d.State().Profile.Name)
}

func TestLoginRejectsEmptyPassword(t *testing.T) {
	app := newTestApp(&stubBackend{})
	app.Sessions.(*stubSessions).current = nil

	d := NewTestDriver(t, app)
	d.Type("e100")
	d.PressEnter() // to password
	d.PressEnter() // submit with empty password

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.True(t, d.ViewContains("Enter your password."))
}

func TestLoginShowsBackendError(t *testing.T) {
	backend := &stubBackend{
		LoginFn: func(ctx context.Context, username, password string) (*api.LoginResult, error) {
			return nil, api.ErrUnauthenticated
		},
	}
	app := newTestApp(backend)
	app.Sessions.(*stubSessions).current = nil

	d := NewTestDriver(t, app)
	d.Type("e100")
	d.PressEnter()
	d.Type("wrong")
	d.PressEnter()

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.True(t, d.ViewContains("Error:"))
}

func TestExpiredTokenForcesLogout(t *testing.T) {
	backend := &stubBackend{
		ValidateTokenFn: func(ctx context.Context) (bool, error) { return false, nil },
	}
	app := newTestApp(backend)
	sessions := app.Sessions.(*stubSessions)

	d := NewTestDriver(t, app)

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.Nil(t, sessions.current)
	assert.True(t, d.ViewContains("Session expired"))
}

func TestUnreachableServerKeepsSession(t *testing.T) {
	backend := &stubBackend{
		ValidateTokenFn: func(ctx context.Context) (bool, error) { return false, api.ErrNetworkUnavailable },
	}
	d := NewTestDriver(t, newTestApp(backend))

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
}

func TestDashboardPermissionGating(t *testing.T) {
	backend := &stubBackend{
		PermissionsFn: func(ctx context.Context, employeeID string) (*domain.PermissionFlags, error) {
			return &domain.PermissionFlags{StatusAccess: true}, nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))

	assert.True(t, d.ViewContains("Daily Status"))
	assert.False(t, d.ViewContains("Project Codes"))
	assert.False(t, d.ViewContains("Report"))
}

func TestDashboardLogoutKey(t *testing.T) {
	app := newTestApp(&stubBackend{})
	sessions := app.Sessions.(*stubSessions)

	d := NewTestDriver(t, app)
	d.PressKey('L')

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.Nil(t, sessions.current)
}

func TestQuitKey(t *testing.T) {
	d := NewTestDriver(t, newTestApp(&stubBackend{}))
	d.PressKey('q')
	assert.True(t, d.Quitting)
}

// openUsecaseList drives the dashboard to the usecase list.
func openUsecaseList(d *TestDriver) {
	d.PressEnter()
}

func testRecords() []*domain.UsecaseRecord {
	return []*domain.UsecaseRecord{
		testutil.NewTestUsecase("Acme Industries", testutil.WithRegion("North")),
		testutil.NewTestUsecase("Beta Corp", testutil.WithStatus(domain.UsecaseCompleted), testutil.WithRegion("South")),
		testutil.NewTestUsecase("Gamma Ltd", testutil.WithRegion("North")),
	}
}

func TestUsecaseListLoadsRecords(t *testing.T) {
	records := testRecords()
	backend := &stubBackend{
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			assert.Equal(t, "E100", employeeID)
			assert.False(t, adminScope)
			return records, nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	openUsecaseList(d)

	assert.Equal(t, ViewUsecaseList, d.ActiveViewID())
	assert.True(t, d.ViewContains("Acme Industries"))
	assert.True(t, d.ViewContains("Beta Corp"))
	assert.True(t, d.ViewContains("3 match"))
}

func TestUsecaseSearchFiltersLive(t *testing.T) {
	backend := &stubBackend{
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			return testRecords(), nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	openUsecaseList(d)

	d.PressKey('/')
	d.Type("beta")

	assert.True(t, d.ViewContains("Beta Corp"))
	assert.False(t, d.ViewContains("Acme Industries"))
	assert.True(t, d.ViewContains("1 match"))

	// Esc clears the search.
	d.PressEsc()
	assert.True(t, d.ViewContains("Acme Industries"))
	assert.Equal(t, ViewUsecaseList, d.ActiveViewID())
}

func TestUsecaseColumnsPanelToggle(t *testing.T) {
	backend := &stubBackend{
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			return testRecords(), nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	openUsecaseList(d)

	d.PressKey('c')
	assert.True(t, d.ViewContains("COLUMNS"))

	// Toggle the first column off and close the panel.
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	d.PressKey('c')
	assert.False(t, d.ViewContains("COLUMNS"))

	// Esc closes the panel without popping the list.
	d.PressKey('c')
	d.PressEsc()
	assert.False(t, d.ViewContains("COLUMNS"))
	assert.Equal(t, ViewUsecaseList, d.ActiveViewID())
}

func TestUsecasePageSizeCycle(t *testing.T) {
	var records []*domain.UsecaseRecord
	for i := 0; i < 12; i++ {
		records = append(records, testutil.NewTestUsecase("Company"))
	}
	backend := &stubBackend{
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			return records, nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	openUsecaseList(d)

	assert.True(t, d.ViewContains("page 1/2"))
	assert.True(t, d.ViewContains("size 10"))

	d.PressKey('s') // 10 -> 25
	assert.True(t, d.ViewContains("size 25"))
	assert.True(t, d.ViewContains("page 1/1"))
}

func TestUsecaseStatusPatchInPlace(t *testing.T) {
	records := testRecords()
	var fetches int
	var patchedID string
	var patchedStatus domain.UsecaseStatus
	backend := &stubBackend{
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			fetches++
			return records, nil
		},
		PatchUsecaseStatusFn: func(ctx context.Context, id string, status domain.UsecaseStatus) error {
			patchedID = id
			patchedStatus = status
			return nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	openUsecaseList(d)

	d.PressEnter() // action menu for the first row
	assert.Equal(t, ViewActionMenu, d.ActiveViewID())

	d.PressKey('s') // status form replaces the menu
	assert.Equal(t, ViewForm, d.ActiveViewID())

	// Move from Ongoing to Completed and confirm.
	d.PressDown()
	d.PressEnter()

	assert.Equal(t, ViewUsecaseList, d.ActiveViewID())
	assert.Equal(t, records[0].ID, patchedID)
	assert.Equal(t, domain.UsecaseCompleted, patchedStatus)
	assert.True(t, d.ViewContains("Status updated."))

	// Patch in place: no refetch beyond the initial load.
	assert.Equal(t, 1, fetches)
}

func TestUsecaseDeleteRemovesRow(t *testing.T) {
	records := testRecords()
	var fetches int
	backend := &stubBackend{
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			fetches++
			return records, nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	openUsecaseList(d)

	d.Send(usecaseMutatedMsg{removed: records[0].ID, notice: "Record deleted."})

	assert.False(t, d.ViewContains("Acme Industries"))
	assert.True(t, d.ViewContains("2 match"))
	assert.Equal(t, 1, fetches)
}

func TestConflictRedirectsBackToList(t *testing.T) {
	records := testRecords()
	var fetches int
	backend := &stubBackend{
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			fetches++
			return records, nil
		},
		PatchUsecaseStatusFn: func(ctx context.Context, id string, status domain.UsecaseStatus) error {
			return api.ErrConflict
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	openUsecaseList(d)

	d.PressEnter()
	d.PressKey('s')
	d.PressEnter() // confirm current status; backend refuses

	// The warning is up while the redirect timer runs.
	assert.True(t, d.ViewContains("locked"))

	// Timer fires: back on the list with fresh data.
	d.Send(conflictRedirectFireMsg{})
	assert.Equal(t, ViewUsecaseList, d.ActiveViewID())
	assert.Equal(t, 2, fetches)
}

func TestUnauthenticatedLoadLogsOut(t *testing.T) {
	backend := &stubBackend{
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			return nil, api.ErrUnauthenticated
		},
	}
	app := newTestApp(backend)
	d := NewTestDriver(t, app)
	openUsecaseList(d)

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.Nil(t, app.Sessions.(*stubSessions).current)
}

func TestUsecaseCreateWizard(t *testing.T) {
	var created *domain.UsecaseRecord
	backend := &stubBackend{
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			return nil, nil
		},
		SalesPersonsFn: func(ctx context.Context) ([]api.Person, error) {
			return []api.Person{{EmployeeID: "S1", Name: "Alice"}}, nil
		},
		CreateUsecaseFn: func(ctx context.Context, u *domain.UsecaseRecord) (*domain.UsecaseRecord, error) {
			out := *u
			out.ID = "u-created"
			out.Status = domain.UsecaseInitiated
			created = &out
			return &out, nil
		},
	}
	app := newTestApp(backend)
	d := NewTestDriver(t, app)
	openUsecaseList(d)

	d.PressKey('a')
	require.Equal(t, ViewForm, d.ActiveViewID())

	// Step 1: company and contact. The customer type select is cycled to
	// Partner and back so the partner field stays hidden.
	d.Type("Acme Industries")
	d.PressEnter()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRight})
	d.SendKey(tea.KeyMsg{Type: tea.KeyLeft})
	d.PressEnter()
	d.Type("Bob")
	d.PressEnter()
	d.Type("bob@acme.example")
	d.PressEnter()
	d.Type("9876543210")
	d.PressEnter()
	d.Type("North")
	d.PressEnter()

	// Step 2: cycle process type to Usecase, fill the title, skip the
	// optional fields, leave the step.
	d.SendKey(tea.KeyMsg{Type: tea.KeyRight})
	d.PressEnter()
	d.Type("Sensor data migration")
	d.PressEnter()
	d.PressEnter()
	d.PressEnter()

	// Review step: submit.
	d.PressEnter()

	require.NotNil(t, created)
	assert.Equal(t, "Acme Industries", created.CompanyName)
	assert.Equal(t, domain.CustomerDirect, created.CustomerType)
	assert.Equal(t, domain.ProcessUsecase, created.ProcessType)
	assert.Equal(t, "9876543210", created.SpocMobile)

	// The new record lands in the list without a refetch.
	assert.Equal(t, ViewUsecaseList, d.ActiveViewID())
	assert.True(t, d.ViewContains("Acme Industries"))
	assert.True(t, d.ViewContains("Record created."))

	// The lookup fetch warmed the cache.
	people, ok := app.Sessions.(*stubSessions).lookups["sales-persons"]
	require.True(t, ok)
	assert.Len(t, people, 1)
}

func TestUsecaseWizardValidation(t *testing.T) {
	backend := &stubBackend{}
	d := NewTestDriver(t, newTestApp(backend))
	openUsecaseList(d)

	d.PressKey('a')
	require.Equal(t, ViewForm, d.ActiveViewID())

	// Walk to the last field and try to leave the step with everything empty.
	for i := 0; i < 6; i++ {
		d.PressEnter()
	}

	assert.Equal(t, ViewForm, d.ActiveViewID())
	assert.True(t, d.ViewContains("Required"))
}

func TestUsecaseWizardCancel(t *testing.T) {
	var createCalls int
	backend := &stubBackend{
		CreateUsecaseFn: func(ctx context.Context, u *domain.UsecaseRecord) (*domain.UsecaseRecord, error) {
			createCalls++
			return u, nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	openUsecaseList(d)

	d.PressKey('a')
	d.Type("half-finished")
	d.PressEsc()

	assert.Equal(t, ViewUsecaseList, d.ActiveViewID())
	assert.Equal(t, 0, createCalls)
}

func TestUsecaseAddRequiresCreationAccess(t *testing.T) {
	backend := &stubBackend{
		PermissionsFn: func(ctx context.Context, employeeID string) (*domain.PermissionFlags, error) {
			return &domain.PermissionFlags{DashboardAccess: true, StatusAccess: true}, nil
		},
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			return testRecords(), nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	openUsecaseList(d)

	// The add hint is absent from the help bar.
	assert.False(t, d.ViewContains("add"))

	d.PressKey('a')
	assert.Equal(t, ViewUsecaseList, d.ActiveViewID())
}

func TestUsecaseExportWritesFile(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	orig := exportTimeNow
	exportTimeNow = func() time.Time { return fixed }
	defer func() { exportTimeNow = orig }()

	backend := &stubBackend{
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			return testRecords(), nil
		},
	}
	app := newTestApp(backend)
	app.Config.DownloadDir = t.TempDir()

	d := NewTestDriver(t, app)
	openUsecaseList(d)

	d.PressKey('e')
	require.Equal(t, ViewForm, d.ActiveViewID())
	d.PressEnter() // default scope: all filtered

	path := filepath.Join(app.Config.DownloadDir, "all-usecases-2026-03-14.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Acme Industries"`)
	assert.True(t, d.ViewContains("Exported to"))
}

func TestProjectCodeListAndStatusPatch(t *testing.T) {
	codes := []*domain.ProjectCode{
		testutil.NewTestProjectCode("Edge rollout"),
		testutil.NewTestProjectCode("Data platform", testutil.WithProjectStatus(domain.ProjectHold)),
	}
	var patchedStatus domain.ProjectCodeStatus
	backend := &stubBackend{
		ListProjectCodesFn: func(ctx context.Context) ([]*domain.ProjectCode, error) {
			return codes, nil
		},
		PatchProjectCodeStatusFn: func(ctx context.Context, id string, status domain.ProjectCodeStatus) error {
			patchedStatus = status
			return nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	d.PressDown() // Project Codes entry
	d.PressEnter()

	require.Equal(t, ViewProjectCodeList, d.ActiveViewID())
	assert.True(t, d.ViewContains("Edge rollout"))

	d.PressEnter() // action menu
	d.PressKey('s')
	d.PressDown() // In Progress -> Completed
	d.PressEnter()

	assert.Equal(t, ViewProjectCodeList, d.ActiveViewID())
	assert.Equal(t, domain.ProjectCompleted, patchedStatus)
	assert.True(t, d.ViewContains("Status updated."))
}

func TestProjectCodeEditCarriesServerFields(t *testing.T) {
	existing := testutil.NewTestProjectCode("Edge rollout")
	existing.VarianceDays = 3

	record := projectCodeFromValues(projectCodeToValues(existing), existing)

	assert.Equal(t, existing.ID, record.ID)
	assert.Equal(t, existing.Code, record.Code)
	assert.Equal(t, existing.Status, record.Status)
	assert.Equal(t, 3, record.VarianceDays)
	assert.Equal(t, existing.CreatedAt, record.CreatedAt)
}

func TestDailyStatusDateNavigation(t *testing.T) {
	today := truncateToDay(time.Now())
	var dates []time.Time
	backend := &stubBackend{
		ListDailyStatusFn: func(ctx context.Context, employeeID string, date time.Time) ([]*domain.DailyStatusEntry, error) {
			dates = append(dates, date)
			return []*domain.DailyStatusEntry{
				testutil.NewTestDailyStatus(employeeID, date, testutil.WithWorked(3, 15)),
			}, nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	d.PressDown()
	d.PressDown() // Daily Status entry
	d.PressEnter()

	require.Equal(t, ViewDailyStatus, d.ActiveViewID())
	assert.True(t, d.ViewContains("3h 15m"))
	assert.True(t, d.ViewContains("(today)"))

	d.PressKey('[')
	require.Len(t, dates, 2)
	assert.Equal(t, today, dates[0])
	assert.Equal(t, today.AddDate(0, 0, -1), dates[1])
	assert.False(t, d.ViewContains("(today)"))

	d.PressKey('t')
	require.Len(t, dates, 3)
	assert.Equal(t, today, dates[2])
}

func TestDailyStatusSearchFiltersLive(t *testing.T) {
	backend := &stubBackend{
		ListDailyStatusFn: func(ctx context.Context, employeeID string, date time.Time) ([]*domain.DailyStatusEntry, error) {
			return []*domain.DailyStatusEntry{
				testutil.NewTestDailyStatus(employeeID, date, testutil.WithUsecaseName("Alpha Rollout")),
				testutil.NewTestDailyStatus(employeeID, date, testutil.WithUsecaseName("Beta Pilot"), testutil.WithWorked(1, 45)),
			}, nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	d.PressDown()
	d.PressDown() // Daily Status entry
	d.PressEnter()

	require.Equal(t, ViewDailyStatus, d.ActiveViewID())
	assert.True(t, d.ViewContains("2 match"))
	assert.True(t, d.ViewContains("Total: 4h 15m"))

	d.PressKey('/')
	d.Type("beta")

	assert.True(t, d.ViewContains("Beta Pilot"))
	assert.False(t, d.ViewContains("Alpha Rollout"))
	assert.True(t, d.ViewContains("1 match"))
	// The total tracks the filtered entries.
	assert.True(t, d.ViewContains("Total: 1h 45m"))
}

func TestDailyStatusExportWritesFile(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	orig := exportTimeNow
	exportTimeNow = func() time.Time { return fixed }
	defer func() { exportTimeNow = orig }()

	backend := &stubBackend{
		ListDailyStatusFn: func(ctx context.Context, employeeID string, date time.Time) ([]*domain.DailyStatusEntry, error) {
			return []*domain.DailyStatusEntry{
				testutil.NewTestDailyStatus(employeeID, date, testutil.WithUsecaseName("Alpha Rollout")),
			}, nil
		},
	}
	app := newTestApp(backend)
	app.Config.DownloadDir = t.TempDir()

	d := NewTestDriver(t, app)
	d.PressDown()
	d.PressDown() // Daily Status entry
	d.PressEnter()

	d.PressKey('e')
	require.Equal(t, ViewForm, d.ActiveViewID())
	d.PressEnter() // default scope: all filtered

	path := filepath.Join(app.Config.DownloadDir, "all-daily-status-2026-03-14.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Alpha Rollout"`)
	assert.True(t, d.ViewContains("Exported to"))
}

func TestReportBreakdownTabs(t *testing.T) {
	backend := &stubBackend{
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			return testRecords(), nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	d.PressDown()
	d.PressDown()
	d.PressDown() // Report entry
	d.PressEnter()

	require.Equal(t, ViewReport, d.ActiveViewID())
	assert.True(t, d.ViewContains("3 records"))
	assert.True(t, d.ViewContains("POC"))

	// Switch to the region breakdown.
	d.PressTab()
	d.PressTab()
	assert.True(t, d.ViewContains("North"))
	assert.True(t, d.ViewContains("South"))
}

func TestEscPopsViewStack(t *testing.T) {
	backend := &stubBackend{
		ListUsecasesFn: func(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error) {
			return testRecords(), nil
		},
	}
	d := NewTestDriver(t, newTestApp(backend))
	openUsecaseList(d)
	require.Equal(t, 2, d.StackLen())

	d.PressEsc()
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, 1, d.StackLen())

	// Esc on the root view is a no-op.
	d.PressEsc()
	assert.Equal(t, 1, d.StackLen())
}
