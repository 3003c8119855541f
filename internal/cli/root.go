package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pocdesk/internal/api"
	"pocdesk/internal/domain"
	"pocdesk/internal/session"
)

// Backend is the slice of the REST client the UI depends on.
// *api.Client satisfies it; tests substitute a stub.
type Backend interface {
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
	Logout(ctx context.Context) error
	ValidateToken(ctx context.Context) (bool, error)
	Permissions(ctx context.Context, employeeID string) (*domain.PermissionFlags, error)

	ListUsecases(ctx context.Context, employeeID string, adminScope bool) ([]*domain.UsecaseRecord, error)
	CreateUsecase(ctx context.Context, u *domain.UsecaseRecord) (*domain.UsecaseRecord, error)
	UpdateUsecase(ctx context.Context, u *domain.UsecaseRecord) (*domain.UsecaseRecord, error)
	DeleteUsecase(ctx context.Context, id string) error
	PatchUsecaseStatus(ctx context.Context, id string, status domain.UsecaseStatus) error
	PatchUsecaseRemark(ctx context.Context, id, remark string) error

	ListProjectCodes(ctx context.Context) ([]*domain.ProjectCode, error)
	CreateProjectCode(ctx context.Context, p *domain.ProjectCode) (*domain.ProjectCode, error)
	UpdateProjectCode(ctx context.Context, p *domain.ProjectCode) (*domain.ProjectCode, error)
	DeleteProjectCode(ctx context.Context, id string) error
	PatchProjectCodeStatus(ctx context.Context, id string, status domain.ProjectCodeStatus) error

	ListDailyStatus(ctx context.Context, employeeID string, date time.Time) ([]*domain.DailyStatusEntry, error)
	CreateDailyStatus(ctx context.Context, d *domain.DailyStatusEntry) (*domain.DailyStatusEntry, error)
	UpdateDailyStatus(ctx context.Context, d *domain.DailyStatusEntry) (*domain.DailyStatusEntry, error)
	DeleteDailyStatus(ctx context.Context, id string) error

	ReportSummary(ctx context.Context, employeeID string) (*api.ReportSummary, error)
	SalesPersons(ctx context.Context) ([]api.Person, error)
	AssignableUsers(ctx context.Context) ([]api.Person, error)
	Approvers(ctx context.Context) ([]api.Person, error)
}

// SessionStore is the slice of the local session store the UI depends on.
// *session.Store satisfies it.
type SessionStore interface {
	Save(ctx context.Context, token string, profile domain.UserProfile) error
	Clear(ctx context.Context) error
	Current() *session.Session
	CachedLookup(ctx context.Context, kind string, ttl time.Duration) ([]api.Person, bool, error)
	SaveLookup(ctx context.Context, kind string, people []api.Person) error
}

// App bundles the dependencies every command and view works against.
type App struct {
	Backend  Backend
	Sessions SessionStore
	Config   api.Config

	// IsInteractive reports whether stdin is a terminal; the bare command
	// starts the TUI only when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "pocdesk" command and registers all
// subcommands against the provided App. The bare command starts the TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pocdesk",
		Short:         "POC and usecase tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("not an interactive terminal; see 'pocdesk --help' for scripted commands")
			}
			return RunTUI(app)
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newUsecasesCmd(app),
		newStatusCmd(app),
		newReportCmd(app),
	)

	return root
}

// RunTUI starts the interactive terminal UI.
func RunTUI(app *App) error {
	m := newAppModel(app)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
