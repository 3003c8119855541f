package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"pocdesk/internal/session"
)

// requireSession returns the persisted session or a uniform error telling the
// user to log in first.
func requireSession(app *App) (*session.Session, error) {
	s := app.Sessions.Current()
	if s == nil {
		return nil, fmt.Errorf("not logged in; run 'pocdesk login' first")
	}
	return s, nil
}

func newLoginCmd(app *App) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the tracker backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				var fields []huh.Field
				if username == "" {
					fields = append(fields, huh.NewInput().Title("Username").Value(&username))
				}
				if password == "" {
					fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password))
				}
				form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(pocdeskHuhTheme())
				if err := form.Run(); err != nil {
					return err
				}
			}
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			ctx := context.Background()
			result, err := app.Backend.Login(ctx, username, password)
			if err != nil {
				return err
			}
			if err := app.Sessions.Save(ctx, result.Token, result.Profile); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", result.Profile.Name, result.Profile.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Username (prompted when omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(app); err != nil {
				return err
			}

			ctx := context.Background()
			// The local session goes away even when the server call fails;
			// a dead token on the server side expires on its own.
			if err := app.Backend.Logout(ctx); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: server logout failed: %v\n", err)
			}
			if err := app.Sessions.Clear(ctx); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(app)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", s.Profile.Name, s.Profile.Email)
			fmt.Fprintf(out, "Employee ID: %s\n", s.Profile.EmployeeID)
			fmt.Fprintf(out, "Role:        %s\n", s.Profile.Role)
			fmt.Fprintf(out, "Signed in:   %s\n", s.SavedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
