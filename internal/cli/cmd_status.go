package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pocdesk/internal/cli/formatter"
)

func newStatusCmd(app *App) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the daily status entries for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(app)
			if err != nil {
				return err
			}

			date := truncateToDay(time.Now())
			if dateStr != "" {
				date, err = time.Parse(formDateLayout, dateStr)
				if err != nil {
					return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", dateStr)
				}
			}

			entries, err := app.Backend.ListDailyStatus(context.Background(), s.Profile.EmployeeID, date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(date.Format("Mon, 02 Jan 2006")))
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries.")
				return nil
			}

			headers := []string{"Usecase", "Leads", "Status", "Time"}
			rows := make([][]string, len(entries))
			total := 0
			for i, e := range entries {
				rows[i] = []string{
					e.UsecaseName,
					strings.Join(e.LeadIDs, ", "),
					e.StatusText,
					formatWorked(e.Hours, e.Minutes),
				}
				total += e.WorkedMinutes()
			}
			fmt.Fprint(out, formatter.RenderTable(headers, rows))
			fmt.Fprintf(out, "\nTotal: %s\n", formatWorked(total/60, total%60))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Date to show (YYYY-MM-DD, default today)")

	return cmd
}
