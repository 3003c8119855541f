package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"pocdesk/internal/cli/formatter"
	"pocdesk/internal/report"
)

func newReportCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show record count breakdowns",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(app)
			if err != nil {
				return err
			}

			// Scoped reports pass the employee; --all asks for the org-wide
			// aggregate, which the backend authorizes server-side.
			employeeID := s.Profile.EmployeeID
			if all {
				employeeID = ""
			}
			summary, err := app.Backend.ReportSummary(context.Background(), employeeID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d record(s)\n", summary.Total)
			printBreakdown(out, "By Process Type", summary.ByProcessType)
			printBreakdown(out, "By Status", summary.ByStatus)
			printBreakdown(out, "By Region", summary.ByRegion)
			printBreakdown(out, "By Customer Type", summary.ByCustomerType)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Aggregate across all employees (requires report access)")

	return cmd
}

func printBreakdown(out io.Writer, title string, breakdown map[string]int) {
	if len(breakdown) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s\n", formatter.Header(title))
	rows := make([][]string, 0, len(breakdown))
	for _, r := range report.Rows(breakdown) {
		rows = append(rows, []string{r.Label, strconv.Itoa(r.Count)})
	}
	fmt.Fprint(out, formatter.RenderTable([]string{"Category", "Count"}, rows))
}
