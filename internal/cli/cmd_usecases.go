package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pocdesk/internal/cli/formatter"
	"pocdesk/internal/domain"
	"pocdesk/internal/tableview"
)

func newUsecasesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usecases",
		Short: "Work with usecase records non-interactively",
	}
	cmd.AddCommand(
		newUsecasesListCmd(app),
		newUsecasesExportCmd(app),
	)
	return cmd
}

func newUsecasesListCmd(app *App) *cobra.Command {
	var all bool
	var status string
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List usecase records as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(app)
			if err != nil {
				return err
			}

			records, err := app.Backend.ListUsecases(context.Background(), s.Profile.EmployeeID, all)
			if err != nil {
				return err
			}

			table := newUsecaseTable(records)
			if status != "" {
				table.SetFilter("status", status)
			}
			if search != "" {
				table.SetSearch(search)
			}

			filtered := table.Filtered()
			if len(filtered) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records match.")
				return nil
			}

			headers := []string{"ID", "Company", "Type", "Usecase", "Region", "Status", "Sales"}
			rows := make([][]string, len(filtered))
			for i, r := range filtered {
				rows[i] = []string{
					r.DisplayID(), r.CompanyName, string(r.ProcessType),
					r.Usecase, r.Region, formatter.Status(string(r.Status)), r.SalesPerson,
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d record(s)\n", len(filtered))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every employee's records (requires sales access)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by exact status")
	cmd.Flags().StringVar(&search, "search", "", "Search across the text columns")

	return cmd
}

func newUsecasesExportCmd(app *App) *cobra.Command {
	var all bool
	var status string
	var search string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export usecase records to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(app)
			if err != nil {
				return err
			}

			records, err := app.Backend.ListUsecases(context.Background(), s.Profile.EmployeeID, all)
			if err != nil {
				return err
			}

			table := newUsecaseTable(records)
			if status != "" {
				table.SetFilter("status", status)
			}
			if search != "" {
				table.SetSearch(search)
			}

			content := table.ExportCSV(tableview.ScopeFiltered)
			filename := tableview.ExportFilename(tableview.ScopeFiltered, "usecases", exportTimeNow())
			path, err := app.writeExport(filename, content)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s\n", len(table.Filtered()), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Export every employee's records (requires sales access)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by exact status")
	cmd.Flags().StringVar(&search, "search", "", "Search across the text columns")

	return cmd
}

// newUsecaseTable builds the same table model the TUI list uses, so CLI
// filters and exports behave identically.
func newUsecaseTable(records []*domain.UsecaseRecord) *tableview.Model[*domain.UsecaseRecord] {
	table := tableview.New(
		usecaseColumns(),
		"id",
		func(r *domain.UsecaseRecord) string { return r.ID },
		"companyName", "partnerName", "spocName", "region", "usecase", "salesPerson",
	)
	table.SetRecords(records)
	return table
}
