package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"pocdesk/internal/tableview"
)

// newExportScopeForm builds the export modal: pick a scope, write the CSV to
// the download directory, report the resulting path.
func newExportScopeForm[T any](state *SharedState, entity string, table *tableview.Model[T]) View {
	scope := string(tableview.ScopeFiltered)

	options := []huh.Option[string]{
		huh.NewOption(fmt.Sprintf("All filtered records (%d)", len(table.Filtered())), string(tableview.ScopeFiltered)),
		huh.NewOption(fmt.Sprintf("Current page (%d)", len(table.Page())), string(tableview.ScopePage)),
	}
	if n := table.SelectedCount(); n > 0 {
		options = append([]huh.Option[string]{
			huh.NewOption(fmt.Sprintf("Selected rows (%d)", n), string(tableview.ScopeSelected)),
		}, options...)
		scope = string(tableview.ScopeSelected)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export which records?").
				Options(options...).
				Value(&scope),
		),
	).WithTheme(pocdeskHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			s := tableview.ExportScope(scope)
			content := table.ExportCSV(s)
			filename := tableview.ExportFilename(s, entity, exportTimeNow())
			path, err := app.writeExport(filename, content)
			if err != nil {
				return flashMsg{text: "Export failed: " + err.Error(), warn: true}
			}
			return flashMsg{text: "Exported to " + path}
		}
	}

	return newModalFormView(state, "Export", form, done)
}
