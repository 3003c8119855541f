package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pocdesk/internal/api"
	"pocdesk/internal/cli/formatter"
	"pocdesk/internal/report"
)

type reportLoadedMsg struct {
	summary *report.Summary
	err     error
}

type reportDimension struct {
	title     string
	breakdown func(*report.Summary) map[string]int
}

var reportDimensions = []reportDimension{
	{"By Process Type", func(s *report.Summary) map[string]int { return s.ByProcessType }},
	{"By Status", func(s *report.Summary) map[string]int { return s.ByStatus }},
	{"By Region", func(s *report.Summary) map[string]int { return s.ByRegion }},
	{"By Customer Type", func(s *report.Summary) map[string]int { return s.ByCustomerType }},
}

const reportBarWidth = 30

// reportView aggregates the visible record set into count breakdowns and
// renders one dimension at a time as horizontal bars.
type reportView struct {
	state   *SharedState
	summary *report.Summary
	dim     int
	loading bool
	err     error
}

func newReportView(state *SharedState) *reportView {
	return &reportView{state: state, loading: true}
}

func (v *reportView) ID() ViewID    { return ViewReport }
func (v *reportView) Title() string { return "Report" }

func (v *reportView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next breakdown")),
		key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *reportView) Init() tea.Cmd {
	return v.loadData()
}

func (v *reportView) loadData() tea.Cmd {
	app := v.state.App
	employeeID := v.state.Profile.EmployeeID
	adminScope := v.state.AdminScope()
	return func() tea.Msg {
		records, err := app.Backend.ListUsecases(context.Background(), employeeID, adminScope)
		if err != nil {
			return reportLoadedMsg{err: err}
		}
		return reportLoadedMsg{summary: report.Aggregate(records)}
	}
}

func (v *reportView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		v.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthenticated) {
				return v, logout(api.UserMessage(msg.err))
			}
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.summary = msg.summary
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right", "l":
			v.dim = (v.dim + 1) % len(reportDimensions)
		case "shift+tab", "left", "h":
			v.dim = (v.dim + len(reportDimensions) - 1) % len(reportDimensions)
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}

	return v, nil
}

func (v *reportView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.Error(api.UserMessage(v.err)) +
			"\n\n  " + formatter.Dim("Press 'r' to retry.")
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold(fmt.Sprintf("%d records", v.summary.Total)) + "\n\n")

	// Dimension tabs.
	var tabs []string
	for i, d := range reportDimensions {
		if i == v.dim {
			tabs = append(tabs, formatter.StyleGreen.Render(d.title))
		} else {
			tabs = append(tabs, formatter.Dim(d.title))
		}
	}
	b.WriteString("  " + strings.Join(tabs, formatter.Dim("  │  ")) + "\n\n")

	breakdown := reportDimensions[v.dim].breakdown(v.summary)
	rows := report.Rows(breakdown)
	if len(rows) == 0 {
		b.WriteString("  " + formatter.Dim("No data.") + "\n")
		return b.String()
	}

	labels := make([]string, len(rows))
	counts := make([]int, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
		counts[i] = r.Count
	}
	b.WriteString(indent(formatter.Breakdown(labels, counts, report.MaxCount(breakdown), reportBarWidth), "  "))
	b.WriteString("\n")
	return b.String()
}
