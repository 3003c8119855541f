package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewLogin ViewID = iota
	ViewDashboard
	ViewUsecaseList
	ViewProjectCodeList
	ViewDailyStatus
	ViewReport
	ViewActionMenu
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// inputCapturer is implemented by views that own a focused text input and
// need raw key events (including 'q' and global shortcuts) routed to them.
type inputCapturer interface {
	CapturesInput() bool
}

func viewCapturesInput(v View) bool {
	if c, ok := v.(inputCapturer); ok {
		return c.CapturesInput()
	}
	return false
}
