package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// statusColor maps record status labels to styles. Both usecase and project
// code statuses resolve through the same table.
func statusColor(status string) lipgloss.Style {
	switch status {
	case "Completed", "Converted", "Closed":
		return StyleGreen
	case "Ongoing", "In Progress", "Initiated", "Draft":
		return StyleBlue
	case "On Hold", "Hold", "Pending", "Awaiting":
		return StyleYellow
	case "Dropped", "Dropped/Cancelled":
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusPill renders a status label as a colored pill like "[Ongoing]".
func StatusPill(status string) string {
	if status == "" {
		return StyleDim.Render("[—]")
	}
	return statusColor(status).Render("[" + status + "]")
}

// Status renders the bare status label in its status color.
func Status(status string) string {
	return statusColor(status).Render(status)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Error renders a user-facing error line.
func Error(text string) string {
	return StyleRed.Render("Error: " + text)
}

// Warn renders a user-facing warning line.
func Warn(text string) string {
	return StyleYellow.Render(text)
}
