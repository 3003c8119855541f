package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders an aligned table with a header separator line.
// Widths are computed from visible (ANSI-stripped) cell widths.
func RenderTable(headers []string, rows [][]string) string {
	return RenderTableCursor(headers, rows, -1)
}

// RenderTableCursor renders a table with one row marked by a cursor arrow.
// cursor < 0 renders no marker column.
func RenderTableCursor(headers []string, rows [][]string, cursor int) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2
	gap := strings.Repeat(" ", colGap)
	marker := cursor >= 0

	var b strings.Builder

	writeCell := func(content string, width int, last bool) {
		b.WriteString(content)
		if !last {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(content)))
			b.WriteString(gap)
		}
	}

	if marker {
		b.WriteString("  ")
	}
	for i, h := range headers {
		writeCell(StyleHeader.Render(h), widths[i], i == cols-1)
	}
	b.WriteString("\n")

	if marker {
		b.WriteString("  ")
	}
	for i, w := range widths {
		writeCell(StyleDim.Render(strings.Repeat("─", w)), w, i == cols-1)
	}
	b.WriteString("\n")

	for r, row := range rows {
		if marker {
			if r == cursor {
				b.WriteString(StyleGreen.Render("▸ "))
			} else {
				b.WriteString("  ")
			}
		}
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(cell, widths[i], i == cols-1)
		}
		b.WriteString("\n")
	}

	return b.String()
}
