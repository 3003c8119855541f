package formatter

import (
	"fmt"
	"strings"
)

const barBlock = "█"

// CountBar renders a horizontal bar scaled so the largest count fills width,
// like "██████ 12". A zero max renders no bar.
func CountBar(count, max, width int) string {
	if width < 1 {
		width = 1
	}
	filled := 0
	if max > 0 {
		filled = count * width / max
	}
	if count > 0 && filled == 0 {
		filled = 1
	}
	bar := StyleBlue.Render(strings.Repeat(barBlock, filled))
	return fmt.Sprintf("%s %d", bar, count)
}

// Breakdown renders labeled count bars, one per line, labels left-padded to a
// common width. rows must already be in display order.
func Breakdown(labels []string, counts []int, max, barWidth int) string {
	labelWidth := 0
	for _, l := range labels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
	}

	var b strings.Builder
	for i, l := range labels {
		pad := strings.Repeat(" ", labelWidth-len(l))
		b.WriteString(fmt.Sprintf("  %s%s  %s\n", StyleFg.Render(l), pad, CountBar(counts[i], max, barWidth)))
	}
	return b.String()
}
