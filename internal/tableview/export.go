package tableview

import (
	"fmt"
	"strings"
	"time"
)

// ExportScope selects which record subset an export covers.
type ExportScope string

const (
	ScopeSelected ExportScope = "selected"
	ScopePage     ExportScope = "page"
	ScopeFiltered ExportScope = "all"
)

// ScopeRecords resolves an export scope to its record subset.
func (m *Model[T]) ScopeRecords(scope ExportScope) []T {
	switch scope {
	case ScopeSelected:
		return m.SelectedRecords()
	case ScopePage:
		return m.Page()
	default:
		return m.Filtered()
	}
}

// ExportCSV serializes the scope's records to CSV. Every configured column is
// exported regardless of visibility: header row is the column labels in config
// order; each cell is the column's Render text where defined (empty renders
// fall back to "-"), else the raw value. Fields are double-quoted
// unconditionally, with embedded quotes doubled so free-text fields containing
// quotes survive re-import.
func (m *Model[T]) ExportCSV(scope ExportScope) string {
	var b strings.Builder

	for i, c := range m.columns {
		if i > 0 {
			b.WriteByte(',')
		}
		writeCSVField(&b, c.Label)
	}
	b.WriteByte('\n')

	for _, r := range m.ScopeRecords(scope) {
		for i, c := range m.columns {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCSVField(&b, m.cellText(c, r))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// cellText computes the exported text of one cell.
func (m *Model[T]) cellText(c Column[T], r T) string {
	var text string
	if c.Render != nil {
		text = c.Render(r)
	} else {
		text = c.Value(r)
	}
	if text == "" {
		return "-"
	}
	return text
}

func writeCSVField(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(s, `"`, `""`))
	b.WriteByte('"')
}

// ExportFilename builds the download filename for a scope:
// <scope>-<entity>-<YYYY-MM-DD>.csv, e.g. "all-usecases-2026-08-29.csv".
func ExportFilename(scope ExportScope, entity string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s.csv", scope, entity, now.Format("2006-01-02"))
}
