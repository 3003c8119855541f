// Package report groups usecase records into the count breakdowns behind the
// analytics view. Aggregation is display-side only; the backend remains the
// source of the record list itself.
package report

import (
	"sort"

	"pocdesk/internal/domain"
)

// Summary holds record counts per category, one map per breakdown.
type Summary struct {
	Total          int
	ByProcessType  map[string]int
	ByStatus       map[string]int
	ByRegion       map[string]int
	ByCustomerType map[string]int
}

// Aggregate computes the breakdown counts over a record list. Records with an
// empty value in a dimension are counted under "Unspecified" so the totals of
// every breakdown match Total.
func Aggregate(records []*domain.UsecaseRecord) *Summary {
	s := &Summary{
		Total:          len(records),
		ByProcessType:  make(map[string]int),
		ByStatus:       make(map[string]int),
		ByRegion:       make(map[string]int),
		ByCustomerType: make(map[string]int),
	}
	for _, r := range records {
		s.ByProcessType[orUnspecified(string(r.ProcessType))]++
		s.ByStatus[orUnspecified(string(r.Status))]++
		s.ByRegion[orUnspecified(r.Region)]++
		s.ByCustomerType[orUnspecified(string(r.CustomerType))]++
	}
	return s
}

func orUnspecified(v string) string {
	if v == "" {
		return "Unspecified"
	}
	return v
}

// Row is one rendered line of a breakdown.
type Row struct {
	Label string
	Count int
}

// Rows flattens a breakdown map into display order: descending count, then
// label, so renders are stable across runs.
func Rows(breakdown map[string]int) []Row {
	rows := make([]Row, 0, len(breakdown))
	for label, count := range breakdown {
		rows = append(rows, Row{Label: label, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// MaxCount returns the largest count in a breakdown, used to scale bars.
func MaxCount(breakdown map[string]int) int {
	max := 0
	for _, c := range breakdown {
		if c > max {
			max = c
		}
	}
	return max
}
