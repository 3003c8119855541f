// Package tableview is the shared view model behind every record table in the
// client: given an in-memory record list and a static column configuration it
// derives the filtered, paginated, column-configurable, exportable view.
// It performs no I/O; fetching and mutation belong to the owning page.
package tableview

import "strings"

// PageSizes is the fixed set of selectable page sizes.
var PageSizes = []int{5, 10, 25, 50}

// DefaultPageSize is used until the user picks another size.
const DefaultPageSize = 10

// Column describes one configured column of a table instance.
type Column[T any] struct {
	Key      string
	Label    string
	Truncate int                 // max display runes for cell rendering, 0 = none
	Value    func(T) string      // raw value accessor
	Render   func(T) string      // optional plain-text override (display id, joined list)
	Style    func(string) string // screen-only styling; never applied to exports
	Exact    bool                // enum/bool-typed column: filters match exactly
}

// Model holds the full client-side state of one table instance.
// All derived views (Filtered, Page) are recomputed from state on demand;
// there is no memoization to go stale.
type Model[T any] struct {
	columns []Column[T]
	idKey   string         // identifier column key, can never be hidden away
	keyFn   func(T) string // record identity for patching and selection

	records []T

	visible    map[string]bool
	searchTerm string
	searchKeys map[string]bool // allow-list of columns matched by global search
	filters    map[string]string
	page       int
	pageSize   int
	selected   map[string]bool
}

// New creates a table model. idKey names the identifier column, keyFn extracts
// record identity, and searchKeys is the fixed allow-list of column keys the
// global search matches against.
func New[T any](columns []Column[T], idKey string, keyFn func(T) string, searchKeys ...string) *Model[T] {
	m := &Model[T]{
		columns:    columns,
		idKey:      idKey,
		keyFn:      keyFn,
		visible:    make(map[string]bool, len(columns)),
		searchKeys: make(map[string]bool, len(searchKeys)),
		filters:    make(map[string]string),
		pageSize:   DefaultPageSize,
		selected:   make(map[string]bool),
	}
	for _, c := range columns {
		m.visible[c.Key] = true
	}
	for _, k := range searchKeys {
		m.searchKeys[k] = true
	}
	return m
}

// Columns returns the full column configuration in order.
func (m *Model[T]) Columns() []Column[T] { return m.columns }

// Key returns a record's identity, as used for selection and patching.
func (m *Model[T]) Key(r T) string { return m.keyFn(r) }

// Records returns the authoritative record list.
func (m *Model[T]) Records() []T { return m.records }

// ── record list maintenance ──────────────────────────────────────────────────

// SetRecords replaces the record list wholesale (after a fetch).
// Page and filters are left untouched; the page is clamped lazily.
func (m *Model[T]) SetRecords(records []T) {
	m.records = records
}

// Append adds a newly created record and resets to the first page.
func (m *Model[T]) Append(r T) {
	m.records = append(m.records, r)
	m.page = 0
}

// Patch replaces the record with the same identity in place.
// Returns false if no record matched.
func (m *Model[T]) Patch(r T) bool {
	key := m.keyFn(r)
	for i := range m.records {
		if m.keyFn(m.records[i]) == key {
			m.records[i] = r
			return true
		}
	}
	return false
}

// Remove deletes exactly one record by identity, preserving the order of the
// remaining entries. Returns false if no record matched.
func (m *Model[T]) Remove(key string) bool {
	for i := range m.records {
		if m.keyFn(m.records[i]) == key {
			m.records = append(m.records[:i], m.records[i+1:]...)
			delete(m.selected, key)
			return true
		}
	}
	return false
}

// ── search and filters ───────────────────────────────────────────────────────

// SetSearch sets the global search term and resets to the first page.
func (m *Model[T]) SetSearch(term string) {
	m.searchTerm = term
	m.page = 0
}

// Search returns the current global search term.
func (m *Model[T]) Search() string { return m.searchTerm }

// SetFilter sets a per-column filter and resets to the first page.
// An empty value removes the filter.
func (m *Model[T]) SetFilter(key, value string) {
	if value == "" {
		delete(m.filters, key)
	} else {
		m.filters[key] = value
	}
	m.page = 0
}

// Filter returns the current filter value for a column.
func (m *Model[T]) Filter(key string) string { return m.filters[key] }

// ClearFilters removes all per-column filters and the global search term.
func (m *Model[T]) ClearFilters() {
	m.filters = make(map[string]string)
	m.searchTerm = ""
	m.page = 0
}

func (m *Model[T]) matchesSearch(r T) bool {
	if m.searchTerm == "" {
		return true
	}
	needle := strings.ToLower(m.searchTerm)
	for _, c := range m.columns {
		if !m.searchKeys[c.Key] {
			continue
		}
		if strings.Contains(strings.ToLower(c.Value(r)), needle) {
			return true
		}
	}
	return false
}

func (m *Model[T]) matchesFilters(r T) bool {
	for _, c := range m.columns {
		want, ok := m.filters[c.Key]
		if !ok {
			continue
		}
		got := c.Value(r)
		if c.Exact {
			if !strings.EqualFold(got, want) {
				return false
			}
		} else if !strings.Contains(strings.ToLower(got), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// Filtered derives the record subset matching the global search AND every
// per-column filter, in record order.
func (m *Model[T]) Filtered() []T {
	var out []T
	for _, r := range m.records {
		if m.matchesSearch(r) && m.matchesFilters(r) {
			out = append(out, r)
		}
	}
	return out
}

// ── pagination ───────────────────────────────────────────────────────────────

// SetPageSize switches the page size and resets to the first page.
// Sizes outside PageSizes are ignored.
func (m *Model[T]) SetPageSize(size int) {
	for _, s := range PageSizes {
		if s == size {
			m.pageSize = size
			m.page = 0
			return
		}
	}
}

// PageSize returns the current page size.
func (m *Model[T]) PageSize() int { return m.pageSize }

// PageIndex returns the current page, clamped to the filtered set.
func (m *Model[T]) PageIndex() int {
	last := m.PageCount() - 1
	if m.page > last {
		return last
	}
	return m.page
}

// PageCount returns the number of pages over the filtered set, at least 1.
// Pagination is driven by the filtered length, not the full record count.
func (m *Model[T]) PageCount() int {
	n := len(m.Filtered())
	if n == 0 {
		return 1
	}
	return (n + m.pageSize - 1) / m.pageSize
}

// NextPage advances one page if one exists.
func (m *Model[T]) NextPage() {
	if m.PageIndex() < m.PageCount()-1 {
		m.page = m.PageIndex() + 1
	}
}

// PrevPage goes back one page if possible.
func (m *Model[T]) PrevPage() {
	if m.PageIndex() > 0 {
		m.page = m.PageIndex() - 1
	}
}

// Page derives the rows to render: a contiguous slice of Filtered starting at
// PageIndex*PageSize, at most PageSize long.
func (m *Model[T]) Page() []T {
	filtered := m.Filtered()
	start := m.PageIndex() * m.pageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + m.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// ── column visibility ────────────────────────────────────────────────────────

// Visible reports whether a column is currently shown.
func (m *Model[T]) Visible(key string) bool { return m.visible[key] }

// ToggleColumn flips one column's visibility. If the toggle would hide every
// column, the identifier column is forced back on.
func (m *Model[T]) ToggleColumn(key string) {
	m.visible[key] = !m.visible[key]
	for _, c := range m.columns {
		if m.visible[c.Key] {
			return
		}
	}
	m.visible[m.idKey] = true
}

// SelectAllColumns makes every configured column visible.
func (m *Model[T]) SelectAllColumns() {
	for _, c := range m.columns {
		m.visible[c.Key] = true
	}
}

// DeselectAllColumns hides every column except the identifier column, which is
// forced on.
func (m *Model[T]) DeselectAllColumns() {
	for _, c := range m.columns {
		m.visible[c.Key] = false
	}
	m.visible[m.idKey] = true
}

// VisibleColumns returns the configured columns that are currently shown,
// in config order.
func (m *Model[T]) VisibleColumns() []Column[T] {
	var out []Column[T]
	for _, c := range m.columns {
		if m.visible[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

// ── row selection ────────────────────────────────────────────────────────────

// ToggleRow flips selection of the row at the given index of the current page.
// Selection is only ever toggled from rendered rows, but a selected row stays
// selected when it pages or filters out of view.
func (m *Model[T]) ToggleRow(pageIndex int) {
	page := m.Page()
	if pageIndex < 0 || pageIndex >= len(page) {
		return
	}
	key := m.keyFn(page[pageIndex])
	if m.selected[key] {
		delete(m.selected, key)
	} else {
		m.selected[key] = true
	}
}

// Selected reports whether the given record id is selected.
func (m *Model[T]) Selected(key string) bool { return m.selected[key] }

// SelectedCount returns the number of selected rows.
func (m *Model[T]) SelectedCount() int { return len(m.selected) }

// ClearSelection empties the selection set.
func (m *Model[T]) ClearSelection() {
	m.selected = make(map[string]bool)
}

// SelectedRecords returns the selected records in record order.
func (m *Model[T]) SelectedRecords() []T {
	var out []T
	for _, r := range m.records {
		if m.selected[m.keyFn(r)] {
			out = append(out, r)
		}
	}
	return out
}
