package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pocdesk/internal/cli/formatter"
	"pocdesk/internal/tableview"
)

// listMode is the input submode of a table-backed list view.
type listMode int

const (
	modeNormal  listMode = iota
	modeSearch           // typing into the global search box
	modeFilter           // typing a filter value for one column
	modeColumns          // toggling column visibility
)

// listControls drives the shared table interactions of the record list views:
// global search, per-column filters, column visibility, paging, and row
// selection. The owning view handles loading, mutations, and rendering rows.
type listControls[T any] struct {
	table *tableview.Model[T]

	mode      listMode
	input     textinput.Model
	cursor    int // row cursor within the current page
	colCursor int // cursor in columns mode
	filterCol int // column receiving a filter value in modeFilter
}

func newListControls[T any](table *tableview.Model[T]) *listControls[T] {
	input := textinput.New()
	input.CharLimit = 100
	input.Width = 30
	return &listControls[T]{table: table, input: input}
}

// capturingInput reports whether the submode must see every raw key,
// including keys the app binds globally. Columns mode is included so esc
// closes the panel instead of popping the whole view.
func (c *listControls[T]) capturingInput() bool {
	return c.mode != modeNormal
}

// clampCursor keeps the row cursor inside the rendered page.
func (c *listControls[T]) clampCursor() {
	n := len(c.table.Page())
	if c.cursor >= n {
		c.cursor = max(0, n-1)
	}
}

// cursorRecord returns the record under the row cursor, if any.
func (c *listControls[T]) cursorRecord() (T, bool) {
	page := c.table.Page()
	if c.cursor < len(page) {
		return page[c.cursor], true
	}
	var zero T
	return zero, false
}

// handleKey processes a key in any submode. It reports whether the key was
// consumed; unconsumed keys fall through to the owning view.
func (c *listControls[T]) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch c.mode {
	case modeSearch, modeFilter:
		return c.handleInputKey(msg)
	case modeColumns:
		return c.handleColumnsKey(msg)
	}
	return c.handleNormalKey(msg)
}

func (c *listControls[T]) handleInputKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if c.mode == modeSearch {
			c.table.SetSearch("")
		}
		c.mode = modeNormal
		c.input.Blur()
		return true, nil
	case tea.KeyEnter:
		c.mode = modeNormal
		c.input.Blur()
		c.clampCursor()
		return true, nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)

	// Live application: each keystroke re-derives the table.
	if c.mode == modeSearch {
		c.table.SetSearch(c.input.Value())
	} else {
		c.table.SetFilter(c.table.Columns()[c.filterCol].Key, c.input.Value())
	}
	c.cursor = 0
	return true, cmd
}

func (c *listControls[T]) handleColumnsKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	cols := c.table.Columns()
	switch msg.String() {
	case "esc", "c":
		c.mode = modeNormal
		return true, nil
	case "up", "k":
		if c.colCursor > 0 {
			c.colCursor--
		}
		return true, nil
	case "down", "j":
		if c.colCursor < len(cols)-1 {
			c.colCursor++
		}
		return true, nil
	case " ", "enter":
		c.table.ToggleColumn(cols[c.colCursor].Key)
		return true, nil
	case "a":
		c.table.SelectAllColumns()
		return true, nil
	case "n":
		c.table.DeselectAllColumns()
		return true, nil
	case "f":
		// Filter the column under the cursor.
		c.filterCol = c.colCursor
		c.mode = modeFilter
		c.input.SetValue(c.table.Filter(cols[c.colCursor].Key))
		c.input.Placeholder = "filter " + cols[c.colCursor].Label
		return true, c.input.Focus()
	}
	return true, nil // columns mode swallows everything else
}

func (c *listControls[T]) handleNormalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "/":
		c.mode = modeSearch
		c.input.SetValue(c.table.Search())
		c.input.Placeholder = "search"
		return true, c.input.Focus()
	case "c":
		c.mode = modeColumns
		c.colCursor = 0
		return true, nil
	case "F":
		c.table.ClearFilters()
		c.cursor = 0
		return true, nil
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
		return true, nil
	case "down", "j":
		if c.cursor < len(c.table.Page())-1 {
			c.cursor++
		}
		return true, nil
	case "left", "h":
		c.table.PrevPage()
		c.clampCursor()
		return true, nil
	case "right", "l":
		c.table.NextPage()
		c.clampCursor()
		return true, nil
	case "s":
		c.cyclePageSize()
		c.cursor = 0
		return true, nil
	case " ":
		c.table.ToggleRow(c.cursor)
		return true, nil
	case "x":
		c.table.ClearSelection()
		return true, nil
	}
	return false, nil
}

func (c *listControls[T]) cyclePageSize() {
	sizes := tableview.PageSizes
	for i, s := range sizes {
		if s == c.table.PageSize() {
			c.table.SetPageSize(sizes[(i+1)%len(sizes)])
			return
		}
	}
	c.table.SetPageSize(sizes[0])
}

// ── rendering ────────────────────────────────────────────────────────────────

// renderRows renders the visible columns of the current page with the row
// cursor and selection markers.
func (c *listControls[T]) renderRows() string {
	cols := c.table.VisibleColumns()
	page := c.table.Page()

	headers := make([]string, 0, len(cols)+1)
	headers = append(headers, "✓")
	for _, col := range cols {
		headers = append(headers, col.Label)
	}

	rows := make([][]string, 0, len(page))
	for _, r := range page {
		row := make([]string, 0, len(cols)+1)
		mark := " "
		if c.table.Selected(c.table.Key(r)) {
			mark = formatter.StyleGreen.Render("✓")
		}
		row = append(row, mark)
		for _, col := range cols {
			row = append(row, cellDisplay(col, r))
		}
		rows = append(rows, row)
	}

	return formatter.RenderTableCursor(headers, rows, c.cursor)
}

// cellDisplay computes the on-screen text of one cell, honoring Render
// overrides, Truncate limits, and screen-only Style.
func cellDisplay[T any](col tableview.Column[T], r T) string {
	text := ""
	if col.Render != nil {
		text = col.Render(r)
	} else {
		text = col.Value(r)
	}
	if text == "" {
		return formatter.Dim("-")
	}
	if col.Truncate > 0 {
		runes := []rune(text)
		if len(runes) > col.Truncate {
			text = string(runes[:col.Truncate-1]) + "…"
		}
	}
	if col.Style != nil {
		text = col.Style(text)
	}
	return text
}

// renderFooter renders the paging and selection summary line.
func (c *listControls[T]) renderFooter() string {
	parts := []string{
		fmt.Sprintf("page %d/%d", c.table.PageIndex()+1, c.table.PageCount()),
		fmt.Sprintf("size %d", c.table.PageSize()),
		fmt.Sprintf("%d match", len(c.table.Filtered())),
	}
	if n := c.table.SelectedCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if s := c.table.Search(); s != "" {
		parts = append(parts, fmt.Sprintf("search %q", s))
	}
	return formatter.Dim(strings.Join(parts, "  ·  "))
}

// renderInputLine renders the search/filter input when active.
func (c *listControls[T]) renderInputLine() string {
	switch c.mode {
	case modeSearch:
		return "  " + formatter.Dim("Search ") + c.input.View()
	case modeFilter:
		label := c.table.Columns()[c.filterCol].Label
		return "  " + formatter.Dim("Filter "+label+" ") + c.input.View()
	}
	return ""
}

// renderColumnsPanel renders the column visibility picker.
func (c *listControls[T]) renderColumnsPanel() string {
	var b strings.Builder
	b.WriteString("  " + formatter.StyleHeader.Render("COLUMNS") + "  " +
		formatter.Dim("space toggle · f filter · a all · n none · esc close") + "\n\n")
	for i, col := range c.table.Columns() {
		cursor := "  "
		if i == c.colCursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		mark := formatter.Dim("[ ]")
		if c.table.Visible(col.Key) {
			mark = formatter.StyleGreen.Render("[x]")
		}
		line := fmt.Sprintf("%s%s %s", cursor, mark, col.Label)
		if f := c.table.Filter(col.Key); f != "" {
			line += "  " + formatter.StyleYellow.Render(fmt.Sprintf("filter: %q", f))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
