package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pricelens/pricelens/internal/core"
	"github.com/pricelens/pricelens/internal/export"
	"github.com/pricelens/pricelens/internal/sources"
)

// columnSortKeys maps table columns to the sort key each one carries,
// in the same order as the export header row.
var columnSortKeys = []core.SortKey{
	core.SortProvider,
	core.SortModel,
	core.SortContext,
	core.SortInput,
	core.SortOutput,
	core.SortCost,
	core.SortMonthly,
}

func (m Model) renderTable(w, h int) string {
	visible := m.visibleModels()

	if len(m.catalog) == 0 {
		return m.renderEmptyCatalog()
	}
	if len(visible) == 0 {
		return "\n" + dimStyle.Render("  No models match \""+m.searchText+"\".") +
			"\n\n" + helpStyle.Render("  esc clears the filter")
	}

	table := export.BuildTable(visible, m.exportOptions())
	widths := m.columnWidths(table, w-4)

	lines := []string{
		"  " + m.renderColumnHeader(table.Headers, widths),
		dimStyle.Render(strings.Repeat("─", w)),
	}

	rowCap := h - len(lines)
	scrolling := len(visible) > rowCap
	if scrolling {
		rowCap-- // last line becomes the scroll track
	}
	if rowCap < 1 {
		rowCap = 1
	}

	start := 0
	if m.cursor >= rowCap {
		start = m.cursor - rowCap + 1
	}
	end := start + rowCap
	if end > len(visible) {
		end = len(visible)
		start = end - rowCap
		if start < 0 {
			start = 0
		}
	}

	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(table.Rows[i], visible[i], widths, i == m.cursor))
	}
	if scrolling {
		lines = append(lines, renderScrollBarLine(w, start, rowCap, len(visible)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEmptyCatalog() string {
	if m.allSourcesFailed() {
		return "\n" + lipgloss.NewStyle().Foreground(colorFailed).Render("  Every source failed to load.") +
			"\n\n" + helpStyle.Render("  3 shows source details · r retries")
	}
	return "\n" + dimStyle.Render("  The catalog is empty.") +
		"\n\n" + helpStyle.Render("  r reloads all sources")
}

func (m Model) allSourcesFailed() bool {
	return sources.LoadResult{States: m.states}.Failed()
}

func (m Model) renderColumnHeader(headers []string, widths []int) string {
	cells := make([]string, len(headers))
	for i, hdr := range headers {
		label := hdr
		sorted := i < len(columnSortKeys) && columnSortKeys[i] == m.sortKey
		if sorted {
			if m.sortDesc {
				label += " ▼"
			} else {
				label += " ▲"
			}
		}
		label = truncateToWidth(label, widths[i])
		if numericColumn(i) {
			label = padLeft(label, widths[i])
		} else {
			label = padRight(label, widths[i])
		}
		if sorted {
			cells[i] = tableSortStyle.Render(label)
		} else {
			cells[i] = tableHeaderStyle.Render(label)
		}
	}
	return strings.Join(cells, "  ")
}

func (m Model) renderRow(cells []string, model core.NormalizedModel, widths []int, selected bool) string {
	formatted := make([]string, len(cells))
	for i, cell := range cells {
		cell = truncateToWidth(cell, widths[i])
		if numericColumn(i) {
			cell = padLeft(cell, widths[i])
		} else {
			cell = padRight(cell, widths[i])
		}
		formatted[i] = cell
	}

	if selected {
		return rowSelectedStyle.Render("▸ " + strings.Join(formatted, "  "))
	}

	formatted[0] = lipgloss.NewStyle().Foreground(ProviderColor(model.Provider)).Render(formatted[0])
	for i := 2; i < len(formatted); i++ {
		if strings.TrimSpace(cells[i]) == core.Placeholder {
			formatted[i] = dimStyle.Render(formatted[i])
		} else if i >= 5 {
			formatted[i] = costStyle.Render(formatted[i])
		}
	}
	return "  " + strings.Join(formatted, "  ")
}

// numericColumn reports whether a column right-aligns. Context, prices,
// and the two cost columns are numeric; provider and model are text.
func numericColumn(i int) bool { return i >= 2 }

// columnWidths sizes each column to its widest cell, then shrinks the
// model and provider columns when the table would overflow the screen.
func (m Model) columnWidths(t export.Table, avail int) []int {
	widths := make([]int, len(t.Headers))
	for i, hdr := range t.Headers {
		w := lipgloss.Width(hdr)
		if i < len(columnSortKeys) && columnSortKeys[i] == m.sortKey {
			w += 2 // room for the sort arrow
		}
		widths[i] = w
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if cw := lipgloss.Width(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	total := 2 * (len(widths) - 1)
	for _, cw := range widths {
		total += cw
	}
	for _, flex := range []int{1, 0} {
		for total > avail && widths[flex] > 10 {
			widths[flex]--
			total--
		}
	}
	return widths
}

func (m Model) tableRowCapacity() int {
	rows := m.height - 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
