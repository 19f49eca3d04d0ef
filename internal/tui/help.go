package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pricelens/pricelens/internal/sources"
)

// renderHelpOverlay draws a centered popup listing keybindings, status
// icons, and pricing conventions. Dismissed by pressing any key.
func (m Model) renderHelpOverlay(screenW, screenH int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	descStyle := lipgloss.NewStyle().Foreground(colorText)
	dimHintStyle := lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	var lines []string

	lines = append(lines, titleStyle.Render("  PriceLens Help"))
	lines = append(lines, "")

	lines = append(lines, headingStyle.Render("  Screens"))
	lines = append(lines, "")
	screenKeys := []struct{ key, desc string }{
		{"Tab / Shift+Tab", "Next / previous screen (Prices → Chart → Sources)"},
		{"1 / 2 / 3", "Jump to a screen directly"},
		{"g", "Toggle the cost comparison chart"},
	}
	for _, k := range screenKeys {
		lines = append(lines, "    "+helpKeyStyle.Render(padRight(k.key, 18))+descStyle.Render(k.desc))
	}
	lines = append(lines, "")

	lines = append(lines, headingStyle.Render("  Price Table"))
	lines = append(lines, "")
	tableKeys := []struct{ key, desc string }{
		{"↑↓ / j k", "Move the row cursor"},
		{"PgUp / PgDn", "Page through rows"},
		{"Home / End", "Jump to first / last row"},
		{"/", "Filter by provider, model, or context"},
		{"Esc", "Clear the filter"},
		{"s", "Cycle the sort column"},
		{"S", "Flip the sort direction"},
		{"m", "Toggle standard / batch pricing"},
		{"n", "Cycle cheapest-N bound (off/5/10/25)"},
		{"c", "Open the cost calculator"},
		{"e / E", "Export the view as CSV / Markdown"},
		{"r", "Reload all sources"},
	}
	for _, k := range tableKeys {
		lines = append(lines, "    "+helpKeyStyle.Render(padRight(k.key, 18))+descStyle.Render(k.desc))
	}
	lines = append(lines, "")

	lines = append(lines, headingStyle.Render("  Source Status"))
	lines = append(lines, "")
	statuses := []struct {
		status sources.Status
		desc   string
	}{
		{sources.StatusOK, "Fresh payload loaded"},
		{sources.StatusStale, "Fetch failed, showing the stored snapshot"},
		{sources.StatusError, "Nothing loaded from this source"},
	}
	for _, s := range statuses {
		icon := lipgloss.NewStyle().Foreground(StatusColor(s.status)).Render(StatusIcon(s.status))
		badge := lipgloss.NewStyle().Foreground(StatusColor(s.status)).Bold(true).Render(padRight(strings.ToUpper(string(s.status)), 7))
		lines = append(lines, "    "+icon+" "+badge+descStyle.Render(s.desc))
	}
	lines = append(lines, "")

	lines = append(lines, headingStyle.Render("  Pricing"))
	lines = append(lines, "")
	lines = append(lines, "    "+descStyle.Render("Prices are per one million tokens."))
	lines = append(lines, "    "+descStyle.Render("— marks an unknown price; $0.000 is genuinely free."))
	lines = append(lines, "    "+descStyle.Render("Batch mode falls back to standard prices per axis."))
	lines = append(lines, "")

	lines = append(lines, headingStyle.Render("  Global"))
	lines = append(lines, "")
	globalKeys := []struct{ key, desc string }{
		{"?", "Toggle this help"},
		{"q / Ctrl+C", "Quit"},
	}
	for _, k := range globalKeys {
		lines = append(lines, "    "+helpKeyStyle.Render(padRight(k.key, 18))+descStyle.Render(k.desc))
	}

	lines = append(lines, "")
	lines = append(lines, "  "+dimHintStyle.Render("Press any key to dismiss"))

	content := strings.Join(lines, "\n")

	contentW := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > contentW {
			contentW = w
		}
	}
	boxW := contentW + 4
	if boxW > screenW-4 {
		boxW = screenW - 4
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(colorBase).
		Padding(1, 2).
		Width(boxW).
		Render(content)

	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box)
}
