package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/pricelens/pricelens/internal/core"
)

type chartBar struct {
	label    string
	cost     float64
	currency string
}

// chartBars picks the cheapest priced models from the current view.
// The table's display sort is ignored here; bars always run cheapest
// first so the comparison reads left to right.
func (m Model) chartBars(limit int) []chartBar {
	opts := m.queryOptions()
	var bars []chartBar
	for _, mod := range m.visibleModels() {
		cost := core.ComputeCost(opts.Usage, mod, opts.Mode, opts.CacheDiscount)
		if cost == nil {
			continue
		}
		label := mod.ModelID
		if label == "" {
			label = mod.ModelName
		}
		bars = append(bars, chartBar{label: label, cost: *cost, currency: mod.Currency})
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].cost < bars[j].cost })
	if len(bars) > limit {
		bars = bars[:limit]
	}
	return bars
}

func (m Model) renderChart(w, h int) string {
	limit := (w - 4) / 9
	if limit > 12 {
		limit = 12
	}
	if limit < 3 {
		limit = 3
	}
	bars := m.chartBars(limit)
	if len(bars) == 0 {
		return "\n" + dimStyle.Render("  No priced models to chart.") +
			"\n\n" + helpStyle.Render("  rows without a known price are skipped here")
	}

	usage := m.settings.Usage()
	subtitle := fmt.Sprintf("%d in / %d cached / %d out tokens", usage.InputTokens, usage.CachedTokens, usage.OutputTokens)
	if m.settings.Mode == core.ModeBatch {
		subtitle += " · batch"
	}
	title := chartTitleStyle.Render("  Cost per request") + "  " + labelStyle.Render(subtitle)

	cheapest := bars[0]
	priciest := bars[len(bars)-1]
	cheapLine := "  " + dimStyle.Render("cheapest: ") +
		lipgloss.NewStyle().Foreground(ModelColor(0)).Render(cheapest.label) +
		" " + costStyle.Render(core.FormatCost(&cheapest.cost, cheapest.currency)) +
		"   " + chartAxisStyle.Render("scale tops out at "+core.FormatCost(&priciest.cost, priciest.currency))

	chartH := h - 4
	if chartH < 4 {
		chartH = 4
	}

	bc := barchart.New(w-4, chartH)
	for i, b := range bars {
		bc.Push(barchart.BarData{
			Label: truncateToWidth(b.label, 9),
			Values: []barchart.BarValue{{
				Name:  b.label,
				Value: b.cost,
				Style: lipgloss.NewStyle().Foreground(ModelColor(i)),
			}},
		})
	}
	bc.Draw()

	return title + "\n\n" + indentBlock(bc.View(), "  ") + "\n" + cheapLine
}

func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
