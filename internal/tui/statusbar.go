package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pricelens/pricelens/internal/core"
	"github.com/pricelens/pricelens/internal/sources"
)

func (m Model) renderHeader(w int) string {
	lens := PulseChar(
		lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("◎"),
		lipgloss.NewStyle().Foreground(colorDim).Bold(true).Render("◎"),
		m.animFrame,
	)
	brand := headerBrandStyle.Render("PriceLens")
	tabs := m.renderScreenTabs()

	spinnerStr := ""
	if m.refreshing {
		frame := m.animFrame % len(SpinnerFrames)
		spinnerStr = " " + lipgloss.NewStyle().Foreground(colorAccent).Render(SpinnerFrames[frame])
	}

	var info string
	switch m.screen {
	case screenSources:
		info = formatCount(len(m.states), "source")
	case screenChart:
		info = "cheapest models by request cost"
	default:
		info = fmt.Sprintf("⊞ %d/%d models", len(m.visibleModels()), len(m.catalog))
		if m.searchText != "" {
			info += " (filtered)"
		}
	}
	if m.settings.Mode == core.ModeBatch {
		info = "batch pricing · " + info
	}
	if m.settings.TopN > 0 {
		info = fmt.Sprintf("top %d · %s", m.settings.TopN, info)
	}
	infoRendered := labelStyle.Render(info)

	left := lens + " " + brand + " " + tabs + m.renderSourceDots() + spinnerStr
	gap := w - lipgloss.Width(left) - lipgloss.Width(infoRendered)
	if gap < 1 {
		gap = 1
	}

	line := left + strings.Repeat(" ", gap) + infoRendered
	sep := lipgloss.NewStyle().Foreground(colorSurface1).Render(strings.Repeat("━", w))

	return line + "\n" + sep
}

// renderSourceDots compresses per-source health into counted dots so
// the header stays one line regardless of how many sources are
// configured.
func (m Model) renderSourceDots() string {
	okCount, staleCount, errCount := 0, 0, 0
	for _, st := range m.states {
		switch st.Status {
		case sources.StatusOK:
			okCount++
		case sources.StatusStale:
			staleCount++
		case sources.StatusError:
			errCount++
		}
	}

	out := ""
	if okCount > 0 {
		dot := PulseChar("●", "◉", m.animFrame)
		out += lipgloss.NewStyle().Foreground(colorOK).Render(fmt.Sprintf(" %d%s", okCount, dot))
	}
	if staleCount > 0 {
		out += lipgloss.NewStyle().Foreground(colorStale).Render(fmt.Sprintf(" %d◐", staleCount))
	}
	if errCount > 0 {
		out += lipgloss.NewStyle().Foreground(colorFailed).Render(fmt.Sprintf(" %d✗", errCount))
	}
	return out
}

func (m Model) renderScreenTabs() string {
	screens := []screenTab{screenTable, screenChart, screenSources}
	var parts []string
	for i, screen := range screens {
		label := screenLabelByTab[screen]
		tabStr := fmt.Sprintf("%d:%s", i+1, label)
		if screen == m.screen {
			parts = append(parts, screenTabActiveStyle.Render(tabStr))
		} else {
			parts = append(parts, screenTabInactiveStyle.Render(tabStr))
		}
	}
	return strings.Join(parts, "")
}

func (m Model) renderFooter(w int) string {
	sep := lipgloss.NewStyle().Foreground(colorSurface1).Render(strings.Repeat("━", w))
	return sep + "\n" + m.renderFooterStatusLine()
}

func (m Model) renderFooterStatusLine() string {
	switch {
	case m.filtering:
		cursor := PulseChar("█", "▌", m.animFrame)
		return " " + dimStyle.Render("search: ") + searchStyle.Render(m.searchText+cursor)
	case m.statusMsg != "":
		return " " + labelStyle.Render(m.statusMsg)
	case m.searchText != "":
		return " " + dimStyle.Render("filter: ") + searchStyle.Render(m.searchText) +
			dimStyle.Render("  esc clears · ? help")
	}

	direction := "↑"
	if m.sortDesc {
		direction = "↓"
	}
	sortInfo := dimStyle.Render("sort: ") +
		labelStyle.Render(sortKeyLabels[m.sortKey]+" "+direction)
	return " " + sortInfo + helpStyle.Render("  · ? help")
}

func (m Model) renderSources(w, h int) string {
	if len(m.states) == 0 {
		return "\n" + dimStyle.Render("  No sources configured. The built-in sample list loads by default.")
	}

	var lines []string
	title := lipgloss.NewStyle().Bold(true).Foreground(colorLavender).Render("  Sources")
	if !m.loadedAt.IsZero() {
		title += dimStyle.Render("  · last load " + m.loadedAt.Format("15:04:05"))
	}
	lines = append(lines, "", title, "")

	for _, st := range m.states {
		icon := lipgloss.NewStyle().Foreground(StatusColor(st.Status)).Render(StatusIcon(st.Status))
		name := valueStyle.Render(st.Info.Name)
		origin := dimStyle.Render(fmt.Sprintf("(%s) %s", st.Info.Kind, truncateToWidth(st.Info.Origin, w/2)))
		lines = append(lines, fmt.Sprintf("  %s %s  %s", icon, name, origin))

		detail := StatusBadge(st.Status)
		switch st.Status {
		case sources.StatusOK:
			detail += labelStyle.Render(fmt.Sprintf(" · %s", formatCount(st.Records, "model")))
			if !st.FetchedAt.IsZero() {
				detail += dimStyle.Render(" · fetched " + st.FetchedAt.Format("15:04:05"))
			}
		case sources.StatusStale:
			detail += labelStyle.Render(fmt.Sprintf(" · %s", formatCount(st.Records, "model")))
			detail += dimStyle.Render(" · " + truncateToWidth(st.Message, w-30))
		default:
			detail += lipgloss.NewStyle().Foreground(colorFailed).Render(" · " + truncateToWidth(st.Message, w-20))
		}
		lines = append(lines, "    "+detail, "")
	}

	lines = append(lines, dimStyle.Render("  r reloads all sources"))

	if len(lines) > h {
		lines = lines[:h]
	}
	return strings.Join(lines, "\n")
}
