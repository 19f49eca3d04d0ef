package tui

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pricelens/pricelens/internal/core"
	"github.com/pricelens/pricelens/internal/export"
	"github.com/pricelens/pricelens/internal/settings"
	"github.com/pricelens/pricelens/internal/sources"
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type screenTab int

const (
	screenTable   screenTab = iota // sortable price table
	screenChart                    // cost comparison bars
	screenSources                  // configured sources and their health
)

var screenLabelByTab = map[screenTab]string{
	screenTable:   "Prices",
	screenChart:   "Chart",
	screenSources: "Sources",
}

// CatalogMsg delivers a settled load pass to the UI. Sent from the
// wiring layer whenever the loader finishes, whether triggered by
// startup, a manual reload, or a file watch event.
type CatalogMsg sources.LoadResult

type settingsPersistedMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

// sortCycle is the order the s key walks through table columns.
var sortCycle = []core.SortKey{
	core.SortCost,
	core.SortMonthly,
	core.SortProvider,
	core.SortModel,
	core.SortContext,
	core.SortInput,
	core.SortOutput,
}

var sortKeyLabels = map[core.SortKey]string{
	core.SortProvider: "provider",
	core.SortModel:    "model",
	core.SortContext:  "context",
	core.SortInput:    "input",
	core.SortOutput:   "output",
	core.SortCost:     "cost/req",
	core.SortMonthly:  "cost/mo",
}

// topNCycle is the order the n key walks through cheapest-N bounds.
// 0 means unbounded.
var topNCycle = []int{0, 5, 10, 25}

type Model struct {
	catalog  core.Catalog
	states   []sources.SourceState
	loadedAt time.Time

	settings settings.Settings

	searchText string
	filtering  bool
	sortKey    core.SortKey
	sortDesc   bool

	cursor int

	screen   screenTab
	showHelp bool

	calc calcState

	width  int
	height int

	animFrame  int  // monotonically increasing frame counter
	refreshing bool // true while a manual reload is in flight
	hasData    bool // true after the first CatalogMsg arrives

	fatalErr  string // set when the source configuration is unusable
	statusMsg string // one-shot feedback line, cleared on the next key

	// onReload is called when the user requests a reload of all
	// sources. Set from the wiring layer to kick the loader.
	onReload func()
}

func NewModel(st settings.Settings) Model {
	return Model{
		settings: st.Clamped(),
		sortKey:  core.SortCost,
	}
}

// SetOnReload sets a callback invoked when the user presses r.
func (m *Model) SetOnReload(fn func()) {
	m.onReload = fn
}

// SetFatalError puts the explorer into a terminal error state. Used
// when the source configuration cannot produce a single source.
func (m *Model) SetFatalError(msg string) {
	m.fatalErr = msg
}

func (m Model) persistSettingsCmd() tea.Cmd {
	st := m.settings
	return func() tea.Msg {
		err := settings.Save(st)
		if err != nil {
			log.Printf("settings persist: %v", err)
		}
		return settingsPersistedMsg{err: err}
	}
}

func (m Model) exportCmd(format string) tea.Cmd {
	rows := m.visibleModels()
	opts := m.exportOptions()
	return func() tea.Msg {
		rendered, err := export.Render(format, rows, opts)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path := export.DefaultFilename(format, time.Now())
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return exportDoneMsg{path: path, err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (m Model) Init() tea.Cmd { return tickCmd() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.animFrame++
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case CatalogMsg:
		m.catalog = msg.Catalog
		m.states = msg.States
		m.loadedAt = msg.LoadedAt
		m.refreshing = false
		m.hasData = true
		m.cursor = clamp(m.cursor, 0, maxCursor(len(m.visibleModels())))
		return m, nil

	case settingsPersistedMsg:
		if msg.err != nil {
			m.statusMsg = "settings save failed"
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.statusMsg = "export failed: " + truncateToWidth(msg.err.Error(), 60)
		} else {
			m.statusMsg = "exported to " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || m.calc.visible || m.filtering {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	if m.screen != screenTable {
		return m, nil
	}

	step := m.height / 10
	if step < 3 {
		step = 3
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.cursor = clamp(m.cursor-step, 0, maxCursor(len(m.visibleModels())))
	case tea.MouseButtonWheelDown:
		m.cursor = clamp(m.cursor+step, 0, maxCursor(len(m.visibleModels())))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	if m.fatalErr != "" {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	if msg.String() == "?" && !m.filtering && !m.calc.visible {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.calc.visible {
		return m.handleCalculatorKey(msg)
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.screen = m.nextScreen(1)
		return m, nil
	case "shift+tab":
		m.screen = m.nextScreen(-1)
		return m, nil
	case "1":
		m.screen = screenTable
		return m, nil
	case "2":
		m.screen = screenChart
		return m, nil
	case "3":
		m.screen = screenSources
		return m, nil
	case "g":
		if m.screen == screenChart {
			m.screen = screenTable
		} else {
			m.screen = screenChart
		}
		return m, nil

	case "/":
		m.filtering = true
		m.searchText = ""
		m.screen = screenTable
		return m, nil
	case "esc":
		if m.searchText != "" {
			m.searchText = ""
			m.cursor = 0
		}
		return m, nil

	case "s":
		m.sortKey = nextSortKey(m.sortKey, 1)
		m.cursor = 0
		return m, nil
	case "S":
		m.sortDesc = !m.sortDesc
		m.cursor = 0
		return m, nil

	case "m":
		if m.settings.Mode == core.ModeBatch {
			m.settings.Mode = core.ModeStandard
		} else {
			m.settings.Mode = core.ModeBatch
		}
		return m, m.persistSettingsCmd()

	case "n":
		m.settings.TopN = nextTopN(m.settings.TopN)
		m.cursor = 0
		return m, m.persistSettingsCmd()

	case "c":
		m.calc = openCalculator(m.settings)
		return m, nil

	case "e":
		return m, m.exportCmd(export.FormatCSV)
	case "E":
		return m, m.exportCmd(export.FormatMarkdown)

	case "r":
		m = m.requestReload()
		return m, nil
	}

	if m.screen == screenTable {
		return m.handleTableKey(msg)
	}
	return m, nil
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := len(m.visibleModels())
	switch msg.String() {
	case "up", "k":
		m.cursor = clamp(m.cursor-1, 0, maxCursor(total))
	case "down", "j":
		m.cursor = clamp(m.cursor+1, 0, maxCursor(total))
	case "pgup", "ctrl+u":
		m.cursor = clamp(m.cursor-m.tableRowCapacity(), 0, maxCursor(total))
	case "pgdown", "ctrl+d":
		m.cursor = clamp(m.cursor+m.tableRowCapacity(), 0, maxCursor(total))
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = maxCursor(total)
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.cursor = 0
	case "esc":
		m.searchText = ""
		m.filtering = false
		m.cursor = 0
	case "backspace":
		if len(m.searchText) > 0 {
			m.searchText = m.searchText[:len(m.searchText)-1]
		}
	default:
		if len(msg.String()) == 1 {
			m.searchText += msg.String()
		}
	}
	return m, nil
}

func (m Model) requestReload() Model {
	m.refreshing = true
	if m.onReload != nil {
		m.onReload()
	}
	return m
}

func (m Model) nextScreen(delta int) screenTab {
	screens := []screenTab{screenTable, screenChart, screenSources}
	idx := 0
	for i, s := range screens {
		if s == m.screen {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(screens)) % len(screens)
	return screens[idx]
}

func nextSortKey(current core.SortKey, delta int) core.SortKey {
	idx := 0
	for i, k := range sortCycle {
		if k == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(sortCycle)) % len(sortCycle)
	return sortCycle[idx]
}

func nextTopN(current int) int {
	for i, n := range topNCycle {
		if n == current {
			return topNCycle[(i+1)%len(topNCycle)]
		}
	}
	return topNCycle[0]
}

func (m Model) queryOptions() core.QueryOptions {
	return core.QueryOptions{
		SearchText:    m.searchText,
		SortKey:       m.sortKey,
		SortDesc:      m.sortDesc,
		Mode:          m.settings.Mode,
		Usage:         m.settings.Usage(),
		CacheDiscount: m.settings.CacheDiscount,
		Rate:          m.settings.RequestRate,
		RatePeriod:    m.settings.RatePeriod,
		TopN:          m.settings.TopN,
	}
}

func (m Model) exportOptions() export.Options {
	return export.Options{
		Mode:          m.settings.Mode,
		Usage:         m.settings.Usage(),
		CacheDiscount: m.settings.CacheDiscount,
		Rate:          m.settings.RequestRate,
		RatePeriod:    m.settings.RatePeriod,
	}
}

// visibleModels evaluates the query pipeline for the current view
// state. Cheap enough to run per frame for catalogs of a few hundred
// rows.
func (m Model) visibleModels() []core.NormalizedModel {
	return core.Query(m.catalog, m.queryOptions())
}

func (m Model) selectedModel() *core.NormalizedModel {
	visible := m.visibleModels()
	if len(visible) == 0 || m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	return &visible[m.cursor]
}

func maxCursor(total int) int {
	if total == 0 {
		return 0
	}
	return total - 1
}

func (m Model) View() string {
	if m.width < 60 || m.height < 12 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Render("\n  Terminal too small. Resize to at least 60×12.")
	}
	if m.fatalErr != "" {
		return m.renderFatal()
	}
	if !m.hasData {
		return m.renderSplash()
	}
	if m.showHelp {
		return m.renderHelpOverlay(m.width, m.height)
	}
	if m.calc.visible {
		return m.renderCalculator(m.width, m.height)
	}
	return m.renderExplorer()
}

func (m Model) renderExplorer() string {
	w, h := m.width, m.height

	header := m.renderHeader(w)
	headerH := strings.Count(header, "\n") + 1

	footer := m.renderFooter(w)
	footerH := strings.Count(footer, "\n") + 1

	contentH := h - headerH - footerH
	if contentH < 3 {
		contentH = 3
	}

	var content string
	switch m.screen {
	case screenChart:
		content = m.renderChart(w, contentH)
	case screenSources:
		content = m.renderSources(w, contentH)
	default:
		content = m.renderTable(w, contentH)
	}

	return header + "\n" + padToSize(content, w, contentH) + "\n" + footer
}

func (m Model) renderSplash() string {
	frame := m.animFrame % len(SpinnerFrames)
	spinner := lipgloss.NewStyle().Foreground(colorAccent).Render(SpinnerFrames[frame])
	lines := []string{
		headerBrandStyle.Render("PriceLens"),
		"",
		spinner + dimStyle.Render(" loading price lists…"),
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) renderFatal() string {
	box := modalBorderStyle.BorderForeground(colorRed).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Foreground(colorRed).Render("Configuration error"),
			"",
			valueStyle.Render(wrapText(m.fatalErr, 56)),
			"",
			helpStyle.Render("fix the config file and restart · q quits"),
		))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func wrapText(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(s) {
		if line > 0 && line+1+len(word) > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// padToSize pads every line to the given width and the block to the
// given height so screen regions keep stable dimensions across frames.
func padToSize(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + strings.Repeat(" ", gap)
		}
	}
	return strings.Join(lines, "\n")
}

func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func formatCount(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}
