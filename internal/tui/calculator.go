package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pricelens/pricelens/internal/core"
	"github.com/pricelens/pricelens/internal/settings"
)

type calcField int

const (
	calcFieldInput calcField = iota
	calcFieldCached
	calcFieldOutput
	calcFieldRate
	calcFieldPeriod
	calcFieldMode
	calcFieldDiscount
	calcFieldCount
)

var calcFieldLabels = map[calcField]string{
	calcFieldInput:    "Input tokens",
	calcFieldCached:   "Cached tokens",
	calcFieldOutput:   "Output tokens",
	calcFieldRate:     "Request rate",
	calcFieldPeriod:   "Rate period",
	calcFieldMode:     "Pricing mode",
	calcFieldDiscount: "Cache discount",
}

// calcState is the calculator modal: a focused field plus an edit
// buffer for the numeric field under the cursor. Toggle fields write
// through to settings immediately; numeric fields commit on blur.
type calcState struct {
	visible bool
	field   calcField
	buf     string
}

func openCalculator(st settings.Settings) calcState {
	c := calcState{visible: true, field: calcFieldInput}
	c.buf = calcFieldValue(st, c.field)
	return c
}

// calcFieldValue renders the editable text for a numeric field.
func calcFieldValue(st settings.Settings, f calcField) string {
	switch f {
	case calcFieldInput:
		return strconv.FormatInt(st.InputTokens, 10)
	case calcFieldCached:
		return strconv.FormatInt(st.CachedTokens, 10)
	case calcFieldOutput:
		return strconv.FormatInt(st.OutputTokens, 10)
	case calcFieldRate:
		return strconv.FormatFloat(st.RequestRate, 'f', -1, 64)
	case calcFieldDiscount:
		return strconv.FormatFloat(st.CacheDiscount, 'f', -1, 64)
	default:
		return ""
	}
}

func calcFieldEditable(f calcField) bool {
	return f != calcFieldPeriod && f != calcFieldMode
}

// commitCalcBuf parses the focused edit buffer into settings. Invalid
// or empty input keeps the previous value; the result is clamped to
// the documented ranges either way.
func commitCalcBuf(st settings.Settings, c calcState) settings.Settings {
	if !calcFieldEditable(c.field) {
		return st
	}
	buf := strings.TrimSpace(c.buf)
	if buf == "" {
		return st
	}
	switch c.field {
	case calcFieldInput, calcFieldCached, calcFieldOutput:
		n, err := strconv.ParseInt(buf, 10, 64)
		if err != nil {
			return st
		}
		switch c.field {
		case calcFieldInput:
			st.InputTokens = n
		case calcFieldCached:
			st.CachedTokens = n
		case calcFieldOutput:
			st.OutputTokens = n
		}
	case calcFieldRate:
		f, err := strconv.ParseFloat(buf, 64)
		if err != nil {
			return st
		}
		st.RequestRate = f
	case calcFieldDiscount:
		f, err := strconv.ParseFloat(buf, 64)
		if err != nil {
			return st
		}
		st.CacheDiscount = f
	}
	return st.Clamped()
}

func (m Model) handleCalculatorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.settings

	switch msg.String() {
	case "esc", "c":
		m.settings = commitCalcBuf(m.settings, m.calc)
		m.calc = calcState{}
		if m.settings != before {
			return m, m.persistSettingsCmd()
		}
		return m, nil

	case "up", "shift+tab":
		m.settings = commitCalcBuf(m.settings, m.calc)
		m.calc.field = (m.calc.field - 1 + calcFieldCount) % calcFieldCount
		m.calc.buf = calcFieldValue(m.settings, m.calc.field)

	case "down", "tab", "enter":
		m.settings = commitCalcBuf(m.settings, m.calc)
		m.calc.field = (m.calc.field + 1) % calcFieldCount
		m.calc.buf = calcFieldValue(m.settings, m.calc.field)

	case "left", "right", " ":
		switch m.calc.field {
		case calcFieldPeriod:
			if m.settings.RatePeriod == core.PerMinute {
				m.settings.RatePeriod = core.PerDay
			} else {
				m.settings.RatePeriod = core.PerMinute
			}
		case calcFieldMode:
			if m.settings.Mode == core.ModeBatch {
				m.settings.Mode = core.ModeStandard
			} else {
				m.settings.Mode = core.ModeBatch
			}
		}

	case "backspace":
		if calcFieldEditable(m.calc.field) && len(m.calc.buf) > 0 {
			m.calc.buf = m.calc.buf[:len(m.calc.buf)-1]
		}

	default:
		if calcFieldEditable(m.calc.field) && len(msg.String()) == 1 {
			ch := msg.String()[0]
			if (ch >= '0' && ch <= '9') || ch == '.' {
				if len(m.calc.buf) < 12 {
					m.calc.buf += msg.String()
				}
			}
		}
	}

	if m.settings != before {
		return m, m.persistSettingsCmd()
	}
	return m, nil
}

// draftSettings folds the in-progress edit buffer into a copy of the
// settings so the preview tracks keystrokes before the field commits.
func (m Model) draftSettings() settings.Settings {
	return commitCalcBuf(m.settings, m.calc)
}

func (m Model) renderCalculator(w, h int) string {
	draft := m.draftSettings()
	cursor := PulseChar("█", "▌", m.animFrame)

	var rows []string
	rows = append(rows, modalTitleStyle.Render("Cost calculator"), "")

	for f := calcField(0); f < calcFieldCount; f++ {
		focused := f == m.calc.field
		label := padRight(calcFieldLabels[f], 16)

		var value string
		switch f {
		case calcFieldPeriod:
			value = string(draft.RatePeriod)
			if focused {
				value = "◂ " + value + " ▸"
			}
		case calcFieldMode:
			value = string(draft.Mode)
			if focused {
				value = "◂ " + value + " ▸"
			}
		default:
			if focused {
				value = m.calc.buf + cursor
			} else {
				value = calcFieldValue(draft, f)
			}
		}

		if focused {
			rows = append(rows, fieldFocusStyle.Render("▸ "+label)+valueStyle.Render(value))
		} else {
			rows = append(rows, "  "+labelStyle.Render(label)+valueStyle.Render(value))
		}
	}

	rows = append(rows, "", m.renderCalcPreview(draft))
	rows = append(rows, "", helpStyle.Render("↑/↓ move · type to edit · space toggles · esc closes"))

	box := modalBorderStyle.Render(strings.Join(rows, "\n"))
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}

// renderCalcPreview shows the draft cost for the row under the table
// cursor, so edits give immediate feedback against a concrete model.
func (m Model) renderCalcPreview(draft settings.Settings) string {
	target := m.selectedModel()
	if target == nil {
		return dimStyle.Render("no model selected")
	}

	cost := core.ComputeCost(draft.Usage(), *target, draft.Mode, draft.CacheDiscount)
	monthly := core.MonthlyCost(cost, draft.RequestRate, draft.RatePeriod)

	name := target.ModelName
	return lipgloss.NewStyle().Foreground(ProviderColor(target.Provider)).Render(name) +
		labelStyle.Render("  "+core.FormatCost(cost, target.Currency)+"/req · "+
			core.FormatCost(monthly, target.Currency)+"/mo")
}
