package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pricelens/pricelens/internal/sources"
)

// ─── Color Palette (Catppuccin Mocha) ───────────────────────────────────────

var (
	// Base tones
	colorBase     = lipgloss.Color("#1E1E2E") // background
	colorMantle   = lipgloss.Color("#181825") // deeper bg
	colorSurface0 = lipgloss.Color("#313244") // card bg
	colorSurface1 = lipgloss.Color("#45475A") // lighter surface
	colorText     = lipgloss.Color("#CDD6F4") // primary text
	colorSubtext  = lipgloss.Color("#A6ADC8") // secondary text
	colorDim      = lipgloss.Color("#585B70") // muted, borders

	// Accents
	colorAccent    = lipgloss.Color("#CBA6F7") // mauve – primary accent
	colorBlue      = lipgloss.Color("#89B4FA") // section headers
	colorSapphire  = lipgloss.Color("#74C7EC") // links, secondary accent
	colorGreen     = lipgloss.Color("#A6E3A1") // OK / healthy
	colorYellow    = lipgloss.Color("#F9E2AF") // warning / stale
	colorRed       = lipgloss.Color("#F38BA8") // error
	colorPeach     = lipgloss.Color("#FAB387")
	colorTeal      = lipgloss.Color("#94E2D5")
	colorFlamingo  = lipgloss.Color("#F2CDCD")
	colorRosewater = lipgloss.Color("#F5E0DC")
	colorLavender  = lipgloss.Color("#B4BEFE") // titles
	colorSky       = lipgloss.Color("#89DCEB")
	colorMaroon    = lipgloss.Color("#EBA0AC")

	// Semantic aliases
	colorOK     = colorGreen
	colorStale  = colorYellow
	colorFailed = colorRed
)

// ─── Reusable Styles ────────────────────────────────────────────────────────

var (
	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorSapphire).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorSubtext)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	searchStyle = lipgloss.NewStyle().
			Foreground(colorSapphire)

	// Table chrome
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorLavender)

	tableSortStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	rowSelectedStyle = lipgloss.NewStyle().
				Background(colorSurface0).
				Foreground(colorText).
				Bold(true)

	costStyle = lipgloss.NewStyle().
			Foreground(colorRosewater)

	// Screen tabs (tmux-like)
	screenTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorMantle).
				Background(colorAccent).
				Padding(0, 1)

	screenTabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Padding(0, 1)

	// Modal chrome (calculator, help)
	modalBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSurface1).
				Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorLavender)

	fieldFocusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	// Chart chrome
	chartTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	chartAxisStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// ─── Provider & Model Color Palettes ────────────────────────────────────────

// providerColorMap assigns a stable accent color to well-known providers.
var providerColorMap = map[string]lipgloss.Color{
	"openai":     colorGreen,
	"anthropic":  colorPeach,
	"google":     colorBlue,
	"mistral":    colorFlamingo,
	"deepseek":   colorSky,
	"xai":        colorMaroon,
	"openrouter": colorRosewater,
	"ollama":     colorTeal,
	"groq":       colorYellow,
	"cohere":     colorSapphire,
}

// modelColorPalette cycles through colors for chart bars.
var modelColorPalette = []lipgloss.Color{
	colorPeach, colorTeal, colorSapphire, colorGreen,
	colorYellow, colorLavender, colorSky, colorFlamingo,
	colorMaroon, colorRosewater, colorBlue, colorAccent,
}

// ProviderColor returns the accent color for a provider name.
func ProviderColor(provider string) lipgloss.Color {
	key := lowerASCII(provider)
	if c, ok := providerColorMap[key]; ok {
		return c
	}
	// Fallback: hash the name to pick a color from the model palette
	h := 0
	for _, ch := range key {
		h = h*31 + int(ch)
	}
	if h < 0 {
		h = -h
	}
	return modelColorPalette[h%len(modelColorPalette)]
}

// ModelColor returns a color for a chart bar by its index.
func ModelColor(idx int) lipgloss.Color {
	if idx < 0 {
		idx = 0
	}
	return modelColorPalette[idx%len(modelColorPalette)]
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// ─── Source Status Helpers ──────────────────────────────────────────────────

// StatusColor returns the accent color for a source load status.
func StatusColor(s sources.Status) lipgloss.Color {
	switch s {
	case sources.StatusOK:
		return colorOK
	case sources.StatusStale:
		return colorStale
	case sources.StatusError:
		return colorFailed
	default:
		return colorDim
	}
}

// StatusIcon returns a compact icon for a source load status.
func StatusIcon(s sources.Status) string {
	switch s {
	case sources.StatusOK:
		return "●"
	case sources.StatusStale:
		return "◐"
	case sources.StatusError:
		return "✗"
	default:
		return "·"
	}
}

// StatusBadge returns a styled badge string for a source load status.
func StatusBadge(s sources.Status) string {
	var style lipgloss.Style
	var text string
	switch s {
	case sources.StatusOK:
		style = lipgloss.NewStyle().Foreground(colorOK).Bold(true)
		text = "OK"
	case sources.StatusStale:
		style = lipgloss.NewStyle().Foreground(colorStale).Bold(true)
		text = "STALE"
	case sources.StatusError:
		style = lipgloss.NewStyle().Foreground(colorFailed).Bold(true)
		text = "ERR"
	default:
		style = dimStyle
		text = "…"
	}
	return style.Render(text)
}

// ─── Animation Helpers ──────────────────────────────────────────────────────

// SpinnerFrames are the braille frames cycled while a reload is in flight.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// PulseChar alternates between two glyphs on the animation clock.
func PulseChar(a, b string, frame int) string {
	if frame%8 < 4 {
		return a
	}
	return b
}
