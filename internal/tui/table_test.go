package tui

import (
	"strings"
	"testing"

	"github.com/pricelens/pricelens/internal/core"
	"github.com/pricelens/pricelens/internal/settings"
	"github.com/pricelens/pricelens/internal/sources"
)

func TestViewShowsTableRows(t *testing.T) {
	m := readyModel()

	view := m.View()
	for _, want := range []string{"GPT-4o", "Claude Sonnet", "Grok Preview", "$2.000", "128000"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if !strings.Contains(view, core.Placeholder) {
		t.Fatal("view missing the placeholder for unpriced rows")
	}
}

func TestViewMarksSortColumn(t *testing.T) {
	m := readyModel()

	view := m.View()
	if !strings.Contains(view, "Cost/Request ▲") {
		t.Fatal("view missing the ascending sort marker on the cost column")
	}

	m.sortDesc = true
	view = m.View()
	if !strings.Contains(view, "Cost/Request ▼") {
		t.Fatal("view missing the descending sort marker")
	}
}

func TestViewFilterWithNoMatches(t *testing.T) {
	m := readyModel()
	m.searchText = "zzz"

	view := m.View()
	if !strings.Contains(view, "No models match") {
		t.Fatal("view missing the empty filter message")
	}
}

func TestViewEmptyCatalogAllFailed(t *testing.T) {
	m := readyModel()
	m.catalog = nil
	m.states = []sources.SourceState{
		{ID: "a", Status: sources.StatusError, Message: "connect refused"},
		{ID: "b", Status: sources.StatusError, Message: "404"},
	}

	view := m.View()
	if !strings.Contains(view, "Every source failed") {
		t.Fatal("view missing the all-sources-failed message")
	}
}

func TestViewHeaderCountsVisibleRows(t *testing.T) {
	m := readyModel()

	view := m.View()
	if !strings.Contains(view, "3/3 models") {
		t.Fatal("header missing the visible/total row count")
	}

	m.searchText = "gpt"
	view = m.View()
	if !strings.Contains(view, "1/3 models") {
		t.Fatalf("header missing the filtered row count")
	}
}

func TestViewFooterShowsFilterPrompt(t *testing.T) {
	m := readyModel()
	m.filtering = true
	m.searchText = "cla"

	view := m.View()
	if !strings.Contains(view, "search:") {
		t.Fatal("footer missing the live search prompt")
	}
	if !strings.Contains(view, "cla") {
		t.Fatal("footer missing the typed filter text")
	}
}

func TestViewChartScreen(t *testing.T) {
	m := readyModel()
	m.screen = screenChart

	view := m.View()
	if !strings.Contains(view, "Cost per request") {
		t.Fatal("chart view missing its title")
	}
	if !strings.Contains(view, "cheapest:") {
		t.Fatal("chart view missing the cheapest summary")
	}
}

func TestViewSourcesScreen(t *testing.T) {
	m := readyModel()
	m.screen = screenSources
	m.states = append(m.states, sources.SourceState{
		ID:     "litellm",
		Info:   sources.Info{Name: "litellm", Kind: "http", Origin: "https://example.com/prices.json"},
		Status: sources.StatusError, Message: "HTTP 500",
	})

	view := m.View()
	for _, want := range []string{"Sources", "sample", "litellm", "ERR", "HTTP 500"} {
		if !strings.Contains(view, want) {
			t.Fatalf("sources view missing %q", want)
		}
	}
}

func TestViewTooSmall(t *testing.T) {
	m := readyModel()
	m.width = 40

	if !strings.Contains(m.View(), "Terminal too small") {
		t.Fatal("expected the resize hint on a tiny terminal")
	}
}

func TestViewSplashBeforeFirstLoad(t *testing.T) {
	m := NewModel(settings.DefaultSettings())
	m.width = 100
	m.height = 24

	if !strings.Contains(m.View(), "loading price lists") {
		t.Fatal("expected the splash before the first catalog frame")
	}
}

func TestViewFatalError(t *testing.T) {
	m := readyModel()
	m.SetFatalError(`duplicate source id "sample"`)

	view := m.View()
	if !strings.Contains(view, "Configuration error") {
		t.Fatal("expected the fatal error box")
	}
	if !strings.Contains(view, "duplicate source id") {
		t.Fatal("expected the fatal error detail")
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("abcdef", 4); got != "abc…" {
		t.Fatalf("truncateToWidth = %q, want abc…", got)
	}
	if got := truncateToWidth("ab", 4); got != "ab" {
		t.Fatalf("truncateToWidth = %q, want ab unchanged", got)
	}
}

func TestPadToSizeKeepsDimensions(t *testing.T) {
	got := padToSize("a\nbb", 4, 3)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	for i, line := range lines {
		if len(line) != 4 {
			t.Fatalf("line %d width = %d, want 4", i, len(line))
		}
	}
}

func TestRenderScrollBarLineEmptyWhenEverythingFits(t *testing.T) {
	if got := renderScrollBarLine(80, 0, 10, 5); got != "" {
		t.Fatalf("scroll bar = %q, want empty when rows fit", got)
	}
	if got := renderScrollBarLine(80, 0, 10, 50); got == "" {
		t.Fatal("expected a scroll bar when rows overflow")
	}
}
