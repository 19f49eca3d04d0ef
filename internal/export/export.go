package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pricelens/pricelens/internal/core"
)

// Supported output formats.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Options mirror the explorer view so an export reproduces exactly what
// the table shows.
type Options struct {
	Mode          core.PricingMode
	Usage         core.TokenUsage
	CacheDiscount float64
	Rate          float64
	RatePeriod    core.RatePeriod
}

var headers = []string{
	"Provider", "Model", "Context", "Input $/1M", "Output $/1M", "Cost/Request", "Cost/Month",
}

// Table is the display-ready projection of a set of catalog rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

func BuildTable(models []core.NormalizedModel, opts Options) Table {
	rows := make([][]string, 0, len(models))
	for _, m := range models {
		in, out := core.ResolvePrices(m, opts.Mode)
		cost := core.ComputeCost(opts.Usage, m, opts.Mode, opts.CacheDiscount)
		monthly := core.MonthlyCost(cost, opts.Rate, opts.RatePeriod)

		rows = append(rows, []string{
			m.Provider,
			m.ModelName,
			core.FormatContext(m.ContextLength),
			core.FormatCost(in, m.Currency),
			core.FormatCost(out, m.Currency),
			core.FormatCost(cost, m.Currency),
			core.FormatCost(monthly, m.Currency),
		})
	}
	return Table{Headers: headers, Rows: rows}
}

func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteMarkdown(w io.Writer, t Table) error {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(mdCell(cell)); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	writeMarkdownRow(&b, t.Headers, widths)

	b.WriteString("|")
	for _, width := range widths {
		b.WriteString(" ")
		b.WriteString(strings.Repeat("-", width))
		b.WriteString(" |")
	}
	b.WriteString("\n")

	for _, row := range t.Rows {
		writeMarkdownRow(&b, row, widths)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdownRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteString("|")
	for i, cell := range cells {
		cell = mdCell(cell)
		b.WriteString(" ")
		b.WriteString(cell)
		if pad := widths[i] - utf8.RuneCountInString(cell); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

// mdCell keeps a stray pipe in a model name from breaking the table.
func mdCell(cell string) string {
	return strings.ReplaceAll(cell, "|", `\|`)
}

// Render builds and serializes a table in one step.
func Render(format string, models []core.NormalizedModel, opts Options) (string, error) {
	table := BuildTable(models, opts)

	var b strings.Builder
	switch format {
	case FormatCSV:
		if err := WriteCSV(&b, table); err != nil {
			return "", err
		}
	case FormatMarkdown, "md":
		if err := WriteMarkdown(&b, table); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
	return b.String(), nil
}

// DefaultFilename names an export written from the TUI.
func DefaultFilename(format string, now time.Time) string {
	ext := "csv"
	if format == FormatMarkdown || format == "md" {
		ext = "md"
	}
	return fmt.Sprintf("pricelens-%s.%s", now.Format("20060102-150405"), ext)
}
