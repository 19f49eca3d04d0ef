package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pricelens/pricelens/internal/config"
	"github.com/pricelens/pricelens/internal/core"
	"github.com/pricelens/pricelens/internal/export"
	"github.com/pricelens/pricelens/internal/settings"
)

var exportSortKeys = map[string]core.SortKey{
	"provider": core.SortProvider,
	"model":    core.SortModel,
	"context":  core.SortContext,
	"input":    core.SortInput,
	"output":   core.SortOutput,
	"cost":     core.SortCost,
	"monthly":  core.SortMonthly,
}

func newExportCommand(cfg config.Config) *cobra.Command {
	var (
		format string
		output string
		search string
		sortBy string
		desc   bool
		topN   int
		batch  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the catalog as CSV or Markdown",
		Long: "Load all sources, run the saved calculator settings over the catalog, " +
			"and write the resulting table to stdout or a file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sortKey, ok := exportSortKeys[strings.ToLower(sortBy)]
			if !ok {
				return fmt.Errorf("unknown sort key %q (one of provider, model, context, input, output, cost, monthly)", sortBy)
			}

			st, err := settings.Load()
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v; using defaults\n", err)
				st = settings.DefaultSettings()
			}
			if batch {
				st.Mode = core.ModeBatch
			}
			if topN >= 0 {
				st.TopN = topN
			}

			res, err := loadCatalogOnce(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			rows := core.Query(res.Catalog, core.QueryOptions{
				SearchText:    search,
				SortKey:       sortKey,
				SortDesc:      desc,
				Mode:          st.Mode,
				Usage:         st.Usage(),
				CacheDiscount: st.CacheDiscount,
				Rate:          st.RequestRate,
				RatePeriod:    st.RatePeriod,
				TopN:          st.TopN,
			})

			rendered, err := export.Render(format, rows, export.Options{
				Mode:          st.Mode,
				Usage:         st.Usage(),
				CacheDiscount: st.CacheDiscount,
				Rate:          st.RequestRate,
				RatePeriod:    st.RatePeriod,
			})
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Print(rendered)
				return nil
			}
			if err := os.WriteFile(output, []byte(rendered), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Printf("wrote %s to %s\n", formatCount(len(rows), "row"), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", export.FormatCSV, "output format: csv or markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter rows by a search string")
	cmd.Flags().StringVar(&sortBy, "sort", "cost", "sort column")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().IntVarP(&topN, "top", "n", -1, "keep only the N cheapest rows (-1 uses the saved setting)")
	cmd.Flags().BoolVar(&batch, "batch", false, "price under batch mode")
	return cmd
}

func formatCount(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}
