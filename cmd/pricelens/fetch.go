package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pricelens/pricelens/internal/config"
)

func newFetchCommand(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Refresh all sources and store snapshots without opening the explorer",
		Long: "Fetch every configured source once, persist fresh snapshots, and print " +
			"per-source results. Useful from cron to keep the offline fallback warm.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := loadCatalogOnce(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SOURCE\tKIND\tSTATUS\tMODELS\tDETAIL")
			for _, st := range res.States {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					st.ID, st.Info.Kind, st.Status, st.Records, st.Message)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\ncatalog: %s\n", formatCount(len(res.Catalog), "model"))
			if res.Failed() {
				return fmt.Errorf("every source failed")
			}
			return nil
		},
	}
}
