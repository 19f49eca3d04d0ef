package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pricelens/pricelens/internal/appupdate"
	"github.com/pricelens/pricelens/internal/version"
)

func newVersionCommand() *cobra.Command {
	var noCheck bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information and check for a newer release",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Println("pricelens " + version.String())
			if noCheck {
				return
			}

			// Best effort: dev builds and offline runs stay quiet.
			res, err := appupdate.Check(cmd.Context(), appupdate.CheckOptions{
				CurrentVersion: version.Version,
				Timeout:        2 * time.Second,
			})
			if err != nil || !res.UpdateAvailable {
				return
			}

			fmt.Printf("\nnewer release available: %s (installed %s)\n", res.LatestVersion, res.CurrentVersion)
			if res.UpgradeHint != "" {
				fmt.Println("  upgrade: " + res.UpgradeHint)
			}
		},
	}

	cmd.Flags().BoolVar(&noCheck, "no-check", false, "skip the release check")
	return cmd
}
