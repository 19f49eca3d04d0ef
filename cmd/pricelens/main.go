package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pricelens/pricelens/internal/config"
)

func main() {
	if os.Getenv("PRICELENS_DEBUG") != "" {
		log.SetOutput(debugLogWriter())
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	root := cobra.Command{
		Use:   "pricelens",
		Short: "PriceLens is a terminal explorer for LLM provider pricing.",
		Run: func(_ *cobra.Command, _ []string) {
			runExplorer(cfg)
		},
	}

	root.AddCommand(newExportCommand(cfg))
	root.AddCommand(newFetchCommand(cfg))
	root.AddCommand(newSourcesCommand(cfg))
	root.AddCommand(newVersionCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// debugLogWriter appends to debug.log under the config dir. The TUI
// owns the terminal, so debug output cannot go to stderr while the
// explorer is up.
func debugLogWriter() io.Writer {
	dir := config.ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return os.Stderr
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stderr
	}
	return f
}
