// source-probe: developer tool for inspecting a single price list
// source. Fetches the document, decodes it, and dumps each raw record
// next to its normalized form as JSON.
//
// Usage:
//
//	go run ./cmd/source-probe prices.json
//	go run ./cmd/source-probe https://example.com/prices.json
//	go run ./cmd/source-probe -id openai      # a source from the config file
//	go run ./cmd/source-probe -sample         # the built-in sample list
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pricelens/pricelens/internal/config"
	"github.com/pricelens/pricelens/internal/core"
	"github.com/pricelens/pricelens/internal/sources"
)

func main() {
	var (
		sourceID = flag.String("id", "", "probe a source from the config file")
		sample   = flag.Bool("sample", false, "probe the built-in sample list")
		timeout  = flag.Duration("timeout", 15*time.Second, "fetch timeout")
	)
	flag.Parse()

	src, err := pickSource(*sourceID, *sample, flag.Arg(0))
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	payload, err := src.Fetch(ctx)
	if err != nil {
		fatal(fmt.Errorf("fetch %s: %w", src.ID(), err))
	}

	records, err := sources.DecodeRecords(payload)
	if err != nil {
		fatal(fmt.Errorf("decode %s: %w", src.ID(), err))
	}

	type probeEntry struct {
		Raw        core.RawPriceRecord  `json:"raw"`
		Normalized core.NormalizedModel `json:"normalized"`
	}

	entries := make([]probeEntry, 0, len(records))
	excluded := 0
	for _, raw := range records {
		m := core.Normalize(raw)
		if m.Filtered {
			excluded++
		}
		entries = append(entries, probeEntry{Raw: raw, Normalized: m})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		fatal(err)
	}

	info := src.Describe()
	fmt.Fprintf(os.Stderr, "%s (%s): %d bytes, %d records, %d category-excluded\n",
		info.Name, info.Kind, len(payload), len(records), excluded)
}

func pickSource(id string, sample bool, arg string) (sources.Source, error) {
	switch {
	case sample:
		return sources.NewSampleSource(), nil

	case id != "":
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		srcs, err := sources.FromSpecs(cfg.Sources)
		if err != nil {
			return nil, err
		}
		for _, src := range srcs {
			if src.ID() == id {
				return src, nil
			}
		}
		return nil, fmt.Errorf("no source %q in %s", id, config.ConfigPath())

	case arg != "":
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			return sources.NewHTTPSource("probe", "", arg), nil
		}
		return sources.NewFileSource("probe", "", arg), nil
	}
	return nil, fmt.Errorf("nothing to probe: pass a path or URL, -id, or -sample")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "source-probe:", err)
	os.Exit(1)
}
