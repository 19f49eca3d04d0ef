package main

import (
	"context"
	"log"

	"github.com/pricelens/pricelens/internal/config"
	"github.com/pricelens/pricelens/internal/sources"
	"github.com/pricelens/pricelens/internal/store"
)

// openSnapshotStore opens the snapshot database named by the config, or
// the default state path. Snapshot persistence is best effort: when the
// store cannot open, stale fallback is disabled and the explorer still
// runs.
func openSnapshotStore(cfg config.Config) *store.Store {
	if cfg.DisableSnapshots {
		return nil
	}

	path := cfg.SnapshotDBPath
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			log.Printf("snapshot store: %v", err)
			return nil
		}
	}

	s, err := store.Open(path)
	if err != nil {
		log.Printf("snapshot store: %v", err)
		return nil
	}
	return s
}

// loadCatalogOnce runs a single load pass over the configured sources,
// with snapshot fallback when the store opens. Used by the one-shot
// subcommands; the explorer keeps a long-lived loader instead.
func loadCatalogOnce(ctx context.Context, cfg config.Config) (sources.LoadResult, error) {
	srcs, err := sources.FromSpecs(cfg.Sources)
	if err != nil {
		return sources.LoadResult{}, err
	}

	loader := sources.NewLoader(srcs)
	loader.SetTimeout(cfg.FetchTimeout())
	loader.SetSnapshotTTL(cfg.SnapshotTTL())
	if snapStore := openSnapshotStore(cfg); snapStore != nil {
		defer snapStore.Close()
		loader.SetStore(snapStore)
	}
	return loader.LoadAll(ctx), nil
}
