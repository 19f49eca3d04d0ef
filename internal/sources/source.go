package sources

import (
	"context"
	"time"

	"github.com/pricelens/pricelens/internal/core"
)

// Status describes the health of one price list source after a load pass.
type Status string

const (
	// StatusOK means the source delivered a fresh payload.
	StatusOK Status = "ok"
	// StatusStale means the fetch failed and the loader substituted the
	// last stored payload.
	StatusStale Status = "stale"
	// StatusError means the source contributed nothing to the catalog.
	StatusError Status = "error"
)

// Info is static source metadata shown on the sources screen.
type Info struct {
	Name   string
	Kind   string
	Origin string
}

// Source delivers one raw price list document. Implementations must be
// safe for concurrent use; the loader fetches all sources in parallel.
type Source interface {
	ID() string
	Describe() Info
	Fetch(ctx context.Context) ([]byte, error)
}

// SourceState is the per-source outcome of a load pass.
type SourceState struct {
	ID        string
	Info      Info
	Status    Status
	Message   string
	Records   int
	FetchedAt time.Time
}

// LoadResult carries the merged catalog plus per-source diagnostics.
type LoadResult struct {
	Catalog  core.Catalog
	States   []SourceState
	LoadedAt time.Time
}

// Failed reports whether every source errored out, leaving the catalog
// with no rows to show.
func (r LoadResult) Failed() bool {
	if len(r.States) == 0 {
		return false
	}
	for _, st := range r.States {
		if st.Status != StatusError {
			return false
		}
	}
	return true
}
