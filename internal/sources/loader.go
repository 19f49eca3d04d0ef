package sources

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/pricelens/pricelens/internal/core"
)

// SnapshotStore persists the last good payload per source so a flaky
// endpoint degrades to stale data instead of an empty table.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, sourceID string, payload []byte, fetchedAt time.Time) error
	Snapshot(ctx context.Context, sourceID string) ([]byte, time.Time, error)
}

// Loader fetches every registered source and merges the results into a
// catalog. One source failing never fails the pass.
type Loader struct {
	mu          sync.RWMutex
	sources     []Source
	store       SnapshotStore
	timeout     time.Duration
	snapshotTTL time.Duration

	last LoadResult

	onUpdate func(LoadResult)
}

func NewLoader(srcs []Source) *Loader {
	return &Loader{
		sources: srcs,
		timeout: 10 * time.Second,
	}
}

// SetStore attaches the snapshot store used for stale fallback. A nil
// store disables fallback.
func (l *Loader) SetStore(store SnapshotStore) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store = store
}

// SetTimeout overrides the per-source fetch timeout. Non-positive
// values are ignored.
func (l *Loader) SetTimeout(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if d > 0 {
		l.timeout = d
	}
}

// SetSnapshotTTL bounds how old a stored payload may be and still stand
// in for a failed fetch. Zero means any age is acceptable.
func (l *Loader) SetSnapshotTTL(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshotTTL = d
}

func (l *Loader) OnUpdate(fn func(LoadResult)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onUpdate = fn
}

// Last returns the most recent load result.
func (l *Loader) Last() LoadResult {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.last
}

// Sources returns the registered sources in declaration order.
func (l *Loader) Sources() []Source {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Source, len(l.sources))
	copy(out, l.sources)
	return out
}

// LoadAll fetches every source concurrently and rebuilds the catalog.
// Results are reassembled in declaration order so first-wins dedupe
// stays deterministic no matter which fetch finishes first.
func (l *Loader) LoadAll(ctx context.Context) LoadResult {
	l.mu.RLock()
	srcs := make([]Source, len(l.sources))
	copy(srcs, l.sources)
	store := l.store
	timeout := l.timeout
	ttl := l.snapshotTTL
	l.mu.RUnlock()

	type indexed struct {
		i  int
		oc sourceOutcome
	}

	var wg sync.WaitGroup
	results := make(chan indexed, len(srcs))

	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			results <- indexed{i, loadOne(fetchCtx, store, src, ttl)}
		}(i, src)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]sourceOutcome, len(srcs))
	for r := range results {
		outcomes[r.i] = r.oc
	}

	sourceResults := make([]core.SourceResult, len(outcomes))
	states := make([]SourceState, len(outcomes))
	for i, oc := range outcomes {
		sourceResults[i] = oc.result
		states[i] = oc.state
	}

	res := LoadResult{
		Catalog:  core.BuildCatalog(sourceResults),
		States:   states,
		LoadedAt: time.Now(),
	}

	l.mu.Lock()
	l.last = res
	fn := l.onUpdate
	l.mu.Unlock()

	if fn != nil {
		fn(res)
	}
	return res
}

type sourceOutcome struct {
	result core.SourceResult
	state  SourceState
}

func loadOne(ctx context.Context, store SnapshotStore, src Source, ttl time.Duration) sourceOutcome {
	info := src.Describe()
	now := time.Now()

	payload, err := src.Fetch(ctx)
	if err == nil {
		records, decodeErr := DecodeRecords(payload)
		if decodeErr == nil {
			if store != nil {
				if saveErr := store.SaveSnapshot(ctx, src.ID(), payload, now); saveErr != nil {
					log.Printf("sources: persisting snapshot for %s: %v", src.ID(), saveErr)
				}
			}
			return sourceOutcome{
				result: core.SourceResult{SourceID: src.ID(), Records: records},
				state: SourceState{
					ID:        src.ID(),
					Info:      info,
					Status:    StatusOK,
					Message:   fmt.Sprintf("%d models", len(records)),
					Records:   len(records),
					FetchedAt: now,
				},
			}
		}
		err = decodeErr
	}

	// Fetch or parse failed. Substitute the last stored payload if one
	// exists, is young enough, and still parses.
	if store != nil {
		stored, fetchedAt, storeErr := store.Snapshot(ctx, src.ID())
		if storeErr == nil && len(stored) > 0 && (ttl <= 0 || now.Sub(fetchedAt) <= ttl) {
			if records, decodeErr := DecodeRecords(stored); decodeErr == nil {
				return sourceOutcome{
					result: core.SourceResult{SourceID: src.ID(), Records: records},
					state: SourceState{
						ID:        src.ID(),
						Info:      info,
						Status:    StatusStale,
						Message:   fmt.Sprintf("using snapshot from %s: %v", fetchedAt.Format("2006-01-02 15:04"), err),
						Records:   len(records),
						FetchedAt: fetchedAt,
					},
				}
			}
		}
	}

	return sourceOutcome{
		result: core.SourceResult{SourceID: src.ID(), Err: err},
		state: SourceState{
			ID:        src.ID(),
			Info:      info,
			Status:    StatusError,
			Message:   err.Error(),
			FetchedAt: now,
		},
	}
}
