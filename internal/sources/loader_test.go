package sources

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type stubSource struct {
	id      string
	payload string
	err     error
	delay   time.Duration
}

func (s *stubSource) ID() string { return s.id }

func (s *stubSource) Describe() Info {
	return Info{Name: s.id, Kind: "stub", Origin: s.id}
}

func (s *stubSource) Fetch(ctx context.Context) ([]byte, error) {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.payload), nil
}

type stubStore struct {
	mu        sync.Mutex
	snapshots map[string][]byte
	times     map[string]time.Time
}

func newStubStore() *stubStore {
	return &stubStore{
		snapshots: make(map[string][]byte),
		times:     make(map[string]time.Time),
	}
}

func (s *stubStore) SaveSnapshot(ctx context.Context, sourceID string, payload []byte, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[sourceID] = payload
	s.times[sourceID] = fetchedAt
	return nil
}

func (s *stubStore) Snapshot(ctx context.Context, sourceID string) ([]byte, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots[sourceID], s.times[sourceID], nil
}

func TestLoadAllMergesInDeclarationOrder(t *testing.T) {
	// The slow source is declared first, so its rows must still win
	// first-occurrence dedupe even though the fast source finishes first.
	slow := &stubSource{
		id:      "slow",
		delay:   30 * time.Millisecond,
		payload: `[{"provider": "openai", "model_id": "gpt-4o", "pricing": {"standard": {"input": {"price_per_million_tokens": 2.5}}}}]`,
	}
	fast := &stubSource{
		id:      "fast",
		payload: `[{"provider": "openai", "model_id": "gpt-4o", "pricing": {"standard": {"input": {"price_per_million_tokens": 99}}}}, {"provider": "openai", "model_id": "o3"}]`,
	}

	res := NewLoader([]Source{slow, fast}).LoadAll(context.Background())

	if len(res.Catalog) != 2 {
		t.Fatalf("catalog has %d rows, want 2", len(res.Catalog))
	}
	if res.Catalog[0].IdentityKey != "openai::gpt-4o" {
		t.Errorf("first row = %q, want openai::gpt-4o", res.Catalog[0].IdentityKey)
	}
	if got := res.Catalog[0].StandardInputPrice; got == nil || *got != 2.5 {
		t.Errorf("gpt-4o input price = %v, want 2.5 from the first-declared source", got)
	}
}

func TestLoadAllOneSourceFailingIsSoft(t *testing.T) {
	bad := &stubSource{id: "bad", err: errors.New("connection refused")}
	good := &stubSource{id: "good", payload: `[{"provider": "x", "model_id": "m"}]`}

	res := NewLoader([]Source{bad, good}).LoadAll(context.Background())

	if len(res.Catalog) != 1 {
		t.Fatalf("catalog has %d rows, want 1", len(res.Catalog))
	}
	if res.States[0].Status != StatusError {
		t.Errorf("bad source status = %q, want %q", res.States[0].Status, StatusError)
	}
	if res.States[1].Status != StatusOK {
		t.Errorf("good source status = %q, want %q", res.States[1].Status, StatusOK)
	}
	if res.States[1].Records != 1 {
		t.Errorf("good source records = %d, want 1", res.States[1].Records)
	}
	if res.Failed() {
		t.Error("Failed() = true with one healthy source")
	}
}

func TestLoadAllParseFailureIsSoft(t *testing.T) {
	broken := &stubSource{id: "broken", payload: `{"models": [`}
	good := &stubSource{id: "good", payload: `[{"provider": "x", "model_id": "m"}]`}

	res := NewLoader([]Source{broken, good}).LoadAll(context.Background())

	if len(res.Catalog) != 1 {
		t.Fatalf("catalog has %d rows, want 1", len(res.Catalog))
	}
	if res.States[0].Status != StatusError {
		t.Errorf("broken source status = %q, want %q", res.States[0].Status, StatusError)
	}
}

func TestLoadAllAllSourcesFailed(t *testing.T) {
	res := NewLoader([]Source{
		&stubSource{id: "a", err: errors.New("down")},
		&stubSource{id: "b", err: errors.New("down")},
	}).LoadAll(context.Background())

	if len(res.Catalog) != 0 {
		t.Errorf("catalog has %d rows, want 0", len(res.Catalog))
	}
	if !res.Failed() {
		t.Error("Failed() = false, want true when every source errored")
	}
}

func TestLoadAllSavesSnapshotsOnSuccess(t *testing.T) {
	store := newStubStore()
	payload := `[{"provider": "x", "model_id": "m"}]`

	loader := NewLoader([]Source{&stubSource{id: "a", payload: payload}})
	loader.SetStore(store)
	loader.LoadAll(context.Background())

	stored, _, err := store.Snapshot(context.Background(), "a")
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if string(stored) != payload {
		t.Errorf("stored payload = %q, want %q", stored, payload)
	}
}

func TestLoadAllFallsBackToSnapshot(t *testing.T) {
	store := newStubStore()
	fetchedAt := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	store.SaveSnapshot(context.Background(), "a", []byte(`[{"provider": "x", "model_id": "m"}]`), fetchedAt)

	loader := NewLoader([]Source{&stubSource{id: "a", err: errors.New("connection refused")}})
	loader.SetStore(store)
	res := loader.LoadAll(context.Background())

	if len(res.Catalog) != 1 {
		t.Fatalf("catalog has %d rows, want 1 from the snapshot", len(res.Catalog))
	}
	if res.States[0].Status != StatusStale {
		t.Errorf("status = %q, want %q", res.States[0].Status, StatusStale)
	}
	if !res.States[0].FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want snapshot time %v", res.States[0].FetchedAt, fetchedAt)
	}
	if res.Failed() {
		t.Error("Failed() = true, want false when a snapshot filled in")
	}
}

func TestLoadAllSnapshotTTL(t *testing.T) {
	payload := []byte(`[{"provider": "x", "model_id": "m"}]`)

	tests := []struct {
		name       string
		age        time.Duration
		ttl        time.Duration
		wantStatus Status
	}{
		{"within ttl", time.Hour, 24 * time.Hour, StatusStale},
		{"past ttl", 48 * time.Hour, 24 * time.Hour, StatusError},
		{"zero ttl keeps any age", 24 * 365 * time.Hour, 0, StatusStale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStubStore()
			store.SaveSnapshot(context.Background(), "a", payload, time.Now().Add(-tt.age))

			loader := NewLoader([]Source{&stubSource{id: "a", err: errors.New("down")}})
			loader.SetStore(store)
			loader.SetSnapshotTTL(tt.ttl)
			res := loader.LoadAll(context.Background())

			if res.States[0].Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", res.States[0].Status, tt.wantStatus)
			}
		})
	}
}

func TestLoadAllSnapshotMustStillParse(t *testing.T) {
	store := newStubStore()
	store.SaveSnapshot(context.Background(), "a", []byte(`{"truncated": [`), time.Now())

	loader := NewLoader([]Source{&stubSource{id: "a", err: errors.New("down")}})
	loader.SetStore(store)
	res := loader.LoadAll(context.Background())

	if res.States[0].Status != StatusError {
		t.Errorf("status = %q, want %q when the snapshot is corrupt", res.States[0].Status, StatusError)
	}
}

func TestLoadAllHonorsPerSourceTimeout(t *testing.T) {
	loader := NewLoader([]Source{&stubSource{id: "a", delay: time.Second, payload: `[]`}})
	loader.SetTimeout(20 * time.Millisecond)

	res := loader.LoadAll(context.Background())

	if res.States[0].Status != StatusError {
		t.Errorf("status = %q, want %q after timeout", res.States[0].Status, StatusError)
	}
}

func TestLoaderOnUpdate(t *testing.T) {
	loader := NewLoader([]Source{&stubSource{id: "a", payload: `[{"provider": "x", "model_id": "m"}]`}})

	var got LoadResult
	loader.OnUpdate(func(res LoadResult) { got = res })
	loader.LoadAll(context.Background())

	if len(got.Catalog) != 1 {
		t.Errorf("OnUpdate saw %d rows, want 1", len(got.Catalog))
	}
	if len(loader.Last().Catalog) != 1 {
		t.Errorf("Last() has %d rows, want 1", len(loader.Last().Catalog))
	}
}

func TestFileSourceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.json")
	if err := os.WriteFile(path, []byte(`[{"provider": "x", "model_id": "m"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	res := NewLoader([]Source{NewFileSource("local", "", path)}).LoadAll(context.Background())

	if len(res.Catalog) != 1 || res.Catalog[0].IdentityKey != "x::m" {
		t.Errorf("catalog = %v, want the single row from disk", res.Catalog)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src := NewFileSource("local", "", filepath.Join(t.TempDir(), "missing.json"))

	res := NewLoader([]Source{src}).LoadAll(context.Background())

	if res.States[0].Status != StatusError {
		t.Errorf("status = %q, want %q for a missing file", res.States[0].Status, StatusError)
	}
}
