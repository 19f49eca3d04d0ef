package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := New(db)
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return store
}

func TestStoreInit_CreatesTable(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	store := New(db)
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	var name string
	if err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='source_snapshots'`).Scan(&name); err != nil {
		t.Fatalf("source_snapshots table missing: %v", err)
	}
}

func TestStoreSaveSnapshot_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	fetchedAt := time.Date(2026, time.February, 10, 9, 30, 0, 0, time.UTC)
	payload := []byte(`[{"provider": "x", "model_id": "m"}]`)

	if err := store.SaveSnapshot(ctx, "remote", payload, fetchedAt); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, gotAt, err := store.Snapshot(ctx, "remote")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %q, want %q", got, payload)
	}
	if !gotAt.Equal(fetchedAt) {
		t.Errorf("fetched at = %v, want %v", gotAt, fetchedAt)
	}
}

func TestStoreSaveSnapshot_OverwritesPrevious(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveSnapshot(ctx, "remote", []byte(`[]`), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("first SaveSnapshot: %v", err)
	}
	newer := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	if err := store.SaveSnapshot(ctx, "remote", []byte(`[{"model_id": "m"}]`), newer); err != nil {
		t.Fatalf("second SaveSnapshot: %v", err)
	}

	got, gotAt, err := store.Snapshot(ctx, "remote")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if string(got) != `[{"model_id": "m"}]` {
		t.Errorf("payload = %q, want the newer payload", got)
	}
	if !gotAt.Equal(newer) {
		t.Errorf("fetched at = %v, want %v", gotAt, newer)
	}

	infos, err := store.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(infos) != 1 {
		t.Errorf("snapshots = %d, want 1 row per source", len(infos))
	}
}

func TestStoreSnapshot_MissingSource(t *testing.T) {
	store := openTestStore(t)

	payload, fetchedAt, err := store.Snapshot(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if payload != nil {
		t.Errorf("payload = %q, want nil", payload)
	}
	if !fetchedAt.IsZero() {
		t.Errorf("fetched at = %v, want zero time", fetchedAt)
	}
}

func TestStoreSaveSnapshot_RejectsEmptyID(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveSnapshot(context.Background(), "  ", []byte(`[]`), time.Now()); err == nil {
		t.Error("SaveSnapshot with blank id: error = nil, want error")
	}
}

func TestStoreDeleteSnapshot(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveSnapshot(ctx, "remote", []byte(`[]`), time.Now()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := store.DeleteSnapshot(ctx, "remote"); err != nil {
		t.Fatalf("DeleteSnapshot: %v", err)
	}

	payload, _, err := store.Snapshot(ctx, "remote")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if payload != nil {
		t.Errorf("payload = %q, want nil after delete", payload)
	}
}

func TestOpenCreatesStateDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "snapshots.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.SaveSnapshot(context.Background(), "a", []byte(`[]`), time.Now()); err != nil {
		t.Errorf("SaveSnapshot after Open: %v", err)
	}
}
