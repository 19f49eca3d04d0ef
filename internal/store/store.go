package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps the last successfully fetched payload per source so the
// explorer can fall back to stale data when a source is unreachable.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func DefaultStateDir() (string, error) {
	if base := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); base != "" {
		return filepath.Join(base, "pricelens"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("store: resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "pricelens"), nil
}

func DefaultDBPath() (string, error) {
	stateDir, err := DefaultStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "snapshots.db"), nil
}

func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: creating state dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening DB: %w", err)
	}
	if err := configureSQLiteConnection(db); err != nil {
		db.Close()
		return nil, err
	}

	store := New(db)
	if err := store.Init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS source_snapshots (
			source_id TEXT PRIMARY KEY,
			fetched_at TEXT NOT NULL,
			payload BLOB NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
	}
	return nil
}

// SaveSnapshot upserts the payload for a source. Each source keeps only
// its most recent good payload.
func (s *Store) SaveSnapshot(ctx context.Context, sourceID string, payload []byte, fetchedAt time.Time) error {
	if strings.TrimSpace(sourceID) == "" {
		return fmt.Errorf("store: empty source id")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO source_snapshots (source_id, fetched_at, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			payload = excluded.payload
	`, sourceID, fetchedAt.UTC().Format(time.RFC3339Nano), payload)
	if err != nil {
		return fmt.Errorf("store: saving snapshot for %s: %w", sourceID, err)
	}
	return nil
}

// Snapshot returns the stored payload and fetch time for a source. A
// source with no snapshot yields a nil payload and no error.
func (s *Store) Snapshot(ctx context.Context, sourceID string) ([]byte, time.Time, error) {
	var payload []byte
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT payload, fetched_at FROM source_snapshots WHERE source_id = ?
	`, sourceID).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("store: reading snapshot for %s: %w", sourceID, err)
	}

	t, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("store: parsing snapshot time for %s: %w", sourceID, err)
	}
	return payload, t, nil
}

// SnapshotInfo summarizes one stored payload for the sources screen.
type SnapshotInfo struct {
	SourceID  string
	FetchedAt time.Time
	Bytes     int64
}

func (s *Store) ListSnapshots(ctx context.Context) ([]SnapshotInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_id, fetched_at, length(payload) FROM source_snapshots ORDER BY source_id
	`)
	if err != nil {
		return nil, fmt.Errorf("store: listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var fetchedAt string
		if err := rows.Scan(&info.SourceID, &fetchedAt, &info.Bytes); err != nil {
			return nil, fmt.Errorf("store: scanning snapshot row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
			info.FetchedAt = t
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: listing snapshots: %w", err)
	}
	return out, nil
}

// DeleteSnapshot drops the stored payload for a source, forcing the next
// load to fetch fresh data or fail visibly.
func (s *Store) DeleteSnapshot(ctx context.Context, sourceID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM source_snapshots WHERE source_id = ?`, sourceID); err != nil {
		return fmt.Errorf("store: deleting snapshot for %s: %w", sourceID, err)
	}
	return nil
}
