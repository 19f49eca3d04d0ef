package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pricelens/pricelens/internal/sources"
)

// Config is the machine-level setup: which price list sources feed the
// catalog and where snapshots live. Per-user explorer state (token
// counts, sort, mode) lives in the settings package.
type Config struct {
	Sources             []sources.Spec `json:"sources"`
	FetchTimeoutSeconds int            `json:"fetch_timeout_seconds,omitempty"`
	SnapshotTTLHours    int            `json:"snapshot_ttl_hours,omitempty"`
	DisableSnapshots    bool           `json:"disable_snapshots,omitempty"`
	SnapshotDBPath      string         `json:"snapshot_db_path,omitempty"`
}

const (
	defaultFetchTimeoutSeconds = 10
	maxFetchTimeoutSeconds     = 120
)

func DefaultConfig() Config {
	// No sources configured means the built-in sample list.
	return Config{FetchTimeoutSeconds: defaultFetchTimeoutSeconds}
}

// Clamped pulls numeric knobs back into their valid ranges so a
// hand-edited file cannot hang a fetch or wedge the fallback.
func (c Config) Clamped() Config {
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = defaultFetchTimeoutSeconds
	}
	if c.FetchTimeoutSeconds > maxFetchTimeoutSeconds {
		c.FetchTimeoutSeconds = maxFetchTimeoutSeconds
	}
	if c.SnapshotTTLHours < 0 {
		c.SnapshotTTLHours = 0
	}
	return c
}

// FetchTimeout is the per-source fetch deadline.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// SnapshotTTL bounds how old a stored snapshot may be and still stand
// in for a failed fetch; zero means no limit.
func (c Config) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLHours) * time.Hour
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "pricelens")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pricelens")
}

// ConfigPath honors PRICELENS_CONFIG so tests and one-off runs can point
// at an alternate file.
func ConfigPath() string {
	if p := strings.TrimSpace(os.Getenv("PRICELENS_CONFIG")); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg.Clamped(), nil
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// AddSource persists a new source spec into the config file
// (read-modify-write).
func AddSource(spec sources.Spec) error {
	return AddSourceTo(ConfigPath(), spec)
}

func AddSourceTo(path string, spec sources.Spec) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := LoadFrom(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	for _, existing := range cfg.Sources {
		if existing.ID == spec.ID {
			return fmt.Errorf("source %q already configured", spec.ID)
		}
	}
	cfg.Sources = append(cfg.Sources, spec)
	return SaveTo(path, cfg)
}
