package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pricelens/pricelens/internal/config"
	"github.com/pricelens/pricelens/internal/core"
)

// Settings is the per-user explorer state persisted between runs: the
// usage profile costs are computed for, plus display preferences.
type Settings struct {
	InputTokens   int64            `json:"input_tokens"`
	CachedTokens  int64            `json:"cached_tokens"`
	OutputTokens  int64            `json:"output_tokens"`
	RequestRate   float64          `json:"request_rate"`
	RatePeriod    core.RatePeriod  `json:"rate_period"`
	Mode          core.PricingMode `json:"pricing_mode"`
	CacheDiscount float64          `json:"cache_discount"`
	TopN          int              `json:"top_n"`
}

func DefaultSettings() Settings {
	return Settings{
		InputTokens:   1000,
		CachedTokens:  0,
		OutputTokens:  500,
		RequestRate:   100,
		RatePeriod:    core.PerDay,
		Mode:          core.ModeStandard,
		CacheDiscount: 0.5,
		TopN:          0,
	}
}

func Path() string {
	return filepath.Join(config.ConfigDir(), "settings.json")
}

func Load() (Settings, error) {
	return LoadFrom(Path())
}

func LoadFrom(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings: %w", err)
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parsing settings %s: %w", path, err)
	}

	return s.Clamped(), nil
}

// Clamped pulls every field back into its valid range. Hand-edited
// settings files get the same treatment as TUI input.
func (s Settings) Clamped() Settings {
	if s.InputTokens < 0 {
		s.InputTokens = 0
	}
	if s.CachedTokens < 0 {
		s.CachedTokens = 0
	}
	if s.OutputTokens < 0 {
		s.OutputTokens = 0
	}
	if s.RequestRate < 0 {
		s.RequestRate = 0
	}
	if s.RatePeriod != core.PerDay && s.RatePeriod != core.PerMinute {
		s.RatePeriod = core.PerDay
	}
	if s.Mode != core.ModeStandard && s.Mode != core.ModeBatch {
		s.Mode = core.ModeStandard
	}
	if s.CacheDiscount < 0 {
		s.CacheDiscount = 0
	}
	if s.CacheDiscount > 1 {
		s.CacheDiscount = 1
	}
	if s.TopN < 0 {
		s.TopN = 0
	}
	return s
}

// Usage returns the token profile costs are computed against.
func (s Settings) Usage() core.TokenUsage {
	return core.TokenUsage{
		InputTokens:  s.InputTokens,
		CachedTokens: s.CachedTokens,
		OutputTokens: s.OutputTokens,
	}
}

func Save(s Settings) error {
	return SaveTo(Path(), s)
}

func SaveTo(path string, s Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	return nil
}
