package core

type PricingMode string

const (
	ModeStandard PricingMode = "standard"
	ModeBatch    PricingMode = "batch"
)

type RatePeriod string

const (
	PerDay    RatePeriod = "per-day"
	PerMinute RatePeriod = "per-minute"
)

// TokenUsage is the calculator input: raw token counts for a single
// request. Counts are never negative; callers clamp before passing.
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	CachedTokens int64 `json:"cached_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// NormalizedModel is one price-list entry in canonical form. Prices are
// per one million tokens in the record's currency. A nil price means
// unknown/unpriced, which is distinct from a zero price meaning free.
type NormalizedModel struct {
	Provider      string `json:"provider"`
	ModelID       string `json:"model_id"`
	ModelName     string `json:"model_name"`
	ContextLength *int64 `json:"context_length,omitempty"`
	Availability  string `json:"availability"`

	StandardInputPrice  *float64 `json:"standard_input_price,omitempty"`
	StandardOutputPrice *float64 `json:"standard_output_price,omitempty"`
	BatchInputPrice     *float64 `json:"batch_input_price,omitempty"`
	BatchOutputPrice    *float64 `json:"batch_output_price,omitempty"`

	Currency string `json:"currency"`

	Filtered    bool   `json:"is_filtered"`
	IdentityKey string `json:"identity_key"` // "{provider}::{model_id or model_name}", unique per catalog
}

// Catalog is an ordered, deduplicated collection of normalized models.
// It is rebuilt wholesale on every load and never mutated in place.
type Catalog []NormalizedModel
