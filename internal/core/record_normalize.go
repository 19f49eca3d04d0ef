package core

// RawPriceRecord is one price-list entry exactly as decoded from a
// source document. Provider files disagree on which fields they carry
// and how they type them, so everything stays loose until Normalize.
type RawPriceRecord map[string]any

// Normalize converts a raw record into its canonical form using the
// default category-exclusion rule.
func Normalize(raw RawPriceRecord) NormalizedModel {
	return NormalizeWith(raw, CategoryExcluded)
}

// NormalizeWith never fails: every field has a defined default, and a
// malformed value degrades to that default. Prices that are not JSON
// numbers come out nil, never zero.
func NormalizeWith(raw RawPriceRecord, excluded ExcludeFunc) NormalizedModel {
	modelID := stringField(raw, "model_id", "")
	modelName := stringField(raw, "model_name", "")
	if modelName == "" {
		modelName = modelID
	}
	if modelName == "" {
		modelName = "Unknown"
	}

	m := NormalizedModel{
		Provider:      stringField(raw, "provider", "Unknown"),
		ModelID:       modelID,
		ModelName:     modelName,
		ContextLength: intField(raw, "context_length"),
		Availability:  stringField(raw, "availability", "unknown"),

		StandardInputPrice:  priceField(raw, "standard", "input"),
		StandardOutputPrice: priceField(raw, "standard", "output"),
		BatchInputPrice:     priceField(raw, "batch", "input"),
		BatchOutputPrice:    priceField(raw, "batch", "output"),

		Currency: currencyField(raw),
	}

	key := m.ModelID
	if key == "" {
		key = m.ModelName
	}
	m.IdentityKey = m.Provider + "::" + key

	if excluded != nil {
		m.Filtered = excluded(m)
	}
	return m
}

func stringField(raw RawPriceRecord, key, fallback string) string {
	if s, ok := raw[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func intField(raw RawPriceRecord, key string) *int64 {
	f, ok := raw[key].(float64)
	if !ok {
		return nil
	}
	n := int64(f)
	return &n
}

// priceField digs pricing.<tier>.<direction>.price_per_million_tokens
// out of a raw record. Any missing level or non-numeric value is nil.
func priceField(raw RawPriceRecord, tier, direction string) *float64 {
	pricing, ok := raw["pricing"].(map[string]any)
	if !ok {
		return nil
	}
	rates, ok := pricing[tier].(map[string]any)
	if !ok {
		return nil
	}
	axis, ok := rates[direction].(map[string]any)
	if !ok {
		return nil
	}
	return numberOrNil(axis["price_per_million_tokens"])
}

// currencyField accepts the code either at the record top level or
// nested under pricing; some provider files do one, some the other.
func currencyField(raw RawPriceRecord) string {
	if s, ok := raw["currency"].(string); ok && s != "" {
		return s
	}
	if pricing, ok := raw["pricing"].(map[string]any); ok {
		if s, ok := pricing["currency"].(string); ok && s != "" {
			return s
		}
	}
	return "USD"
}

func numberOrNil(v any) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}
