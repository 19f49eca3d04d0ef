package core

// ResolvePrices returns the per-million input and output prices billed
// under the given mode. Batch pricing falls back per axis to the
// standard price when a model carries no batch quote.
func ResolvePrices(m NormalizedModel, mode PricingMode) (input, output *float64) {
	if mode == ModeBatch {
		input, output = m.BatchInputPrice, m.BatchOutputPrice
		if input == nil {
			input = m.StandardInputPrice
		}
		if output == nil {
			output = m.StandardOutputPrice
		}
		return input, output
	}
	return m.StandardInputPrice, m.StandardOutputPrice
}

// ComputeCost estimates the charge for a single request. The result is
// nil only when both resolved prices are unknown; a model priced on a
// single axis bills the unpriced axis at zero. cacheDiscount is the
// fraction of the input price billed for cached tokens; callers clamp
// it to [0, 1] before passing it in.
func ComputeCost(usage TokenUsage, m NormalizedModel, mode PricingMode, cacheDiscount float64) *float64 {
	input, output := ResolvePrices(m, mode)
	if input == nil && output == nil {
		return nil
	}

	var cost float64
	if input != nil {
		cost += float64(usage.InputTokens) / 1e6 * *input
		cost += float64(usage.CachedTokens) / 1e6 * *input * cacheDiscount
	}
	if output != nil {
		cost += float64(usage.OutputTokens) / 1e6 * *output
	}
	return &cost
}

// MonthlyCost projects a per-request cost to a 30-day month at the
// given request rate. A nil per-request cost stays nil; a non-positive
// rate means zero requests and therefore a zero projection.
func MonthlyCost(perRequest *float64, rate float64, period RatePeriod) *float64 {
	if perRequest == nil {
		return nil
	}
	requests := 0.0
	if rate > 0 {
		switch period {
		case PerMinute:
			requests = rate * 60 * 24 * 30
		default:
			requests = rate * 30
		}
	}
	monthly := *perRequest * requests
	return &monthly
}
