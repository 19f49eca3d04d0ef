package core

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// SortKey selects the column a query orders by. Cost and monthly are
// derived keys: computed per record from the query's usage, mode, and
// discount rather than read from a stored field.
type SortKey string

const (
	SortProvider SortKey = "provider"
	SortModel    SortKey = "model"
	SortContext  SortKey = "context"
	SortInput    SortKey = "input"
	SortOutput   SortKey = "output"
	SortCost     SortKey = "cost"
	SortMonthly  SortKey = "monthly"
)

// QueryOptions drive one evaluation of the visible row set.
type QueryOptions struct {
	SearchText    string
	SortKey       SortKey
	SortDesc      bool
	Mode          PricingMode
	Usage         TokenUsage
	CacheDiscount float64
	Rate          float64
	RatePeriod    RatePeriod
	TopN          int // 0 means unbounded
}

// Query runs the fixed pipeline over a catalog: category exclusion,
// text filter, sort, then an optional cheapest-N cut. The result is a
// fresh slice; the catalog itself is never reordered.
func Query(catalog Catalog, opts QueryOptions) []NormalizedModel {
	visible := lo.Filter(catalog, func(m NormalizedModel, _ int) bool {
		return !m.Filtered
	})

	if needle := strings.ToLower(opts.SearchText); needle != "" {
		visible = lo.Filter(visible, func(m NormalizedModel, _ int) bool {
			return matchesSearch(m, needle)
		})
	}

	sortModels(visible, opts)

	if opts.TopN > 0 {
		visible = cheapestN(visible, opts)
	}
	return visible
}

// matchesSearch is a plain case-insensitive substring test over the
// record's text fields, not a tokenized match.
func matchesSearch(m NormalizedModel, needle string) bool {
	hay := m.Provider + " " + m.ModelName + " " + m.ModelID
	if m.ContextLength != nil {
		hay += " " + strconv.FormatInt(*m.ContextLength, 10)
	}
	return strings.Contains(strings.ToLower(hay), needle)
}

func sortModels(models []NormalizedModel, opts QueryOptions) {
	if opts.SortKey == "" {
		return
	}
	// Stable so that equal keys keep catalog order as the tiebreak.
	sort.SliceStable(models, func(i, j int) bool {
		return compareModels(models[i], models[j], opts) < 0
	})
}

func compareModels(a, b NormalizedModel, opts QueryOptions) int {
	switch opts.SortKey {
	case SortProvider:
		return compareStrings(a.Provider, b.Provider, opts.SortDesc)
	case SortModel:
		return compareStrings(a.ModelName, b.ModelName, opts.SortDesc)
	case SortContext:
		return compareNullable(intToFloat(a.ContextLength), intToFloat(b.ContextLength), opts.SortDesc)
	case SortInput:
		ai, _ := ResolvePrices(a, opts.Mode)
		bi, _ := ResolvePrices(b, opts.Mode)
		return compareNullable(ai, bi, opts.SortDesc)
	case SortOutput:
		_, ao := ResolvePrices(a, opts.Mode)
		_, bo := ResolvePrices(b, opts.Mode)
		return compareNullable(ao, bo, opts.SortDesc)
	case SortCost:
		return compareNullable(requestCost(a, opts), requestCost(b, opts), opts.SortDesc)
	case SortMonthly:
		return compareNullable(monthlyCost(a, opts), monthlyCost(b, opts), opts.SortDesc)
	default:
		return 0
	}
}

func requestCost(m NormalizedModel, opts QueryOptions) *float64 {
	return ComputeCost(opts.Usage, m, opts.Mode, opts.CacheDiscount)
}

func monthlyCost(m NormalizedModel, opts QueryOptions) *float64 {
	return MonthlyCost(requestCost(m, opts), opts.Rate, opts.RatePeriod)
}

// compareNullable orders two nullable numbers. nil sorts after every
// numeric value in either direction; only numeric values flip under
// descending order.
func compareNullable(a, b *float64, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a == *b:
		return 0
	}
	less := *a < *b
	if desc {
		less = !less
	}
	if less {
		return -1
	}
	return 1
}

func compareStrings(a, b string, desc bool) int {
	c := strings.Compare(a, b)
	if desc {
		c = -c
	}
	return c
}

func intToFloat(n *int64) *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}

// cheapestN keeps the n cheapest records under the current mode and
// usage. The selection sorts a copy by ascending cost; the survivors
// stay in the caller's display order.
func cheapestN(visible []NormalizedModel, opts QueryOptions) []NormalizedModel {
	if len(visible) <= opts.TopN {
		return visible
	}

	byCost := make([]NormalizedModel, len(visible))
	copy(byCost, visible)
	sort.SliceStable(byCost, func(i, j int) bool {
		return compareNullable(requestCost(byCost[i], opts), requestCost(byCost[j], opts), false) < 0
	})

	keep := make(map[string]struct{}, opts.TopN)
	for _, m := range byCost[:opts.TopN] {
		keep[m.IdentityKey] = struct{}{}
	}
	return lo.Filter(visible, func(m NormalizedModel, _ int) bool {
		_, ok := keep[m.IdentityKey]
		return ok
	})
}
