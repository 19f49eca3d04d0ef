package core

import "testing"

func queryModel(provider, id string, in, out *float64) NormalizedModel {
	return NormalizedModel{
		Provider:            provider,
		ModelID:             id,
		ModelName:           id,
		Availability:        "public",
		StandardInputPrice:  in,
		StandardOutputPrice: out,
		Currency:            "USD",
		IdentityKey:         provider + "::" + id,
	}
}

func keys(models []NormalizedModel) []string {
	out := make([]string, len(models))
	for i, m := range models {
		out[i] = m.IdentityKey
	}
	return out
}

func sameKeys(t *testing.T, got []NormalizedModel, want []string) {
	t.Helper()
	gotKeys := keys(got)
	if len(gotKeys) != len(want) {
		t.Fatalf("row keys = %v, want %v", gotKeys, want)
	}
	for i := range want {
		if gotKeys[i] != want[i] {
			t.Fatalf("row keys = %v, want %v", gotKeys, want)
		}
	}
}

func TestQueryExcludesFilteredRows(t *testing.T) {
	catalog := BuildCatalog([]SourceResult{{
		SourceID: "s",
		Records: []RawPriceRecord{
			pricedRecord("openai", "gpt-4o", 2.5, 10),
			pricedRecord("openai", "text-embedding-3", 0.02, 0),
		},
	}})

	got := Query(catalog, QueryOptions{})
	sameKeys(t, got, []string{"openai::gpt-4o"})

	got = Query(catalog, QueryOptions{SearchText: "embedding"})
	if len(got) != 0 {
		t.Errorf("excluded rows must never match a search: got %v", keys(got))
	}
}

func TestQueryTextFilter(t *testing.T) {
	catalog := Catalog{
		queryModel("openai", "gpt-4o", float64Ptr(2.5), float64Ptr(10)),
		queryModel("anthropic", "claude-sonnet", float64Ptr(3), float64Ptr(15)),
	}
	catalog[0].ContextLength = int64Ptr(128000)

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"empty search keeps all", "", []string{"openai::gpt-4o", "anthropic::claude-sonnet"}},
		{"case insensitive", "GPT", []string{"openai::gpt-4o"}},
		{"matches provider", "anthro", []string{"anthropic::claude-sonnet"}},
		{"matches context length", "128000", []string{"openai::gpt-4o"}},
		{"substring not tokenized", "aude-son", []string{"anthropic::claude-sonnet"}},
		{"no match", "mistral", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(catalog, QueryOptions{SearchText: tt.search})
			sameKeys(t, got, tt.want)
		})
	}
}

func TestQuerySortByProvider(t *testing.T) {
	catalog := Catalog{
		queryModel("zeta", "m1", nil, nil),
		queryModel("alpha", "m2", nil, nil),
		queryModel("midway", "m3", nil, nil),
	}

	asc := Query(catalog, QueryOptions{SortKey: SortProvider})
	sameKeys(t, asc, []string{"alpha::m2", "midway::m3", "zeta::m1"})

	desc := Query(catalog, QueryOptions{SortKey: SortProvider, SortDesc: true})
	sameKeys(t, desc, []string{"zeta::m1", "midway::m3", "alpha::m2"})
}

func TestQuerySortStringsCaseSensitive(t *testing.T) {
	catalog := Catalog{
		queryModel("alpha", "m1", nil, nil),
		queryModel("Beta", "m2", nil, nil),
	}

	got := Query(catalog, QueryOptions{SortKey: SortProvider})
	sameKeys(t, got, []string{"Beta::m2", "alpha::m1"})
}

func TestQuerySortContextNilLast(t *testing.T) {
	big := queryModel("p", "big", nil, nil)
	big.ContextLength = int64Ptr(200000)
	small := queryModel("p", "small", nil, nil)
	small.ContextLength = int64Ptr(8000)
	unknown := queryModel("p", "unknown", nil, nil)

	catalog := Catalog{big, unknown, small}

	asc := Query(catalog, QueryOptions{SortKey: SortContext})
	sameKeys(t, asc, []string{"p::small", "p::big", "p::unknown"})

	desc := Query(catalog, QueryOptions{SortKey: SortContext, SortDesc: true})
	sameKeys(t, desc, []string{"p::big", "p::small", "p::unknown"})
}

func TestQuerySortDerivedCostNilLast(t *testing.T) {
	catalog := Catalog{
		queryModel("p", "unpriced", nil, nil),
		queryModel("p", "cheap", float64Ptr(1), float64Ptr(1)),
		queryModel("p", "pricey", float64Ptr(10), float64Ptr(10)),
	}
	opts := QueryOptions{
		SortKey: SortCost,
		Mode:    ModeStandard,
		Usage:   TokenUsage{InputTokens: 1000, OutputTokens: 500},
	}

	asc := Query(catalog, opts)
	sameKeys(t, asc, []string{"p::cheap", "p::pricey", "p::unpriced"})

	opts.SortDesc = true
	desc := Query(catalog, opts)
	sameKeys(t, desc, []string{"p::pricey", "p::cheap", "p::unpriced"})
}

func TestQuerySortStableOnTies(t *testing.T) {
	catalog := Catalog{
		queryModel("p", "first", float64Ptr(2), float64Ptr(2)),
		queryModel("p", "second", float64Ptr(2), float64Ptr(2)),
		queryModel("p", "third", float64Ptr(2), float64Ptr(2)),
	}
	opts := QueryOptions{SortKey: SortCost, Usage: TokenUsage{InputTokens: 100}}

	for _, desc := range []bool{false, true} {
		opts.SortDesc = desc
		got := Query(catalog, opts)
		sameKeys(t, got, []string{"p::first", "p::second", "p::third"})
	}
}

func TestQuerySortInputUsesResolvedPrice(t *testing.T) {
	batchy := queryModel("p", "batchy", float64Ptr(10), nil)
	batchy.BatchInputPrice = float64Ptr(0.5)
	plain := queryModel("p", "plain", float64Ptr(2), nil)

	catalog := Catalog{batchy, plain}

	std := Query(catalog, QueryOptions{SortKey: SortInput, Mode: ModeStandard})
	sameKeys(t, std, []string{"p::plain", "p::batchy"})

	batch := Query(catalog, QueryOptions{SortKey: SortInput, Mode: ModeBatch})
	sameKeys(t, batch, []string{"p::batchy", "p::plain"})
}

func TestQuerySortMonthlyFollowsCost(t *testing.T) {
	catalog := Catalog{
		queryModel("p", "pricey", float64Ptr(10), float64Ptr(10)),
		queryModel("p", "cheap", float64Ptr(1), float64Ptr(1)),
	}
	opts := QueryOptions{
		SortKey:    SortMonthly,
		Usage:      TokenUsage{InputTokens: 1000},
		Rate:       100,
		RatePeriod: PerDay,
	}

	got := Query(catalog, opts)
	sameKeys(t, got, []string{"p::cheap", "p::pricey"})
}

func TestQueryTopNKeepsCheapestInDisplayOrder(t *testing.T) {
	catalog := Catalog{
		queryModel("p", "delta", float64Ptr(5), float64Ptr(5)),
		queryModel("p", "alpha", float64Ptr(1), float64Ptr(1)),
		queryModel("p", "charlie", float64Ptr(3), float64Ptr(3)),
		queryModel("p", "bravo", nil, nil),
	}
	opts := QueryOptions{
		SortKey:  SortModel,
		SortDesc: true,
		Usage:    TokenUsage{InputTokens: 1_000_000},
		TopN:     2,
	}

	got := Query(catalog, opts)
	sameKeys(t, got, []string{"p::charlie", "p::alpha"})
}

func TestQueryTopNLargerThanRowSet(t *testing.T) {
	catalog := Catalog{
		queryModel("p", "a", float64Ptr(1), nil),
		queryModel("p", "b", nil, nil),
	}

	got := Query(catalog, QueryOptions{TopN: 10, Usage: TokenUsage{InputTokens: 100}})
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestQueryLeavesCatalogOrderIntact(t *testing.T) {
	catalog := Catalog{
		queryModel("z", "m", float64Ptr(9), nil),
		queryModel("a", "m", float64Ptr(1), nil),
	}

	Query(catalog, QueryOptions{SortKey: SortProvider})
	if catalog[0].Provider != "z" || catalog[1].Provider != "a" {
		t.Errorf("catalog order changed: %v", keys(catalog))
	}
}
