package core

import "github.com/samber/lo"

// SourceResult is one source's contribution to a catalog build: either
// its decoded records or the error that prevented them. A failed
// source is skipped; it never aborts the build.
type SourceResult struct {
	SourceID string
	Records  []RawPriceRecord
	Err      error
}

// BuildCatalog normalizes every record from the succeeded sources, in
// source order, using the default category-exclusion rule.
func BuildCatalog(results []SourceResult) Catalog {
	return BuildCatalogWith(results, CategoryExcluded)
}

// BuildCatalogWith deduplicates by identity key: the first occurrence
// wins and later duplicates are dropped, within and across sources,
// preserving first-seen order. Zero succeeded sources yield an empty
// catalog.
func BuildCatalogWith(results []SourceResult, excluded ExcludeFunc) Catalog {
	var all []NormalizedModel
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		for _, raw := range res.Records {
			all = append(all, NormalizeWith(raw, excluded))
		}
	}
	return lo.UniqBy(all, func(m NormalizedModel) string {
		return m.IdentityKey
	})
}
