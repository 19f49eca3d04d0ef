package core

import "strings"

// ExcludeFunc reports whether a model belongs to a category the
// explorer never displays. The Query pipeline applies it before any
// user-controlled filtering.
type ExcludeFunc func(NormalizedModel) bool

// Category tokens matched as substrings: ids and names are free text
// and provider catalogs spell categories inconsistently.
var excludedTokens = []string{"audio", "embedding"}

// CategoryExcluded is the default ExcludeFunc. It flags audio- and
// embedding-only models by case-insensitive substring match against
// both the model id and the model name.
func CategoryExcluded(m NormalizedModel) bool {
	id := strings.ToLower(m.ModelID)
	name := strings.ToLower(m.ModelName)
	for _, tok := range excludedTokens {
		if strings.Contains(id, tok) || strings.Contains(name, tok) {
			return true
		}
	}
	return false
}
