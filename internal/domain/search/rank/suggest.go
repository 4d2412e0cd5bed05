package rank

import (
	"strings"
	"unicode/utf8"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
)

// Suggestion parameters.
const (
	// MinSuggestChars is the minimum normalized input length before
	// suggestions are produced; shorter input matches too noisily.
	MinSuggestChars = 2
	// DefaultSuggestLimit caps the number of returned suggestions.
	DefaultSuggestLimit = 5
)

// Suggest collects autosuggest candidates for a partial query: item names,
// shop names, nutrient tags, and crop tags whose normalized value contains
// the normalized input. Candidates are deduplicated by their original
// spelling and returned in first-encounter order, capped at limit
// (DefaultSuggestLimit when limit <= 0).
func Suggest(items []catalog.Item, partialText string, limit int) []string {
	needle := Normalize(partialText)
	if utf8.RuneCountInString(needle) < MinSuggestChars {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, limit)

	add := func(value string) {
		if len(out) >= limit {
			return
		}
		if !strings.Contains(Normalize(value), needle) {
			return
		}
		if _, dup := seen[value]; dup {
			return
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}

	for _, it := range items {
		add(it.Name())
		add(it.ShopName())
		for _, nutrient := range it.Nutrients() {
			add(nutrient)
		}
		for _, crop := range it.SuitableCrops() {
			add(crop)
		}
		if len(out) >= limit {
			break
		}
	}

	return out
}
