// Package rank implements the in-memory catalog ranking engine: weighted
// free-text relevance scoring, structural filtering, and stable ordering
// over a farmer's browse view. All functions are pure — they never mutate
// their inputs and are deterministic for a given (items, query) pair, so
// callers may re-invoke them on every keystroke without coordination.
package rank

import (
	"strings"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	"github.com/agrimart-cloud/agrimart/internal/domain/search/query"
)

// SortDefaultRating is the rating used for sort comparisons when an item
// has none recorded. The display default (4.2) is a separate knob — the
// two have drifted apart in the product and are kept independently
// configurable on purpose.
const SortDefaultRating = 3.0

// Options tune the ranking pass.
type Options struct {
	// SortDefaultRating substitutes for a missing rating when sorting.
	SortDefaultRating float64
}

// DefaultOptions returns the standard ranking options.
func DefaultOptions() Options {
	return Options{SortDefaultRating: SortDefaultRating}
}

// Normalize lowercases and trims text. Every comparison in this package
// runs on normalized forms, so matching is case- and whitespace-insensitive.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// scoredItem pairs an item with its transient relevance score for one
// ranking pass. Scores are never cached across calls.
type scoredItem struct {
	item  catalog.Item
	score int
}

// Rank scores, filters, and orders items for the given query.
// The result is a new slice; the input is left untouched.
func Rank(items []catalog.Item, q query.Query, opts Options) []catalog.Item {
	needle := Normalize(q.FreeText())

	scored := make([]scoredItem, 0, len(items))
	for _, it := range items {
		s := 0
		if needle != "" {
			s = scoreAgainst(it, needle)
		}
		if !passesFilters(it, s, needle != "", q.Filters()) {
			continue
		}
		scored = append(scored, scoredItem{item: it, score: s})
	}

	sortScored(scored, needle != "", q.Filters().SortBy(), opts)

	out := make([]catalog.Item, len(scored))
	for i, s := range scored {
		out[i] = s.item
	}
	return out
}

// Score computes the relevance score of a single item against free text.
// An item matches the search iff its score is positive; with empty text
// the score concept does not apply and 0 is returned.
func Score(it catalog.Item, freeText string) int {
	needle := Normalize(freeText)
	if needle == "" {
		return 0
	}
	return scoreAgainst(it, needle)
}
