package rank

import (
	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	"github.com/agrimart-cloud/agrimart/internal/domain/search/query"
)

// passesFilters reports whether an item survives every active structural
// constraint. An active free-text search additionally gates on a positive
// relevance score; with no search text every item passes that gate.
func passesFilters(it catalog.Item, score int, hasQuery bool, f query.Filters) bool {
	if hasQuery && score == 0 {
		return false
	}

	if f.CropType() != "" && !containsTag(it.SuitableCrops(), f.CropType()) {
		return false
	}

	// Purpose and brand-type filters have no defined mapping to item
	// attributes yet and always pass.

	if f.Category() != "" && Normalize(it.Category()) != Normalize(f.Category()) {
		return false
	}

	if min, ok := f.MinPrice(); ok && it.Price() < min {
		return false
	}
	if max, ok := f.MaxPrice(); ok && it.Price() > max {
		return false
	}

	return true
}
