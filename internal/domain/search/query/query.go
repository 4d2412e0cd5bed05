package query

import (
	"fmt"

	"github.com/agrimart-cloud/agrimart/internal/domain/search/sortmode"
)

// MaxFreeTextLength is the maximum allowed free-text query length.
const MaxFreeTextLength = 512

// Filters is the structural filter configuration of a browse view.
// Empty string / nil fields mean no constraint.
type Filters struct {
	cropType  string
	purpose   string
	category  string
	brandType string
	minPrice  *float64
	maxPrice  *float64
	sortBy    sortmode.Mode
}

// NewFilters validates and creates a filter set.
func NewFilters(
	cropType, purpose, category, brandType string,
	minPrice, maxPrice *float64,
	sortBy sortmode.Mode,
) (Filters, error) {
	if !sortBy.IsValid() {
		return Filters{}, fmt.Errorf("invalid sort mode: %q", sortBy)
	}
	if minPrice != nil && *minPrice < 0 {
		return Filters{}, fmt.Errorf("min_price must be non-negative")
	}
	if maxPrice != nil && *maxPrice < 0 {
		return Filters{}, fmt.Errorf("max_price must be non-negative")
	}
	return Filters{
		cropType:  cropType,
		purpose:   purpose,
		category:  category,
		brandType: brandType,
		minPrice:  minPrice,
		maxPrice:  maxPrice,
		sortBy:    sortBy,
	}, nil
}

// CropType returns the crop constraint, empty when unset.
func (f Filters) CropType() string { return f.cropType }

// Purpose returns the purpose constraint, empty when unset.
// There is no defined mapping from item attributes to purposes yet, so
// filtering code treats it as always passing.
func (f Filters) Purpose() string { return f.purpose }

// Category returns the category constraint, empty when unset.
func (f Filters) Category() string { return f.category }

// BrandType returns the brand constraint, empty when unset.
// Like Purpose, it has no defined item-attribute mapping and always passes.
func (f Filters) BrandType() string { return f.brandType }

// MinPrice returns the lower price bound and whether one is set.
func (f Filters) MinPrice() (float64, bool) {
	if f.minPrice == nil {
		return 0, false
	}
	return *f.minPrice, true
}

// MaxPrice returns the upper price bound and whether one is set.
func (f Filters) MaxPrice() (float64, bool) {
	if f.maxPrice == nil {
		return 0, false
	}
	return *f.maxPrice, true
}

// SortBy returns the selected sort mode.
func (f Filters) SortBy() sortmode.Mode { return f.sortBy }

// Query is a validated browse query: free text plus structural filters.
type Query struct {
	freeText string
	filters  Filters
}

// New validates and creates a Query. freeText may be empty.
func New(freeText string, filters Filters) (Query, error) {
	if len(freeText) > MaxFreeTextLength {
		return Query{}, fmt.Errorf("query too long (max %d chars)", MaxFreeTextLength)
	}
	return Query{freeText: freeText, filters: filters}, nil
}

// FreeText returns the raw search text as entered.
func (q Query) FreeText() string { return q.freeText }

// Filters returns the structural filter configuration.
func (q Query) Filters() Filters { return q.filters }
