package agrimart

import (
	"context"
	"fmt"

	domcatalog "github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	"github.com/agrimart-cloud/agrimart/internal/domain/search/query"
	"github.com/agrimart-cloud/agrimart/internal/domain/search/sortmode"
	searchuc "github.com/agrimart-cloud/agrimart/internal/usecase/search"
)

// Sort orders for search results. With free text present, relevance
// always ranks first and the selected order breaks ties.
const (
	SortDefault      = string(sortmode.None)
	SortPriceLowHigh = string(sortmode.PriceLowHigh)
	SortPriceHighLow = string(sortmode.PriceHighLow)
	SortRating       = string(sortmode.Rating)
	SortPopular      = string(sortmode.Popular)
)

// SearchBuilder is a fluent builder for catalog searches.
type SearchBuilder struct {
	svc           *searchuc.Service
	displayRating float64

	freeText string
	sortBy   string

	cropType  string
	soilType  string
	shopID    string
	purpose   string
	category  string
	brandType string

	minPrice *float64
	maxPrice *float64
}

// Query sets the free-text search input.
func (b *SearchBuilder) Query(text string) *SearchBuilder {
	b.freeText = text
	return b
}

// Crop keeps only items suited to the given crop.
func (b *SearchBuilder) Crop(cropType string) *SearchBuilder {
	b.cropType = cropType
	return b
}

// Soil keeps only items suited to the given soil type.
func (b *SearchBuilder) Soil(soilType string) *SearchBuilder {
	b.soilType = soilType
	return b
}

// Shop keeps only items from the given shop.
func (b *SearchBuilder) Shop(shopID string) *SearchBuilder {
	b.shopID = shopID
	return b
}

// Purpose sets the purpose constraint.
func (b *SearchBuilder) Purpose(purpose string) *SearchBuilder {
	b.purpose = purpose
	return b
}

// Category keeps only items in the given category.
func (b *SearchBuilder) Category(category string) *SearchBuilder {
	b.category = category
	return b
}

// Brand sets the brand-type constraint.
func (b *SearchBuilder) Brand(brandType string) *SearchBuilder {
	b.brandType = brandType
	return b
}

// MinPrice keeps only items at or above the given price.
func (b *SearchBuilder) MinPrice(p float64) *SearchBuilder {
	b.minPrice = &p
	return b
}

// MaxPrice keeps only items at or below the given price.
func (b *SearchBuilder) MaxPrice(p float64) *SearchBuilder {
	b.maxPrice = &p
	return b
}

// SortBy sets the result order. Use the Sort* constants.
func (b *SearchBuilder) SortBy(mode string) *SearchBuilder {
	b.sortBy = mode
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) ([]Item, error) {
	filters, err := query.NewFilters(
		b.cropType, b.purpose, b.category, b.brandType,
		b.minPrice, b.maxPrice,
		sortmode.Mode(b.sortBy),
	)
	if err != nil {
		return nil, fmt.Errorf("agrimart: %w", err)
	}
	q, err := query.New(b.freeText, filters)
	if err != nil {
		return nil, fmt.Errorf("agrimart: %w", err)
	}

	pf := domcatalog.Prefilter{
		CropType: b.cropType,
		SoilType: b.soilType,
		ShopID:   b.shopID,
	}
	items, err := b.svc.Search(ctx, q, pf)
	if err != nil {
		return nil, err
	}
	return itemsFromDomain(items, b.displayRating), nil
}
