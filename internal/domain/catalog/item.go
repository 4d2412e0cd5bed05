package catalog

import (
	"fmt"

	"github.com/agrimart-cloud/agrimart/internal/domain"
)

// MaxNameLength is the maximum allowed item name length.
const MaxNameLength = 256

// Item is a single catalog listing: a fertilizer or crop-care product
// offered by a shop. Listings arrive from the store with optional fields;
// the getters apply defaults so downstream code never branches on missing
// data (price/quantity/popularity default to 0, tag lists to empty).
// Rating is the one field where "absent" is distinct from zero.
type Item struct {
	id            string
	name          string
	shopID        string
	shopName      string
	description   string
	imageURL      string
	nutrients     []string
	suitableCrops []string
	suitableSoil  []string
	price         float64
	quantity      int
	rating        *float64
	popularity    float64
	category      string
	brandType     string
	createdAt     int64
}

// Attrs holds the writable attributes of an item.
type Attrs struct {
	Name          string
	ShopID        string
	ShopName      string
	Description   string
	ImageURL      string
	Nutrients     []string
	SuitableCrops []string
	SuitableSoil  []string
	Price         float64
	Quantity      int
	Rating        *float64
	Popularity    float64
	Category      string
	BrandType     string
	CreatedAt     int64
}

// New validates and creates an Item.
func New(id string, a Attrs) (Item, error) {
	if id == "" {
		return Item{}, fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
	}
	if a.Name == "" {
		return Item{}, fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
	}
	if len(a.Name) > MaxNameLength {
		return Item{}, fmt.Errorf("%w: item name too long (max %d chars)", domain.ErrInvalidInput, MaxNameLength)
	}
	if a.Price < 0 {
		return Item{}, fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidInput)
	}
	if a.Quantity < 0 {
		return Item{}, fmt.Errorf("%w: quantity must be non-negative", domain.ErrInvalidInput)
	}
	if a.Rating != nil && (*a.Rating < 0 || *a.Rating > 5) {
		return Item{}, fmt.Errorf("%w: rating must be between 0 and 5", domain.ErrInvalidInput)
	}
	return Reconstruct(id, a), nil
}

// Reconstruct builds an Item from stored data without validation.
// Repositories use it when reading documents back from the store.
func Reconstruct(id string, a Attrs) Item {
	return Item{
		id:            id,
		name:          a.Name,
		shopID:        a.ShopID,
		shopName:      a.ShopName,
		description:   a.Description,
		imageURL:      a.ImageURL,
		nutrients:     a.Nutrients,
		suitableCrops: a.SuitableCrops,
		suitableSoil:  a.SuitableSoil,
		price:         a.Price,
		quantity:      a.Quantity,
		rating:        a.Rating,
		popularity:    a.Popularity,
		category:      a.Category,
		brandType:     a.BrandType,
		createdAt:     a.CreatedAt,
	}
}

// ID returns the unique item identifier.
func (i Item) ID() string { return i.id }

// Name returns the display name.
func (i Item) Name() string { return i.name }

// ShopID returns the owning shop identifier.
func (i Item) ShopID() string { return i.shopID }

// ShopName returns the listing shop name, empty when unknown.
func (i Item) ShopName() string { return i.shopName }

// Description returns the free-text description, empty when absent.
func (i Item) Description() string { return i.description }

// ImageURL returns the product image URL, empty when absent.
func (i Item) ImageURL() string { return i.imageURL }

// Nutrients returns the nutrient tags. Callers must not mutate the slice.
func (i Item) Nutrients() []string { return i.nutrients }

// SuitableCrops returns the crop suitability tags.
func (i Item) SuitableCrops() []string { return i.suitableCrops }

// SuitableSoil returns the soil suitability tags.
func (i Item) SuitableSoil() []string { return i.suitableSoil }

// Price returns the unit price, 0 when absent.
func (i Item) Price() float64 { return i.price }

// Quantity returns the remaining stock, 0 when absent.
func (i Item) Quantity() int { return i.quantity }

// Rating returns the shop rating and whether one has been recorded.
func (i Item) Rating() (float64, bool) {
	if i.rating == nil {
		return 0, false
	}
	return *i.rating, true
}

// RatingOr returns the rating, or def when none has been recorded.
// Display and sort paths use different defaults (see config).
func (i Item) RatingOr(def float64) float64 {
	if i.rating == nil {
		return def
	}
	return *i.rating
}

// Popularity returns the popularity counter, 0 when absent.
func (i Item) Popularity() float64 { return i.popularity }

// Category returns the classification string, empty when absent.
func (i Item) Category() string { return i.category }

// BrandType returns the branded/non-branded flag, empty when absent.
func (i Item) BrandType() string { return i.brandType }

// CreatedAt returns the creation time in unix milliseconds.
func (i Item) CreatedAt() int64 { return i.createdAt }

// WithQuantity returns a copy of the item with the stock level replaced.
func (i Item) WithQuantity(q int) (Item, error) {
	if q < 0 {
		return Item{}, fmt.Errorf("%w: quantity must be non-negative", domain.ErrInvalidInput)
	}
	out := i
	out.quantity = q
	return out, nil
}

// Prefilter is the coarse server-side predicate pushed to the catalog
// store before the in-memory ranking pass. Empty fields mean no constraint.
type Prefilter struct {
	CropType string
	SoilType string
	ShopID   string
}
