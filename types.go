package agrimart

import (
	domcatalog "github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	domorder "github.com/agrimart-cloud/agrimart/internal/domain/order"
)

// Item is a public catalog listing. Rating is nil when the shop has none
// recorded; DisplayRating carries the configured default in that case.
type Item struct {
	ID            string
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
	DisplayRating float64
	Popularity    float64
	Category      string
	BrandType     string
	CreatedAt     int64
}

// ItemAttrs carries the writable attributes for creating or updating a
// listing.
type ItemAttrs struct {
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
}

// OrderLine is one product of an order with its captured price.
type OrderLine struct {
	ItemID   string
	Name     string
	Price    float64
	Quantity int
}

// Order is a public order view.
type Order struct {
	ID             string
	FarmerID       string
	FarmerName     string
	FarmerLocation string
	ShopID         string
	ShopName       string
	Lines          []OrderLine
	Status         string
	Total          float64
	CreatedAt      int64
}

// CartLine is a requested product in a new order.
type CartLine struct {
	ItemID   string
	Quantity int
}

func itemFromDomain(it domcatalog.Item, displayDefault float64) Item {
	var rating *float64
	if r, ok := it.Rating(); ok {
		v := r
		rating = &v
	}
	return Item{
		ID:            it.ID(),
		Name:          it.Name(),
		ShopID:        it.ShopID(),
		ShopName:      it.ShopName(),
		Description:   it.Description(),
		ImageURL:      it.ImageURL(),
		Nutrients:     it.Nutrients(),
		SuitableCrops: it.SuitableCrops(),
		SuitableSoil:  it.SuitableSoil(),
		Price:         it.Price(),
		Quantity:      it.Quantity(),
		Rating:        rating,
		DisplayRating: it.RatingOr(displayDefault),
		Popularity:    it.Popularity(),
		Category:      it.Category(),
		BrandType:     it.BrandType(),
		CreatedAt:     it.CreatedAt(),
	}
}

func itemsFromDomain(items []domcatalog.Item, displayDefault float64) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = itemFromDomain(it, displayDefault)
	}
	return out
}

func attrsToDomain(a ItemAttrs) domcatalog.Attrs {
	return domcatalog.Attrs{
		Name:          a.Name,
		ShopID:        a.ShopID,
		ShopName:      a.ShopName,
		Description:   a.Description,
		ImageURL:      a.ImageURL,
		Nutrients:     a.Nutrients,
		SuitableCrops: a.SuitableCrops,
		SuitableSoil:  a.SuitableSoil,
		Price:         a.Price,
		Quantity:      a.Quantity,
		Rating:        a.Rating,
		Popularity:    a.Popularity,
		Category:      a.Category,
		BrandType:     a.BrandType,
	}
}

func orderFromDomain(o domorder.Order) Order {
	lines := make([]OrderLine, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, OrderLine{
			ItemID:   l.ItemID(),
			Name:     l.Name(),
			Price:    l.Price(),
			Quantity: l.Quantity(),
		})
	}
	return Order{
		ID:             o.ID(),
		FarmerID:       o.FarmerID(),
		FarmerName:     o.FarmerName(),
		FarmerLocation: o.FarmerLocation(),
		ShopID:         o.ShopID(),
		ShopName:       o.ShopName(),
		Lines:          lines,
		Status:         string(o.Status()),
		Total:          o.Total(),
		CreatedAt:      o.CreatedAt(),
	}
}

func ordersFromDomain(orders []domorder.Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = orderFromDomain(o)
	}
	return out
}
