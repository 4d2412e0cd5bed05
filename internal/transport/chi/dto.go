package chi

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	"github.com/agrimart-cloud/agrimart/internal/domain/order"
	"github.com/agrimart-cloud/agrimart/internal/domain/search/query"
	"github.com/agrimart-cloud/agrimart/internal/domain/search/sortmode"
)

// errorResponse is the wire shape of every error reply.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error response codes.
const (
	codeBadRequest             = "bad_request"
	codeValidationFailed       = "validation_failed"
	codeNotFound               = "not_found"
	codeItemNotFound           = "item_not_found"
	codeOrderNotFound          = "order_not_found"
	codeAlreadyExists          = "already_exists"
	codeInsufficientStock      = "insufficient_stock"
	codeStatusConflict         = "status_conflict"
	codeAssistantDisabled      = "assistant_disabled"
	codeAssistantProviderError = "assistant_provider_error"
	codeInternalError          = "internal_error"
)

// itemResponse is the wire shape of a catalog item. Rating always carries
// a value: listings without one show the display default.
type itemResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ShopID        string   `json:"shopId,omitempty"`
	ShopName      string   `json:"shopName,omitempty"`
	Description   string   `json:"description,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Nutrients     []string `json:"nutrients,omitempty"`
	SuitableCrops []string `json:"suitableCrops,omitempty"`
	SuitableSoil  []string `json:"suitableSoil,omitempty"`
	Price         float64  `json:"price"`
	Quantity      int      `json:"quantity"`
	Rating        float64  `json:"rating"`
	Popularity    float64  `json:"popularity,omitempty"`
	Category      string   `json:"category,omitempty"`
	BrandType     string   `json:"brandType,omitempty"`
	CreatedAt     int64    `json:"createdAt,omitempty"`
}

func itemToDTO(it catalog.Item, displayDefaultRating float64) itemResponse {
	return itemResponse{
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
		Rating:        it.RatingOr(displayDefaultRating),
		Popularity:    it.Popularity(),
		Category:      it.Category(),
		BrandType:     it.BrandType(),
		CreatedAt:     it.CreatedAt(),
	}
}

func itemsToDTO(items []catalog.Item, displayDefaultRating float64) []itemResponse {
	out := make([]itemResponse, len(items))
	for i, it := range items {
		out[i] = itemToDTO(it, displayDefaultRating)
	}
	return out
}

// itemRequest is the wire shape of a create/update listing body.
type itemRequest struct {
	Name          string   `json:"name"`
	ShopID        string   `json:"shopId"`
	ShopName      string   `json:"shopName"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"imageUrl"`
	Nutrients     []string `json:"nutrients"`
	SuitableCrops []string `json:"suitableCrops"`
	SuitableSoil  []string `json:"suitableSoil"`
	Price         float64  `json:"price"`
	Quantity      int      `json:"quantity"`
	Rating        *float64 `json:"rating"`
	Popularity    float64  `json:"popularity"`
	Category      string   `json:"category"`
	BrandType     string   `json:"brandType"`
}

func (r itemRequest) attrs() catalog.Attrs {
	return catalog.Attrs{
		Name:          r.Name,
		ShopID:        r.ShopID,
		ShopName:      r.ShopName,
		Description:   r.Description,
		ImageURL:      r.ImageURL,
		Nutrients:     r.Nutrients,
		SuitableCrops: r.SuitableCrops,
		SuitableSoil:  r.SuitableSoil,
		Price:         r.Price,
		Quantity:      r.Quantity,
		Rating:        r.Rating,
		Popularity:    r.Popularity,
		Category:      r.Category,
		BrandType:     r.BrandType,
	}
}

type orderLineResponse struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type orderResponse struct {
	ID             string              `json:"id"`
	FarmerID       string              `json:"farmerId"`
	FarmerName     string              `json:"farmerName,omitempty"`
	FarmerLocation string              `json:"farmerLocation,omitempty"`
	ShopID         string              `json:"shopId,omitempty"`
	ShopName       string              `json:"shopName,omitempty"`
	Items          []orderLineResponse `json:"items"`
	Status         string              `json:"status"`
	TotalAmount    float64             `json:"totalAmount"`
	CreatedAt      int64               `json:"createdAt"`
}

func orderToDTO(o order.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, orderLineResponse{
			ItemID:   l.ItemID(),
			Name:     l.Name(),
			Price:    l.Price(),
			Quantity: l.Quantity(),
			Subtotal: l.Subtotal(),
		})
	}
	return orderResponse{
		ID:             o.ID(),
		FarmerID:       o.FarmerID(),
		FarmerName:     o.FarmerName(),
		FarmerLocation: o.FarmerLocation(),
		ShopID:         o.ShopID(),
		ShopName:       o.ShopName(),
		Items:          lines,
		Status:         string(o.Status()),
		TotalAmount:    o.Total(),
		CreatedAt:      o.CreatedAt(),
	}
}

func ordersToDTO(orders []order.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = orderToDTO(o)
	}
	return out
}

// parseSearchQuery builds a validated query from URL parameters.
func parseSearchQuery(params url.Values) (query.Query, error) {
	minPrice, err := parsePriceParam(params, "min_price")
	if err != nil {
		return query.Query{}, err
	}
	maxPrice, err := parsePriceParam(params, "max_price")
	if err != nil {
		return query.Query{}, err
	}

	filters, err := query.NewFilters(
		params.Get("crop_type"),
		params.Get("purpose"),
		params.Get("category"),
		params.Get("brand_type"),
		minPrice, maxPrice,
		sortmode.Mode(params.Get("sort_by")),
	)
	if err != nil {
		return query.Query{}, err
	}
	return query.New(params.Get("q"), filters)
}

// parsePrefilter reads the coarse server-side filter from URL parameters.
func parsePrefilter(params url.Values) catalog.Prefilter {
	return catalog.Prefilter{
		CropType: params.Get("crop_type"),
		SoilType: params.Get("soil_type"),
		ShopID:   params.Get("shop_id"),
	}
}

func parsePriceParam(params url.Values, name string) (*float64, error) {
	raw := params.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}
