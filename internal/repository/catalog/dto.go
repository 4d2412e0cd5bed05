package catalog

import (
	"encoding/json"
	"strings"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	"github.com/agrimart-cloud/agrimart/internal/domain/search/rank"
)

// itemDoc is the stored JSON shape of a catalog item. Fields mirror the
// upstream listing documents, which are hand-entered by shopkeepers:
// numerics may arrive as strings or be missing entirely, so reads go
// through fromRaw rather than strict unmarshalling.
type itemDoc struct {
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
	Rating        *float64 `json:"rating,omitempty"`
	Popularity    float64  `json:"popularity,omitempty"`
	Category      string   `json:"category,omitempty"`
	BrandType     string   `json:"brandType,omitempty"`
	CreatedAt     int64    `json:"createdAt,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}

func toDoc(it catalog.Item) itemDoc {
	var rating *float64
	if r, ok := it.Rating(); ok {
		v := r
		rating = &v
	}
	return itemDoc{
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
		Popularity:    it.Popularity(),
		Category:      it.Category(),
		BrandType:     it.BrandType(),
		CreatedAt:     it.CreatedAt(),
		Keywords:      deriveKeywords(it),
	}
}

// deriveKeywords builds the lookup terms stored alongside each item:
// the full lowercased name, its individual tokens, and nutrient tags.
func deriveKeywords(it catalog.Item) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(term string) {
		term = rank.Normalize(term)
		if term == "" {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}

	add(it.Name())
	for _, tok := range strings.Fields(it.Name()) {
		add(tok)
	}
	for _, n := range it.Nutrients() {
		add(n)
	}
	return out
}

// fromRaw decodes a stored document leniently. Malformed numeric fields
// fall back to zero values instead of failing the whole listing.
func fromRaw(data []byte) (catalog.Item, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return catalog.Item{}, err
	}

	a := catalog.Attrs{
		Name:          asString(m["name"]),
		ShopID:        asString(m["shopId"]),
		ShopName:      asString(m["shopName"]),
		Description:   asString(m["description"]),
		ImageURL:      asString(m["imageUrl"]),
		Nutrients:     asStringSlice(m["nutrients"]),
		SuitableCrops: asStringSlice(m["suitableCrops"]),
		SuitableSoil:  asStringSlice(m["suitableSoil"]),
		Price:         asFloat(m["price"]),
		Quantity:      asInt(m["quantity"]),
		Rating:        asFloatPtr(m["rating"]),
		Popularity:    asFloat(m["popularity"]),
		Category:      asString(m["category"]),
		BrandType:     asString(m["brandType"]),
		CreatedAt:     int64(asFloat(m["createdAt"])),
	}
	return catalog.Reconstruct(asString(m["id"]), a), nil
}

func asString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func asFloat(raw json.RawMessage) float64 {
	if raw == nil {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	// Shopkeeper-entered docs sometimes carry numerics as strings.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var v float64
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	return 0
}

func asFloatPtr(raw json.RawMessage) *float64 {
	if raw == nil {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}

func asInt(raw json.RawMessage) int {
	return int(asFloat(raw))
}

func asStringSlice(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
