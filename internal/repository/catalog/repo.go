// Package catalog persists catalog items as JSON documents.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/agrimart-cloud/agrimart/internal/db"
	"github.com/agrimart-cloud/agrimart/internal/domain"
	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	"github.com/agrimart-cloud/agrimart/internal/domain/search/rank"
)

// store is the subset of database operations the repository needs.
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repository stores catalog items under {prefix}item:{id}.
type Repository struct {
	store     store
	keyPrefix string
}

// NewRepository creates a catalog repository.
func NewRepository(s store, keyPrefix string) *Repository {
	return &Repository{store: s, keyPrefix: keyPrefix}
}

func (r *Repository) key(id string) string {
	return r.keyPrefix + "item:" + id
}

// Upsert writes an item document, overwriting any previous version.
func (r *Repository) Upsert(ctx context.Context, it catalog.Item) error {
	data, err := json.Marshal(toDoc(it))
	if err != nil {
		return fmt.Errorf("marshal item %s: %w", it.ID(), err)
	}
	if err := r.store.JSONSet(ctx, r.key(it.ID()), "$", data); err != nil {
		return fmt.Errorf("store item %s: %w", it.ID(), err)
	}
	return nil
}

// Get retrieves a single item by id.
func (r *Repository) Get(ctx context.Context, id string) (catalog.Item, error) {
	data, err := r.store.JSONGet(ctx, r.key(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return catalog.Item{}, fmt.Errorf("%w: item %s", domain.ErrItemNotFound, id)
		}
		return catalog.Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	return unwrapItem(data, id)
}

// Delete removes an item. Deleting an absent item returns ErrItemNotFound.
func (r *Repository) Delete(ctx context.Context, id string) error {
	exists, err := r.store.Exists(ctx, r.key(id))
	if err != nil {
		return fmt.Errorf("check item %s: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("%w: item %s", domain.ErrItemNotFound, id)
	}
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// ListAvailable returns in-stock items matching the coarse prefilter.
// Tag matching is case-insensitive exact, mirroring the crop filter
// used at ranking time.
func (r *Repository) ListAvailable(ctx context.Context, pf catalog.Prefilter) ([]catalog.Item, error) {
	items, err := r.listAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if it.Quantity() <= 0 {
			continue
		}
		if pf.ShopID != "" && it.ShopID() != pf.ShopID {
			continue
		}
		if pf.CropType != "" && !hasTag(it.SuitableCrops(), pf.CropType) {
			continue
		}
		if pf.SoilType != "" && !hasTag(it.SuitableSoil(), pf.SoilType) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// ListByShop returns every item a shop has listed, in or out of stock.
func (r *Repository) ListByShop(ctx context.Context, shopID string) ([]catalog.Item, error) {
	items, err := r.listAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if it.ShopID() == shopID {
			out = append(out, it)
		}
	}
	return out, nil
}

// FindByKeyword returns items whose stored keyword terms contain the
// normalized keyword exactly.
func (r *Repository) FindByKeyword(ctx context.Context, keyword string) ([]catalog.Item, error) {
	needle := rank.Normalize(keyword)
	if needle == "" {
		return nil, nil
	}

	items, err := r.listAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Item, 0, 4)
	for _, it := range items {
		if matchesKeyword(it, needle) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *Repository) listAll(ctx context.Context) ([]catalog.Item, error) {
	keys, err := r.store.Scan(ctx, r.keyPrefix+"item:*")
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}

	items := make([]catalog.Item, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue // deleted between scan and get
			}
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		it, err := unwrapItem(data, strings.TrimPrefix(key, r.keyPrefix+"item:"))
		if err != nil {
			continue // skip unreadable docs rather than failing the listing
		}
		items = append(items, it)
	}
	return items, nil
}

// unwrapItem decodes a JSON.GET "$" response, which wraps the document
// in a one-element array.
func unwrapItem(data []byte, id string) (catalog.Item, error) {
	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil || len(docs) == 0 {
		// Some deployments return the bare document.
		return fromRawWithID(data, id)
	}
	return fromRawWithID(docs[0], id)
}

func fromRawWithID(data []byte, id string) (catalog.Item, error) {
	it, err := fromRaw(data)
	if err != nil {
		return catalog.Item{}, err
	}
	if it.ID() != "" {
		return it, nil
	}
	// Older documents omit the id field; fall back to the key suffix.
	return catalog.Reconstruct(id, itemAttrs(it)), nil
}

func itemAttrs(it catalog.Item) catalog.Attrs {
	var rating *float64
	if r, ok := it.Rating(); ok {
		v := r
		rating = &v
	}
	return catalog.Attrs{
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
	}
}

func hasTag(tags []string, value string) bool {
	for _, t := range tags {
		if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

func matchesKeyword(it catalog.Item, needle string) bool {
	for _, kw := range deriveKeywords(it) {
		if kw == needle {
			return true
		}
	}
	return false
}
