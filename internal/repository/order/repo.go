// Package order persists orders as JSON documents.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/agrimart-cloud/agrimart/internal/db"
	"github.com/agrimart-cloud/agrimart/internal/domain"
	"github.com/agrimart-cloud/agrimart/internal/domain/order"
)

// store is the subset of database operations the repository needs.
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repository stores orders under {prefix}order:{id}.
type Repository struct {
	store     store
	keyPrefix string
}

// NewRepository creates an order repository.
func NewRepository(s store, keyPrefix string) *Repository {
	return &Repository{store: s, keyPrefix: keyPrefix}
}

func (r *Repository) key(id string) string {
	return r.keyPrefix + "order:" + id
}

// Upsert writes an order document, overwriting any previous version.
func (r *Repository) Upsert(ctx context.Context, o order.Order) error {
	data, err := json.Marshal(toDoc(o))
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", o.ID(), err)
	}
	if err := r.store.JSONSet(ctx, r.key(o.ID()), "$", data); err != nil {
		return fmt.Errorf("store order %s: %w", o.ID(), err)
	}
	return nil
}

// Get retrieves a single order by id.
func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	data, err := r.store.JSONGet(ctx, r.key(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return order.Order{}, fmt.Errorf("%w: order %s", domain.ErrOrderNotFound, id)
		}
		return order.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}

	doc, err := unwrapDoc(data)
	if err != nil {
		return order.Order{}, fmt.Errorf("decode order %s: %w", id, err)
	}
	return fromDoc(doc), nil
}

// ListByFarmer returns a farmer's orders, newest first.
func (r *Repository) ListByFarmer(ctx context.Context, farmerID string) ([]order.Order, error) {
	return r.list(ctx, func(o order.Order) bool { return o.FarmerID() == farmerID })
}

// ListByShop returns a shop's incoming orders, newest first.
func (r *Repository) ListByShop(ctx context.Context, shopID string) ([]order.Order, error) {
	return r.list(ctx, func(o order.Order) bool { return o.ShopID() == shopID })
}

func (r *Repository) list(ctx context.Context, keep func(order.Order) bool) ([]order.Order, error) {
	keys, err := r.store.Scan(ctx, r.keyPrefix+"order:*")
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}

	out := make([]order.Order, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		doc, err := unwrapDoc(data)
		if err != nil {
			continue
		}
		o := fromDoc(doc)
		if keep(o) {
			out = append(out, o)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt() > out[j].CreatedAt()
	})
	return out, nil
}

// unwrapDoc decodes a JSON.GET "$" response, which wraps the document
// in a one-element array.
func unwrapDoc(data []byte) (orderDoc, error) {
	var docs []orderDoc
	if err := json.Unmarshal(data, &docs); err == nil && len(docs) > 0 {
		return docs[0], nil
	}
	var doc orderDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return orderDoc{}, err
	}
	return doc, nil
}
