// Package catalog manages shopkeeper listings.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
)

// Service handles listing lifecycle: create, read, update, delete, restock.
type Service struct {
	items ItemStore
	now   func() int64
}

// NewService creates a catalog service.
func NewService(items ItemStore) *Service {
	return &Service{
		items: items,
		now:   func() int64 { return time.Now().UnixMilli() },
	}
}

// Create validates attributes, assigns an id and creation time, and stores
// the new listing.
func (s *Service) Create(ctx context.Context, a catalog.Attrs) (catalog.Item, error) {
	if a.CreatedAt == 0 {
		a.CreatedAt = s.now()
	}
	it, err := catalog.New(uuid.NewString(), a)
	if err != nil {
		return catalog.Item{}, err
	}
	if err := s.items.Upsert(ctx, it); err != nil {
		return catalog.Item{}, fmt.Errorf("failed to create item: %w", err)
	}
	return it, nil
}

// Get returns a single listing by id.
func (s *Service) Get(ctx context.Context, id string) (catalog.Item, error) {
	return s.items.Get(ctx, id)
}

// Update replaces the attributes of an existing listing. The id and
// creation time survive the update.
func (s *Service) Update(ctx context.Context, id string, a catalog.Attrs) (catalog.Item, error) {
	existing, err := s.items.Get(ctx, id)
	if err != nil {
		return catalog.Item{}, err
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = existing.CreatedAt()
	}
	it, err := catalog.New(id, a)
	if err != nil {
		return catalog.Item{}, err
	}
	if err := s.items.Upsert(ctx, it); err != nil {
		return catalog.Item{}, fmt.Errorf("failed to update item %s: %w", id, err)
	}
	return it, nil
}

// UpdateStock sets the remaining quantity of a listing.
func (s *Service) UpdateStock(ctx context.Context, id string, quantity int) (catalog.Item, error) {
	existing, err := s.items.Get(ctx, id)
	if err != nil {
		return catalog.Item{}, err
	}
	it, err := existing.WithQuantity(quantity)
	if err != nil {
		return catalog.Item{}, err
	}
	if err := s.items.Upsert(ctx, it); err != nil {
		return catalog.Item{}, fmt.Errorf("failed to update stock for %s: %w", id, err)
	}
	return it, nil
}

// Delete removes a listing.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}

// ListByShop returns every listing a shop owns, including out-of-stock ones.
func (s *Service) ListByShop(ctx context.Context, shopID string) ([]catalog.Item, error) {
	return s.items.ListByShop(ctx, shopID)
}
