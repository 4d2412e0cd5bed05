package catalog

import (
	"context"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
)

// ItemStore persists catalog items.
type ItemStore interface {
	Upsert(ctx context.Context, it catalog.Item) error
	Get(ctx context.Context, id string) (catalog.Item, error)
	Delete(ctx context.Context, id string) error
	ListByShop(ctx context.Context, shopID string) ([]catalog.Item, error)
}
