package order

import (
	"context"

	"github.com/agrimart-cloud/agrimart/internal/domain/catalog"
	"github.com/agrimart-cloud/agrimart/internal/domain/order"
)

// OrderStore persists orders.
type OrderStore interface {
	Upsert(ctx context.Context, o order.Order) error
	Get(ctx context.Context, id string) (order.Order, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]order.Order, error)
	ListByShop(ctx context.Context, shopID string) ([]order.Order, error)
}

// ItemReader resolves cart lines against current listings.
type ItemReader interface {
	Get(ctx context.Context, id string) (catalog.Item, error)
}
