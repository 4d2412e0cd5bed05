// Package order places farmer orders and drives their status lifecycle.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agrimart-cloud/agrimart/internal/domain"
	"github.com/agrimart-cloud/agrimart/internal/domain/order"
	"github.com/agrimart-cloud/agrimart/internal/metrics"
)

// CartLine is one requested product in a new order.
type CartLine struct {
	ItemID   string
	Quantity int
}

// CreateRequest carries everything needed to place an order.
type CreateRequest struct {
	FarmerID       string
	FarmerName     string
	FarmerLocation string
	Lines          []CartLine
}

// Service places and updates orders.
type Service struct {
	orders OrderStore
	items  ItemReader
	now    func() int64
}

// NewService creates an order service.
func NewService(orders OrderStore, items ItemReader) *Service {
	return &Service{
		orders: orders,
		items:  items,
		now:    func() int64 { return time.Now().UnixMilli() },
	}
}

// Create resolves cart lines against current listings, captures prices,
// and stores a pending order. All lines must come from a single shop, and
// each requested quantity must be covered by remaining stock.
func (s *Service) Create(ctx context.Context, req CreateRequest) (order.Order, error) {
	if req.FarmerID == "" {
		return order.Order{}, fmt.Errorf("%w: farmer id is required", domain.ErrInvalidInput)
	}
	if len(req.Lines) == 0 {
		return order.Order{}, fmt.Errorf("%w: cart is empty", domain.ErrInvalidInput)
	}

	var (
		lines    []order.Line
		shopID   string
		shopName string
	)
	for _, cl := range req.Lines {
		it, err := s.items.Get(ctx, cl.ItemID)
		if err != nil {
			return order.Order{}, err
		}
		if cl.Quantity > it.Quantity() {
			return order.Order{}, fmt.Errorf("%w: %s has %d left, %d requested",
				domain.ErrInsufficientStock, it.Name(), it.Quantity(), cl.Quantity)
		}
		// Single-shop carts only. The shop comes from the first line.
		if shopID == "" {
			shopID = it.ShopID()
			shopName = it.ShopName()
		} else if it.ShopID() != shopID {
			return order.Order{}, fmt.Errorf("%w: cart mixes items from different shops", domain.ErrInvalidInput)
		}

		line, err := order.NewLine(it.ID(), it.Name(), it.Price(), cl.Quantity)
		if err != nil {
			return order.Order{}, err
		}
		lines = append(lines, line)
	}

	o, err := order.New(
		uuid.NewString(),
		req.FarmerID, req.FarmerName, req.FarmerLocation,
		shopID, shopName,
		lines, s.now(),
	)
	if err != nil {
		return order.Order{}, err
	}
	if err := s.orders.Upsert(ctx, o); err != nil {
		return order.Order{}, fmt.Errorf("failed to store order: %w", err)
	}

	metrics.OrdersCreatedTotal.Inc()
	return o, nil
}

// Get returns a single order by id.
func (s *Service) Get(ctx context.Context, id string) (order.Order, error) {
	return s.orders.Get(ctx, id)
}

// ListByFarmer returns a farmer's order history, newest first.
func (s *Service) ListByFarmer(ctx context.Context, farmerID string) ([]order.Order, error) {
	return s.orders.ListByFarmer(ctx, farmerID)
}

// ListByShop returns a shop's incoming orders, newest first.
func (s *Service) ListByShop(ctx context.Context, shopID string) ([]order.Order, error) {
	return s.orders.ListByShop(ctx, shopID)
}

// UpdateStatus moves an order along its lifecycle. Invalid transitions
// surface as ErrStatusConflict.
func (s *Service) UpdateStatus(ctx context.Context, id string, next order.Status) (order.Order, error) {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return order.Order{}, err
	}
	updated, err := o.WithStatus(next)
	if err != nil {
		return order.Order{}, err
	}
	if err := s.orders.Upsert(ctx, updated); err != nil {
		return order.Order{}, fmt.Errorf("failed to store order %s: %w", id, err)
	}
	return updated, nil
}
