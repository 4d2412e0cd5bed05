package agrimart

import (
	"context"

	domorder "github.com/agrimart-cloud/agrimart/internal/domain/order"
	cataloguc "github.com/agrimart-cloud/agrimart/internal/usecase/catalog"
	orderuc "github.com/agrimart-cloud/agrimart/internal/usecase/order"
)

// Order statuses.
const (
	StatusPending   = string(domorder.StatusPending)
	StatusConfirmed = string(domorder.StatusConfirmed)
	StatusCompleted = string(domorder.StatusCompleted)
	StatusCancelled = string(domorder.StatusCancelled)
)

// ItemsService manages shop listings.
type ItemsService struct {
	svc           *cataloguc.Service
	displayRating float64
}

// Create stores a new listing and returns it with its assigned id.
func (s *ItemsService) Create(ctx context.Context, attrs ItemAttrs) (Item, error) {
	it, err := s.svc.Create(ctx, attrsToDomain(attrs))
	if err != nil {
		return Item{}, err
	}
	return itemFromDomain(it, s.displayRating), nil
}

// Get returns a single listing by id.
func (s *ItemsService) Get(ctx context.Context, id string) (Item, error) {
	it, err := s.svc.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	return itemFromDomain(it, s.displayRating), nil
}

// Update replaces the attributes of an existing listing.
func (s *ItemsService) Update(ctx context.Context, id string, attrs ItemAttrs) (Item, error) {
	it, err := s.svc.Update(ctx, id, attrsToDomain(attrs))
	if err != nil {
		return Item{}, err
	}
	return itemFromDomain(it, s.displayRating), nil
}

// UpdateStock sets the remaining quantity of a listing.
func (s *ItemsService) UpdateStock(ctx context.Context, id string, quantity int) (Item, error) {
	it, err := s.svc.UpdateStock(ctx, id, quantity)
	if err != nil {
		return Item{}, err
	}
	return itemFromDomain(it, s.displayRating), nil
}

// Delete removes a listing.
func (s *ItemsService) Delete(ctx context.Context, id string) error {
	return s.svc.Delete(ctx, id)
}

// ListByShop returns every listing a shop owns, including out-of-stock ones.
func (s *ItemsService) ListByShop(ctx context.Context, shopID string) ([]Item, error) {
	items, err := s.svc.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return itemsFromDomain(items, s.displayRating), nil
}

// OrdersService places orders and drives their status lifecycle.
type OrdersService struct {
	svc *orderuc.Service
}

// CreateOrderRequest carries everything needed to place an order.
type CreateOrderRequest struct {
	FarmerID       string
	FarmerName     string
	FarmerLocation string
	Lines          []CartLine
}

// Create places a pending order from a single-shop cart.
func (s *OrdersService) Create(ctx context.Context, req CreateOrderRequest) (Order, error) {
	lines := make([]orderuc.CartLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = orderuc.CartLine{ItemID: l.ItemID, Quantity: l.Quantity}
	}
	o, err := s.svc.Create(ctx, orderuc.CreateRequest{
		FarmerID:       req.FarmerID,
		FarmerName:     req.FarmerName,
		FarmerLocation: req.FarmerLocation,
		Lines:          lines,
	})
	if err != nil {
		return Order{}, err
	}
	return orderFromDomain(o), nil
}

// Get returns a single order by id.
func (s *OrdersService) Get(ctx context.Context, id string) (Order, error) {
	o, err := s.svc.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	return orderFromDomain(o), nil
}

// ListByFarmer returns a farmer's order history, newest first.
func (s *OrdersService) ListByFarmer(ctx context.Context, farmerID string) ([]Order, error) {
	orders, err := s.svc.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	return ordersFromDomain(orders), nil
}

// ListByShop returns a shop's incoming orders, newest first.
func (s *OrdersService) ListByShop(ctx context.Context, shopID string) ([]Order, error) {
	orders, err := s.svc.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return ordersFromDomain(orders), nil
}

// UpdateStatus moves an order along its lifecycle. Use the Status*
// constants.
func (s *OrdersService) UpdateStatus(ctx context.Context, id, status string) (Order, error) {
	o, err := s.svc.UpdateStatus(ctx, id, domorder.Status(status))
	if err != nil {
		return Order{}, err
	}
	return orderFromDomain(o), nil
}
