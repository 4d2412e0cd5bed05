package order

import (
	"fmt"

	"github.com/agrimart-cloud/agrimart/internal/domain"
)

// MaxLines is the maximum number of lines per order.
const MaxLines = 50

// Status is the order lifecycle state.
type Status string

// Order status constants.
const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the shopkeeper may move the order from
// s to next. Completed and cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// Line is a single ordered product with the price captured at order time.
type Line struct {
	itemID   string
	name     string
	price    float64
	quantity int
}

// NewLine validates and creates an order line.
func NewLine(itemID, name string, price float64, quantity int) (Line, error) {
	if itemID == "" {
		return Line{}, fmt.Errorf("%w: line item id is required", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return Line{}, fmt.Errorf("%w: line quantity must be positive", domain.ErrInvalidInput)
	}
	if price < 0 {
		return Line{}, fmt.Errorf("%w: line price must be non-negative", domain.ErrInvalidInput)
	}
	return Line{itemID: itemID, name: name, price: price, quantity: quantity}, nil
}

// ReconstructLine builds a Line from stored data without validation.
func ReconstructLine(itemID, name string, price float64, quantity int) Line {
	return Line{itemID: itemID, name: name, price: price, quantity: quantity}
}

// ItemID returns the ordered catalog item identifier.
func (l Line) ItemID() string { return l.itemID }

// Name returns the item name captured at order time.
func (l Line) Name() string { return l.name }

// Price returns the unit price captured at order time.
func (l Line) Price() float64 { return l.price }

// Quantity returns the ordered quantity.
func (l Line) Quantity() int { return l.quantity }

// Subtotal returns price times quantity.
func (l Line) Subtotal() float64 { return l.price * float64(l.quantity) }

// Order is a farmer's purchase from a single shop.
type Order struct {
	id             string
	farmerID       string
	farmerName     string
	farmerLocation string
	shopID         string
	shopName       string
	lines          []Line
	status         Status
	total          float64
	createdAt      int64
}

// New validates and creates a pending order. The total is derived from the
// lines; it is never accepted from the caller.
func New(
	id, farmerID, farmerName, farmerLocation, shopID, shopName string,
	lines []Line, createdAt int64,
) (Order, error) {
	if id == "" {
		return Order{}, fmt.Errorf("%w: order id is required", domain.ErrInvalidInput)
	}
	if farmerID == "" {
		return Order{}, fmt.Errorf("%w: farmer id is required", domain.ErrInvalidInput)
	}
	if len(lines) == 0 {
		return Order{}, fmt.Errorf("%w: order needs at least one line", domain.ErrInvalidInput)
	}
	if len(lines) > MaxLines {
		return Order{}, fmt.Errorf("%w: too many order lines (max %d)", domain.ErrInvalidInput, MaxLines)
	}

	total := 0.0
	for _, l := range lines {
		total += l.Subtotal()
	}

	return Order{
		id:             id,
		farmerID:       farmerID,
		farmerName:     farmerName,
		farmerLocation: farmerLocation,
		shopID:         shopID,
		shopName:       shopName,
		lines:          lines,
		status:         StatusPending,
		total:          total,
		createdAt:      createdAt,
	}, nil
}

// Reconstruct builds an Order from stored data without validation.
func Reconstruct(
	id, farmerID, farmerName, farmerLocation, shopID, shopName string,
	lines []Line, status Status, total float64, createdAt int64,
) Order {
	return Order{
		id:             id,
		farmerID:       farmerID,
		farmerName:     farmerName,
		farmerLocation: farmerLocation,
		shopID:         shopID,
		shopName:       shopName,
		lines:          lines,
		status:         status,
		total:          total,
		createdAt:      createdAt,
	}
}

// ID returns the order identifier.
func (o Order) ID() string { return o.id }

// FarmerID returns the ordering farmer's identifier.
func (o Order) FarmerID() string { return o.farmerID }

// FarmerName returns the ordering farmer's display name.
func (o Order) FarmerName() string { return o.farmerName }

// FarmerLocation returns the farmer's delivery location.
func (o Order) FarmerLocation() string { return o.farmerLocation }

// ShopID returns the fulfilling shop identifier.
func (o Order) ShopID() string { return o.shopID }

// ShopName returns the fulfilling shop name.
func (o Order) ShopName() string { return o.shopName }

// Lines returns the order lines. Callers must not mutate the slice.
func (o Order) Lines() []Line { return o.lines }

// Status returns the lifecycle state.
func (o Order) Status() Status { return o.status }

// Total returns the order total.
func (o Order) Total() float64 { return o.total }

// CreatedAt returns the creation time in unix milliseconds.
func (o Order) CreatedAt() int64 { return o.createdAt }

// WithStatus returns a copy of the order moved to next, or an error when
// the transition is not allowed.
func (o Order) WithStatus(next Status) (Order, error) {
	if !next.IsValid() {
		return Order{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, next)
	}
	if !o.status.CanTransitionTo(next) {
		return Order{}, fmt.Errorf("%w: %s -> %s", domain.ErrStatusConflict, o.status, next)
	}
	out := o
	out.status = next
	return out, nil
}
