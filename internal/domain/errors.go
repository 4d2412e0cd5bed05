package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrItemNotFound signals a missing catalog item.
	ErrItemNotFound = errors.New("catalog item not found")
	// ErrOrderNotFound signals a missing order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput signals a validation failure on caller-supplied data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientStock signals an order line exceeding the available quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStatusConflict signals an illegal order status transition.
	ErrStatusConflict = errors.New("invalid status transition")
	// ErrAssistantDisabled signals that no assistant provider is configured.
	ErrAssistantDisabled = errors.New("assistant not configured")
	// ErrAssistantProviderError signals an assistant provider failure.
	ErrAssistantProviderError = errors.New("assistant provider error")
)
