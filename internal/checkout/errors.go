package checkout

import "errors"

// Validation and stock errors surfaced by the engine. The HTTP layer maps
// them to status codes; the engine itself never writes a response.
var (
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrEmptyOrder           = errors.New("order has no items")
	ErrInvalidQuantity      = errors.New("item quantity must be positive")
	ErrShippingTarget       = errors.New("exactly one of address_id or shipping_info is required")
	ErrAddressNotFound      = errors.New("address not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
)
