package order

import "errors"

var (
	ErrEmptyOrder            = errors.New("order must contain at least one item")
	ErrInvalidQuantity       = errors.New("item quantity must be at least 1")
	ErrInvalidPrice          = errors.New("item price cannot be negative")
	ErrItemNameRequired      = errors.New("item name is required")
	ErrInvalidCurrency       = errors.New("unsupported currency")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrInvalidStatus         = errors.New("unknown order status")
	ErrInvalidTransition     = errors.New("status transition not allowed")

	ErrTableNotFound     = errors.New("table not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")
)

// IsInvalidInput reports whether err is a validation failure detected before
// any write.
func IsInvalidInput(err error) bool {
	for _, e := range []error{
		ErrEmptyOrder, ErrInvalidQuantity, ErrInvalidPrice,
		ErrItemNameRequired, ErrInvalidCurrency, ErrPaymentMethodRequired,
		ErrInvalidStatus, ErrInvalidTransition,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means a referenced entity does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrOrderItemNotFound)
}
