// internal/services/errors.go
package services

import "errors"

// Domain errors surfaced to handlers. None of these are retried
// internally; handlers map them onto HTTP statuses.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryCycle    = errors.New("circular reference detected in category hierarchy")
	ErrCategoryInUse    = errors.New("category still has subcategories or products")

	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInsufficientStock  = errors.New("insufficient stock for product")
	ErrDuplicateSKU       = errors.New("product with this SKU already exists")

	ErrCurrencyNotFound  = errors.New("currency not found")
	ErrInvalidCurrency   = errors.New("invalid or inactive currency code")
	ErrDuplicateCurrency = errors.New("currency already exists")

	ErrEmptyCart             = errors.New("order must contain at least one item")
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidTransition     = errors.New("order status transition not allowed")
	ErrBelowMinimumQuantity  = errors.New("quantity below minimum order quantity")
	ErrResellerNotAuthorized = errors.New("product not available from specified reseller")

	ErrListingNotFound  = errors.New("reseller listing not found")
	ErrDuplicateListing = errors.New("product already added to reseller catalog")

	ErrInvalidCommissionRate = errors.New("invalid commission rate")

	ErrForbidden = errors.New("access denied")
)
