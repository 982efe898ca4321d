// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAdminAccessDenied      = "auth.admin_access_denied"
	KeyAccessDenied           = "auth.access_denied"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Categories
	KeyCategoryCreated  = "category.created"
	KeyCategoryUpdated  = "category.updated"
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"
	KeyCategoryCycle    = "category.cycle"
	KeyCategoryInUse    = "category.in_use"

	// Products
	KeyProductCreated     = "product.created"
	KeyProductUpdated     = "product.updated"
	KeyProductDeleted     = "product.deleted"
	KeyProductNotFound    = "product.not_found"
	KeyProductUnavailable = "product.unavailable"
	KeyProductOutOfStock  = "product.out_of_stock"

	// Currencies
	KeyCurrencyCreated   = "currency.created"
	KeyCurrencyUpdated   = "currency.updated"
	KeyCurrencyNotFound  = "currency.not_found"
	KeyCurrencyInvalid   = "currency.invalid"
	KeyCurrencyDuplicate = "currency.duplicate"

	// Orders
	KeyOrderCreated           = "order.created"
	KeyOrderNotFound          = "order.not_found"
	KeyOrderEmptyCart         = "order.empty_cart"
	KeyOrderStatusUpdated     = "order.status_updated"
	KeyOrderInvalidTransition = "order.invalid_transition"

	// Reseller listings
	KeyListingCreated       = "listing.created"
	KeyListingUpdated       = "listing.updated"
	KeyListingDeleted       = "listing.deleted"
	KeyListingNotFound      = "listing.not_found"
	KeyListingDuplicate     = "listing.duplicate"
	KeyListingNotAuthorized = "listing.not_authorized"
)
