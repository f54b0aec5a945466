// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Catalog
	KeyCatalogLoadFailed = "catalog.load_failed"
	KeyCatalogRefreshed  = "catalog.refreshed"
	KeyCatalogEmpty      = "catalog.empty"

	// Products
	KeyProductNotFound = "product.not_found"

	// Cart
	KeyCartItemAdded          = "cart.item_added"
	KeyCartItemRemoved        = "cart.item_removed"
	KeyCartUpdated            = "cart.updated"
	KeyCartCleared            = "cart.cleared"
	KeyCartEmpty              = "cart.empty"
	KeyCartCheckoutComingSoon = "cart.checkout_coming_soon"
)
