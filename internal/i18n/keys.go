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
	KeyAuthProfileNotFound    = "auth.profile_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Users
	KeyUserProfileUpdated  = "user.profile_updated"
	KeyUserNotFound        = "user.not_found"
	KeyUserAddressSaved    = "user.address_saved"
	KeyUserAddressDeleted  = "user.address_deleted"
	KeyUserWishlistUpdated = "user.wishlist_updated"

	// Products
	KeyProductCreated       = "product.created"
	KeyProductUpdated       = "product.updated"
	KeyProductDeleted       = "product.deleted"
	KeyProductNotFound      = "product.not_found"
	KeyProductReviewAdded   = "product.review_added"
	KeyProductReviewDeleted = "product.review_deleted"

	// Categories
	KeyCategoryCreated  = "category.created"
	KeyCategoryUpdated  = "category.updated"
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"

	// Popups
	KeyPopupCreated  = "popup.created"
	KeyPopupUpdated  = "popup.updated"
	KeyPopupDeleted  = "popup.deleted"
	KeyPopupNotFound = "popup.not_found"

	// Cart
	KeyCartUpdated = "cart.updated"
	KeyCartCleared = "cart.cleared"
	KeyCartEmpty   = "cart.empty"

	// Orders
	KeyOrderPlaced         = "order.placed"
	KeyOrderNotFound       = "order.not_found"
	KeyOrderStatusUpdated  = "order.status_updated"
	KeyOrderCancelled      = "order.cancelled"
	KeyOrderCancelRejected = "order.cancel_rejected"
	KeyOrderPaymentFailed  = "order.payment_failed"

	// Chat
	KeyChatMessageSent = "chat.message_sent"
	KeyChatMarkedRead  = "chat.marked_read"

	// Settings
	KeySettingsUpdated = "settings.updated"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
)
