package constants

const (
	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderCacheControl  = "Cache-Control"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeJPEG = "image/jpeg"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeySession   = "session"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers              = "users"
	TableSessions           = "sessions"
	TablePasskeyCredentials = "passkey_credentials"
	TableCategories         = "categories"
	TablePhotos             = "photos"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized"
)
