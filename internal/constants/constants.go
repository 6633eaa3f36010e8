package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "current_user"
)

// Pagination bounds for list endpoints.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// InviteTokenLength is the length of the registration invite token.
const InviteTokenLength = 10

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8
