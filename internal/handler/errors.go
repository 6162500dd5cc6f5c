package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidPlayerID       = "Invalid player id"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your API key."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."
	ErrMsgPlayerNotFoundError = "Player not found. Start the game first."
	ErrMsgUnknownBossError    = "There is no such boss"
	ErrMsgUnknownItemError    = "That item is not sold here"
	ErrMsgNotEnoughMoneyError = "Not enough money"
)

// Health messages
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	MsgStoreUnreachable     = "store connection failed"
)
