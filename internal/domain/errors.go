package domain

import "errors"

// Error message string constants - single source of truth for error messages
const (
	ErrMsgPlayerNotFound    = "player not found"
	ErrMsgUnknownBoss       = "unknown boss"
	ErrMsgUnknownItem       = "unknown item"
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgStoreUnavailable  = "store unavailable"
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgNegativeBalance   = "balance cannot be negative"
	ErrMsgTxClosed          = "tx is closed"
)

// Business-rule failures are expected, user-recoverable conditions.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrPlayerNotFound    = errors.New(ErrMsgPlayerNotFound)
	ErrUnknownBoss       = errors.New(ErrMsgUnknownBoss)
	ErrUnknownItem       = errors.New(ErrMsgUnknownItem)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)

	// ErrNegativeBalance is returned by stores asked to persist coins < 0.
	ErrNegativeBalance = errors.New(ErrMsgNegativeBalance)

	// ErrStoreUnavailable wraps every failure of the durable store.
	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)

	ErrTxClosed = errors.New(ErrMsgTxClosed)
)

// IsBusinessError reports whether err is an expected rule rejection rather than a system fault.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrUnknownBoss) ||
		errors.Is(err, ErrUnknownItem) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInvalidInput)
}
