package domain

import "errors"

// Errors surfaced by the session/offer lifecycle and settlement flow.
// Handlers map these to HTTP statuses with errors.Is.
var (
	ErrValidation = errors.New("invalid input")

	// ErrUnauthorized means the actor does not own the resource.
	ErrUnauthorized = errors.New("not allowed")

	ErrNotFound = errors.New("not found")

	// ErrInvalidState means the requested transition is not legal from the
	// record's current status.
	ErrInvalidState = errors.New("invalid state transition")

	// ErrDuplicateSettlement means feedback for the session was already
	// submitted; settlement runs at most once.
	ErrDuplicateSettlement = errors.New("settlement already executed")

	// ErrPayoutDestinationMissing means the recipient professional has no
	// payout account configured. Raised before any transfer is attempted.
	ErrPayoutDestinationMissing = errors.New("payout destination missing")

	// ErrPaymentProcessingFailed means the primary transfer was rejected by
	// the payment rail.
	ErrPaymentProcessingFailed = errors.New("payment processing failed")

	// ErrExternalService means a meeting or calendar provider call failed.
	ErrExternalService = errors.New("external service failure")
)
