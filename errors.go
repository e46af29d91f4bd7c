package estate

import "errors"

// Rejections returned by the engine. They are ordinary business outcomes:
// callers test them with errors.Is and show the wrapped message to the player.
// A rejected operation never changes the state it was given.
var (
	// ErrInsufficientFunds is returned when cash does not cover a fee, a deposit or a payment.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrBorrowingCapacityExceeded is returned when a purchase would take a trust's debt above its cap.
	ErrBorrowingCapacityExceeded = errors.New("borrowing capacity exceeded")
	// ErrCapacityExceeded is returned when an equity release asks for more than the property and trust allow.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrExcessiveRisk is returned when a loan would exceed 95% of the property value.
	ErrExcessiveRisk = errors.New("excessive risk")
	// ErrInvalidAmount is returned for non positive or out of range amounts.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNotFound is returned when a trust or property reference does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotStarted is returned for commands issued before the simulation is set up.
	ErrNotStarted = errors.New("simulation not started")
)
