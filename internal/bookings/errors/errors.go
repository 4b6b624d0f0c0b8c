package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrSlotFull is returned by the slot counter when the conditional
	// increment finds the slot at capacity.
	ErrSlotFull = errors.New("slot is at capacity")

	// ErrNotConfirmed is returned when a cancellation matches a booking that
	// is no longer confirmed.
	ErrNotConfirmed = errors.New("booking is not confirmed")
)
