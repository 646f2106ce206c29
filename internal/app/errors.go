package app

import (
	"errors"
	"fmt"
)

// Sentinel errors returned at operation boundaries. Handlers map these to
// HTTP statuses; nothing below this layer writes responses.
var (
	// ErrSlotTaken means the chosen slot was booked between slot listing
	// and commit. Not retried automatically; the guest must pick again.
	ErrSlotTaken = errors.New("slot no longer available")

	// ErrMeetingTypeNotFound covers both a missing meeting type and one
	// that exists but is inactive or owned by a different host.
	ErrMeetingTypeNotFound = errors.New("meeting type inactive or not found")

	ErrBookingNotFound = errors.New("booking not found")
	ErrHostNotFound    = errors.New("host not found")
	ErrWindowNotFound  = errors.New("availability window not found")
)

// ValidationError rejects bad input before any store write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FetchError wraps a failed store read. A failed bookings fetch must never
// be treated as an empty conflict set, so reads are wrapped distinctly from
// domain errors.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func fetchErr(op string, err error) error {
	return &FetchError{Op: op, Err: err}
}
