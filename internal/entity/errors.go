package entity

import (
	"errors"
	"fmt"
)

var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")

	// Ticket type errors
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrTicketTypeInUse    = errors.New("bookings exist for this ticket type")
	ErrCapacityExceeded   = errors.New("capacity exceeded")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized access")
)

type CapacityScope string

const (
	CapacityScopeTicketType CapacityScope = "ticket_type"
	CapacityScopeEvent      CapacityScope = "event"
)

// CapacityError rejects a booking request that would oversell either the
// ticket type or the event. Remaining carries the exact number of units
// still available so callers can build the user-facing message without a
// second lookup.
type CapacityError struct {
	Scope     CapacityScope
	Remaining int
}

func (e *CapacityError) Error() string {
	if e.Scope == CapacityScopeEvent {
		return fmt.Sprintf("only %d tickets remaining for this event", e.Remaining)
	}
	return fmt.Sprintf("only %d tickets available for this ticket type", e.Remaining)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// LimitError rejects a ticket-type limit that would structurally oversell
// the event, independent of actual bookings.
type LimitError struct {
	TotalLimit int
	Capacity   int
}

func (e *LimitError) Error() string {
	if e.TotalLimit > 0 {
		return fmt.Sprintf("total ticket limits (%d) exceed event capacity (%d)", e.TotalLimit, e.Capacity)
	}
	return fmt.Sprintf("ticket limit cannot exceed event capacity (%d)", e.Capacity)
}

func (e *LimitError) Unwrap() error { return ErrCapacityExceeded }
