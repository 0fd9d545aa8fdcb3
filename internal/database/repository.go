package database

import (
	"context"

	"event-ticketing/internal/entity"
)

// BookingRepository is the single shared mutable surface of the system.
// Create is the atomic admission primitive: the availability checks and
// the insert execute as one unit, so concurrent admissions for the same
// ticket type or event serialize at the storage layer.
type BookingRepository interface {
	// Create persists the booking only if, at commit time, neither the
	// ticket-type limit nor the event capacity would be exceeded. Both
	// bounds are re-read inside the same transaction. On rejection it
	// returns *entity.CapacityError with the remaining count.
	Create(ctx context.Context, booking *entity.Booking) error

	GetByID(ctx context.Context, id int64) (*entity.Booking, error)
	GetByIDAndUser(ctx context.Context, id, userID int64) (*entity.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error

	// Query operations, newest first
	GetByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error)
	GetByEventID(ctx context.Context, eventID int64) ([]*entity.Booking, error)

	// Capacity ledger: always re-derived from booking rows, never cached.
	BookedUnits(ctx context.Context, ticketTypeID int64) (int, error)
	EventBookedUnits(ctx context.Context, eventID int64) (int, error)
	CountByTicketType(ctx context.Context, ticketTypeID int64) (int, error)
}

type TicketTypeRepository interface {
	Create(ctx context.Context, ticketType *entity.TicketType) error
	GetByID(ctx context.Context, id int64) (*entity.TicketType, error)
	GetByEventID(ctx context.Context, eventID int64) ([]*entity.TicketType, error)
	Update(ctx context.Context, ticketType *entity.TicketType) error
	Delete(ctx context.Context, id int64) error
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	GetAll(ctx context.Context) ([]*entity.Event, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
