package service

import (
	"context"
	"encoding/json"
	"time"

	"event-ticketing/internal/entity"

	"github.com/shopspring/decimal"
)

// TicketService owns the ticket-type registry: the set of ticket types of
// an event and the invariant that their combined limits never exceed the
// event capacity.
type TicketService interface {
	GetEventTicketTypes(ctx context.Context, eventID int64) ([]*entity.TicketType, error)
	CreateTicketType(ctx context.Context, eventID int64, req *CreateTicketTypeRequest) (*entity.TicketType, error)
	UpdateTicketType(ctx context.Context, ticketTypeID int64, patch *TicketTypePatch) (*entity.TicketType, error)
	DeleteTicketType(ctx context.Context, ticketTypeID int64) (*DeleteTicketTypeResult, error)
	GetTicketTypeAvailability(ctx context.Context, ticketTypeID int64) (*entity.TicketTypeAvailability, error)
}

// BookingService is the admission gate and lifecycle owner for bookings.
type BookingService interface {
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*entity.Booking, error)
	CancelBooking(ctx context.Context, bookingID, userID int64) (*entity.Booking, error)
	GetUserBookings(ctx context.Context, userID int64) ([]*entity.Booking, error)
	GetEventBookings(ctx context.Context, eventID, requesterID int64) ([]*entity.Booking, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.Event, error)
	GetEvent(ctx context.Context, id int64) (*entity.EventWithAvailability, error)
	GetAllEvents(ctx context.Context) ([]*entity.EventWithAvailability, error)
}

type UserService interface {
	RegisterUser(ctx context.Context, req *RegisterUserRequest) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
}

// CreateTicketTypeRequest carries the organizer-supplied fields of a new
// ticket type.
type CreateTicketTypeRequest struct {
	Category            entity.TicketCategory `json:"category" binding:"required"`
	Price               decimal.Decimal       `json:"price"`
	Limit               int                   `json:"limit" binding:"required,min=1"`
	DynamicPricingRules json.RawMessage       `json:"dynamic_pricing_rules,omitempty"`
}

// TicketTypePatch is the allow-listed update set for a ticket type;
// unknown fields are rejected at the transport layer, absent fields keep
// their current values.
type TicketTypePatch struct {
	Category            *entity.TicketCategory `json:"category,omitempty"`
	Price               *decimal.Decimal       `json:"price,omitempty"`
	Limit               *int                   `json:"limit,omitempty"`
	DynamicPricingRules json.RawMessage        `json:"dynamic_pricing_rules,omitempty"`
}

// DeleteTicketTypeResult reports the capacity freed by the deletion. The
// value is derived for caller display only; nothing stored changes.
type DeleteTicketTypeResult struct {
	RemainingCapacity int `json:"remaining_capacity"`
}

type CreateBookingRequest struct {
	UserID       int64 `json:"-"`
	EventID      int64 `json:"event_id" binding:"required"`
	TicketTypeID int64 `json:"ticket_type_id" binding:"required"`
	Quantity     int   `json:"quantity" binding:"required"`
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=255"`
	Description string    `json:"description" binding:"max=1000"`
	Location    string    `json:"location" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	DateTime    time.Time `json:"date_time" binding:"required"`
	Capacity    int       `json:"capacity" binding:"required,min=1"`
	CreatedBy   int64     `json:"-"`
}

type RegisterUserRequest struct {
	Email string          `json:"email" binding:"required,email"`
	Name  string          `json:"name" binding:"required,min=1,max=255"`
	Role  entity.UserRole `json:"role"`
}

// TaskPublisher hands notification work to the delivery collaborator via
// the task queue; a nil publisher disables notifications.
type TaskPublisher interface {
	Publish(ctx context.Context, task *Task) error
}

type Task struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	CreatedAt  time.Time              `json:"created_at"`
	MaxRetries int                    `json:"max_retries"`
	Attempts   int                    `json:"attempts"`
}

const (
	TaskTypeBookingCreated   = "booking_created"
	TaskTypeBookingCancelled = "booking_cancelled"
)
