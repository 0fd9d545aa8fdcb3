package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID           int64         `json:"id" db:"id"`
	BookedBy     int64         `json:"booked_by" db:"booked_by"`
	EventID      int64         `json:"event_id" db:"event_id"`
	TicketTypeID int64         `json:"ticket_type_id" db:"ticket_type_id"`
	Quantity     int           `json:"quantity" db:"quantity"`

	// TotalPrice is snapshotted at admission time and never recomputed,
	// even if the ticket type's price changes later.
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`

	Status    BookingStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}
