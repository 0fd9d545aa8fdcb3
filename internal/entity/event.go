package entity

import (
	"time"
)

type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Location    string    `json:"location" db:"location"`
	Category    string    `json:"category" db:"category"`
	DateTime    time.Time `json:"date_time" db:"date_time"`
	Capacity    int       `json:"capacity" db:"capacity"`
	CreatedBy   int64     `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type EventWithAvailability struct {
	Event
	BookedUnits       int `json:"booked_units"`
	RemainingCapacity int `json:"remaining_capacity"`
}
