package entity

import "time"

type WaitingStatus string

const (
	WaitingStatusWaiting  WaitingStatus = "waiting"
	WaitingStatusPromoted WaitingStatus = "promoted"
)

// Waitlist is part of the persisted data model but has no promotion
// logic behind it yet; entries are written and read by future tooling.
type Waitlist struct {
	ID        int64         `json:"id" db:"id"`
	EventID   int64         `json:"event_id" db:"event_id"`
	UserID    int64         `json:"user_id" db:"user_id"`
	Position  int           `json:"position" db:"position"`
	Status    WaitingStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}
