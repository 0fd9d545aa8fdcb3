package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type TicketCategory string

const (
	TicketCategoryVIP     TicketCategory = "vip"
	TicketCategoryRegular TicketCategory = "regular"
	TicketCategoryStudent TicketCategory = "student"
)

// Valid reports whether the category is one of the known tiers.
func (c TicketCategory) Valid() bool {
	switch c {
	case TicketCategoryVIP, TicketCategoryRegular, TicketCategoryStudent:
		return true
	}
	return false
}

type TicketType struct {
	ID       int64           `json:"id" db:"id"`
	EventID  int64           `json:"event_id" db:"event_id"`
	Category TicketCategory  `json:"category" db:"category"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Limit    int             `json:"limit" db:"ticket_limit"`

	// DynamicPricingRules is an opaque blob owned by the pricing-rules
	// subsystem; it is stored and returned untouched.
	DynamicPricingRules json.RawMessage `json:"dynamic_pricing_rules,omitempty" db:"dynamic_pricing_rules"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TicketTypeAvailability pairs a ticket type with its derived counters.
type TicketTypeAvailability struct {
	TicketType
	BookedUnits    int `json:"booked_units"`
	AvailableUnits int `json:"available_units"`
}
