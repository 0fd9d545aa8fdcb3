package service

import (
	"context"
	"fmt"

	"event-ticketing/internal/database"
	"event-ticketing/internal/entity"

	"github.com/sirupsen/logrus"
)

type ticketService struct {
	ticketTypeRepo database.TicketTypeRepository
	eventRepo      database.EventRepository
	bookingRepo    database.BookingRepository
}

func NewTicketService(
	ticketTypeRepo database.TicketTypeRepository,
	eventRepo database.EventRepository,
	bookingRepo database.BookingRepository,
) TicketService {
	return &ticketService{
		ticketTypeRepo: ticketTypeRepo,
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
	}
}

func (s *ticketService) GetEventTicketTypes(ctx context.Context, eventID int64) ([]*entity.TicketType, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	ticketTypes, err := s.ticketTypeRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket types: %w", err)
	}
	return ticketTypes, nil
}

// CreateTicketType registers a new tier, holding the structural invariant
// that the limits of an event's ticket types never sum past its capacity.
func (s *ticketService) CreateTicketType(ctx context.Context, eventID int64, req *CreateTicketTypeRequest) (*entity.TicketType, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !req.Category.Valid() {
		return nil, fmt.Errorf("invalid ticket category %q: %w", req.Category, entity.ErrInvalidInput)
	}
	if req.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %w", entity.ErrInvalidInput)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative: %w", entity.ErrInvalidInput)
	}

	if req.Limit > event.Capacity {
		return nil, &entity.LimitError{Capacity: event.Capacity}
	}

	existing, err := s.ticketTypeRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing ticket types: %w", err)
	}

	totalLimit := req.Limit
	for _, t := range existing {
		totalLimit += t.Limit
	}
	if totalLimit > event.Capacity {
		return nil, &entity.LimitError{TotalLimit: totalLimit, Capacity: event.Capacity}
	}

	ticketType := &entity.TicketType{
		EventID:             eventID,
		Category:            req.Category,
		Price:               req.Price,
		Limit:               req.Limit,
		DynamicPricingRules: req.DynamicPricingRules,
	}

	if err := s.ticketTypeRepo.Create(ctx, ticketType); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"ticket_type_id": ticketType.ID,
		"event_id":       eventID,
		"category":       ticketType.Category,
		"limit":          ticketType.Limit,
	}).Info("Ticket type created")

	return ticketType, nil
}

// UpdateTicketType applies an allow-listed patch, re-running both
// capacity checks with this type's prior limit excluded from the sum.
func (s *ticketService) UpdateTicketType(ctx context.Context, ticketTypeID int64, patch *TicketTypePatch) (*entity.TicketType, error) {
	ticketType, err := s.ticketTypeRepo.GetByID(ctx, ticketTypeID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, ticketType.EventID)
	if err != nil {
		return nil, err
	}

	newLimit := ticketType.Limit
	if patch.Limit != nil {
		if *patch.Limit <= 0 {
			return nil, fmt.Errorf("limit must be positive: %w", entity.ErrInvalidInput)
		}
		newLimit = *patch.Limit
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return nil, fmt.Errorf("invalid ticket category %q: %w", *patch.Category, entity.ErrInvalidInput)
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative: %w", entity.ErrInvalidInput)
	}

	if newLimit > event.Capacity {
		return nil, &entity.LimitError{Capacity: event.Capacity}
	}

	siblings, err := s.ticketTypeRepo.GetByEventID(ctx, ticketType.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing ticket types: %w", err)
	}

	totalLimit := newLimit
	for _, t := range siblings {
		if t.ID != ticketTypeID {
			totalLimit += t.Limit
		}
	}
	if totalLimit > event.Capacity {
		return nil, &entity.LimitError{TotalLimit: totalLimit, Capacity: event.Capacity}
	}

	if patch.Category != nil {
		ticketType.Category = *patch.Category
	}
	if patch.Price != nil {
		ticketType.Price = *patch.Price
	}
	ticketType.Limit = newLimit
	if patch.DynamicPricingRules != nil {
		ticketType.DynamicPricingRules = patch.DynamicPricingRules
	}

	if err := s.ticketTypeRepo.Update(ctx, ticketType); err != nil {
		return nil, err
	}

	return ticketType, nil
}

// DeleteTicketType removes a tier that has no booking rows at all,
// cancelled included. The returned remaining capacity is a derived
// convenience value for the caller's display.
func (s *ticketService) DeleteTicketType(ctx context.Context, ticketTypeID int64) (*DeleteTicketTypeResult, error) {
	ticketType, err := s.ticketTypeRepo.GetByID(ctx, ticketTypeID)
	if err != nil {
		return nil, err
	}

	count, err := s.bookingRepo.CountByTicketType(ctx, ticketTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("cannot delete ticket type: %w", entity.ErrTicketTypeInUse)
	}

	event, err := s.eventRepo.GetByID(ctx, ticketType.EventID)
	if err != nil {
		return nil, err
	}

	eventBooked, err := s.bookingRepo.EventBookedUnits(ctx, ticketType.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum event booked units: %w", err)
	}

	if err := s.ticketTypeRepo.Delete(ctx, ticketTypeID); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"ticket_type_id": ticketTypeID,
		"event_id":       ticketType.EventID,
	}).Info("Ticket type deleted")

	return &DeleteTicketTypeResult{
		RemainingCapacity: (event.Capacity - eventBooked) + ticketType.Limit,
	}, nil
}

// GetTicketTypeAvailability re-derives the availability counters from
// booking rows; nothing here is cached.
func (s *ticketService) GetTicketTypeAvailability(ctx context.Context, ticketTypeID int64) (*entity.TicketTypeAvailability, error) {
	ticketType, err := s.ticketTypeRepo.GetByID(ctx, ticketTypeID)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookingRepo.BookedUnits(ctx, ticketTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum booked units: %w", err)
	}

	available := ticketType.Limit - booked
	if available < 0 {
		available = 0
	}

	return &entity.TicketTypeAvailability{
		TicketType:     *ticketType,
		BookedUnits:    booked,
		AvailableUnits: available,
	}, nil
}
