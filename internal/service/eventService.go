package service

import (
	"context"
	"fmt"

	"event-ticketing/internal/database"
	"event-ticketing/internal/entity"

	"github.com/sirupsen/logrus"
)

type eventService struct {
	eventRepo   database.EventRepository
	bookingRepo database.BookingRepository
}

func NewEventService(eventRepo database.EventRepository, bookingRepo database.BookingRepository) EventService {
	return &eventService{
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.Event, error) {
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive: %w", entity.ErrInvalidInput)
	}

	event := &entity.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		DateTime:    req.DateTime,
		Capacity:    req.Capacity,
		CreatedBy:   req.CreatedBy,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"event_id": event.ID,
		"capacity": event.Capacity,
	}).Info("Event created")

	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*entity.EventWithAvailability, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withAvailability(ctx, event)
}

func (s *eventService) GetAllEvents(ctx context.Context) ([]*entity.EventWithAvailability, error) {
	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	result := make([]*entity.EventWithAvailability, 0, len(events))
	for _, event := range events {
		withAvail, err := s.withAvailability(ctx, event)
		if err != nil {
			return nil, err
		}
		result = append(result, withAvail)
	}
	return result, nil
}

// withAvailability re-aggregates booked units from booking rows on every
// call; remaining capacity is clamped at zero for display.
func (s *eventService) withAvailability(ctx context.Context, event *entity.Event) (*entity.EventWithAvailability, error) {
	booked, err := s.bookingRepo.EventBookedUnits(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum event booked units: %w", err)
	}

	remaining := event.Capacity - booked
	if remaining < 0 {
		remaining = 0
	}

	return &entity.EventWithAvailability{
		Event:             *event,
		BookedUnits:       booked,
		RemainingCapacity: remaining,
	}, nil
}
