package service

import (
	"context"
	"fmt"
	"time"

	"event-ticketing/internal/database"
	"event-ticketing/internal/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type bookingService struct {
	bookingRepo    database.BookingRepository
	eventRepo      database.EventRepository
	ticketTypeRepo database.TicketTypeRepository
	userRepo       database.UserRepository
	queue          TaskPublisher
}

func NewBookingService(
	bookingRepo database.BookingRepository,
	eventRepo database.EventRepository,
	ticketTypeRepo database.TicketTypeRepository,
	userRepo database.UserRepository,
	queue TaskPublisher,
) BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		ticketTypeRepo: ticketTypeRepo,
		userRepo:       userRepo,
		queue:          queue,
	}
}

// CreateBooking is the single authoritative gate for admitting a booking.
// Reference validation happens here; the capacity checks themselves run
// inside the repository's atomic check-and-insert, so two concurrent
// requests can never both be admitted past a limit.
func (s *bookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*entity.Booking, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", entity.ErrInvalidInput)
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	if _, err := s.eventRepo.GetByID(ctx, req.EventID); err != nil {
		return nil, err
	}

	ticketType, err := s.ticketTypeRepo.GetByID(ctx, req.TicketTypeID)
	if err != nil {
		return nil, err
	}
	if ticketType.EventID != req.EventID {
		return nil, fmt.Errorf("ticket type not found for this event: %w", entity.ErrTicketTypeNotFound)
	}

	booking := &entity.Booking{
		BookedBy:     req.UserID,
		EventID:      req.EventID,
		TicketTypeID: req.TicketTypeID,
		Quantity:     req.Quantity,
		TotalPrice:   ComputeTotal(ticketType.Price, req.Quantity),
		Status:       entity.BookingStatusBooked,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id":     booking.ID,
		"event_id":       booking.EventID,
		"ticket_type_id": booking.TicketTypeID,
		"quantity":       booking.Quantity,
	}).Info("Booking admitted")

	s.publishBookingTask(ctx, TaskTypeBookingCreated, booking)

	return booking, nil
}

// CancelBooking flips the booking to cancelled, returning its units to
// the pool. Cancelling an already cancelled booking is a no-op success.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID, userID int64) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByIDAndUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	if booking.Status == entity.BookingStatusCancelled {
		return booking, nil
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, entity.BookingStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	booking.Status = entity.BookingStatusCancelled

	logrus.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"user_id":    userID,
	}).Info("Booking cancelled")

	s.publishBookingTask(ctx, TaskTypeBookingCancelled, booking)

	return booking, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID int64) ([]*entity.Booking, error) {
	bookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %w", err)
	}
	return bookings, nil
}

// GetEventBookings lists an event's bookings for its creator or an admin;
// everyone else is rejected. This is the one role check inside the core.
func (s *bookingService) GetEventBookings(ctx context.Context, eventID, requesterID int64) ([]*entity.Booking, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if event.CreatedBy != requesterID && requester.Role != entity.UserRoleAdmin {
		return nil, fmt.Errorf("access denied: %w", entity.ErrUnauthorized)
	}

	bookings, err := s.bookingRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) publishBookingTask(ctx context.Context, taskType string, booking *entity.Booking) {
	if s.queue == nil {
		return
	}

	task := &Task{
		ID:   uuid.NewString(),
		Type: taskType,
		Data: map[string]interface{}{
			"booking_id":     booking.ID,
			"event_id":       booking.EventID,
			"ticket_type_id": booking.TicketTypeID,
			"user_id":        booking.BookedBy,
			"quantity":       booking.Quantity,
		},
		CreatedAt:  time.Now(),
		MaxRetries: 3,
	}

	if err := s.queue.Publish(ctx, task); err != nil {
		logrus.Errorf("Failed to publish %s task for booking %d: %v", taskType, booking.ID, err)
	}
}
