package service

import (
	"context"
	"testing"

	"event-ticketing/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventValidation(t *testing.T) {
	env := newTestEnv()
	organizer := env.seedUser(t, "organizer@example.com", entity.UserRoleOrganizer)

	_, err := env.events.CreateEvent(context.Background(), &CreateEventRequest{
		Title:     "Broken",
		Location:  "Berlin",
		Category:  "conference",
		Capacity:  0,
		CreatedBy: organizer.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestEventAvailability(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	organizer := env.seedUser(t, "organizer@example.com", entity.UserRoleOrganizer)
	attendee := env.seedUser(t, "attendee@example.com", entity.UserRoleAttendee)
	event := env.seedEvent(t, organizer.ID, 100)
	ticketType := env.seedTicketType(t, event.ID, "10", 100)

	withAvail, err := env.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, withAvail.BookedUnits)
	assert.Equal(t, 100, withAvail.RemainingCapacity)

	booking, err := env.bookings.CreateBooking(ctx, &CreateBookingRequest{
		UserID:       attendee.ID,
		EventID:      event.ID,
		TicketTypeID: ticketType.ID,
		Quantity:     30,
	})
	require.NoError(t, err)

	withAvail, err = env.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, withAvail.BookedUnits)
	assert.Equal(t, 70, withAvail.RemainingCapacity)

	// Cancelled bookings do not count against the event.
	_, err = env.bookings.CancelBooking(ctx, booking.ID, attendee.ID)
	require.NoError(t, err)

	withAvail, err = env.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, withAvail.BookedUnits)
	assert.Equal(t, 100, withAvail.RemainingCapacity)

	_, err = env.events.GetEvent(ctx, 999)
	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}

func TestGetAllEvents(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	organizer := env.seedUser(t, "organizer@example.com", entity.UserRoleOrganizer)
	env.seedEvent(t, organizer.ID, 50)
	env.seedEvent(t, organizer.ID, 80)

	events, err := env.events.GetAllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)

	for _, event := range events {
		assert.Equal(t, event.Capacity, event.RemainingCapacity)
	}
}
