package service

import (
	"context"
	"testing"

	"event-ticketing/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTicketTypeValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	organizer := env.seedUser(t, "organizer@example.com", entity.UserRoleOrganizer)
	event := env.seedEvent(t, organizer.ID, 100)

	tests := []struct {
		name string
		req  CreateTicketTypeRequest
	}{
		{
			name: "unknown category",
			req:  CreateTicketTypeRequest{Category: "platinum", Price: decimal.NewFromInt(10), Limit: 10},
		},
		{
			name: "zero limit",
			req:  CreateTicketTypeRequest{Category: entity.TicketCategoryVIP, Price: decimal.NewFromInt(10), Limit: 0},
		},
		{
			name: "negative limit",
			req:  CreateTicketTypeRequest{Category: entity.TicketCategoryVIP, Price: decimal.NewFromInt(10), Limit: -5},
		},
		{
			name: "negative price",
			req:  CreateTicketTypeRequest{Category: entity.TicketCategoryVIP, Price: decimal.NewFromInt(-1), Limit: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.tickets.CreateTicketType(ctx, event.ID, &tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrInvalidInput)
		})
	}

	t.Run("unknown event", func(t *testing.T) {
		_, err := env.tickets.CreateTicketType(ctx, 999, &CreateTicketTypeRequest{
			Category: entity.TicketCategoryVIP,
			Price:    decimal.NewFromInt(10),
			Limit:    10,
		})
		assert.ErrorIs(t, err, entity.ErrEventNotFound)
	})

	t.Run("free tickets are allowed", func(t *testing.T) {
		ticketType, err := env.tickets.CreateTicketType(ctx, event.ID, &CreateTicketTypeRequest{
			Category: entity.TicketCategoryStudent,
			Price:    decimal.Zero,
			Limit:    10,
		})
		require.NoError(t, err)
		assert.True(t, ticketType.Price.IsZero())
	})
}

// The combined limits of an event's ticket types may never exceed its
// capacity, on create and on update alike.
func TestTicketTypeLimitInvariant(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	organizer := env.seedUser(t, "organizer@example.com", entity.UserRoleOrganizer)
	event := env.seedEvent(t, organizer.ID, 10)

	t.Run("single limit above capacity", func(t *testing.T) {
		_, err := env.tickets.CreateTicketType(ctx, event.ID, &CreateTicketTypeRequest{
			Category: entity.TicketCategoryRegular,
			Price:    decimal.NewFromInt(10),
			Limit:    11,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrCapacityExceeded)
		assert.EqualError(t, err, "ticket limit cannot exceed event capacity (10)")
	})

	t.Run("limits may sum to exactly capacity", func(t *testing.T) {
		_, err := env.tickets.CreateTicketType(ctx, event.ID, &CreateTicketTypeRequest{
			Category: entity.TicketCategoryRegular,
			Price:    decimal.NewFromInt(10),
			Limit:    10,
		})
		require.NoError(t, err)
	})

	t.Run("one more unit is rejected", func(t *testing.T) {
		_, err := env.tickets.CreateTicketType(ctx, event.ID, &CreateTicketTypeRequest{
			Category: entity.TicketCategoryVIP,
			Price:    decimal.NewFromInt(25),
			Limit:    1,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrCapacityExceeded)
		assert.EqualError(t, err, "total ticket limits (11) exceed event capacity (10)")
	})
}

func TestUpdateTicketType(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	organizer := env.seedUser(t, "organizer@example.com", entity.UserRoleOrganizer)
	event := env.seedEvent(t, organizer.ID, 100)
	regular := env.seedTicketType(t, event.ID, "20", 60)

	vip, err := env.tickets.CreateTicketType(ctx, event.ID, &CreateTicketTypeRequest{
		Category: entity.TicketCategoryVIP,
		Price:    decimal.NewFromInt(80),
		Limit:    40,
	})
	require.NoError(t, err)

	t.Run("absent fields keep their values", func(t *testing.T) {
		newPrice := decimal.RequireFromString("22.50")
		updated, err := env.tickets.UpdateTicketType(ctx, regular.ID, &TicketTypePatch{Price: &newPrice})
		require.NoError(t, err)
		assert.Equal(t, "22.5", updated.Price.String())
		assert.Equal(t, 60, updated.Limit)
		assert.Equal(t, entity.TicketCategoryRegular, updated.Category)
	})

	t.Run("own prior limit is excluded from the sum", func(t *testing.T) {
		// 60 regular stays; raising vip from 40 to 40 keeps the total at 100.
		limit := 40
		_, err := env.tickets.UpdateTicketType(ctx, vip.ID, &TicketTypePatch{Limit: &limit})
		require.NoError(t, err)
	})

	t.Run("raising the limit past capacity fails", func(t *testing.T) {
		limit := 41
		_, err := env.tickets.UpdateTicketType(ctx, vip.ID, &TicketTypePatch{Limit: &limit})
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrCapacityExceeded)
	})

	t.Run("zero limit is rejected", func(t *testing.T) {
		limit := 0
		_, err := env.tickets.UpdateTicketType(ctx, vip.ID, &TicketTypePatch{Limit: &limit})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})

	t.Run("unknown ticket type", func(t *testing.T) {
		limit := 5
		_, err := env.tickets.UpdateTicketType(ctx, 999, &TicketTypePatch{Limit: &limit})
		assert.ErrorIs(t, err, entity.ErrTicketTypeNotFound)
	})
}

func TestDeleteTicketType(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	organizer := env.seedUser(t, "organizer@example.com", entity.UserRoleOrganizer)
	attendee := env.seedUser(t, "attendee@example.com", entity.UserRoleAttendee)
	event := env.seedEvent(t, organizer.ID, 100)

	t.Run("unused ticket type is deleted", func(t *testing.T) {
		ticketType := env.seedTicketType(t, event.ID, "10", 30)

		result, err := env.tickets.DeleteTicketType(ctx, ticketType.ID)
		require.NoError(t, err)
		assert.Equal(t, 130, result.RemainingCapacity)

		_, err = env.tickets.GetTicketTypeAvailability(ctx, ticketType.ID)
		assert.ErrorIs(t, err, entity.ErrTicketTypeNotFound)
	})

	t.Run("booked ticket type is protected", func(t *testing.T) {
		ticketType := env.seedTicketType(t, event.ID, "10", 30)
		_, err := env.bookings.CreateBooking(ctx, &CreateBookingRequest{
			UserID:       attendee.ID,
			EventID:      event.ID,
			TicketTypeID: ticketType.ID,
			Quantity:     5,
		})
		require.NoError(t, err)

		_, err = env.tickets.DeleteTicketType(ctx, ticketType.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrTicketTypeInUse)
	})

	t.Run("cancelled bookings still protect it", func(t *testing.T) {
		ticketType := env.seedTicketType(t, event.ID, "10", 30)
		booking, err := env.bookings.CreateBooking(ctx, &CreateBookingRequest{
			UserID:       attendee.ID,
			EventID:      event.ID,
			TicketTypeID: ticketType.ID,
			Quantity:     5,
		})
		require.NoError(t, err)

		_, err = env.bookings.CancelBooking(ctx, booking.ID, attendee.ID)
		require.NoError(t, err)

		_, err = env.tickets.DeleteTicketType(ctx, ticketType.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrTicketTypeInUse)
	})

	t.Run("unknown ticket type", func(t *testing.T) {
		_, err := env.tickets.DeleteTicketType(ctx, 999)
		assert.ErrorIs(t, err, entity.ErrTicketTypeNotFound)
	})
}

func TestGetTicketTypeAvailability(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	organizer := env.seedUser(t, "organizer@example.com", entity.UserRoleOrganizer)
	attendee := env.seedUser(t, "attendee@example.com", entity.UserRoleAttendee)
	event := env.seedEvent(t, organizer.ID, 100)
	ticketType := env.seedTicketType(t, event.ID, "10", 50)

	availability, err := env.tickets.GetTicketTypeAvailability(ctx, ticketType.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, availability.BookedUnits)
	assert.Equal(t, 50, availability.AvailableUnits)

	_, err = env.bookings.CreateBooking(ctx, &CreateBookingRequest{
		UserID:       attendee.ID,
		EventID:      event.ID,
		TicketTypeID: ticketType.ID,
		Quantity:     20,
	})
	require.NoError(t, err)

	availability, err = env.tickets.GetTicketTypeAvailability(ctx, ticketType.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, availability.BookedUnits)
	assert.Equal(t, 30, availability.AvailableUnits)

	// Shrinking the limit below the booked units clamps availability at
	// zero instead of going negative.
	limit := 10
	_, err = env.tickets.UpdateTicketType(ctx, ticketType.ID, &TicketTypePatch{Limit: &limit})
	require.NoError(t, err)

	availability, err = env.tickets.GetTicketTypeAvailability(ctx, ticketType.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, availability.BookedUnits)
	assert.Equal(t, 0, availability.AvailableUnits)
}

func TestGetEventTicketTypes(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	organizer := env.seedUser(t, "organizer@example.com", entity.UserRoleOrganizer)
	event := env.seedEvent(t, organizer.ID, 100)

	ticketTypes, err := env.tickets.GetEventTicketTypes(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, ticketTypes)

	env.seedTicketType(t, event.ID, "10", 40)
	env.seedTicketType(t, event.ID, "20", 40)

	ticketTypes, err = env.tickets.GetEventTicketTypes(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, ticketTypes, 2)

	_, err = env.tickets.GetEventTicketTypes(ctx, 999)
	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}
