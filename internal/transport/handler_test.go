package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event-ticketing/internal/database/memory"
	"event-ticketing/internal/entity"
	"event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerEnv struct {
	router   *gin.Engine
	store    *memory.Store
	bookings service.BookingService
	tickets  service.TicketService
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	eventService := service.NewEventService(store.Events(), store.Bookings())
	ticketService := service.NewTicketService(store.TicketTypes(), store.Events(), store.Bookings())
	bookingService := service.NewBookingService(store.Bookings(), store.Events(), store.TicketTypes(), store.Users(), nil)
	userService := service.NewUserService(store.Users())

	router := gin.New()

	// Routes mounted without the auth middleware; the identity the
	// middleware would extract is injected directly.
	asUser := func(userID int64) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user_id", userID)
			c.Set("user_role", entity.UserRoleOrganizer)
			c.Next()
		}
	}

	eventHandler := NewEventHandler(eventService)
	ticketHandler := NewTicketHandler(ticketService)
	bookingHandler := NewBookingHandler(bookingService)
	userHandler := NewUserHandler(userService, "test-secret", time.Hour)

	router.POST("/events/:id/tickets", asUser(1), ticketHandler.CreateTicketType)
	router.PATCH("/tickets/:id", asUser(1), ticketHandler.UpdateTicketType)
	router.DELETE("/tickets/:id", asUser(1), ticketHandler.DeleteTicketType)
	router.GET("/tickets/:id/availability", ticketHandler.GetAvailability)
	router.POST("/bookings", asUser(2), bookingHandler.CreateBooking)
	router.GET("/events/:id", eventHandler.GetEvent)
	router.POST("/users/register", userHandler.RegisterUser)

	return &handlerEnv{
		router:   router,
		store:    store,
		bookings: bookingService,
		tickets:  ticketService,
	}
}

func (e *handlerEnv) seed(t *testing.T, capacity, limit int) *entity.TicketType {
	t.Helper()
	ctx := context.Background()

	organizer := &entity.User{Email: "organizer@example.com", Name: "Org", Role: entity.UserRoleOrganizer}
	require.NoError(t, e.store.Users().Create(ctx, organizer))
	attendee := &entity.User{Email: "attendee@example.com", Name: "Att", Role: entity.UserRoleAttendee}
	require.NoError(t, e.store.Users().Create(ctx, attendee))

	event := &entity.Event{Title: "Show", Location: "Hall", Category: "music", DateTime: time.Now().Add(time.Hour), Capacity: capacity, CreatedBy: organizer.ID}
	require.NoError(t, e.store.Events().Create(ctx, event))

	ticketType := &entity.TicketType{EventID: event.ID, Category: entity.TicketCategoryRegular, Price: decimal.NewFromInt(10), Limit: limit}
	require.NoError(t, e.store.TicketTypes().Create(ctx, ticketType))
	return ticketType
}

func (e *handlerEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingEndpoint(t *testing.T) {
	env := newHandlerEnv(t)
	ticketType := env.seed(t, 10, 10)

	rec := env.do(http.MethodPost, "/bookings", gin.H{
		"event_id":       ticketType.EventID,
		"ticket_type_id": ticketType.ID,
		"quantity":       4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    entity.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 4, resp.Data.Quantity)
	assert.Equal(t, entity.BookingStatusBooked, resp.Data.Status)
	assert.Equal(t, "40", resp.Data.TotalPrice.String())
}

func TestCreateBookingEndpointCapacityConflict(t *testing.T) {
	env := newHandlerEnv(t)
	ticketType := env.seed(t, 10, 10)

	rec := env.do(http.MethodPost, "/bookings", gin.H{
		"event_id":       ticketType.EventID,
		"ticket_type_id": ticketType.ID,
		"quantity":       7,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPost, "/bookings", gin.H{
		"event_id":       ticketType.EventID,
		"ticket_type_id": ticketType.ID,
		"quantity":       7,
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "only 3 tickets available for this ticket type", resp.Error)
}

func TestUpdateTicketTypeEndpointRejectsUnknownFields(t *testing.T) {
	env := newHandlerEnv(t)
	ticketType := env.seed(t, 10, 10)

	rec := env.do(http.MethodPatch, "/tickets/1", gin.H{
		"limit":    5,
		"capacity": 500,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The rejected patch must not have been applied.
	availability, err := env.tickets.GetTicketTypeAvailability(context.Background(), ticketType.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, availability.TicketType.Limit)
}

func TestDeleteTicketTypeEndpoint(t *testing.T) {
	env := newHandlerEnv(t)
	env.seed(t, 10, 10)

	rec := env.do(http.MethodDelete, "/tickets/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                           `json:"success"`
		Data    service.DeleteTicketTypeResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 20, resp.Data.RemainingCapacity)

	rec = env.do(http.MethodDelete, "/tickets/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAvailabilityEndpointBadID(t *testing.T) {
	env := newHandlerEnv(t)

	rec := env.do(http.MethodGet, "/tickets/abc/availability", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/tickets/999/availability", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterUserEndpoint(t *testing.T) {
	env := newHandlerEnv(t)

	rec := env.do(http.MethodPost, "/users/register", gin.H{
		"email": "new@example.com",
		"name":  "New User",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data struct {
			User  entity.User `json:"user"`
			Token string      `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, entity.UserRoleAttendee, resp.Data.User.Role)
	assert.NotEmpty(t, resp.Data.Token)

	rec = env.do(http.MethodPost, "/users/register", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
