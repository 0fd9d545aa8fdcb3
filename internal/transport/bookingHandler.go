package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"event-ticketing/internal/entity"
	"event-ticketing/internal/service"
	"event-ticketing/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err.Error()))
		return
	}
	req.UserID = middleware.UserID(c)

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid booking id", entity.ErrInvalidInput))
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), bookingID, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "booking cancelled",
		Data:    booking,
	})
}

func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	bookings, err := h.bookingService.GetUserBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, bookings)
}

func (h *BookingHandler) GetEventBookings(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("event_id"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid event id", entity.ErrInvalidInput))
		return
	}

	bookings, err := h.bookingService.GetEventBookings(c.Request.Context(), eventID, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, bookings)
}
