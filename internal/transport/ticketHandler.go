package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"event-ticketing/internal/entity"
	"event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	ticketService service.TicketService
}

func NewTicketHandler(ticketService service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

func (h *TicketHandler) CreateTicketType(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid event id", entity.ErrInvalidInput))
		return
	}

	var req service.CreateTicketTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err.Error()))
		return
	}

	ticketType, err := h.ticketService.CreateTicketType(c.Request.Context(), eventID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, ticketType)
}

func (h *TicketHandler) GetEventTicketTypes(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid event id", entity.ErrInvalidInput))
		return
	}

	ticketTypes, err := h.ticketService.GetEventTicketTypes(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, ticketTypes)
}

func (h *TicketHandler) UpdateTicketType(c *gin.Context) {
	ticketTypeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid ticket type id", entity.ErrInvalidInput))
		return
	}

	// Only the allow-listed patch fields may appear in the body.
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()

	var patch service.TicketTypePatch
	if err := decoder.Decode(&patch); err != nil {
		respondError(c, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err.Error()))
		return
	}

	ticketType, err := h.ticketService.UpdateTicketType(c.Request.Context(), ticketTypeID, &patch)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, ticketType)
}

func (h *TicketHandler) DeleteTicketType(c *gin.Context) {
	ticketTypeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid ticket type id", entity.ErrInvalidInput))
		return
	}

	result, err := h.ticketService.DeleteTicketType(c.Request.Context(), ticketTypeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "ticket type deleted",
		Data:    result,
	})
}

func (h *TicketHandler) GetAvailability(c *gin.Context) {
	ticketTypeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid ticket type id", entity.ErrInvalidInput))
		return
	}

	availability, err := h.ticketService.GetTicketTypeAvailability(c.Request.Context(), ticketTypeID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, availability)
}
