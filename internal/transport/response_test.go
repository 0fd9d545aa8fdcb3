package transport

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"event-ticketing/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "event not found", err: entity.ErrEventNotFound, want: http.StatusNotFound},
		{name: "ticket type not found", err: entity.ErrTicketTypeNotFound, want: http.StatusNotFound},
		{name: "booking not found", err: entity.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "user not found", err: entity.ErrUserNotFound, want: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", entity.ErrEventNotFound), want: http.StatusNotFound},
		{name: "invalid input", err: entity.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "capacity error", err: &entity.CapacityError{Scope: entity.CapacityScopeTicketType, Remaining: 4}, want: http.StatusConflict},
		{name: "limit error", err: &entity.LimitError{TotalLimit: 11, Capacity: 10}, want: http.StatusConflict},
		{name: "ticket type in use", err: entity.ErrTicketTypeInUse, want: http.StatusConflict},
		{name: "unauthorized", err: entity.ErrUnauthorized, want: http.StatusForbidden},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
