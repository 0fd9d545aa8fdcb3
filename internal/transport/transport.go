package transport

import (
	"time"

	"event-ticketing/internal/entity"
	"event-ticketing/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

// RouterConfig carries the transport-level knobs the router needs.
type RouterConfig struct {
	JWTSecret      string
	RequestTimeout time.Duration
}

func InitRoutes(cfg RouterConfig, eventHandler *EventHandler, ticketHandler *TicketHandler, bookingHandler *BookingHandler, userHandler *UserHandler) *gin.Engine {

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	authenticated := middleware.Auth(cfg.JWTSecret)
	organizerOnly := middleware.RequireRole(entity.UserRoleOrganizer, entity.UserRoleAdmin)

	api := router.Group("/api/v1")
	{
		events := api.Group("/events")
		{
			events.GET("", eventHandler.GetAllEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.GET("/:id/tickets", ticketHandler.GetEventTicketTypes)
			events.POST("", authenticated, organizerOnly, eventHandler.CreateEvent)
			events.POST("/:id/tickets", authenticated, organizerOnly, ticketHandler.CreateTicketType)
		}

		tickets := api.Group("/tickets")
		{
			tickets.GET("/:id/availability", ticketHandler.GetAvailability)
			tickets.PATCH("/:id", authenticated, organizerOnly, ticketHandler.UpdateTicketType)
			tickets.DELETE("/:id", authenticated, organizerOnly, ticketHandler.DeleteTicketType)
		}

		bookings := api.Group("/bookings", authenticated)
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("", bookingHandler.GetUserBookings)
			bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
			bookings.GET("/event/:event_id", bookingHandler.GetEventBookings)
		}

		users := api.Group("/users")
		{
			users.POST("/register", userHandler.RegisterUser)
			users.GET("/:id", authenticated, userHandler.GetUser)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
