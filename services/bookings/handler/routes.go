package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/piresc/nebengtrip/services/bookings"
	httpHandler "github.com/piresc/nebengtrip/services/bookings/handler/http"
)

// Handler combines all handlers for the bookings service
type Handler struct {
	bookingsHTTP *httpHandler.BookingsHandler
}

// NewHandler creates a new combined handler
func NewHandler(bookingUC bookings.BookingUC) *Handler {
	return &Handler{bookingsHTTP: httpHandler.NewBookingsHandler(bookingUC)}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	// Availability is a public inventory query
	e.GET("/trips/:tripID/availability", h.bookingsHTTP.CheckAvailability)

	authed := e.Group("", auth)
	authed.POST("/bookings", h.bookingsHTTP.CreateBooking)
	authed.GET("/bookings", h.bookingsHTTP.ListRiderBookings)
	authed.GET("/bookings/:bookingID", h.bookingsHTTP.GetBooking)
	authed.POST("/bookings/:bookingID/confirm", h.bookingsHTTP.ConfirmBooking)
	authed.POST("/bookings/:bookingID/cancel", h.bookingsHTTP.CancelBooking)
	authed.GET("/trips/:tripID/bookings", h.bookingsHTTP.ListTripBookings)
}
