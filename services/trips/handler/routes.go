package handler

import (
	"github.com/labstack/echo/v4"

	httpHandler "github.com/piresc/nebengtrip/services/trips/handler/http"

	"github.com/piresc/nebengtrip/services/trips"
)

// Handler combines all handlers for the trips service
type Handler struct {
	tripsHTTP *httpHandler.TripsHandler
}

// NewHandler creates a new combined handler
func NewHandler(tripUC trips.TripUC) *Handler {
	return &Handler{tripsHTTP: httpHandler.NewTripsHandler(tripUC)}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	// Public trip queries
	e.GET("/trips", h.tripsHTTP.SearchTrips)
	e.GET("/trips/:tripID", h.tripsHTTP.GetTrip)

	// Driver-facing lifecycle operations
	authed := e.Group("", auth)
	authed.POST("/trips", h.tripsHTTP.CreateTrip)
	authed.PUT("/trips/:tripID", h.tripsHTTP.UpdateTrip)
	authed.POST("/trips/:tripID/cancel", h.tripsHTTP.CancelTrip)
	authed.POST("/trips/:tripID/reactivate", h.tripsHTTP.ReactivateTrip)
	authed.DELETE("/trips/:tripID", h.tripsHTTP.DeleteTrip)
	authed.GET("/drivers/me/trips", h.tripsHTTP.ListDriverTrips)
}
