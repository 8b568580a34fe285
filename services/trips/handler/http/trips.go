package http

import (
	gohttp "net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/piresc/nebengtrip/internal/pkg/middleware"
	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/internal/utils"
	"github.com/piresc/nebengtrip/services/trips"
)

// TripsHandler handles HTTP requests for trip operations
type TripsHandler struct {
	tripUC trips.TripUC
}

// NewTripsHandler creates a new trip HTTP handler
func NewTripsHandler(tripUC trips.TripUC) *TripsHandler {
	return &TripsHandler{tripUC: tripUC}
}

// CreateTrip handles trip publication by a driver
func (h *TripsHandler) CreateTrip(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.TripRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	trip, err := h.tripUC.CreateTrip(c.Request().Context(), session, req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusCreated, "Trip created", trip)
}

// UpdateTrip handles trip field edits
func (h *TripsHandler) UpdateTrip(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	tripID, err := uuid.Parse(c.Param("tripID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	var req models.TripRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	trip, err := h.tripUC.UpdateTrip(c.Request().Context(), session, tripID, req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "Trip updated", trip)
}

// CancelTrip handles trip cancellation
func (h *TripsHandler) CancelTrip(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	tripID, err := uuid.Parse(c.Param("tripID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	if err := h.tripUC.CancelTrip(c.Request().Context(), session, tripID); err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "Trip cancelled", nil)
}

// ReactivateTrip clears a trip's cancelled flag
func (h *TripsHandler) ReactivateTrip(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	tripID, err := uuid.Parse(c.Param("tripID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	if err := h.tripUC.ReactivateTrip(c.Request().Context(), session, tripID); err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "Trip reactivated", nil)
}

// DeleteTrip handles cascading trip deletion
func (h *TripsHandler) DeleteTrip(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	tripID, err := uuid.Parse(c.Param("tripID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	deleted, err := h.tripUC.DeleteTrip(c.Request().Context(), session, tripID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	if !deleted {
		return utils.NotFoundResponse(c, "Trip not found")
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "Trip deleted", nil)
}

// GetTrip returns a single trip
func (h *TripsHandler) GetTrip(c echo.Context) error {
	tripID, err := uuid.Parse(c.Param("tripID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	trip, err := h.tripUC.GetTrip(c.Request().Context(), tripID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "", trip)
}

// SearchTrips matches future trips by departure/arrival substrings
func (h *TripsHandler) SearchTrips(c echo.Context) error {
	from := c.QueryParam("from")
	to := c.QueryParam("to")

	results, err := h.tripUC.SearchTrips(c.Request().Context(), from, to)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "", results)
}

// ListDriverTrips returns the authenticated driver's trips
func (h *TripsHandler) ListDriverTrips(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	results, err := h.tripUC.ListDriverTrips(c.Request().Context(), session)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "", results)
}
