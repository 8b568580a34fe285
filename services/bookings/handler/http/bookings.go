package http

import (
	gohttp "net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/piresc/nebengtrip/internal/pkg/middleware"
	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/internal/utils"
	"github.com/piresc/nebengtrip/services/bookings"
)

// BookingsHandler handles HTTP requests for booking operations
type BookingsHandler struct {
	bookingUC bookings.BookingUC
}

// NewBookingsHandler creates a new booking HTTP handler
func NewBookingsHandler(bookingUC bookings.BookingUC) *BookingsHandler {
	return &BookingsHandler{bookingUC: bookingUC}
}

// CheckAvailability answers "can N seats still be booked on this trip"
func (h *BookingsHandler) CheckAvailability(c echo.Context) error {
	tripID, err := uuid.Parse(c.Param("tripID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	seats := 1
	if raw := c.QueryParam("seats"); raw != "" {
		seats, err = strconv.Atoi(raw)
		if err != nil || seats <= 0 {
			return utils.BadRequestResponse(c, "Invalid seats parameter")
		}
	}

	available, err := h.bookingUC.CheckAvailability(c.Request().Context(), tripID, seats)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	resp := models.TripAvailability{TripID: tripID, Available: available}
	if remaining, err := h.bookingUC.RemainingSeats(c.Request().Context(), tripID); err == nil {
		resp.RemainingSeats = remaining
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "", resp)
}

// CreateBooking handles a rider's booking request
func (h *BookingsHandler) CreateBooking(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.BookingRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	booking, err := h.bookingUC.CreateBooking(c.Request().Context(), session, req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusCreated, "Booking created", booking)
}

// ConfirmBooking handles booking confirmation by the trip's driver
func (h *BookingsHandler) ConfirmBooking(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid booking ID")
	}

	booking, err := h.bookingUC.ConfirmBooking(c.Request().Context(), session, bookingID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "Booking confirmed", booking)
}

// CancelBooking handles booking cancellation
func (h *BookingsHandler) CancelBooking(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid booking ID")
	}

	booking, err := h.bookingUC.CancelBooking(c.Request().Context(), session, bookingID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "Booking cancelled", booking)
}

// GetBooking returns a single booking
func (h *BookingsHandler) GetBooking(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid booking ID")
	}

	booking, err := h.bookingUC.GetBooking(c.Request().Context(), session, bookingID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "", booking)
}

// ListTripBookings returns a trip's bookings to its driver
func (h *BookingsHandler) ListTripBookings(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	tripID, err := uuid.Parse(c.Param("tripID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	results, err := h.bookingUC.ListTripBookings(c.Request().Context(), session, tripID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "", results)
}

// ListRiderBookings returns the authenticated rider's bookings
func (h *BookingsHandler) ListRiderBookings(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	results, err := h.bookingUC.ListRiderBookings(c.Request().Context(), session)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "", results)
}
