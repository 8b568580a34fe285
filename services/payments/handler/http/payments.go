package http

import (
	gohttp "net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/piresc/nebengtrip/internal/pkg/middleware"
	"github.com/piresc/nebengtrip/internal/utils"
	"github.com/piresc/nebengtrip/services/payments"
)

// PaymentsHandler handles HTTP requests for payment operations
type PaymentsHandler struct {
	paymentUC payments.PaymentUC
}

// NewPaymentsHandler creates a new payment HTTP handler
func NewPaymentsHandler(paymentUC payments.PaymentUC) *PaymentsHandler {
	return &PaymentsHandler{paymentUC: paymentUC}
}

// RecordPayment settles a confirmed booking
func (h *PaymentsHandler) RecordPayment(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid booking ID")
	}

	payment, err := h.paymentUC.RecordPayment(c.Request().Context(), session, bookingID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusCreated, "Payment recorded", payment)
}

// RefundPayment flips a payment's refunded flag
func (h *PaymentsHandler) RefundPayment(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	paymentID, err := uuid.Parse(c.Param("paymentID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid payment ID")
	}

	payment, err := h.paymentUC.RefundPayment(c.Request().Context(), session, paymentID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "Payment refunded", payment)
}

// GetBookingPayment returns the payment recorded against a booking
func (h *PaymentsHandler) GetBookingPayment(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid booking ID")
	}

	payment, err := h.paymentUC.GetBookingPayment(c.Request().Context(), session, bookingID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "", payment)
}
