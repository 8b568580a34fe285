package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/piresc/nebengtrip/services/payments"
	httpHandler "github.com/piresc/nebengtrip/services/payments/handler/http"
)

// Handler combines all handlers for the payments service
type Handler struct {
	paymentsHTTP *httpHandler.PaymentsHandler
}

// NewHandler creates a new combined handler
func NewHandler(paymentUC payments.PaymentUC) *Handler {
	return &Handler{paymentsHTTP: httpHandler.NewPaymentsHandler(paymentUC)}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	authed := e.Group("", auth)
	authed.POST("/bookings/:bookingID/payment", h.paymentsHTTP.RecordPayment)
	authed.GET("/bookings/:bookingID/payment", h.paymentsHTTP.GetBookingPayment)
	authed.POST("/payments/:paymentID/refund", h.paymentsHTTP.RefundPayment)
}
