package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/piresc/nebengtrip/services/reviews"
	httpHandler "github.com/piresc/nebengtrip/services/reviews/handler/http"
)

// Handler combines all handlers for the reviews service
type Handler struct {
	reviewsHTTP *httpHandler.ReviewsHandler
}

// NewHandler creates a new combined handler
func NewHandler(reviewUC reviews.ReviewUC) *Handler {
	return &Handler{reviewsHTTP: httpHandler.NewReviewsHandler(reviewUC)}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/trips/:tripID/reviews", h.reviewsHTTP.ListTripReviews)

	authed := e.Group("", auth)
	authed.POST("/reviews", h.reviewsHTTP.CreateReview)
	authed.PUT("/reviews/:reviewID", h.reviewsHTTP.UpdateReview)
}
