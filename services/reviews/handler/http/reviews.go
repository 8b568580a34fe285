package http

import (
	gohttp "net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/piresc/nebengtrip/internal/pkg/middleware"
	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/internal/utils"
	"github.com/piresc/nebengtrip/services/reviews"
)

// ReviewsHandler handles HTTP requests for review operations
type ReviewsHandler struct {
	reviewUC reviews.ReviewUC
}

// NewReviewsHandler creates a new review HTTP handler
func NewReviewsHandler(reviewUC reviews.ReviewUC) *ReviewsHandler {
	return &ReviewsHandler{reviewUC: reviewUC}
}

// CreateReview records a rating for a trip
func (h *ReviewsHandler) CreateReview(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	review, err := h.reviewUC.CreateReview(c.Request().Context(), session, req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusCreated, "Review created", review)
}

// UpdateReview edits an existing review
func (h *ReviewsHandler) UpdateReview(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	reviewID, err := uuid.Parse(c.Param("reviewID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid review ID")
	}

	var req models.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	review, err := h.reviewUC.UpdateReview(c.Request().Context(), session, reviewID, req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "Review updated", review)
}

// ListTripReviews returns every review for a trip
func (h *ReviewsHandler) ListTripReviews(c echo.Context) error {
	tripID, err := uuid.Parse(c.Param("tripID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	results, err := h.reviewUC.ListTripReviews(c.Request().Context(), tripID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "", results)
}
