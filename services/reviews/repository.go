package reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// ReviewRepo defines the review repository contract
type ReviewRepo interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	ListTripReviews(ctx context.Context, tripID uuid.UUID) ([]models.Review, error)
	// HasConfirmedBooking reports whether the rider holds a CONFIRMED
	// booking for the trip; reviews may only be written by riders who
	// completed a booking.
	HasConfirmedBooking(ctx context.Context, riderID, tripID uuid.UUID) (bool, error)
}
