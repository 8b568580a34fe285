package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/errs"
	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/services/reviews"
)

// reviewUC implements the reviews.ReviewUC interface
type reviewUC struct {
	repo reviews.ReviewRepo
}

// NewReviewUC creates a new review use case
func NewReviewUC(repo reviews.ReviewRepo) reviews.ReviewUC {
	return &reviewUC{repo: repo}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errs.ValidationError{Field: "rating", Msg: "must be between 1 and 5"}
	}
	return nil
}

// CreateReview records a rating for a trip. The rider must hold a
// confirmed booking for that trip.
func (uc *reviewUC) CreateReview(ctx context.Context, session models.Session, req models.ReviewRequest) (*models.Review, error) {
	if !session.IsRider() {
		return nil, errs.StateError{Resource: "review", Msg: "only riders can review trips"}
	}
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}

	confirmed, err := uc.repo.HasConfirmedBooking(ctx, session.UserID, req.TripID)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, errs.StateError{Resource: "review", Msg: "no confirmed booking for this trip"}
	}

	now := time.Now()
	review := &models.Review{
		ID:        uuid.New(),
		TripID:    req.TripID,
		RiderID:   session.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview edits an existing review's rating and comment
func (uc *reviewUC) UpdateReview(ctx context.Context, session models.Session, reviewID uuid.UUID, req models.ReviewRequest) (*models.Review, error) {
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}

	review, err := uc.repo.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.RiderID != session.UserID {
		return nil, errs.StateError{Resource: "review", Msg: "only the author can edit a review"}
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	review.UpdatedAt = time.Now()

	if err := uc.repo.UpdateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListTripReviews returns every review written for the trip
func (uc *reviewUC) ListTripReviews(ctx context.Context, tripID uuid.UUID) ([]models.Review, error) {
	return uc.repo.ListTripReviews(ctx, tripID)
}
