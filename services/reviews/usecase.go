package reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// ReviewUC defines the review ledger contract
type ReviewUC interface {
	CreateReview(ctx context.Context, session models.Session, req models.ReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, session models.Session, reviewID uuid.UUID, req models.ReviewRequest) (*models.Review, error)
	ListTripReviews(ctx context.Context, tripID uuid.UUID) ([]models.Review, error)
}
