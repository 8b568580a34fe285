package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/piresc/nebengtrip/internal/pkg/errs"
	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// ReviewRepo is the Postgres-backed review repository
type ReviewRepo struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sqlx.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// CreateReview inserts a new review
func (r *ReviewRepo) CreateReview(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (id, trip_id, rider_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.TripID,
		review.RiderID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetReview retrieves a review by id
func (r *ReviewRepo) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	query := `
		SELECT id, trip_id, rider_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	review := &models.Review{}
	if err := r.db.GetContext(ctx, review, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundError{Resource: "review", Err: err}
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

// UpdateReview persists rating and comment edits
func (r *ReviewRepo) UpdateReview(ctx context.Context, review *models.Review) error {
	query := `
		UPDATE reviews
		SET rating = $1, comment = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, review.Rating, review.Comment, review.UpdatedAt, review.ID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errs.NotFoundError{Resource: "review"}
	}
	return nil
}

// ListTripReviews returns every review written for the trip
func (r *ReviewRepo) ListTripReviews(ctx context.Context, tripID uuid.UUID) ([]models.Review, error) {
	query := `
		SELECT id, trip_id, rider_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE trip_id = $1
		ORDER BY created_at DESC
	`

	out := []models.Review{}
	if err := r.db.SelectContext(ctx, &out, query, tripID); err != nil {
		return nil, fmt.Errorf("failed to list trip reviews: %w", err)
	}
	return out, nil
}

// HasConfirmedBooking reports whether the rider holds a confirmed booking
// for the trip
func (r *ReviewRepo) HasConfirmedBooking(ctx context.Context, riderID, tripID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE rider_id = $1 AND trip_id = $2 AND status = $3
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, riderID, tripID, models.BookingStatusConfirmed)
	if err != nil {
		return false, fmt.Errorf("failed to check confirmed booking: %w", err)
	}
	return exists, nil
}
