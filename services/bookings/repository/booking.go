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

// BookingRepo is the Postgres-backed booking repository
type BookingRepo struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *sqlx.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// CreateBooking inserts a new booking
func (r *BookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, trip_id, rider_id, nb_seats, status, cancelled, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		booking.ID,
		booking.TripID,
		booking.RiderID,
		booking.NbSeats,
		booking.Status,
		booking.Cancelled,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetBooking retrieves a booking by id
func (r *BookingRepo) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := `
		SELECT id, trip_id, rider_id, nb_seats, status, cancelled, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	booking := &models.Booking{}
	if err := r.db.GetContext(ctx, booking, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundError{Resource: "booking", Err: err}
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatus moves a booking to the given status. The cancelled
// flag is kept in lockstep with the status.
func (r *BookingRepo) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, cancelled = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, status, status == models.BookingStatusCancelled, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errs.NotFoundError{Resource: "booking"}
	}
	return nil
}

// AllocatedSeats sums the seats held by the trip's non-cancelled bookings,
// optionally excluding one booking id.
func (r *BookingRepo) AllocatedSeats(ctx context.Context, tripID, excludeBooking uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(nb_seats), 0)
		FROM bookings
		WHERE trip_id = $1 AND status != $2 AND id != $3
	`

	var allocated int
	err := r.db.GetContext(ctx, &allocated, query, tripID, models.BookingStatusCancelled, excludeBooking)
	if err != nil {
		return 0, fmt.Errorf("failed to sum allocated seats: %w", err)
	}
	return allocated, nil
}

// ListTripBookings returns every booking on the trip
func (r *BookingRepo) ListTripBookings(ctx context.Context, tripID uuid.UUID) ([]models.Booking, error) {
	query := `
		SELECT id, trip_id, rider_id, nb_seats, status, cancelled, created_at, updated_at
		FROM bookings
		WHERE trip_id = $1
		ORDER BY created_at ASC
	`

	out := []models.Booking{}
	if err := r.db.SelectContext(ctx, &out, query, tripID); err != nil {
		return nil, fmt.Errorf("failed to list trip bookings: %w", err)
	}
	return out, nil
}

// ListRiderBookings returns every booking made by the rider
func (r *BookingRepo) ListRiderBookings(ctx context.Context, riderID uuid.UUID) ([]models.Booking, error) {
	query := `
		SELECT id, trip_id, rider_id, nb_seats, status, cancelled, created_at, updated_at
		FROM bookings
		WHERE rider_id = $1
		ORDER BY created_at DESC
	`

	out := []models.Booking{}
	if err := r.db.SelectContext(ctx, &out, query, riderID); err != nil {
		return nil, fmt.Errorf("failed to list rider bookings: %w", err)
	}
	return out, nil
}
