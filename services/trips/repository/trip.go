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

// TripRepo is the Postgres-backed trip repository
type TripRepo struct {
	db *sqlx.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sqlx.DB) *TripRepo {
	return &TripRepo{db: db}
}

// CreateTrip inserts a new trip
func (r *TripRepo) CreateTrip(ctx context.Context, trip *models.Trip) error {
	query := `
		INSERT INTO trips (
			id, driver_id, departure_place, arrival_place, departure_time,
			price_per_seat, capacity, cancelled, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		trip.ID,
		trip.DriverID,
		trip.DeparturePlace,
		trip.ArrivalPlace,
		trip.DepartureTime,
		trip.PricePerSeat,
		trip.Capacity,
		trip.Cancelled,
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by id
func (r *TripRepo) GetTrip(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	query := `
		SELECT id, driver_id, departure_place, arrival_place, departure_time,
		       price_per_seat, capacity, cancelled, created_at, updated_at
		FROM trips
		WHERE id = $1
	`

	trip := &models.Trip{}
	if err := r.db.GetContext(ctx, trip, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundError{Resource: "trip", Err: err}
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

// UpdateTrip persists the trip's editable fields
func (r *TripRepo) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	query := `
		UPDATE trips
		SET departure_place = $1, arrival_place = $2, departure_time = $3,
		    price_per_seat = $4, capacity = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		trip.DeparturePlace,
		trip.ArrivalPlace,
		trip.DepartureTime,
		trip.PricePerSeat,
		trip.Capacity,
		trip.UpdatedAt,
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errs.NotFoundError{Resource: "trip"}
	}
	return nil
}

// SetCancelled flips the trip's cancelled flag. Idempotent.
func (r *TripRepo) SetCancelled(ctx context.Context, id uuid.UUID, cancelled bool) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE trips SET cancelled = $1, updated_at = NOW() WHERE id = $2`,
		cancelled,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to set trip cancelled flag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errs.NotFoundError{Resource: "trip"}
	}
	return nil
}

// AllocatedSeats returns the sum of seats held by the trip's non-cancelled
// bookings. Pending bookings count; a pending request provisionally holds
// its seats.
func (r *TripRepo) AllocatedSeats(ctx context.Context, tripID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(nb_seats), 0)
		FROM bookings
		WHERE trip_id = $1 AND status != $2
	`

	var allocated int
	if err := r.db.GetContext(ctx, &allocated, query, tripID, models.BookingStatusCancelled); err != nil {
		return 0, fmt.Errorf("failed to sum allocated seats: %w", err)
	}
	return allocated, nil
}

// DeleteTripCascade removes the trip together with every row that references
// it: payments of the trip's bookings first, then bookings, then reviews,
// then the trip itself. The whole sequence runs in one transaction; any
// failure rolls back every step. Returns whether the trip row existed.
func (r *TripRepo) DeleteTripCascade(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Detect dependents before deleting, in FK dependency order.
	var deps struct {
		Bookings int `db:"bookings"`
		Payments int `db:"payments"`
		Reviews  int `db:"reviews"`
	}
	err = tx.QueryRowxContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM bookings WHERE trip_id = $1) AS bookings,
			(SELECT COUNT(*) FROM payments WHERE booking_id IN (SELECT id FROM bookings WHERE trip_id = $1)) AS payments,
			(SELECT COUNT(*) FROM reviews WHERE trip_id = $1) AS reviews
	`, id).StructScan(&deps)
	if err != nil {
		return false, fmt.Errorf("failed to count trip dependents: %w", err)
	}

	if deps.Payments > 0 {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM payments
			WHERE booking_id IN (SELECT id FROM bookings WHERE trip_id = $1)
		`, id)
		if err != nil {
			return false, fmt.Errorf("failed to delete payments: %w", err)
		}
	}

	if deps.Bookings > 0 {
		_, err = tx.ExecContext(ctx, `DELETE FROM bookings WHERE trip_id = $1`, id)
		if err != nil {
			return false, fmt.Errorf("failed to delete bookings: %w", err)
		}
	}

	if deps.Reviews > 0 {
		_, err = tx.ExecContext(ctx, `DELETE FROM reviews WHERE trip_id = $1`, id)
		if err != nil {
			return false, fmt.Errorf("failed to delete reviews: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete trip: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rows > 0, nil
}

// SearchTrips returns future, non-cancelled trips whose places contain the
// given substrings. Empty filters match everything.
func (r *TripRepo) SearchTrips(ctx context.Context, from, to string) ([]models.Trip, error) {
	query := `
		SELECT id, driver_id, departure_place, arrival_place, departure_time,
		       price_per_seat, capacity, cancelled, created_at, updated_at
		FROM trips
		WHERE cancelled = FALSE
		  AND departure_time > NOW()
		  AND departure_place ILIKE '%' || $1 || '%'
		  AND arrival_place ILIKE '%' || $2 || '%'
		ORDER BY departure_time ASC
	`

	trips := []models.Trip{}
	if err := r.db.SelectContext(ctx, &trips, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to search trips: %w", err)
	}
	return trips, nil
}

// ListDriverTrips returns every trip published by the driver
func (r *TripRepo) ListDriverTrips(ctx context.Context, driverID uuid.UUID) ([]models.Trip, error) {
	query := `
		SELECT id, driver_id, departure_place, arrival_place, departure_time,
		       price_per_seat, capacity, cancelled, created_at, updated_at
		FROM trips
		WHERE driver_id = $1
		ORDER BY departure_time DESC
	`

	trips := []models.Trip{}
	if err := r.db.SelectContext(ctx, &trips, query, driverID); err != nil {
		return nil, fmt.Errorf("failed to list driver trips: %w", err)
	}
	return trips, nil
}
