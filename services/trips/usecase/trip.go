package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/errs"
	"github.com/piresc/nebengtrip/internal/pkg/logger"
	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/internal/pkg/triplock"
	"github.com/piresc/nebengtrip/services/trips"
)

// tripUC implements the trips.TripUC interface
type tripUC struct {
	repo  trips.TripRepo
	gw    trips.TripGW
	locks *triplock.Registry
}

// NewTripUC creates a new trip use case
func NewTripUC(repo trips.TripRepo, gw trips.TripGW, locks *triplock.Registry) trips.TripUC {
	return &tripUC{
		repo:  repo,
		gw:    gw,
		locks: locks,
	}
}

func validateTripRequest(req models.TripRequest) error {
	if strings.TrimSpace(req.DeparturePlace) == "" {
		return errs.ValidationError{Field: "departure_place", Msg: "must not be empty"}
	}
	if strings.TrimSpace(req.ArrivalPlace) == "" {
		return errs.ValidationError{Field: "arrival_place", Msg: "must not be empty"}
	}
	if req.DepartureTime.IsZero() {
		return errs.ValidationError{Field: "departure_time", Msg: "must be set"}
	}
	if req.PricePerSeat < 0 {
		return errs.ValidationError{Field: "price_per_seat", Msg: "must not be negative"}
	}
	if req.Capacity <= 0 {
		return errs.ValidationError{Field: "capacity", Msg: "must be positive"}
	}
	return nil
}

// CreateTrip validates and persists a new trip for the session's driver
func (uc *tripUC) CreateTrip(ctx context.Context, session models.Session, req models.TripRequest) (*models.Trip, error) {
	if !session.IsDriver() {
		return nil, errs.StateError{Resource: "trip", Msg: "only drivers can publish trips"}
	}
	if err := validateTripRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	trip := &models.Trip{
		ID:             uuid.New(),
		DriverID:       session.UserID,
		DeparturePlace: strings.TrimSpace(req.DeparturePlace),
		ArrivalPlace:   strings.TrimSpace(req.ArrivalPlace),
		DepartureTime:  req.DepartureTime,
		PricePerSeat:   req.PricePerSeat,
		Capacity:       req.Capacity,
		Cancelled:      false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.repo.CreateTrip(ctx, trip); err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"trip_id":   trip.ID,
		"driver_id": trip.DriverID,
		"capacity":  trip.Capacity,
	}).Info("trip created")

	return trip, nil
}

// UpdateTrip validates and persists field edits. Capacity may not shrink
// below the seats already held by non-cancelled bookings; the check and the
// write are serialized per trip.
func (uc *tripUC) UpdateTrip(ctx context.Context, session models.Session, tripID uuid.UUID, req models.TripRequest) (*models.Trip, error) {
	if err := validateTripRequest(req); err != nil {
		return nil, err
	}

	uc.locks.Lock(tripID)
	defer uc.locks.Unlock(tripID)

	trip, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.DriverID != session.UserID {
		return nil, errs.StateError{Resource: "trip", Msg: "only the owning driver can modify a trip"}
	}

	if req.Capacity < trip.Capacity {
		allocated, err := uc.repo.AllocatedSeats(ctx, tripID)
		if err != nil {
			return nil, err
		}
		if req.Capacity < allocated {
			return nil, errs.CapacityError{
				Requested: allocated,
				Remaining: req.Capacity,
				Msg:       fmt.Sprintf("capacity %d is below the %d seats already booked", req.Capacity, allocated),
			}
		}
	}

	trip.DeparturePlace = strings.TrimSpace(req.DeparturePlace)
	trip.ArrivalPlace = strings.TrimSpace(req.ArrivalPlace)
	trip.DepartureTime = req.DepartureTime
	trip.PricePerSeat = req.PricePerSeat
	trip.Capacity = req.Capacity
	trip.UpdatedAt = time.Now()

	if err := uc.repo.UpdateTrip(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// CancelTrip sets the cancelled flag. Idempotent; existing bookings are left
// untouched, availability simply becomes permanently false.
func (uc *tripUC) CancelTrip(ctx context.Context, session models.Session, tripID uuid.UUID) error {
	trip, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.DriverID != session.UserID {
		return errs.StateError{Resource: "trip", Msg: "only the owning driver can cancel a trip"}
	}

	if err := uc.repo.SetCancelled(ctx, tripID, true); err != nil {
		return err
	}

	if uc.gw != nil {
		if err := uc.gw.PublishTripCancelled(ctx, trip); err != nil {
			logger.WithFields(map[string]interface{}{"trip_id": tripID}).
				Warn("failed to publish trip cancelled event: ", err)
		}
	}
	return nil
}

// ReactivateTrip clears the cancelled flag
func (uc *tripUC) ReactivateTrip(ctx context.Context, session models.Session, tripID uuid.UUID) error {
	trip, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.DriverID != session.UserID {
		return errs.StateError{Resource: "trip", Msg: "only the owning driver can reactivate a trip"}
	}
	return uc.repo.SetCancelled(ctx, tripID, false)
}

// DeleteTrip removes a trip and all dependent bookings, payments and
// reviews atomically. Returns whether the trip row was actually removed.
// No other operation on the trip may interleave mid-delete, so the trip
// lock is held for the whole cascade.
func (uc *tripUC) DeleteTrip(ctx context.Context, session models.Session, tripID uuid.UUID) (bool, error) {
	uc.locks.Lock(tripID)
	defer uc.locks.Unlock(tripID)

	trip, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		if errs.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if trip.DriverID != session.UserID {
		return false, errs.StateError{Resource: "trip", Msg: "only the owning driver can delete a trip"}
	}

	deleted, err := uc.repo.DeleteTripCascade(ctx, tripID)
	if err != nil {
		return false, errs.TxError{Op: "trip cascade delete", Err: err}
	}

	logger.WithFields(map[string]interface{}{
		"trip_id": tripID,
		"deleted": deleted,
	}).Info("trip cascade delete finished")

	return deleted, nil
}

// GetTrip retrieves a trip by id
func (uc *tripUC) GetTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error) {
	return uc.repo.GetTrip(ctx, tripID)
}

// SearchTrips matches future, bookable trips by place substrings
func (uc *tripUC) SearchTrips(ctx context.Context, from, to string) ([]models.Trip, error) {
	return uc.repo.SearchTrips(ctx, strings.TrimSpace(from), strings.TrimSpace(to))
}

// ListDriverTrips returns the session driver's published trips
func (uc *tripUC) ListDriverTrips(ctx context.Context, session models.Session) ([]models.Trip, error) {
	return uc.repo.ListDriverTrips(ctx, session.UserID)
}
