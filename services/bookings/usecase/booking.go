package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/errs"
	"github.com/piresc/nebengtrip/internal/pkg/logger"
	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/internal/pkg/triplock"
	"github.com/piresc/nebengtrip/services/bookings"
)

// bookingUC implements the bookings.BookingUC interface. Every
// read-check-write sequence runs under the trip's lock so two concurrent
// requests cannot both pass the availability check and jointly overbook.
type bookingUC struct {
	repo  bookings.BookingRepo
	trips bookings.TripReader
	gw    bookings.BookingGW
	locks *triplock.Registry
}

// NewBookingUC creates a new booking use case
func NewBookingUC(repo bookings.BookingRepo, trips bookings.TripReader, gw bookings.BookingGW, locks *triplock.Registry) bookings.BookingUC {
	return &bookingUC{
		repo:  repo,
		trips: trips,
		gw:    gw,
		locks: locks,
	}
}

// RemainingSeats derives the trip's free seat count: capacity minus the
// seats held by non-cancelled bookings. Pending bookings hold their seats.
func (uc *bookingUC) RemainingSeats(ctx context.Context, tripID uuid.UUID) (int, error) {
	trip, err := uc.trips.GetTrip(ctx, tripID)
	if err != nil {
		return 0, err
	}

	allocated, err := uc.repo.AllocatedSeats(ctx, tripID, uuid.Nil)
	if err != nil {
		return 0, err
	}
	return trip.Capacity - allocated, nil
}

// CheckAvailability reports whether the trip can take the requested seats.
// A non-existent trip yields false, not an error.
func (uc *bookingUC) CheckAvailability(ctx context.Context, tripID uuid.UUID, seats int) (bool, error) {
	trip, err := uc.trips.GetTrip(ctx, tripID)
	if err != nil {
		if errs.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	if trip.Cancelled || !trip.DepartureTime.After(time.Now()) {
		return false, nil
	}

	allocated, err := uc.repo.AllocatedSeats(ctx, tripID, uuid.Nil)
	if err != nil {
		return false, err
	}
	return trip.Capacity-allocated >= seats, nil
}

// checkBookable validates that the trip can take the requested seats,
// excluding one booking's own hold from the allocated sum. Callers must
// hold the trip lock.
func (uc *bookingUC) checkBookable(ctx context.Context, trip *models.Trip, seats int, excludeBooking uuid.UUID) error {
	if trip.Cancelled {
		return errs.StateError{Resource: "trip", Msg: "trip is cancelled"}
	}
	if !trip.DepartureTime.After(time.Now()) {
		return errs.StateError{Resource: "trip", Msg: "trip has already departed"}
	}

	allocated, err := uc.repo.AllocatedSeats(ctx, trip.ID, excludeBooking)
	if err != nil {
		return err
	}
	if remaining := trip.Capacity - allocated; remaining < seats {
		return errs.CapacityError{Requested: seats, Remaining: remaining}
	}
	return nil
}

// CreateBooking persists a pending booking after the availability check.
// The booking immediately holds its seats against the trip's capacity.
func (uc *bookingUC) CreateBooking(ctx context.Context, session models.Session, req models.BookingRequest) (*models.Booking, error) {
	if !session.IsRider() {
		return nil, errs.StateError{Resource: "booking", Msg: "only riders can book seats"}
	}
	if req.NbSeats <= 0 {
		return nil, errs.ValidationError{Field: "nb_seats", Msg: "must be positive"}
	}

	uc.locks.Lock(req.TripID)
	defer uc.locks.Unlock(req.TripID)

	trip, err := uc.trips.GetTrip(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	if err := uc.checkBookable(ctx, trip, req.NbSeats, uuid.Nil); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		ID:        uuid.New(),
		TripID:    req.TripID,
		RiderID:   session.UserID,
		NbSeats:   req.NbSeats,
		Status:    models.BookingStatusPending,
		Cancelled: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"booking_id": booking.ID,
		"trip_id":    booking.TripID,
		"nb_seats":   booking.NbSeats,
	}).Info("booking created")

	return booking, nil
}

// ConfirmBooking moves a pending booking to confirmed. Availability is
// always re-validated here, excluding this booking's own provisional hold:
// other bookings may have consumed capacity between creation and
// confirmation.
func (uc *bookingUC) ConfirmBooking(ctx context.Context, session models.Session, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	trip, err := uc.trips.GetTrip(ctx, booking.TripID)
	if err != nil {
		return nil, err
	}
	if trip.DriverID != session.UserID {
		return nil, errs.StateError{Resource: "booking", Msg: "only the trip's driver can confirm a booking"}
	}

	uc.locks.Lock(booking.TripID)
	defer uc.locks.Unlock(booking.TripID)

	// Re-read both rows under the lock; a concurrent booking cancel or trip
	// cancel/edit may have raced us here.
	booking, err = uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, errs.StateError{Resource: "booking", Msg: "only pending bookings can be confirmed"}
	}
	trip, err = uc.trips.GetTrip(ctx, booking.TripID)
	if err != nil {
		return nil, err
	}

	if err := uc.checkBookable(ctx, trip, booking.NbSeats, booking.ID); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBookingStatus(ctx, bookingID, models.BookingStatusConfirmed); err != nil {
		return nil, err
	}
	booking.Status = models.BookingStatusConfirmed

	if uc.gw != nil {
		if err := uc.gw.PublishBookingConfirmed(ctx, booking); err != nil {
			logger.WithFields(map[string]interface{}{"booking_id": bookingID}).
				Warn("failed to publish booking confirmed event: ", err)
		}
	}
	return booking, nil
}

// CancelBooking moves a booking to cancelled from either pending or
// confirmed. Its seats return to the pool through the derived count. An
// attached payment is left alone; refunding is an explicit, separate call.
func (uc *bookingUC) CancelBooking(ctx context.Context, session models.Session, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.RiderID != session.UserID {
		trip, err := uc.trips.GetTrip(ctx, booking.TripID)
		if err != nil {
			return nil, err
		}
		if trip.DriverID != session.UserID {
			return nil, errs.StateError{Resource: "booking", Msg: "only the rider or the trip's driver can cancel a booking"}
		}
	}

	uc.locks.Lock(booking.TripID)
	defer uc.locks.Unlock(booking.TripID)

	booking, err = uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, errs.StateError{Resource: "booking", Msg: "booking is already cancelled"}
	}

	if err := uc.repo.UpdateBookingStatus(ctx, bookingID, models.BookingStatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = models.BookingStatusCancelled
	booking.Cancelled = true

	if uc.gw != nil {
		if err := uc.gw.PublishBookingCancelled(ctx, booking); err != nil {
			logger.WithFields(map[string]interface{}{"booking_id": bookingID}).
				Warn("failed to publish booking cancelled event: ", err)
		}
	}
	return booking, nil
}

// GetBooking returns a booking to its rider or to the trip's driver
func (uc *bookingUC) GetBooking(ctx context.Context, session models.Session, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.RiderID != session.UserID {
		trip, err := uc.trips.GetTrip(ctx, booking.TripID)
		if err != nil {
			return nil, err
		}
		if trip.DriverID != session.UserID {
			return nil, errs.NotFoundError{Resource: "booking"}
		}
	}
	return booking, nil
}

// ListTripBookings returns the trip's bookings to its driver
func (uc *bookingUC) ListTripBookings(ctx context.Context, session models.Session, tripID uuid.UUID) ([]models.Booking, error) {
	trip, err := uc.trips.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.DriverID != session.UserID {
		return nil, errs.StateError{Resource: "trip", Msg: "only the owning driver can list a trip's bookings"}
	}
	return uc.repo.ListTripBookings(ctx, tripID)
}

// ListRiderBookings returns the session rider's bookings
func (uc *bookingUC) ListRiderBookings(ctx context.Context, session models.Session) ([]models.Booking, error) {
	return uc.repo.ListRiderBookings(ctx, session.UserID)
}
