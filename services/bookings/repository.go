package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// BookingRepo defines the booking repository contract
type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error
	// AllocatedSeats sums nb_seats over the trip's non-cancelled bookings,
	// optionally excluding one booking (uuid.Nil excludes nothing). The
	// exclusion keeps a confirmation from double-counting its own
	// provisional hold.
	AllocatedSeats(ctx context.Context, tripID, excludeBooking uuid.UUID) (int, error)
	ListTripBookings(ctx context.Context, tripID uuid.UUID) ([]models.Booking, error)
	ListRiderBookings(ctx context.Context, riderID uuid.UUID) ([]models.Booking, error)
}

// TripReader is the slice of the trips repository the booking lifecycle
// needs: availability checks read the trip row but never write it.
type TripReader interface {
	GetTrip(ctx context.Context, id uuid.UUID) (*models.Trip, error)
}
