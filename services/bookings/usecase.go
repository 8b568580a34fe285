package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// BookingUC defines the seat inventory and booking lifecycle contract
type BookingUC interface {
	// Inventory
	RemainingSeats(ctx context.Context, tripID uuid.UUID) (int, error)
	CheckAvailability(ctx context.Context, tripID uuid.UUID, seats int) (bool, error)

	// Lifecycle
	CreateBooking(ctx context.Context, session models.Session, req models.BookingRequest) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, session models.Session, bookingID uuid.UUID) (*models.Booking, error)
	CancelBooking(ctx context.Context, session models.Session, bookingID uuid.UUID) (*models.Booking, error)

	// Queries
	GetBooking(ctx context.Context, session models.Session, bookingID uuid.UUID) (*models.Booking, error)
	ListTripBookings(ctx context.Context, session models.Session, tripID uuid.UUID) ([]models.Booking, error)
	ListRiderBookings(ctx context.Context, session models.Session) ([]models.Booking, error)
}
