package payments

import (
	"context"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// PaymentRepo defines the payment repository contract
type PaymentRepo interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	// GetBookingPayment returns the booking's latest payment, or a
	// NotFoundError when the booking has none. Refund-then-repay cycles
	// leave older refunded rows behind the latest one.
	GetBookingPayment(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error)
	// GetActiveBookingPayment returns the booking's non-refunded payment,
	// or a NotFoundError when none is active. At most one payment per
	// booking is ever active.
	GetActiveBookingPayment(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error)
	SetRefunded(ctx context.Context, id uuid.UUID) error
}

// BookingReader is the slice of the bookings repository the payment ledger
// needs for its confirmed-booking guard.
type BookingReader interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
}

// TripReader resolves the trip behind a booking to price the payment.
type TripReader interface {
	GetTrip(ctx context.Context, id uuid.UUID) (*models.Trip, error)
}
