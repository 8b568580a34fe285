package bookings

import (
	"context"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// BookingGW defines the booking event gateway contract
type BookingGW interface {
	PublishBookingConfirmed(ctx context.Context, booking *models.Booking) error
	PublishBookingCancelled(ctx context.Context, booking *models.Booking) error
}
