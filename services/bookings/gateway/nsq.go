package gateway

import (
	"context"
	"time"

	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/internal/pkg/nsq"
)

// BookingGW publishes booking lifecycle events to NSQ
type BookingGW struct {
	producer *nsq.Producer
}

// NewBookingGW creates a new booking gateway. A nil producer disables
// publishing.
func NewBookingGW(producer *nsq.Producer) *BookingGW {
	return &BookingGW{producer: producer}
}

func (g *BookingGW) publish(topic string, booking *models.Booking) error {
	if g.producer == nil {
		return nil
	}
	return g.producer.Publish(topic, models.BookingEvent{
		BookingID: booking.ID,
		TripID:    booking.TripID,
		RiderID:   booking.RiderID,
		NbSeats:   booking.NbSeats,
		Status:    booking.Status,
		Timestamp: time.Now().UTC(),
	})
}

// PublishBookingConfirmed publishes a booking.confirmed event
func (g *BookingGW) PublishBookingConfirmed(ctx context.Context, booking *models.Booking) error {
	return g.publish(models.TopicBookingConfirmed, booking)
}

// PublishBookingCancelled publishes a booking.cancelled event
func (g *BookingGW) PublishBookingCancelled(ctx context.Context, booking *models.Booking) error {
	return g.publish(models.TopicBookingCancelled, booking)
}
