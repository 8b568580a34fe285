package gateway

import (
	"context"
	"time"

	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/internal/pkg/nsq"
)

// TripGW publishes trip lifecycle events to NSQ
type TripGW struct {
	producer *nsq.Producer
}

// NewTripGW creates a new trip gateway. A nil producer disables publishing.
func NewTripGW(producer *nsq.Producer) *TripGW {
	return &TripGW{producer: producer}
}

// PublishTripCancelled publishes a trip.cancelled event
func (g *TripGW) PublishTripCancelled(ctx context.Context, trip *models.Trip) error {
	if g.producer == nil {
		return nil
	}
	return g.producer.Publish(models.TopicTripCancelled, models.TripEvent{
		TripID:    trip.ID,
		DriverID:  trip.DriverID,
		Timestamp: time.Now().UTC(),
	})
}
