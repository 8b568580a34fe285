package trips

import (
	"context"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// TripGW defines the trip event gateway contract
type TripGW interface {
	PublishTripCancelled(ctx context.Context, trip *models.Trip) error
}
