package trips

import (
	"context"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// TripRepo defines the trip repository contract
type TripRepo interface {
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, id uuid.UUID) (*models.Trip, error)
	UpdateTrip(ctx context.Context, trip *models.Trip) error
	SetCancelled(ctx context.Context, id uuid.UUID, cancelled bool) error
	DeleteTripCascade(ctx context.Context, id uuid.UUID) (bool, error)
	AllocatedSeats(ctx context.Context, tripID uuid.UUID) (int, error)
	SearchTrips(ctx context.Context, from, to string) ([]models.Trip, error)
	ListDriverTrips(ctx context.Context, driverID uuid.UUID) ([]models.Trip, error)
}
