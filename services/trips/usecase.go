package trips

import (
	"context"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// TripUC defines the trip lifecycle contract
type TripUC interface {
	CreateTrip(ctx context.Context, session models.Session, req models.TripRequest) (*models.Trip, error)
	UpdateTrip(ctx context.Context, session models.Session, tripID uuid.UUID, req models.TripRequest) (*models.Trip, error)
	CancelTrip(ctx context.Context, session models.Session, tripID uuid.UUID) error
	ReactivateTrip(ctx context.Context, session models.Session, tripID uuid.UUID) error
	DeleteTrip(ctx context.Context, session models.Session, tripID uuid.UUID) (bool, error)
	GetTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error)
	SearchTrips(ctx context.Context, from, to string) ([]models.Trip, error)
	ListDriverTrips(ctx context.Context, session models.Session) ([]models.Trip, error)
}
