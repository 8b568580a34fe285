package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/nebengtrip/internal/pkg/errs"
	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/internal/pkg/triplock"
)

// stubTripRepo is a hand-rolled trips.TripRepo for usecase tests
type stubTripRepo struct {
	trips      map[uuid.UUID]*models.Trip
	allocated  int
	cascadeErr error
	deleted    []uuid.UUID
	updated    *models.Trip
	cancelled  map[uuid.UUID]bool
}

func newStubTripRepo() *stubTripRepo {
	return &stubTripRepo{
		trips:     make(map[uuid.UUID]*models.Trip),
		cancelled: make(map[uuid.UUID]bool),
	}
}

func (s *stubTripRepo) CreateTrip(ctx context.Context, trip *models.Trip) error {
	s.trips[trip.ID] = trip
	return nil
}

func (s *stubTripRepo) GetTrip(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	trip, ok := s.trips[id]
	if !ok {
		return nil, errs.NotFoundError{Resource: "trip"}
	}
	cp := *trip
	return &cp, nil
}

func (s *stubTripRepo) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	s.updated = trip
	s.trips[trip.ID] = trip
	return nil
}

func (s *stubTripRepo) SetCancelled(ctx context.Context, id uuid.UUID, cancelled bool) error {
	if _, ok := s.trips[id]; !ok {
		return errs.NotFoundError{Resource: "trip"}
	}
	s.cancelled[id] = cancelled
	s.trips[id].Cancelled = cancelled
	return nil
}

func (s *stubTripRepo) DeleteTripCascade(ctx context.Context, id uuid.UUID) (bool, error) {
	if s.cascadeErr != nil {
		return false, s.cascadeErr
	}
	_, ok := s.trips[id]
	if ok {
		delete(s.trips, id)
		s.deleted = append(s.deleted, id)
	}
	return ok, nil
}

func (s *stubTripRepo) AllocatedSeats(ctx context.Context, tripID uuid.UUID) (int, error) {
	return s.allocated, nil
}

func (s *stubTripRepo) SearchTrips(ctx context.Context, from, to string) ([]models.Trip, error) {
	out := []models.Trip{}
	for _, trip := range s.trips {
		out = append(out, *trip)
	}
	return out, nil
}

func (s *stubTripRepo) ListDriverTrips(ctx context.Context, driverID uuid.UUID) ([]models.Trip, error) {
	out := []models.Trip{}
	for _, trip := range s.trips {
		if trip.DriverID == driverID {
			out = append(out, *trip)
		}
	}
	return out, nil
}

// stubTripGW records published events
type stubTripGW struct {
	cancelledEvents []uuid.UUID
}

func (s *stubTripGW) PublishTripCancelled(ctx context.Context, trip *models.Trip) error {
	s.cancelledEvents = append(s.cancelledEvents, trip.ID)
	return nil
}

func validRequest() models.TripRequest {
	return models.TripRequest{
		DeparturePlace: "Jakarta",
		ArrivalPlace:   "Bandung",
		DepartureTime:  time.Now().Add(24 * time.Hour),
		PricePerSeat:   50000,
		Capacity:       3,
	}
}

func driverSession() models.Session {
	return models.Session{UserID: uuid.New(), Role: models.RoleDriver}
}

func TestCreateTrip_DriverOnly(t *testing.T) {
	repo := newStubTripRepo()
	uc := NewTripUC(repo, &stubTripGW{}, triplock.NewRegistry())

	rider := models.Session{UserID: uuid.New(), Role: models.RoleRider}
	trip, err := uc.CreateTrip(context.Background(), rider, validRequest())
	assert.Nil(t, trip)
	assert.True(t, errs.IsState(err))
}

func TestCreateTrip_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(req *models.TripRequest)
	}{
		{name: "Empty Departure", mutate: func(req *models.TripRequest) { req.DeparturePlace = " " }},
		{name: "Empty Arrival", mutate: func(req *models.TripRequest) { req.ArrivalPlace = "" }},
		{name: "Zero Departure Time", mutate: func(req *models.TripRequest) { req.DepartureTime = time.Time{} }},
		{name: "Negative Price", mutate: func(req *models.TripRequest) { req.PricePerSeat = -1 }},
		{name: "Zero Capacity", mutate: func(req *models.TripRequest) { req.Capacity = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubTripRepo()
			uc := NewTripUC(repo, &stubTripGW{}, triplock.NewRegistry())

			req := validRequest()
			tc.mutate(&req)

			trip, err := uc.CreateTrip(context.Background(), driverSession(), req)
			assert.Nil(t, trip)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestCreateTrip_Success(t *testing.T) {
	repo := newStubTripRepo()
	uc := NewTripUC(repo, &stubTripGW{}, triplock.NewRegistry())

	session := driverSession()
	trip, err := uc.CreateTrip(context.Background(), session, validRequest())
	require.NoError(t, err)
	require.NotNil(t, trip)
	assert.Equal(t, session.UserID, trip.DriverID)
	assert.Equal(t, 3, trip.Capacity)
	assert.False(t, trip.Cancelled)
	assert.Contains(t, repo.trips, trip.ID)
}

func TestUpdateTrip_CapacityShrinkGuard(t *testing.T) {
	repo := newStubTripRepo()
	uc := NewTripUC(repo, &stubTripGW{}, triplock.NewRegistry())

	session := driverSession()
	trip, err := uc.CreateTrip(context.Background(), session, validRequest())
	require.NoError(t, err)

	// Two seats already held; shrinking capacity below them must fail.
	repo.allocated = 2

	req := validRequest()
	req.Capacity = 1
	updated, err := uc.UpdateTrip(context.Background(), session, trip.ID, req)
	assert.Nil(t, updated)
	require.True(t, errs.IsCapacity(err))
	assert.Equal(t, "capacity 1 is below the 2 seats already booked", err.Error())

	// Shrinking down to exactly the held seats is allowed.
	req.Capacity = 2
	updated, err = uc.UpdateTrip(context.Background(), session, trip.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Capacity)
}

func TestUpdateTrip_OwnershipGuard(t *testing.T) {
	repo := newStubTripRepo()
	uc := NewTripUC(repo, &stubTripGW{}, triplock.NewRegistry())

	owner := driverSession()
	trip, err := uc.CreateTrip(context.Background(), owner, validRequest())
	require.NoError(t, err)

	other := driverSession()
	updated, err := uc.UpdateTrip(context.Background(), other, trip.ID, validRequest())
	assert.Nil(t, updated)
	assert.True(t, errs.IsState(err))
}

func TestCancelTrip_PublishesEventAndIsIdempotent(t *testing.T) {
	repo := newStubTripRepo()
	gw := &stubTripGW{}
	uc := NewTripUC(repo, gw, triplock.NewRegistry())

	session := driverSession()
	trip, err := uc.CreateTrip(context.Background(), session, validRequest())
	require.NoError(t, err)

	require.NoError(t, uc.CancelTrip(context.Background(), session, trip.ID))
	assert.True(t, repo.cancelled[trip.ID])
	assert.Len(t, gw.cancelledEvents, 1)

	// Cancelling an already cancelled trip is not an error.
	require.NoError(t, uc.CancelTrip(context.Background(), session, trip.ID))
}

func TestReactivateTrip(t *testing.T) {
	repo := newStubTripRepo()
	uc := NewTripUC(repo, &stubTripGW{}, triplock.NewRegistry())

	session := driverSession()
	trip, err := uc.CreateTrip(context.Background(), session, validRequest())
	require.NoError(t, err)

	require.NoError(t, uc.CancelTrip(context.Background(), session, trip.ID))
	require.NoError(t, uc.ReactivateTrip(context.Background(), session, trip.ID))
	assert.False(t, repo.cancelled[trip.ID])
}

func TestDeleteTrip(t *testing.T) {
	t.Run("Existing Trip", func(t *testing.T) {
		repo := newStubTripRepo()
		uc := NewTripUC(repo, &stubTripGW{}, triplock.NewRegistry())

		session := driverSession()
		trip, err := uc.CreateTrip(context.Background(), session, validRequest())
		require.NoError(t, err)

		deleted, err := uc.DeleteTrip(context.Background(), session, trip.ID)
		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NotContains(t, repo.trips, trip.ID)
	})

	t.Run("Unknown Trip Reports False", func(t *testing.T) {
		repo := newStubTripRepo()
		uc := NewTripUC(repo, &stubTripGW{}, triplock.NewRegistry())

		deleted, err := uc.DeleteTrip(context.Background(), driverSession(), uuid.New())
		assert.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("Only Owner May Delete", func(t *testing.T) {
		repo := newStubTripRepo()
		uc := NewTripUC(repo, &stubTripGW{}, triplock.NewRegistry())

		owner := driverSession()
		trip, err := uc.CreateTrip(context.Background(), owner, validRequest())
		require.NoError(t, err)

		deleted, err := uc.DeleteTrip(context.Background(), driverSession(), trip.ID)
		assert.False(t, deleted)
		assert.True(t, errs.IsState(err))
		assert.Contains(t, repo.trips, trip.ID)
	})

	t.Run("Cascade Failure Surfaces As Transaction Error", func(t *testing.T) {
		repo := newStubTripRepo()
		uc := NewTripUC(repo, &stubTripGW{}, triplock.NewRegistry())

		session := driverSession()
		trip, err := uc.CreateTrip(context.Background(), session, validRequest())
		require.NoError(t, err)

		repo.cascadeErr = errors.New("deadlock detected")
		deleted, err := uc.DeleteTrip(context.Background(), session, trip.ID)
		assert.False(t, deleted)
		assert.True(t, errs.IsTx(err))
	})
}
