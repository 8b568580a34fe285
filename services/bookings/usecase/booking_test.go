package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/nebengtrip/internal/pkg/errs"
	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/internal/pkg/triplock"
)

// stubBookingRepo derives AllocatedSeats from its stored bookings, the same
// way the real repository sums rows.
type stubBookingRepo struct {
	bookings map[uuid.UUID]*models.Booking
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[uuid.UUID]*models.Booking)}
}

func (s *stubBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	cp := *booking
	s.bookings[booking.ID] = &cp
	return nil
}

func (s *stubBookingRepo) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return nil, errs.NotFoundError{Resource: "booking"}
	}
	cp := *booking
	return &cp, nil
}

func (s *stubBookingRepo) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error {
	booking, ok := s.bookings[id]
	if !ok {
		return errs.NotFoundError{Resource: "booking"}
	}
	booking.Status = status
	booking.Cancelled = status == models.BookingStatusCancelled
	return nil
}

func (s *stubBookingRepo) AllocatedSeats(ctx context.Context, tripID, excludeBooking uuid.UUID) (int, error) {
	total := 0
	for _, booking := range s.bookings {
		if booking.TripID != tripID || booking.ID == excludeBooking {
			continue
		}
		if booking.Status != models.BookingStatusCancelled {
			total += booking.NbSeats
		}
	}
	return total, nil
}

func (s *stubBookingRepo) ListTripBookings(ctx context.Context, tripID uuid.UUID) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, booking := range s.bookings {
		if booking.TripID == tripID {
			out = append(out, *booking)
		}
	}
	return out, nil
}

func (s *stubBookingRepo) ListRiderBookings(ctx context.Context, riderID uuid.UUID) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, booking := range s.bookings {
		if booking.RiderID == riderID {
			out = append(out, *booking)
		}
	}
	return out, nil
}

// stubTripReader serves trips by id
type stubTripReader struct {
	trips map[uuid.UUID]*models.Trip
}

func (s *stubTripReader) GetTrip(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	trip, ok := s.trips[id]
	if !ok {
		return nil, errs.NotFoundError{Resource: "trip"}
	}
	cp := *trip
	return &cp, nil
}

// stubBookingGW records published events
type stubBookingGW struct {
	confirmed []uuid.UUID
	cancelled []uuid.UUID
}

func (s *stubBookingGW) PublishBookingConfirmed(ctx context.Context, booking *models.Booking) error {
	s.confirmed = append(s.confirmed, booking.ID)
	return nil
}

func (s *stubBookingGW) PublishBookingCancelled(ctx context.Context, booking *models.Booking) error {
	s.cancelled = append(s.cancelled, booking.ID)
	return nil
}

type bookingFixture struct {
	uc     *bookingUC
	repo   *stubBookingRepo
	gw     *stubBookingGW
	trip   *models.Trip
	driver models.Session
}

func newBookingFixture(capacity int) *bookingFixture {
	driver := models.Session{UserID: uuid.New(), Role: models.RoleDriver}
	trip := &models.Trip{
		ID:             uuid.New(),
		DriverID:       driver.UserID,
		DeparturePlace: "Jakarta",
		ArrivalPlace:   "Bandung",
		DepartureTime:  time.Now().Add(24 * time.Hour),
		PricePerSeat:   50000,
		Capacity:       capacity,
	}

	repo := newStubBookingRepo()
	gw := &stubBookingGW{}
	reader := &stubTripReader{trips: map[uuid.UUID]*models.Trip{trip.ID: trip}}
	uc := NewBookingUC(repo, reader, gw, triplock.NewRegistry()).(*bookingUC)

	return &bookingFixture{uc: uc, repo: repo, gw: gw, trip: trip, driver: driver}
}

func riderSession() models.Session {
	return models.Session{UserID: uuid.New(), Role: models.RoleRider}
}

func (f *bookingFixture) book(t *testing.T, rider models.Session, seats int) *models.Booking {
	t.Helper()
	booking, err := f.uc.CreateBooking(context.Background(), rider, models.BookingRequest{
		TripID:  f.trip.ID,
		NbSeats: seats,
	})
	require.NoError(t, err)
	return booking
}

func TestRemainingSeats(t *testing.T) {
	f := newBookingFixture(3)

	remaining, err := f.uc.RemainingSeats(context.Background(), f.trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	booking := f.book(t, riderSession(), 2)
	_, err = f.uc.ConfirmBooking(context.Background(), f.driver, booking.ID)
	require.NoError(t, err)

	remaining, err = f.uc.RemainingSeats(context.Background(), f.trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	// Pending bookings hold seats too.
	f.book(t, riderSession(), 1)
	remaining, err = f.uc.RemainingSeats(context.Background(), f.trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestCheckAvailability(t *testing.T) {
	t.Run("Unknown Trip Is Unavailable Not An Error", func(t *testing.T) {
		f := newBookingFixture(3)
		available, err := f.uc.CheckAvailability(context.Background(), uuid.New(), 1)
		assert.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("Cancelled Trip Is Unavailable", func(t *testing.T) {
		f := newBookingFixture(3)
		f.trip.Cancelled = true
		available, err := f.uc.CheckAvailability(context.Background(), f.trip.ID, 1)
		assert.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("Departed Trip Is Unavailable", func(t *testing.T) {
		f := newBookingFixture(3)
		f.trip.DepartureTime = time.Now().Add(-time.Hour)
		available, err := f.uc.CheckAvailability(context.Background(), f.trip.ID, 1)
		assert.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("Seat Arithmetic", func(t *testing.T) {
		f := newBookingFixture(3)
		f.book(t, riderSession(), 2)

		available, err := f.uc.CheckAvailability(context.Background(), f.trip.ID, 1)
		assert.NoError(t, err)
		assert.True(t, available)

		available, err = f.uc.CheckAvailability(context.Background(), f.trip.ID, 2)
		assert.NoError(t, err)
		assert.False(t, available)
	})
}

func TestCreateBooking(t *testing.T) {
	t.Run("Riders Only", func(t *testing.T) {
		f := newBookingFixture(3)
		booking, err := f.uc.CreateBooking(context.Background(), f.driver, models.BookingRequest{
			TripID:  f.trip.ID,
			NbSeats: 1,
		})
		assert.Nil(t, booking)
		assert.True(t, errs.IsState(err))
	})

	t.Run("Seats Must Be Positive", func(t *testing.T) {
		f := newBookingFixture(3)
		booking, err := f.uc.CreateBooking(context.Background(), riderSession(), models.BookingRequest{
			TripID:  f.trip.ID,
			NbSeats: 0,
		})
		assert.Nil(t, booking)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("Unknown Trip", func(t *testing.T) {
		f := newBookingFixture(3)
		booking, err := f.uc.CreateBooking(context.Background(), riderSession(), models.BookingRequest{
			TripID:  uuid.New(),
			NbSeats: 1,
		})
		assert.Nil(t, booking)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("Cancelled Trip", func(t *testing.T) {
		f := newBookingFixture(3)
		f.trip.Cancelled = true
		booking, err := f.uc.CreateBooking(context.Background(), riderSession(), models.BookingRequest{
			TripID:  f.trip.ID,
			NbSeats: 1,
		})
		assert.Nil(t, booking)
		assert.True(t, errs.IsState(err))
	})

	t.Run("Insufficient Seats", func(t *testing.T) {
		f := newBookingFixture(3)
		f.book(t, riderSession(), 2)

		booking, err := f.uc.CreateBooking(context.Background(), riderSession(), models.BookingRequest{
			TripID:  f.trip.ID,
			NbSeats: 2,
		})
		assert.Nil(t, booking)
		require.True(t, errs.IsCapacity(err))
		assert.Contains(t, err.Error(), "requested 2, remaining 1")
	})

	t.Run("Pending Hold", func(t *testing.T) {
		f := newBookingFixture(3)
		rider := riderSession()
		booking := f.book(t, rider, 2)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.Equal(t, rider.UserID, booking.RiderID)
	})
}

func TestConfirmBooking(t *testing.T) {
	t.Run("Driver Of Trip Only", func(t *testing.T) {
		f := newBookingFixture(3)
		booking := f.book(t, riderSession(), 1)

		otherDriver := models.Session{UserID: uuid.New(), Role: models.RoleDriver}
		confirmed, err := f.uc.ConfirmBooking(context.Background(), otherDriver, booking.ID)
		assert.Nil(t, confirmed)
		assert.True(t, errs.IsState(err))
	})

	t.Run("Pending Only", func(t *testing.T) {
		f := newBookingFixture(3)
		booking := f.book(t, riderSession(), 1)

		_, err := f.uc.ConfirmBooking(context.Background(), f.driver, booking.ID)
		require.NoError(t, err)

		confirmed, err := f.uc.ConfirmBooking(context.Background(), f.driver, booking.ID)
		assert.Nil(t, confirmed)
		assert.True(t, errs.IsState(err))
	})

	t.Run("Own Hold Excluded From Revalidation", func(t *testing.T) {
		// A pending booking for the trip's whole capacity must still be
		// confirmable; its own seats do not count against it.
		f := newBookingFixture(3)
		booking := f.book(t, riderSession(), 3)

		confirmed, err := f.uc.ConfirmBooking(context.Background(), f.driver, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
		assert.Len(t, f.gw.confirmed, 1)
	})

	t.Run("Other Bookings Still Count", func(t *testing.T) {
		f := newBookingFixture(3)
		first := f.book(t, riderSession(), 2)
		second := f.book(t, riderSession(), 1)

		_, err := f.uc.ConfirmBooking(context.Background(), f.driver, first.ID)
		require.NoError(t, err)

		// Second rider's single seat still fits.
		_, err = f.uc.ConfirmBooking(context.Background(), f.driver, second.ID)
		assert.NoError(t, err)
	})
}

// flippingTripReader serves the original trip on the first read and the
// altered one afterwards, mimicking a concurrent change landing between the
// ownership check and the lock acquisition.
type flippingTripReader struct {
	first *models.Trip
	then  *models.Trip
	calls int
}

func (s *flippingTripReader) GetTrip(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	s.calls++
	trip := s.then
	if s.calls == 1 {
		trip = s.first
	}
	cp := *trip
	return &cp, nil
}

func TestConfirmBooking_TripCancelledBeforeLock(t *testing.T) {
	driver := models.Session{UserID: uuid.New(), Role: models.RoleDriver}
	active := &models.Trip{
		ID:            uuid.New(),
		DriverID:      driver.UserID,
		DepartureTime: time.Now().Add(24 * time.Hour),
		Capacity:      3,
	}
	cancelledCopy := *active
	cancelledCopy.Cancelled = true

	repo := newStubBookingRepo()
	booking := &models.Booking{
		ID:      uuid.New(),
		TripID:  active.ID,
		RiderID: uuid.New(),
		NbSeats: 1,
		Status:  models.BookingStatusPending,
	}
	require.NoError(t, repo.CreateBooking(context.Background(), booking))

	reader := &flippingTripReader{first: active, then: &cancelledCopy}
	uc := NewBookingUC(repo, reader, &stubBookingGW{}, triplock.NewRegistry()).(*bookingUC)

	// The ownership check sees the active trip; the validation under the
	// lock must see the cancelled one and refuse.
	confirmed, err := uc.ConfirmBooking(context.Background(), driver, booking.ID)
	assert.Nil(t, confirmed)
	require.True(t, errs.IsState(err))
	assert.Contains(t, err.Error(), "cancelled")

	stored, err := repo.GetBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, stored.Status)
}

func TestConfirmBooking_RacedByCompetitor(t *testing.T) {
	f := newBookingFixture(3)
	first := f.book(t, riderSession(), 2)
	second := f.book(t, riderSession(), 2)

	_, err := f.uc.ConfirmBooking(context.Background(), f.driver, first.ID)
	require.NoError(t, err)

	// First booking's confirmed seats leave only one free; the second
	// booking's two seats no longer fit.
	confirmed, err := f.uc.ConfirmBooking(context.Background(), f.driver, second.ID)
	assert.Nil(t, confirmed)
	assert.True(t, errs.IsCapacity(err))
}

func TestCancelBooking(t *testing.T) {
	t.Run("Rider Cancels Own Booking", func(t *testing.T) {
		f := newBookingFixture(3)
		rider := riderSession()
		booking := f.book(t, rider, 2)

		cancelled, err := f.uc.CancelBooking(context.Background(), rider, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
		assert.True(t, cancelled.Cancelled)
		assert.Len(t, f.gw.cancelled, 1)

		// The seats return to the pool.
		remaining, err := f.uc.RemainingSeats(context.Background(), f.trip.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, remaining)
	})

	t.Run("Driver Cancels Rider Booking", func(t *testing.T) {
		f := newBookingFixture(3)
		booking := f.book(t, riderSession(), 1)

		cancelled, err := f.uc.CancelBooking(context.Background(), f.driver, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	})

	t.Run("Stranger May Not Cancel", func(t *testing.T) {
		f := newBookingFixture(3)
		booking := f.book(t, riderSession(), 1)

		stranger := riderSession()
		cancelled, err := f.uc.CancelBooking(context.Background(), stranger, booking.ID)
		assert.Nil(t, cancelled)
		assert.True(t, errs.IsState(err))
	})

	t.Run("Already Cancelled", func(t *testing.T) {
		f := newBookingFixture(3)
		rider := riderSession()
		booking := f.book(t, rider, 1)

		_, err := f.uc.CancelBooking(context.Background(), rider, booking.ID)
		require.NoError(t, err)

		cancelled, err := f.uc.CancelBooking(context.Background(), rider, booking.ID)
		assert.Nil(t, cancelled)
		assert.True(t, errs.IsState(err))
	})
}

func TestGetBooking_Access(t *testing.T) {
	f := newBookingFixture(3)
	rider := riderSession()
	booking := f.book(t, rider, 1)

	got, err := f.uc.GetBooking(context.Background(), rider, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	got, err = f.uc.GetBooking(context.Background(), f.driver, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	stranger := riderSession()
	got, err = f.uc.GetBooking(context.Background(), stranger, booking.ID)
	assert.Nil(t, got)
	assert.True(t, errs.IsNotFound(err))
}

func TestListTripBookings_DriverOnly(t *testing.T) {
	f := newBookingFixture(3)
	f.book(t, riderSession(), 1)

	list, err := f.uc.ListTripBookings(context.Background(), f.driver, f.trip.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.uc.ListTripBookings(context.Background(), riderSession(), f.trip.ID)
	assert.True(t, errs.IsState(err))
}
