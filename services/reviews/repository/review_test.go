package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

func setupReviewRepoTest(t *testing.T) (*ReviewRepo, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewReviewRepository(sqlxDB)

	cleanup := func() {
		sqlxDB.Close()
	}
	return repo, mock, cleanup
}

func TestCreateReview(t *testing.T) {
	repo, mock, cleanup := setupReviewRepoTest(t)
	defer cleanup()

	review := &models.Review{
		ID:        uuid.New(),
		TripID:    uuid.New(),
		RiderID:   uuid.New(),
		Rating:    5,
		Comment:   "smooth ride",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	mock.ExpectExec("^INSERT INTO reviews").
		WithArgs(
			review.ID, review.TripID, review.RiderID, review.Rating,
			review.Comment, review.CreatedAt, review.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateReview(context.Background(), review)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasConfirmedBooking(t *testing.T) {
	testCases := []struct {
		name   string
		exists bool
	}{
		{name: "Rider Has Confirmed Booking", exists: true},
		{name: "Rider Has No Confirmed Booking", exists: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupReviewRepoTest(t)
			defer cleanup()

			riderID := uuid.New()
			tripID := uuid.New()
			rows := sqlmock.NewRows([]string{"exists"}).AddRow(tc.exists)
			mock.ExpectQuery("^SELECT EXISTS").
				WithArgs(riderID, tripID, models.BookingStatusConfirmed).
				WillReturnRows(rows)

			exists, err := repo.HasConfirmedBooking(context.Background(), riderID, tripID)
			assert.NoError(t, err)
			assert.Equal(t, tc.exists, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListTripReviews(t *testing.T) {
	repo, mock, cleanup := setupReviewRepoTest(t)
	defer cleanup()

	tripID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "trip_id", "rider_id", "rating", "comment", "created_at", "updated_at"}).
		AddRow(uuid.New(), tripID, uuid.New(), 4, "on time", time.Now(), time.Now()).
		AddRow(uuid.New(), tripID, uuid.New(), 5, "", time.Now(), time.Now())

	mock.ExpectQuery("^SELECT (.+) FROM reviews").
		WithArgs(tripID).
		WillReturnRows(rows)

	reviews, err := repo.ListTripReviews(context.Background(), tripID)
	assert.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
