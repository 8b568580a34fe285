package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/nebengtrip/internal/pkg/errs"
	"github.com/piresc/nebengtrip/internal/pkg/models"
)

func setupPaymentRepoTest(t *testing.T) (*PaymentRepo, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewPaymentRepository(sqlxDB)

	cleanup := func() {
		sqlxDB.Close()
	}
	return repo, mock, cleanup
}

func TestCreatePayment(t *testing.T) {
	repo, mock, cleanup := setupPaymentRepoTest(t)
	defer cleanup()

	payment := &models.Payment{
		ID:        uuid.New(),
		BookingID: uuid.New(),
		Amount:    100000,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	mock.ExpectExec("^INSERT INTO payments").
		WithArgs(
			payment.ID, payment.BookingID, payment.Amount, payment.Refunded,
			payment.CreatedAt, payment.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreatePayment(context.Background(), payment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingPayment(t *testing.T) {
	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock, bookingID uuid.UUID)
		assertFunc func(t *testing.T, payment *models.Payment, err error)
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock, bookingID uuid.UUID) {
				rows := sqlmock.NewRows([]string{"id", "booking_id", "amount", "refunded", "created_at", "updated_at"}).
					AddRow(uuid.New(), bookingID, int64(100000), false, time.Now(), time.Now())
				mock.ExpectQuery("^SELECT (.+) FROM payments (.+) ORDER BY created_at DESC LIMIT 1").
					WithArgs(bookingID).
					WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, payment *models.Payment, err error) {
				assert.NoError(t, err)
				require.NotNil(t, payment)
				assert.Equal(t, int64(100000), payment.Amount)
				assert.False(t, payment.Refunded)
			},
		},
		{
			name: "No Payment Recorded",
			mockSetup: func(mock sqlmock.Sqlmock, bookingID uuid.UUID) {
				mock.ExpectQuery("^SELECT (.+) FROM payments").
					WithArgs(bookingID).
					WillReturnError(sql.ErrNoRows)
			},
			assertFunc: func(t *testing.T, payment *models.Payment, err error) {
				assert.Nil(t, payment)
				assert.True(t, errs.IsNotFound(err))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupPaymentRepoTest(t)
			defer cleanup()

			bookingID := uuid.New()
			tc.mockSetup(mock, bookingID)

			payment, err := repo.GetBookingPayment(context.Background(), bookingID)
			tc.assertFunc(t, payment, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetActiveBookingPayment(t *testing.T) {
	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock, bookingID uuid.UUID)
		assertFunc func(t *testing.T, payment *models.Payment, err error)
	}{
		{
			name: "Active Payment Found",
			mockSetup: func(mock sqlmock.Sqlmock, bookingID uuid.UUID) {
				rows := sqlmock.NewRows([]string{"id", "booking_id", "amount", "refunded", "created_at", "updated_at"}).
					AddRow(uuid.New(), bookingID, int64(100000), false, time.Now(), time.Now())
				mock.ExpectQuery("FROM payments WHERE booking_id = (.+) AND refunded = FALSE").
					WithArgs(bookingID).
					WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, payment *models.Payment, err error) {
				assert.NoError(t, err)
				require.NotNil(t, payment)
				assert.False(t, payment.Refunded)
			},
		},
		{
			name: "Only Refunded Rows Behave As None",
			mockSetup: func(mock sqlmock.Sqlmock, bookingID uuid.UUID) {
				mock.ExpectQuery("FROM payments WHERE booking_id = (.+) AND refunded = FALSE").
					WithArgs(bookingID).
					WillReturnError(sql.ErrNoRows)
			},
			assertFunc: func(t *testing.T, payment *models.Payment, err error) {
				assert.Nil(t, payment)
				assert.True(t, errs.IsNotFound(err))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupPaymentRepoTest(t)
			defer cleanup()

			bookingID := uuid.New()
			tc.mockSetup(mock, bookingID)

			payment, err := repo.GetActiveBookingPayment(context.Background(), bookingID)
			tc.assertFunc(t, payment, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSetRefunded(t *testing.T) {
	repo, mock, cleanup := setupPaymentRepoTest(t)
	defer cleanup()

	paymentID := uuid.New()
	mock.ExpectExec("^UPDATE payments SET refunded").
		WithArgs(paymentID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetRefunded(context.Background(), paymentID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetRefunded_NotFound(t *testing.T) {
	repo, mock, cleanup := setupPaymentRepoTest(t)
	defer cleanup()

	paymentID := uuid.New()
	mock.ExpectExec("^UPDATE payments SET refunded").
		WithArgs(paymentID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetRefunded(context.Background(), paymentID)
	assert.True(t, errs.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
