package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/piresc/nebengtrip/internal/pkg/errs"
	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// PaymentRepo is the Postgres-backed payment repository
type PaymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sqlx.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

// CreatePayment inserts a new payment
func (r *PaymentRepo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, refunded, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		payment.ID,
		payment.BookingID,
		payment.Amount,
		payment.Refunded,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by id
func (r *PaymentRepo) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	query := `
		SELECT id, booking_id, amount, refunded, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	payment := &models.Payment{}
	if err := r.db.GetContext(ctx, payment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundError{Resource: "payment", Err: err}
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// GetBookingPayment retrieves the latest payment recorded against a
// booking. Refund-then-repay cycles accumulate rows; the newest one is the
// booking's current payment.
func (r *PaymentRepo) GetBookingPayment(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error) {
	query := `
		SELECT id, booking_id, amount, refunded, created_at, updated_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	payment := &models.Payment{}
	if err := r.db.GetContext(ctx, payment, query, bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundError{Resource: "payment", Err: err}
		}
		return nil, fmt.Errorf("failed to get booking payment: %w", err)
	}
	return payment, nil
}

// GetActiveBookingPayment retrieves the booking's non-refunded payment.
// Refunded rows never match, so any row returned here blocks a new payment.
func (r *PaymentRepo) GetActiveBookingPayment(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error) {
	query := `
		SELECT id, booking_id, amount, refunded, created_at, updated_at
		FROM payments
		WHERE booking_id = $1 AND refunded = FALSE
	`

	payment := &models.Payment{}
	if err := r.db.GetContext(ctx, payment, query, bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundError{Resource: "payment", Err: err}
		}
		return nil, fmt.Errorf("failed to get active booking payment: %w", err)
	}
	return payment, nil
}

// SetRefunded flips the payment's refunded flag
func (r *PaymentRepo) SetRefunded(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE payments SET refunded = TRUE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to set payment refunded: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errs.NotFoundError{Resource: "payment"}
	}
	return nil
}
