package payments

import (
	"context"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// PaymentUC defines the payment ledger contract
type PaymentUC interface {
	RecordPayment(ctx context.Context, session models.Session, bookingID uuid.UUID) (*models.Payment, error)
	RefundPayment(ctx context.Context, session models.Session, paymentID uuid.UUID) (*models.Payment, error)
	GetBookingPayment(ctx context.Context, session models.Session, bookingID uuid.UUID) (*models.Payment, error)
}

// PaymentGW defines the payment event gateway contract
type PaymentGW interface {
	PublishPaymentRecorded(ctx context.Context, payment *models.Payment) error
	PublishPaymentRefunded(ctx context.Context, payment *models.Payment) error
}
