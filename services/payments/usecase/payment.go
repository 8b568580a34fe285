package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/errs"
	"github.com/piresc/nebengtrip/internal/pkg/logger"
	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/services/payments"
)

// paymentUC implements the payments.PaymentUC interface
type paymentUC struct {
	repo     payments.PaymentRepo
	bookings payments.BookingReader
	trips    payments.TripReader
	gw       payments.PaymentGW
}

// NewPaymentUC creates a new payment use case
func NewPaymentUC(repo payments.PaymentRepo, bookings payments.BookingReader, trips payments.TripReader, gw payments.PaymentGW) payments.PaymentUC {
	return &paymentUC{
		repo:     repo,
		bookings: bookings,
		trips:    trips,
		gw:       gw,
	}
}

// RecordPayment settles a confirmed booking. The amount is the trip's price
// per seat times the booked seats. A booking can hold at most one
// non-refunded payment.
func (uc *paymentUC) RecordPayment(ctx context.Context, session models.Session, bookingID uuid.UUID) (*models.Payment, error) {
	booking, err := uc.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RiderID != session.UserID {
		return nil, errs.StateError{Resource: "payment", Msg: "only the booking's rider can pay"}
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, errs.StateError{Resource: "payment", Msg: "booking is not confirmed"}
	}

	// Refunded rows do not block a new payment, so the guard must query for
	// the active one explicitly rather than pick an arbitrary row.
	existing, err := uc.repo.GetActiveBookingPayment(ctx, bookingID)
	if err != nil && !errs.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, errs.StateError{Resource: "payment", Msg: "booking already has an active payment"}
	}

	trip, err := uc.trips.GetTrip(ctx, booking.TripID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &models.Payment{
		ID:        uuid.New(),
		BookingID: bookingID,
		Amount:    trip.PricePerSeat * int64(booking.NbSeats),
		Refunded:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"payment_id": payment.ID,
		"booking_id": bookingID,
		"amount":     payment.Amount,
	}).Info("payment recorded")

	if uc.gw != nil {
		if err := uc.gw.PublishPaymentRecorded(ctx, payment); err != nil {
			logger.WithFields(map[string]interface{}{"payment_id": payment.ID}).
				Warn("failed to publish payment recorded event: ", err)
		}
	}
	return payment, nil
}

// RefundPayment flips the refunded flag. The stored amount is not reversed;
// downstream reporting consumes the payment.refunded event instead.
func (uc *paymentUC) RefundPayment(ctx context.Context, session models.Session, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Refunded {
		return nil, errs.StateError{Resource: "payment", Msg: "payment is already refunded"}
	}

	booking, err := uc.bookings.GetBooking(ctx, payment.BookingID)
	if err != nil {
		return nil, err
	}
	trip, err := uc.trips.GetTrip(ctx, booking.TripID)
	if err != nil {
		return nil, err
	}
	if trip.DriverID != session.UserID && booking.RiderID != session.UserID {
		return nil, errs.StateError{Resource: "payment", Msg: "only the trip's driver or the booking's rider can refund"}
	}

	if err := uc.repo.SetRefunded(ctx, paymentID); err != nil {
		return nil, err
	}
	payment.Refunded = true

	if uc.gw != nil {
		if err := uc.gw.PublishPaymentRefunded(ctx, payment); err != nil {
			logger.WithFields(map[string]interface{}{"payment_id": paymentID}).
				Warn("failed to publish payment refunded event: ", err)
		}
	}
	return payment, nil
}

// GetBookingPayment returns the booking's payment to its rider or the
// trip's driver
func (uc *paymentUC) GetBookingPayment(ctx context.Context, session models.Session, bookingID uuid.UUID) (*models.Payment, error) {
	booking, err := uc.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.RiderID != session.UserID {
		trip, err := uc.trips.GetTrip(ctx, booking.TripID)
		if err != nil {
			return nil, err
		}
		if trip.DriverID != session.UserID {
			return nil, errs.NotFoundError{Resource: "payment"}
		}
	}
	return uc.repo.GetBookingPayment(ctx, bookingID)
}
