package models

import (
	"time"

	"github.com/google/uuid"
)

// Event topics published to NSQ
const (
	TopicTripCancelled    = "trip.cancelled"
	TopicBookingConfirmed = "booking.confirmed"
	TopicBookingCancelled = "booking.cancelled"
	TopicPaymentRecorded  = "payment.recorded"
	TopicPaymentRefunded  = "payment.refunded"
)

// TripEvent is published on trip lifecycle changes
type TripEvent struct {
	TripID    uuid.UUID `json:"trip_id"`
	DriverID  uuid.UUID `json:"driver_id"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingEvent is published on booking lifecycle changes
type BookingEvent struct {
	BookingID uuid.UUID     `json:"booking_id"`
	TripID    uuid.UUID     `json:"trip_id"`
	RiderID   uuid.UUID     `json:"rider_id"`
	NbSeats   int           `json:"nb_seats"`
	Status    BookingStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}

// PaymentEvent is published when a payment is recorded or refunded
type PaymentEvent struct {
	PaymentID uuid.UUID `json:"payment_id"`
	BookingID uuid.UUID `json:"booking_id"`
	Amount    int64     `json:"amount"`
	Refunded  bool      `json:"refunded"`
	Timestamp time.Time `json:"timestamp"`
}
