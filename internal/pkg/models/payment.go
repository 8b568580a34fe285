package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment represents a settlement recorded against a confirmed booking.
// Refund is a one-way flag flip; no reversal entry is written.
type Payment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BookingID uuid.UUID `json:"booking_id" db:"booking_id"`
	Amount    int64     `json:"amount" db:"amount"`
	Refunded  bool      `json:"refunded" db:"refunded"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Review represents a rider's rating of a trip they hold a confirmed
// booking for. Ratings run 1 to 5.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TripID    uuid.UUID `json:"trip_id" db:"trip_id"`
	RiderID   uuid.UUID `json:"rider_id" db:"rider_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ReviewRequest is the payload for creating or editing a review
type ReviewRequest struct {
	TripID  uuid.UUID `json:"trip_id"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
}
