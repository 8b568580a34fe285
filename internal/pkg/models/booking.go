package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking represents a rider's claim on a number of seats of a trip.
// The cancelled flag mirrors the status for legacy consumers; status is
// authoritative.
type Booking struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	TripID    uuid.UUID     `json:"trip_id" db:"trip_id"`
	RiderID   uuid.UUID     `json:"rider_id" db:"rider_id"`
	NbSeats   int           `json:"nb_seats" db:"nb_seats"`
	Status    BookingStatus `json:"status" db:"status"`
	Cancelled bool          `json:"cancelled" db:"cancelled"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// BookingRequest is the payload for creating a booking
type BookingRequest struct {
	TripID  uuid.UUID `json:"trip_id"`
	NbSeats int       `json:"nb_seats"`
}
