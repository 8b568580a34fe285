package models

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a driver-published ride offer with a fixed seat capacity.
// Seats remaining is never stored; it is derived from the trip's
// non-cancelled bookings at query time.
type Trip struct {
	ID             uuid.UUID `json:"id" db:"id"`
	DriverID       uuid.UUID `json:"driver_id" db:"driver_id"`
	DeparturePlace string    `json:"departure_place" db:"departure_place"`
	ArrivalPlace   string    `json:"arrival_place" db:"arrival_place"`
	DepartureTime  time.Time `json:"departure_time" db:"departure_time"`
	PricePerSeat   int64     `json:"price_per_seat" db:"price_per_seat"`
	Capacity       int       `json:"capacity" db:"capacity"`
	Cancelled      bool      `json:"cancelled" db:"cancelled"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// TripRequest is the payload for creating or updating a trip
type TripRequest struct {
	DeparturePlace string    `json:"departure_place"`
	ArrivalPlace   string    `json:"arrival_place"`
	DepartureTime  time.Time `json:"departure_time"`
	PricePerSeat   int64     `json:"price_per_seat"`
	Capacity       int       `json:"capacity"`
}

// TripAvailability is the response payload for availability queries
type TripAvailability struct {
	TripID         uuid.UUID `json:"trip_id"`
	RemainingSeats int       `json:"remaining_seats"`
	Available      bool      `json:"available"`
}
