package models

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes riders from drivers. A user has exactly one role.
type Role string

const (
	RoleRider  Role = "rider"
	RoleDriver Role = "driver"
)

// Person holds the identity fields shared by every role
type Person struct {
	FullName string `json:"full_name" db:"full_name"`
	Email    string `json:"email" db:"email"`
	Phone    string `json:"phone" db:"phone"`
}

// User represents a registered rider or driver. Identity is composed in
// rather than inherited.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Person    `json:"person"`
	Role      Role      `json:"role" db:"role"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Session carries the authenticated caller's identity through an operation.
// It replaces ambient logged-in-user state; handlers build it from the JWT
// and pass it explicitly into usecases.
type Session struct {
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

// IsDriver reports whether the session belongs to a driver
func (s Session) IsDriver() bool { return s.Role == RoleDriver }

// IsRider reports whether the session belongs to a rider
func (s Session) IsRider() bool { return s.Role == RoleRider }

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
	Password string `json:"password"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the minted token back to the client
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt int64     `json:"expires_at"`
	UserID    uuid.UUID `json:"user_id"`
	Role      Role      `json:"role"`
}
