package users

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// UserRepo defines the user repository contract
type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionRepo defines the server-side session store contract
type SessionRepo interface {
	SaveSession(ctx context.Context, session models.Session, ttl time.Duration) error
	DeleteSession(ctx context.Context, session models.Session) error
	SessionAlive(ctx context.Context, session models.Session) (bool, error)
}
