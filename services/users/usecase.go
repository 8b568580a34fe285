package users

import (
	"context"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// UserUC defines the user and session management contract
type UserUC interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, session models.Session) error
	GetProfile(ctx context.Context, session models.Session) (*models.User, error)
}
