package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/piresc/nebengtrip/internal/pkg/errs"
	"github.com/piresc/nebengtrip/internal/pkg/jwt"
	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/services/users"
)

// userUC implements users.UserUC
type userUC struct {
	cfg      *models.Config
	repo     users.UserRepo
	sessions users.SessionRepo
}

// NewUserUC creates a new user usecase
func NewUserUC(cfg *models.Config, repo users.UserRepo, sessions users.SessionRepo) users.UserUC {
	return &userUC{
		cfg:      cfg,
		repo:     repo,
		sessions: sessions,
	}
}

func validateRegisterRequest(req models.RegisterRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return errs.ValidationError{Field: "full_name", Msg: "must not be empty"}
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return errs.ValidationError{Field: "email", Msg: "must be a valid email address"}
	}
	if req.Role != models.RoleRider && req.Role != models.RoleDriver {
		return errs.ValidationError{Field: "role", Msg: "must be rider or driver"}
	}
	if len(req.Password) < 8 {
		return errs.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	return nil
}

// Register creates a new rider or driver account
func (uc *userUC) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := uc.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, errs.StateError{Resource: "user", Msg: "email already registered"}
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID: uuid.New(),
		Person: models.Person{
			FullName: strings.TrimSpace(req.FullName),
			Email:    email,
			Phone:    strings.TrimSpace(req.Phone),
		},
		Role:      req.Role,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials, mints a token and opens a server-side session
func (uc *userUC) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := uc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.StateError{Resource: "login", Msg: "invalid credentials"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errs.StateError{Resource: "login", Msg: "invalid credentials"}
	}

	token, expiresAt, err := jwt.GenerateToken(user.ID, user.Role, uc.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	session := models.Session{UserID: user.ID, Role: user.Role}
	ttl := time.Duration(uc.cfg.JWT.Expiration) * time.Minute
	if err := uc.sessions.SaveSession(ctx, session, ttl); err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Role:      user.Role,
	}, nil
}

// Logout drops the server-side session so the token stops working
func (uc *userUC) Logout(ctx context.Context, session models.Session) error {
	return uc.sessions.DeleteSession(ctx, session)
}

// GetProfile returns the caller's own user record
func (uc *userUC) GetProfile(ctx context.Context, session models.Session) (*models.User, error) {
	return uc.repo.GetUser(ctx, session.UserID)
}
