package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/piresc/nebengtrip/internal/pkg/database"
	"github.com/piresc/nebengtrip/internal/pkg/models"
)

const sessionKeyPrefix = "session:"

// SessionRepo is the Redis-backed session store. A live key means the
// token holder may keep calling authenticated endpoints; logout deletes
// the key and cuts the token off before its JWT expiry.
type SessionRepo struct {
	redis *database.RedisClient
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(redisClient *database.RedisClient) *SessionRepo {
	return &SessionRepo{redis: redisClient}
}

func sessionKey(session models.Session) string {
	return sessionKeyPrefix + session.UserID.String()
}

// SaveSession stores the session with the given TTL
func (r *SessionRepo) SaveSession(ctx context.Context, session models.Session, ttl time.Duration) error {
	if err := r.redis.Set(ctx, sessionKey(session), string(session.Role), ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// DeleteSession removes the session
func (r *SessionRepo) DeleteSession(ctx context.Context, session models.Session) error {
	if err := r.redis.Delete(ctx, sessionKey(session)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// SessionAlive reports whether a server-side session exists for the caller
func (r *SessionRepo) SessionAlive(ctx context.Context, session models.Session) (bool, error) {
	_, err := r.redis.Get(ctx, sessionKey(session))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return true, nil
}
