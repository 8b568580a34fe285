package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/piresc/nebengtrip/internal/pkg/jwt"
	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/internal/utils"
)

const sessionContextKey = "session"

// SessionChecker verifies that a server-side session still exists for the
// user; logout revokes tokens before they expire.
type SessionChecker interface {
	SessionAlive(ctx context.Context, session models.Session) (bool, error)
}

// AuthMiddleware validates the bearer token and attaches the resulting
// Session to the echo context.
func AuthMiddleware(cfg *models.Config, checker SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Missing authorization header")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return utils.UnauthorizedResponse(c, "Invalid authorization header format")
			}

			session, err := jwt.ValidateToken(tokenString, cfg.JWT.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid or expired token")
			}

			if checker != nil {
				alive, err := checker.SessionAlive(c.Request().Context(), session)
				if err != nil {
					return utils.InternalServerErrorResponse(c, "Failed to verify session")
				}
				if !alive {
					return utils.UnauthorizedResponse(c, "Session expired")
				}
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// SessionFromContext extracts the authenticated session set by
// AuthMiddleware.
func SessionFromContext(c echo.Context) (models.Session, bool) {
	session, ok := c.Get(sessionContextKey).(models.Session)
	return session, ok
}
