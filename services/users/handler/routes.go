package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/piresc/nebengtrip/services/users"
	httpHandler "github.com/piresc/nebengtrip/services/users/handler/http"
)

// Handler combines all handlers for the users service
type Handler struct {
	usersHTTP *httpHandler.UsersHandler
}

// NewHandler creates a new combined handler
func NewHandler(userUC users.UserUC) *Handler {
	return &Handler{usersHTTP: httpHandler.NewUsersHandler(userUC)}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.POST("/auth/register", h.usersHTTP.Register)
	e.POST("/auth/login", h.usersHTTP.Login)

	authed := e.Group("", auth)
	authed.POST("/auth/logout", h.usersHTTP.Logout)
	authed.GET("/users/me", h.usersHTTP.GetProfile)
}
