package http

import (
	gohttp "net/http"

	"github.com/labstack/echo/v4"

	"github.com/piresc/nebengtrip/internal/pkg/middleware"
	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/internal/utils"
	"github.com/piresc/nebengtrip/services/users"
)

// UsersHandler handles HTTP requests for user operations
type UsersHandler struct {
	userUC users.UserUC
}

// NewUsersHandler creates a new user HTTP handler
func NewUsersHandler(userUC users.UserUC) *UsersHandler {
	return &UsersHandler{userUC: userUC}
}

// Register creates a new rider or driver account
func (h *UsersHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	user, err := h.userUC.Register(c.Request().Context(), req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusCreated, "User registered", user)
}

// Login exchanges credentials for a token
func (h *UsersHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	auth, err := h.userUC.Login(c.Request().Context(), req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "Login successful", auth)
}

// Logout ends the caller's server-side session
func (h *UsersHandler) Logout(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	if err := h.userUC.Logout(c.Request().Context(), session); err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "Logged out", nil)
}

// GetProfile returns the caller's own user record
func (h *UsersHandler) GetProfile(c echo.Context) error {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	user, err := h.userUC.GetProfile(c.Request().Context(), session)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, gohttp.StatusOK, "", user)
}
