package handler

import (
	"net/http"

	"rental-service/internal/apperr"
	"rental-service/internal/dto"
	"rental-service/internal/middleware"
	"rental-service/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates an account; no authentication required
func (h *UserHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err, "invalid request")
	}

	user, err := h.users.Register(c.Request().Context(), req.ToInput())
	if err != nil {
		return respondError(c, err, "failed to register user")
	}
	return c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Me returns the authenticated caller
func (h *UserHandler) Me(c echo.Context) error {
	id := middleware.IdentityFrom(c)
	if !id.Authenticated() {
		return respondError(c, apperr.ErrUnauthorized, "")
	}

	user, err := h.users.Get(c.Request().Context(), id.UserID)
	if err != nil {
		return respondError(c, err, "failed to retrieve user")
	}
	return c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to retrieve users")
	}
	return c.JSON(http.StatusOK, dto.NewUserList(users))
}
