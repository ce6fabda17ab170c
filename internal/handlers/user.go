package handlers

import (
	"net/http"

	"github.com/anonto42/fritter/backend/internal/middleware"
	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user accounts
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers account routes. /users/me takes precedence
// over /users/:username, so "me" is not a reachable username.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/users/me", h.GetMe, requireAuth)
	g.PUT("/users/me", h.UpdateMe, requireAuth)
	g.DELETE("/users/me", h.DeleteMe, requireAuth)
	g.GET("/users/:username", h.GetUser)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "", user)
}

// GetMe returns the authenticated user
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), middleware.UserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "", user)
}

// UpdateMe changes the authenticated user's username and/or password
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Update(c.Request().Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "Your profile was updated successfully.", user)
}

// DeleteMe removes the authenticated user and everything they own
func (h *UserHandler) DeleteMe(c echo.Context) error {
	if err := h.userService.DeleteAccount(c.Request().Context(), middleware.UserIDFromContext(c)); err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "Your account has been deleted successfully.", nil)
}
