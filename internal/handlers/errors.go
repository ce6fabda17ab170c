package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/anonto42/fritter/backend/internal/repositories"
	"github.com/anonto42/fritter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service and repository errors onto HTTP statuses.
// Anything unrecognised is logged and reported as a 500.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, repositories.ErrInvalidID):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrFreetNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrBookmarkNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrProfileExists),
		errors.Is(err, services.ErrTagExists),
		errors.Is(err, services.ErrUsernameTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	log.Printf("internal error: %v", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}

// bindAndValidate decodes the request into req and runs the registered validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
