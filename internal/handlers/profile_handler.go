package handlers

import (
	"net/http"

	"github.com/anonto42/fritter/backend/internal/middleware"
	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterProfileRoutes registers profile routes on the /profiles group
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("", h.GetProfiles)
	g.POST("", h.CreateProfile, requireAuth)
	g.DELETE("/:profileName", h.DeleteProfile, requireAuth)
}

// GetProfiles lists every profile, or only those of ?username=
func (h *ProfileHandler) GetProfiles(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		profiles []models.PopulatedProfile
		err      error
	)
	if username := c.QueryParam("username"); username != "" {
		profiles, err = h.profileService.ListByUsername(ctx, username)
	} else {
		profiles, err = h.profileService.ListAll(ctx)
	}
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "", newProfileResponses(profiles))
}

func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	var req models.CreateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.profileService.Create(c.Request().Context(), middleware.UserIDFromContext(c), req.ProfileName)
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusCreated, "Your profile was created successfully.", newProfileResponses([]models.PopulatedProfile{*profile})[0])
}

// DeleteProfile removes one of the caller's profiles along with its bookmarks
func (h *ProfileHandler) DeleteProfile(c echo.Context) error {
	if err := h.profileService.Delete(c.Request().Context(), middleware.UserIDFromContext(c), c.Param("profileName")); err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "Your profile was deleted successfully.", nil)
}
