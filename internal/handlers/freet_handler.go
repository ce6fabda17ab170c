package handlers

import (
	"net/http"

	"github.com/anonto42/fritter/backend/internal/middleware"
	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FreetHandler handles HTTP requests for freets
type FreetHandler struct {
	freetService *services.FreetService
	tagService   *services.TagService
}

// NewFreetHandler creates a new FreetHandler
func NewFreetHandler(freetService *services.FreetService, tagService *services.TagService) *FreetHandler {
	return &FreetHandler{freetService: freetService, tagService: tagService}
}

// RegisterFreetRoutes registers freet routes on the /freets group
func (h *FreetHandler) RegisterFreetRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("", h.GetFreets) // all freets, or ?author=username
	g.GET("/:freetId", h.GetFreet)
	g.GET("/:freetId/tags", h.GetFreetTags)
	g.POST("", h.CreateFreet, requireAuth)
	g.PUT("/:freetId", h.UpdateFreet, requireAuth)
	g.DELETE("/:freetId", h.DeleteFreet, requireAuth)
}

func (h *FreetHandler) GetFreets(c echo.Context) error {
	freets, err := h.freetService.List(c.Request().Context(), c.QueryParam("author"))
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "", newFreetResponses(freets))
}

func (h *FreetHandler) GetFreet(c echo.Context) error {
	freet, err := h.freetService.Get(c.Request().Context(), c.Param("freetId"))
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "", newFreetResponse(*freet))
}

func (h *FreetHandler) GetFreetTags(c echo.Context) error {
	tags, err := h.tagService.ListByFreet(c.Request().Context(), c.Param("freetId"))
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "", newTagResponses(tags))
}

func (h *FreetHandler) CreateFreet(c echo.Context) error {
	var req models.CreateFreetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	freet, err := h.freetService.Create(c.Request().Context(), middleware.UserIDFromContext(c), req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusCreated, "Your freet was created successfully.", newFreetResponse(*freet))
}

// UpdateFreet edits a freet; only its author may do so
func (h *FreetHandler) UpdateFreet(c echo.Context) error {
	var req models.UpdateFreetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	freet, err := h.freetService.Update(c.Request().Context(), middleware.UserIDFromContext(c), c.Param("freetId"), req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "Your freet was updated successfully.", newFreetResponse(*freet))
}

func (h *FreetHandler) DeleteFreet(c echo.Context) error {
	if err := h.freetService.Delete(c.Request().Context(), middleware.UserIDFromContext(c), c.Param("freetId")); err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "Your freet was deleted successfully.", nil)
}
