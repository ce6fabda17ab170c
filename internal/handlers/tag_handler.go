package handlers

import (
	"net/http"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// RegisterTagRoutes registers tag routes on the /tags group
func (h *TagHandler) RegisterTagRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("", h.GetTags)
	g.POST("", h.CreateTag, requireAuth)
	g.PUT("/add", h.AddTag, requireAuth)
	g.PUT("/remove", h.RemoveTag, requireAuth)
}

func (h *TagHandler) GetTags(c echo.Context) error {
	tags, err := h.tagService.ListAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "", newTagResponses(tags))
}

func (h *TagHandler) CreateTag(c echo.Context) error {
	var req models.CreateTagRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tag, err := h.tagService.Create(c.Request().Context(), req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusCreated, "Your tag was created successfully.", newTagResponse(*tag))
}

// AddTag labels a freet with an existing tag
func (h *TagHandler) AddTag(c echo.Context) error {
	var req models.TagFreetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.tagService.AddToFreet(c.Request().Context(), req.FreetID, req.Content); err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "Your tag was added successfully.", nil)
}

func (h *TagHandler) RemoveTag(c echo.Context) error {
	var req models.TagFreetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	removed, err := h.tagService.RemoveFromFreet(c.Request().Context(), req.FreetID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "Your tag was removed successfully.", echo.Map{"removed": removed})
}
