package handlers

import (
	"net/http"

	"github.com/anonto42/fritter/backend/internal/middleware"
	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler handles saving freets into profiles
type BookmarkHandler struct {
	bookmarkService *services.BookmarkService
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkService *services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService}
}

// RegisterBookmarkRoutes registers bookmark routes on the /bookmarks group
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("", h.GetBookmarks)
	g.GET("/:profileName", h.GetProfileBookmarks, requireAuth)
	g.POST("", h.CreateBookmark, requireAuth)
	g.DELETE("/:bookmarkId", h.DeleteBookmark, requireAuth)
}

func (h *BookmarkHandler) GetBookmarks(c echo.Context) error {
	bookmarks, err := h.bookmarkService.ListAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "", newBookmarkResponses(bookmarks))
}

// GetProfileBookmarks lists the bookmarks in one of the caller's profiles,
// filtered by ?keyword= when the parameter is present
func (h *BookmarkHandler) GetProfileBookmarks(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserIDFromContext(c)
	profileName := c.Param("profileName")

	var (
		bookmarks []models.PopulatedBookmark
		err       error
	)
	if _, searching := c.QueryParams()["keyword"]; searching {
		bookmarks, err = h.bookmarkService.Search(ctx, userID, profileName, c.QueryParam("keyword"))
	} else {
		bookmarks, err = h.bookmarkService.ListByProfile(ctx, userID, profileName)
	}
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "", newBookmarkResponses(bookmarks))
}

func (h *BookmarkHandler) CreateBookmark(c echo.Context) error {
	var req models.CreateBookmarkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	bookmark, err := h.bookmarkService.Add(c.Request().Context(), middleware.UserIDFromContext(c), req.FreetID, req.ProfileName)
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusCreated, "Your bookmark was created successfully.", newBookmarkResponse(*bookmark))
}

func (h *BookmarkHandler) DeleteBookmark(c echo.Context) error {
	if err := h.bookmarkService.Delete(c.Request().Context(), middleware.UserIDFromContext(c), c.Param("bookmarkId")); err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "Your bookmark was deleted successfully.", nil)
}
