package handlers

import (
	"net/http"

	"github.com/anonto42/fritter/backend/internal/metrics"
	"github.com/anonto42/fritter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes on the /follow group
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns every freet by the users ?username= follows, newest first.
// There is no pagination.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	feed, err := h.feedService.ComputeFeed(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return toHTTPError(err)
	}
	metrics.ObserveFeedSize(len(feed))
	return ok(c, http.StatusOK, "", newFreetResponses(feed))
}
