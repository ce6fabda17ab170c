package handlers

import (
	"net/http"

	"github.com/anonto42/fritter/backend/internal/middleware"
	"github.com/anonto42/fritter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes on the /follow group
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/followees/:username", h.GetFollowees)
	g.GET("/followers/:username", h.GetFollowers)
	g.POST("", h.FollowUser, requireAuth)
	g.DELETE("", h.UnfollowUser, requireAuth)
}

// GetFollowees lists the users :username follows
func (h *FollowHandler) GetFollowees(c echo.Context) error {
	edges, err := h.followService.FindByFollowerUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "", followeesOf(edges))
}

// GetFollowers lists the users following :username
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	edges, err := h.followService.FindByFolloweeUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return ok(c, http.StatusOK, "", followersOf(edges))
}

// FollowUser follows the user named in ?username=
func (h *FollowHandler) FollowUser(c echo.Context) error {
	edge, created, err := h.followService.Follow(c.Request().Context(), middleware.UserIDFromContext(c), c.QueryParam("username"))
	if err != nil {
		return toHTTPError(err)
	}
	if !created {
		return ok(c, http.StatusOK, "You already follow "+edge.Followee.Username+".", edge.Followee.ToCompact())
	}
	return ok(c, http.StatusCreated, "You successfully followed "+edge.Followee.Username+"!", edge.Followee.ToCompact())
}

// UnfollowUser removes the follow of the user named in ?username=
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	followee, deleted, err := h.followService.Unfollow(c.Request().Context(), middleware.UserIDFromContext(c), c.QueryParam("username"))
	if err != nil {
		return toHTTPError(err)
	}
	message := "Your follow was deleted successfully."
	if !deleted {
		message = "You were not following " + followee.Username + "."
	}
	return ok(c, http.StatusOK, message, echo.Map{"deleted": deleted})
}
