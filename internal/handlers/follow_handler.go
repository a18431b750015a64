package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/ripple-social/backend/internal/services"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// ToggleFollow follows or unfollows the target user for the caller
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	following, err := h.followService.ToggleFollow(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, echo.Map{"following": following})
}
