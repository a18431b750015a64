package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ripple-social/backend/internal/models"
	"github.com/ripple-social/backend/internal/services"
)

// ProfileHandler handles profile and user-discovery HTTP requests
type ProfileHandler struct {
	userService   *services.UserService
	postService   *services.PostService
	followService *services.FollowService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userService *services.UserService, postService *services.PostService, followService *services.FollowService) *ProfileHandler {
	return &ProfileHandler{
		userService:   userService,
		postService:   postService,
		followService: followService,
	}
}

// RegisterProfileRoutes registers the read routes on the optional-auth group
// and the mutating/personalized routes on the authenticated group.
func (h *ProfileHandler) RegisterProfileRoutes(open, protected *echo.Group) {
	open.GET("/profiles/:username", h.GetProfile)
	open.GET("/profiles/:username/posts", h.GetUserPosts)
	open.GET("/profiles/:username/likes", h.GetLikedPosts)
	protected.PUT("/profile", h.UpdateProfile)
	protected.GET("/users/suggested", h.GetSuggestedUsers)
}

// GetProfile returns a profile with follower/following/post counts. When
// the caller is authenticated the response also says whether they follow
// the profile's owner.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.userService.GetProfileByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(c, err)
	}
	if profile == nil {
		return respondOK(c, echo.Map{"profile": nil})
	}

	data := echo.Map{"profile": profile}
	if actorID := getUserIDFromContext(c); actorID != "" {
		data["is_following"] = h.followService.IsFollowing(c.Request().Context(), actorID, profile.ID)
	}
	return respondOK(c, data)
}

// GetUserPosts returns the posts authored by the profile's owner
func (h *ProfileHandler) GetUserPosts(c echo.Context) error {
	return h.listProfilePosts(c, h.postService.ListUserPosts)
}

// GetLikedPosts returns the posts the profile's owner has liked
func (h *ProfileHandler) GetLikedPosts(c echo.Context) error {
	return h.listProfilePosts(c, h.postService.ListLikedPosts)
}

func (h *ProfileHandler) listProfilePosts(c echo.Context, list func(ctx context.Context, userID string) ([]models.Post, error)) error {
	profile, err := h.userService.GetProfileByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(c, err)
	}
	if profile == nil {
		return respondError(c, models.NewNotFoundError("user"))
	}

	posts, err := list(c.Request().Context(), profile.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, echo.Map{"posts": posts})
}

// UpdateProfile partially updates the caller's own profile
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	actorID := getUserIDFromContext(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), actorID, req)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, echo.Map{"user": user})
}

// GetSuggestedUsers returns a few random users the caller does not follow
func (h *ProfileHandler) GetSuggestedUsers(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	return respondOK(c, echo.Map{"users": h.userService.GetSuggestedUsers(c.Request().Context(), actorID)})
}
