package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ripple-social/backend/internal/models"
	"github.com/ripple-social/backend/internal/services"
)

// PostHandler handles HTTP requests for posts and the feed
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post routes on the open group, and the
// mutating routes on the authenticated group.
func (h *PostHandler) RegisterPostRoutes(open, protected *echo.Group) {
	open.GET("/posts", h.GetFeed)
	protected.POST("/posts", h.CreatePost)
	protected.DELETE("/posts/:id", h.DeletePost)
	protected.POST("/posts/:id/like", h.ToggleLike)
	protected.POST("/posts/:id/comments", h.CreateComment)
	protected.DELETE("/comments/:id", h.DeleteComment)
}

// GetFeed returns every post enriched with author, comments and likes
func (h *PostHandler) GetFeed(c echo.Context) error {
	posts, err := h.postService.ListFeed(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, echo.Map{"posts": posts})
}

// CreatePost creates a post owned by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	actorID := getUserIDFromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.CreatePost(c.Request().Context(), actorID, req)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, echo.Map{"post": post})
}

// DeletePost deletes the caller's own post
func (h *PostHandler) DeletePost(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if err := h.postService.DeletePost(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, echo.Map{"deleted": true})
}

// ToggleLike likes or unlikes a post for the caller
func (h *PostHandler) ToggleLike(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	liked, err := h.postService.ToggleLike(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, echo.Map{"liked": liked})
}

// CreateComment adds a comment to a post
func (h *PostHandler) CreateComment(c echo.Context) error {
	actorID := getUserIDFromContext(c)

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.postService.AddComment(c.Request().Context(), actorID, c.Param("id"), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, echo.Map{"comment": comment})
}

// DeleteComment deletes the caller's own comment; a silent success otherwise
func (h *PostHandler) DeleteComment(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if err := h.postService.DeleteComment(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, echo.Map{"deleted": true})
}
