package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ripple-social/backend/internal/models"
	"github.com/ripple-social/backend/internal/services"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers the list route on the optional-auth
// group and the mutating route on the authenticated group.
func (h *NotificationHandler) RegisterNotificationRoutes(open, protected *echo.Group) {
	open.GET("/notifications", h.GetNotifications)
	protected.PUT("/notifications/read", h.MarkRead)
}

// GetNotifications returns the caller's notifications, newest first. An
// anonymous caller gets an empty list, not an error.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	actorID := getUserIDFromContext(c)
	if actorID == "" {
		return respondOK(c, echo.Map{"notifications": []models.Notification{}})
	}

	notifications, err := h.notificationService.ListNotifications(c.Request().Context(), actorID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, echo.Map{"notifications": notifications})
}

// MarkRead flags the given notification ids as read for the caller
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actorID := getUserIDFromContext(c)

	var req models.MarkNotificationsReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := h.notificationService.MarkRead(c.Request().Context(), actorID, req.IDs); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, echo.Map{"read": true})
}
