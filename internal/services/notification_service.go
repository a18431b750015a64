package services

import (
	"context"

	"github.com/ripple-social/backend/internal/models"
	"github.com/ripple-social/backend/internal/repositories"
)

// NotificationService reads the notification feed and marks it read.
// Notification writes happen inside the like/comment/follow actions through
// emitNotification.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListNotifications returns the user's notifications newest first, each with
// creator/post/comment context where the referent still exists.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, models.NewStoreError("failed to fetch notifications", err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// MarkRead flags the given notifications as read. Empty input is a no-op
// success; ids that do not exist or belong to someone else are ignored.
func (s *NotificationService) MarkRead(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.notificationRepo.MarkRead(ctx, userID, ids); err != nil {
		return models.NewStoreError("failed to mark notifications as read", err)
	}
	return nil
}

// emitNotification inserts a notification unless the actor is acting on
// their own resource. Self-actions never notify.
func emitNotification(ctx context.Context, repo repositories.NotificationRepository, recipientID, actorID string, typ models.NotificationType, postID, commentID *string) error {
	if recipientID == actorID {
		return nil
	}
	return repo.CreateNotification(ctx, &models.Notification{
		UserID:    recipientID,
		CreatorID: actorID,
		Type:      typ,
		PostID:    postID,
		CommentID: commentID,
	})
}
