package services

import (
	"context"
	"errors"

	"github.com/ripple-social/backend/internal/models"
	"github.com/ripple-social/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowService maintains follow edges and their fan-out.
type FollowService struct {
	db               *gorm.DB
	followRepo       repositories.FollowRepository
	notificationRepo repositories.NotificationRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(db *gorm.DB, followRepo repositories.FollowRepository, notificationRepo repositories.NotificationRepository) *FollowService {
	return &FollowService{
		db:               db,
		followRepo:       followRepo,
		notificationRepo: notificationRepo,
	}
}

// ToggleFollow creates the actor→target edge, or removes it when it already
// exists. Creating the edge and emitting the FOLLOW notification is one
// transaction. Returns whether the actor follows the target afterwards.
func (s *FollowService) ToggleFollow(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, models.NewInvalidOperationError("You cannot follow yourself")
	}

	following, err := s.followRepo.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return false, models.NewStoreError("failed to toggle follow", err)
	}

	if following {
		if err := s.followRepo.DeleteFollow(ctx, actorID, targetID); err != nil {
			return false, models.NewStoreError("failed to toggle follow", err)
		}
		// Unfollow never retracts an already-emitted notification.
		return false, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follow := &models.Follow{FollowerID: actorID, FollowingID: targetID}
		if err := s.followRepo.WithTx(tx).CreateFollow(ctx, follow); err != nil {
			return err
		}
		return emitNotification(ctx, s.notificationRepo.WithTx(tx), targetID, actorID, models.NotificationFollow, nil, nil)
	})
	if err != nil {
		// A concurrent toggle won the insert; the edge exists, which is the
		// state this call wanted.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, models.NewStoreError("failed to toggle follow", err)
	}
	return true, nil
}

// IsFollowing reports whether actor follows target. Returns false instead of
// an error on any resolution failure.
func (s *FollowService) IsFollowing(ctx context.Context, actorID, targetID string) bool {
	following, err := s.followRepo.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return false
	}
	return following
}
