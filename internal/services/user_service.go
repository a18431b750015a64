package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ripple-social/backend/internal/models"
	"github.com/ripple-social/backend/internal/observability"
	"github.com/ripple-social/backend/internal/repositories"
	"gorm.io/gorm"
)

const suggestedUsersLimit = 3

// ExternalIdentity carries the verified fields of an identity-provider token.
type ExternalIdentity struct {
	FirebaseUID string
	Email       string
	Username    string
	Name        string
	Image       string
}

// UserService resolves external identities to internal users and assembles
// profile views.
type UserService struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	postRepo   repositories.PostRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, postRepo repositories.PostRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		postRepo:   postRepo,
	}
}

// ResolveOrProvision returns the internal user for the given external
// identity, creating one on first sight. Two concurrent first-sight requests
// may both attempt the insert; the unique index on the external id decides,
// and the loser re-fetches instead of failing.
func (s *UserService) ResolveOrProvision(ctx context.Context, ext ExternalIdentity) (*models.User, error) {
	user, err := s.userRepo.GetUserByFirebaseUID(ctx, ext.FirebaseUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewStoreError("failed to resolve user", err)
	}

	username := ext.Username
	if username == "" {
		username = strings.SplitN(ext.Email, "@", 2)[0]
	}
	created := &models.User{
		FirebaseUID: ext.FirebaseUID,
		Email:       ext.Email,
		Username:    username,
		Name:        ext.Name,
		Image:       ext.Image,
	}
	if err := s.userRepo.CreateUser(ctx, created); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := s.userRepo.GetUserByFirebaseUID(ctx, ext.FirebaseUID)
			if ferr == nil {
				return existing, nil
			}
			// The collision was on email or username, not the external id.
			return nil, models.NewStoreError("failed to provision user", err)
		}
		return nil, models.NewStoreError("failed to provision user", err)
	}
	return created, nil
}

// GetProfileByUsername returns the profile with follower/following/post
// counts, or nil when no such user exists.
func (s *UserService) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStoreError("failed to fetch profile", err)
	}

	followers, err := s.followRepo.GetFollowersCount(ctx, user.ID)
	if err != nil {
		return nil, models.NewStoreError("failed to fetch profile", err)
	}
	following, err := s.followRepo.GetFollowingCount(ctx, user.ID)
	if err != nil {
		return nil, models.NewStoreError("failed to fetch profile", err)
	}
	posts, err := s.postRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, models.NewStoreError("failed to fetch profile", err)
	}

	return &models.Profile{
		User:           *user,
		FollowersCount: followers,
		FollowingCount: following,
		PostsCount:     posts,
	}, nil
}

// UpdateProfile applies a partial update to the actor's own profile. The
// actor id comes from the authenticated context, never from the payload.
func (s *UserService) UpdateProfile(ctx context.Context, actorID string, req models.UpdateProfileRequest) (*models.User, error) {
	fields := map[string]interface{}{
		"name":     req.Name,
		"bio":      req.Bio,
		"location": req.Location,
		"website":  req.Website,
	}
	user, err := s.userRepo.UpdateFields(ctx, actorID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user")
		}
		return nil, models.NewStoreError("failed to update profile", err)
	}
	return user, nil
}

// GetSuggestedUsers returns a few random users the actor does not follow.
// Degrades to an empty list on failure.
func (s *UserService) GetSuggestedUsers(ctx context.Context, actorID string) []models.SuggestedUser {
	suggested, err := s.userRepo.GetSuggested(ctx, actorID, suggestedUsersLimit)
	if err != nil {
		observability.GlobalLogger.ErrorContext(ctx, "failed to fetch suggested users", "error", err)
		return []models.SuggestedUser{}
	}
	if suggested == nil {
		suggested = []models.SuggestedUser{}
	}
	return suggested
}
