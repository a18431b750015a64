package repositories

import (
	"context"

	"github.com/ripple-social/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error)
	GetSuggested(ctx context.Context, excludeUserID string, limit int) ([]models.SuggestedUser, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID retrieves a user by internal id
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by their external identity id
func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateFields applies a partial update and returns the updated row
func (r *PostgresUserRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetUserByID(ctx, id)
}

// GetSuggested returns random users the given user does not follow yet,
// each with their follower count.
func (r *PostgresUserRepository) GetSuggested(ctx context.Context, excludeUserID string, limit int) ([]models.SuggestedUser, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", excludeUserID).
		Where("id NOT IN (?)",
			r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", excludeUserID),
		).
		Order("RANDOM()").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	suggested := make([]models.SuggestedUser, 0, len(users))
	for _, u := range users {
		var followers int64
		if err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", u.ID).Count(&followers).Error; err != nil {
			return nil, err
		}
		suggested = append(suggested, models.SuggestedUser{UserCompact: u.ToCompact(), FollowersCount: followers})
	}
	return suggested, nil
}
