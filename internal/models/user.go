package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account provisioned from the identity provider.
type User struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email       string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Username    string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	FirebaseUID string    `json:"-" gorm:"size:255;uniqueIndex;not null"` // external identity, final arbiter for provisioning
	Name        string    `json:"name" gorm:"size:255"`
	Bio         string    `json:"bio"`
	Image       string    `json:"image"`
	Location    string    `json:"location" gorm:"size:255"`
	Website     string    `json:"website" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserCompact is the author/actor shape embedded in aggregated responses.
type UserCompact struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

// ToCompact returns the embeddable shape of the user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Image:    u.Image,
	}
}

// Profile is a user enriched with aggregate counts.
type Profile struct {
	User
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	PostsCount     int64 `json:"posts_count"`
}

// SuggestedUser is a follow suggestion with its follower count.
type SuggestedUser struct {
	UserCompact
	FollowersCount int64 `json:"followers_count"`
}

// UpdateProfileRequest defines the request body for updating the caller's profile.
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,max=255"`
	Bio      string `json:"bio" validate:"omitempty,max=1000"`
	Location string `json:"location" validate:"omitempty,max=255"`
	Website  string `json:"website" validate:"omitempty,max=255"`
}

// LoginRequest defines the request body for the identity-provider login exchange.
type LoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
