package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a social media post
type Post struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid;index;not null"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
	Likes    []Like    `json:"likes,omitempty" gorm:"foreignKey:PostID"`

	// Derived at read time, never persisted.
	LikeCount    int64 `json:"like_count" gorm:"-"`
	CommentCount int64 `json:"comment_count" gorm:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"omitempty,max=280"`
	Image   string `json:"image" validate:"omitempty,url"`
}
