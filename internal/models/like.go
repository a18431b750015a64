package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like represents a like on a post. The unique index on (user_id, post_id)
// is the arbiter for "at most one like per user per post".
type Like struct {
	ID        string    `json:"-" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;index;uniqueIndex:idx_like_user_post;not null"`
	PostID    string    `json:"post_id" gorm:"type:uuid;index;uniqueIndex:idx_like_user_post;not null"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Post *Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
