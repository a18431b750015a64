package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType is the closed set of events that fan out to a recipient.
type NotificationType string

const (
	NotificationLike    NotificationType = "LIKE"
	NotificationComment NotificationType = "COMMENT"
	NotificationFollow  NotificationType = "FOLLOW"
)

// Notification represents a user notification. LIKE and COMMENT carry the
// post id, COMMENT additionally the comment id, FOLLOW carries neither.
type Notification struct {
	ID        string           `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string           `json:"user_id" gorm:"type:uuid;index:idx_notification_user_created,priority:1;not null"` // recipient
	CreatorID string           `json:"creator_id" gorm:"type:uuid;not null"`                                             // actor
	Type      NotificationType `json:"type" gorm:"size:20;not null"`
	Read      bool             `json:"read" gorm:"default:false"`
	PostID    *string          `json:"post_id,omitempty" gorm:"type:uuid"`
	CommentID *string          `json:"comment_id,omitempty" gorm:"type:uuid"`
	CreatedAt time.Time        `json:"created_at" gorm:"index:idx_notification_user_created,priority:2"`

	Creator *User    `json:"creator,omitempty" gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE"`
	Post    *Post    `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comment *Comment `json:"comment,omitempty" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// MarkNotificationsReadRequest defines the request body for the bulk read update.
type MarkNotificationsReadRequest struct {
	IDs []string `json:"ids"`
}
