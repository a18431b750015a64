package models

import "time"

// Follow represents a follow edge between two users. The composite primary
// key keeps at most one edge per ordered pair; self-follows are rejected in
// the service layer, not at the schema level.
type Follow struct {
	FollowerID  string    `json:"follower_id" gorm:"type:uuid;primaryKey"`
	FollowingID string    `json:"following_id" gorm:"type:uuid;primaryKey"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  *User `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following *User `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}
