package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeModel holds exactly one non-nil target column. Uniqueness per
// (user, target) is enforced by partial unique indexes in the schema
// migration; the toggle logic never inserts without checking presence
// first.
type LikeModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	LikedByID string         `gorm:"type:uuid;not null;index" json:"liked_by_id"`
	VideoID   *string        `gorm:"type:uuid;index" json:"video_id,omitempty"`
	CommentID *string        `gorm:"type:uuid;index" json:"comment_id,omitempty"`
	TweetID   *string        `gorm:"type:uuid;index" json:"tweet_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	LikedBy UserModel `gorm:"foreignKey:LikedByID" json:"-"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
