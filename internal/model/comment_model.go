package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID   string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	VideoID   string         `gorm:"type:uuid;not null;index" json:"video_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Owner UserModel  `gorm:"foreignKey:OwnerID" json:"-"`
	Video VideoModel `gorm:"foreignKey:VideoID" json:"-"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
