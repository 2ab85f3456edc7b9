package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoModel struct {
	ID            string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID       string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title         string         `gorm:"not null;index" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	VideoURL      string         `gorm:"type:varchar(500);not null" json:"video_url"`
	VideoKey      string         `gorm:"type:varchar(255);not null" json:"-"`
	VideoKind     string         `gorm:"type:varchar(20);not null" json:"-"`
	ThumbnailURL  string         `gorm:"type:varchar(500);not null" json:"thumbnail_url"`
	ThumbnailKey  string         `gorm:"type:varchar(255);not null" json:"-"`
	ThumbnailKind string         `gorm:"type:varchar(20);not null" json:"-"`
	Duration      float64        `gorm:"default:0" json:"duration"`
	Views         int64          `gorm:"default:0" json:"views"`
	IsPublished   bool           `gorm:"default:true;index" json:"is_published"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Owner UserModel `gorm:"foreignKey:OwnerID" json:"-"`
}

func (VideoModel) TableName() string {
	return "videos"
}

func (v *VideoModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
