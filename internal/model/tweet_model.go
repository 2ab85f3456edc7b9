package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TweetModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID   string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Owner UserModel `gorm:"foreignKey:OwnerID" json:"-"`
}

func (TweetModel) TableName() string {
	return "tweets"
}

func (t *TweetModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
