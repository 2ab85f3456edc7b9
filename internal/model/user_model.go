package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID         string `gorm:"type:uuid;primary_key" json:"id"`
	FullName   string `gorm:"not null;index" json:"full_name"`
	Username   string `gorm:"uniqueIndex;not null" json:"username"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	AvatarURL  string `gorm:"type:varchar(500)" json:"avatar_url"`
	AvatarKey  string `gorm:"type:varchar(255)" json:"-"`
	AvatarKind string `gorm:"type:varchar(20)" json:"-"`
	CoverURL   string `gorm:"type:varchar(500)" json:"cover_url"`
	CoverKey   string `gorm:"type:varchar(255)" json:"-"`
	CoverKind  string `gorm:"type:varchar(20)" json:"-"`
	// Nullable: at most one refresh token is valid per user, cleared on
	// logout.
	RefreshToken *string        `gorm:"type:varchar(500)" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
