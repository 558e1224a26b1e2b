package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record. HashedPassword is an Argon2id PHC string
// and never leaves the server.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	FullName       *string   `gorm:"size:255" json:"full_name"`
	AvatarURL      *string   `gorm:"size:512" json:"avatar_url"`
	Phone          *string   `gorm:"size:50" json:"phone"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	IsSuperuser    bool      `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string { return "user" }
