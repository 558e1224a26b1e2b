package models

import (
	"time"

	"github.com/google/uuid"
)

// UserSetting is a per-user key/value pair. The table is migrated but no
// endpoint serves it yet.
type UserSetting struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SettingKey   string    `gorm:"not null;size:255" json:"setting_key"`
	SettingValue string    `gorm:"type:text" json:"setting_value"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (UserSetting) TableName() string { return "usersetting" }
