package model

import (
	"time"

	"github.com/google/uuid"
)

// UserPreference stores per-user dashboard settings. One row per user,
// upserted on update.
type UserPreference struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PrimaryColor string    `gorm:"not null;default:'#2563eb'"`
	DarkMode     bool      `gorm:"not null;default:false"`
	CompactView  bool      `gorm:"not null;default:false"`
	UpdatedAt    time.Time
}
