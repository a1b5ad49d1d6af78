package model

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Phone     *string
	Email     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
