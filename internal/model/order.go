package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order is a sale header. Number is a human-readable sequential ticket
// number drawn from a dedicated Postgres sequence.
type Order struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number      int             `gorm:"uniqueIndex;not null"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status      string          `gorm:"not null;default:'completed'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
	User  *User       `gorm:"foreignKey:UserID"`
}

// OrderItem is a sale line. UnitPrice is frozen at sale time and is not
// affected by later catalog price changes.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
