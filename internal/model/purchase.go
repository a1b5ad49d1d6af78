package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is a supplier delivery header, the inbound mirror of Order.
type Purchase struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number      int             `gorm:"uniqueIndex;not null"`
	SupplierID  *uuid.UUID      `gorm:"type:uuid;index"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time

	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID"`
	Supplier *Supplier      `gorm:"foreignKey:SupplierID"`
	User     *User          `gorm:"foreignKey:UserID"`
}

// PurchaseItem carries the received quantity and unit cost, which is
// independent of the product's sale price.
type PurchaseItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
