package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceType distinguishes the two price axes tracked per product.
type PriceType string

const (
	PriceSale     PriceType = "sale"
	PricePurchase PriceType = "purchase"
)

// PriceHistory records price changes per product. Immutable once written.
//
// Recording is intentionally asymmetric: sale-price rows are inserted only
// when the price actually changes, while purchase-price rows are inserted on
// every purchase line regardless (the received cost is part of the purchase
// audit trail). OldPrice is null on unconditional purchase rows and on the
// first sale-price row of a product.
type PriceHistory struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;index"`
	OldPrice  *decimal.Decimal `gorm:"type:decimal(10,2)"`
	NewPrice  decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	Type      PriceType        `gorm:"not null;default:'sale'"`
	ChangedBy *uuid.UUID       `gorm:"type:uuid"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
	User    *User    `gorm:"foreignKey:ChangedBy"`
}

// TableName overrides GORM's default pluralization (price_histories → price_history).
func (PriceHistory) TableName() string { return "price_history" }
