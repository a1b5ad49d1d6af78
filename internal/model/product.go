package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the aggregate root of the stock subsystem.
// StockQuantity is a materialized counter: it is only ever written together
// with a StockMovement row, inside the same transaction, and must equal the
// signed sum of all movements for the product.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	Description   *string
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0;check:stock_quantity >= 0"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	CategoryName  string          `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
