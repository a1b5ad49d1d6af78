package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MovementType is the closed set of stock movement categories. Keeping it a
// named type (rather than a free string) forces every movement through
// Sign(), so an unknown tag can never record a zero-effect movement.
type MovementType string

const (
	MovementIn            MovementType = "in"
	MovementOut           MovementType = "out"
	MovementSale          MovementType = "sale"
	MovementReturn        MovementType = "return"
	MovementLoss          MovementType = "loss"
	MovementAdjustmentIn  MovementType = "adjustment_in"
	MovementAdjustmentOut MovementType = "adjustment_out"
)

// ErrInvalidMovementType is returned by Sign for tags outside the enum.
var ErrInvalidMovementType = errors.New("invalid movement type")

// Sign resolves the stock direction of a movement type: +1 increases stock,
// -1 decreases it. Unknown types are an error, never a silent no-op.
func (t MovementType) Sign() (int, error) {
	switch t {
	case MovementIn, MovementReturn, MovementAdjustmentIn:
		return 1, nil
	case MovementOut, MovementSale, MovementLoss, MovementAdjustmentOut:
		return -1, nil
	default:
		return 0, ErrInvalidMovementType
	}
}

// StockMovement is one row of the append-only stock ledger. Rows are created
// once and never updated or deleted. OldStock/NewStock snapshot the product's
// counter at mutation time, so consecutive movements for a product chain:
// movement[i].NewStock == movement[i+1].OldStock.
type StockMovement struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID    `gorm:"type:uuid;not null;index"`
	UserID    *uuid.UUID   `gorm:"type:uuid;index"`
	Type      MovementType `gorm:"not null"`
	Quantity  int          `gorm:"not null"` // always positive; direction comes from Type
	OldStock  int          `gorm:"not null"`
	NewStock  int          `gorm:"not null"`
	Reason    string
	// ReferenceID links the movement to the order or purchase that caused it.
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
	User    *User    `gorm:"foreignKey:UserID"`
}
