package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrProductReferenced is returned when deleting a product that still has
// stock movements; the ledger must keep its owning product.
var ErrProductReferenced = errors.New("product has recorded stock movements and cannot be deleted")

// ProductNotFoundError aborts the whole operation that referenced the
// missing product.
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError is returned when a movement would drive a product's
// stock below zero. The transaction it occurred in is rolled back entirely.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available, %d requested",
		e.ProductID, e.Available, e.Requested)
}
