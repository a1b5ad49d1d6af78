package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/Legeek117/projet-stock/internal/dto"
	"github.com/Legeek117/projet-stock/internal/model"
	"github.com/Legeek117/projet-stock/internal/repository"

	"github.com/google/uuid"
)

const reconcileReason = "Physical inventory reconciliation"

// InventoryService syncs system stock with a physical count.
type InventoryService interface {
	Reconcile(ctx context.Context, userID uuid.UUID, req dto.ReconcileRequest) (*dto.ReconcileResponse, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	stock       StockService
}

func NewInventoryService(productRepo repository.ProductRepository, stock StockService) InventoryService {
	return &inventoryService{productRepo: productRepo, stock: stock}
}

// Reconcile adjusts every product whose counted quantity differs from the
// system stock. Each product is its own transaction: a failure on one
// product does not undo the others, but each per-product write is still
// atomic (counter + ledger row together).
func (s *inventoryService) Reconcile(ctx context.Context, userID uuid.UUID, req dto.ReconcileRequest) (*dto.ReconcileResponse, error) {
	ids := make([]string, 0, len(req.Counts))
	for id := range req.Counts {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic processing order

	resp := &dto.ReconcileResponse{Applied: []dto.ReconcileAdjustment{}}

	for _, idStr := range ids {
		counted := req.Counts[idStr]

		productID, err := uuid.Parse(idStr)
		if err != nil {
			resp.Errors = append(resp.Errors, dto.ReconcileError{ProductID: idStr, Detail: "invalid product id"})
			continue
		}
		if counted < 0 {
			resp.Errors = append(resp.Errors, dto.ReconcileError{ProductID: idStr, Detail: "counted quantity cannot be negative"})
			continue
		}

		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			resp.Errors = append(resp.Errors, dto.ReconcileError{ProductID: idStr, Detail: "product not found"})
			continue
		}

		diff := counted - product.StockQuantity
		if diff == 0 {
			resp.Unchanged++
			continue
		}

		movementType := model.MovementAdjustmentIn
		quantity := diff
		if diff < 0 {
			movementType = model.MovementAdjustmentOut
			quantity = -diff
		}

		movement, err := s.stock.ApplyMovement(ctx, MovementInput{
			ProductID: productID,
			Type:      movementType,
			Quantity:  quantity,
			Reason:    reconcileReason,
			UserID:    &userID,
		})
		if err != nil {
			// The stock may have moved between the read above and the
			// engine's locked read; report and keep going.
			resp.Errors = append(resp.Errors, dto.ReconcileError{ProductID: idStr, Detail: fmt.Sprintf("adjustment failed: %v", err)})
			continue
		}

		resp.Applied = append(resp.Applied, dto.ReconcileAdjustment{
			ProductID: idStr,
			Type:      string(movement.Type),
			Quantity:  movement.Quantity,
			OldStock:  movement.OldStock,
			NewStock:  movement.NewStock,
		})
	}
	return resp, nil
}
