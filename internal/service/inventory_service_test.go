package service_test

import (
	"context"
	"testing"

	"github.com/Legeek117/projet-stock/internal/dto"
	"github.com/Legeek117/projet-stock/internal/model"
	"github.com/Legeek117/projet-stock/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInventorySvc() (service.InventoryService, *stubProductRepo, *stubMovementRepo) {
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	priceRepo := &stubPriceRepo{}
	stockSvc := service.NewStockService(productRepo, movementRepo, priceRepo, nil, 5)
	svc := service.NewInventoryService(productRepo, stockSvc)
	return svc, productRepo, movementRepo
}

func TestReconcile_AppliesAdjustments(t *testing.T) {
	svc, productRepo, movementRepo := buildInventorySvc()
	over := seedProduct(productRepo, "Counted short", 1, 8)  // counted 6
	under := seedProduct(productRepo, "Counted over", 1, 3) // counted 7
	userID := uuid.New()

	resp, err := svc.Reconcile(context.Background(), userID, dto.ReconcileRequest{
		Counts: map[string]int{
			over.ID.String():  6,
			under.ID.String(): 7,
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Applied, 2)
	assert.Empty(t, resp.Errors)
	assert.Equal(t, 0, resp.Unchanged)

	assert.Equal(t, 6, productRepo.products[over.ID].StockQuantity)
	assert.Equal(t, 7, productRepo.products[under.ID].StockQuantity)

	overMoves := movementRepo.byProduct(over.ID)
	require.Len(t, overMoves, 1)
	assert.Equal(t, model.MovementAdjustmentOut, overMoves[0].Type)
	assert.Equal(t, 2, overMoves[0].Quantity)
	assert.Equal(t, 8, overMoves[0].OldStock)
	assert.Equal(t, 6, overMoves[0].NewStock)
	assert.Equal(t, "Physical inventory reconciliation", overMoves[0].Reason)

	underMoves := movementRepo.byProduct(under.ID)
	require.Len(t, underMoves, 1)
	assert.Equal(t, model.MovementAdjustmentIn, underMoves[0].Type)
	assert.Equal(t, 4, underMoves[0].Quantity)
}

func TestReconcile_MatchingCountSkipsLedger(t *testing.T) {
	svc, productRepo, movementRepo := buildInventorySvc()
	p := seedProduct(productRepo, "Exact", 1, 12)

	resp, err := svc.Reconcile(context.Background(), uuid.New(), dto.ReconcileRequest{
		Counts: map[string]int{p.ID.String(): 12},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Unchanged)
	assert.Empty(t, resp.Applied)
	assert.Empty(t, movementRepo.movements)
}

func TestReconcile_PartialSuccess(t *testing.T) {
	svc, productRepo, movementRepo := buildInventorySvc()
	good := seedProduct(productRepo, "Good", 1, 10)
	userID := uuid.New()

	resp, err := svc.Reconcile(context.Background(), userID, dto.ReconcileRequest{
		Counts: map[string]int{
			good.ID.String(): 4,
			uuid.NewString(): 3,     // unknown product
			"not-a-uuid":     1,     // malformed id
			seedProduct(productRepo, "Negative", 1, 5).ID.String(): -2,
		},
	})
	require.NoError(t, err)

	// The valid adjustment went through despite the bad entries.
	require.Len(t, resp.Applied, 1)
	assert.Equal(t, good.ID.String(), resp.Applied[0].ProductID)
	assert.Equal(t, 4, productRepo.products[good.ID].StockQuantity)
	assert.Len(t, movementRepo.movements, 1)

	assert.Len(t, resp.Errors, 3)
}
