package service_test

import (
	"context"
	"testing"

	"github.com/Legeek117/projet-stock/internal/dto"
	"github.com/Legeek117/projet-stock/internal/model"
	"github.com/Legeek117/projet-stock/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPurchaseSvc() (service.PurchaseService, *stubPurchaseRepo, *stubProductRepo, *stubMovementRepo, *stubPriceRepo) {
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	priceRepo := &stubPriceRepo{}
	purchaseRepo := &stubPurchaseRepo{}
	stockSvc := service.NewStockService(productRepo, movementRepo, priceRepo, nil, 5)
	svc := service.NewPurchaseService(purchaseRepo, priceRepo, stockSvc)
	return svc, purchaseRepo, productRepo, movementRepo, priceRepo
}

func TestCreatePurchase_IncrementsStockAndRecordsCost(t *testing.T) {
	svc, purchaseRepo, productRepo, movementRepo, priceRepo := buildPurchaseSvc()
	p := seedProduct(productRepo, "Beans 1kg", 80, 5)
	userID := uuid.New()

	resp, err := svc.CreatePurchase(context.Background(), userID, dto.CreatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{
			{ProductID: p.ID.String(), Quantity: 20, UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Number)
	assert.Equal(t, "1000", resp.TotalAmount.String())

	assert.Equal(t, 25, productRepo.products[p.ID].StockQuantity)

	require.Len(t, movementRepo.movements, 1)
	m := movementRepo.movements[0]
	assert.Equal(t, model.MovementIn, m.Type)
	assert.Equal(t, 20, m.Quantity)
	assert.Equal(t, 5, m.OldStock)
	assert.Equal(t, 25, m.NewStock)
	assert.Equal(t, "Purchase #1", m.Reason)
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, resp.ID, m.ReferenceID.String())

	// Purchase price is recorded unconditionally, with no previous price.
	require.Len(t, priceRepo.rows, 1)
	h := priceRepo.rows[0]
	assert.Equal(t, model.PricePurchase, h.Type)
	assert.Nil(t, h.OldPrice)
	assert.Equal(t, "50", h.NewPrice.String())
	require.NotNil(t, h.ChangedBy)
	assert.Equal(t, userID, *h.ChangedBy)

	require.Len(t, purchaseRepo.items, 1)
	assert.Equal(t, "50", purchaseRepo.items[0].UnitPrice.String())
}

func TestCreatePurchase_RepeatDeliveryStillRecordsPrice(t *testing.T) {
	svc, _, productRepo, _, priceRepo := buildPurchaseSvc()
	p := seedProduct(productRepo, "Candles", 5, 0)

	for i := 0; i < 2; i++ {
		_, err := svc.CreatePurchase(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
			Items: []dto.PurchaseItemRequest{
				{ProductID: p.ID.String(), Quantity: 10, UnitPrice: decimal.NewFromInt(3)},
			},
		})
		require.NoError(t, err)
	}

	// Same cost twice, two history rows: every delivery is audited.
	assert.Len(t, priceRepo.rows, 2)
	assert.Equal(t, 20, productRepo.products[p.ID].StockQuantity)
}

func TestCreatePurchase_MultiLineTotals(t *testing.T) {
	svc, _, productRepo, movementRepo, _ := buildPurchaseSvc()
	p1 := seedProduct(productRepo, "Nails", 1, 0)
	p2 := seedProduct(productRepo, "Screws", 1, 10)

	resp, err := svc.CreatePurchase(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{
			{ProductID: p1.ID.String(), Quantity: 100, UnitPrice: decimal.NewFromFloat(0.10)},
			{ProductID: p2.ID.String(), Quantity: 50, UnitPrice: decimal.NewFromFloat(0.20)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "20", resp.TotalAmount.String())
	assert.Len(t, movementRepo.movements, 2)
	assert.Equal(t, 100, productRepo.products[p1.ID].StockQuantity)
	assert.Equal(t, 60, productRepo.products[p2.ID].StockQuantity)
}

func TestCreatePurchase_UnknownProductRejected(t *testing.T) {
	svc, _, _, movementRepo, priceRepo := buildPurchaseSvc()

	_, err := svc.CreatePurchase(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{
			{ProductID: uuid.NewString(), Quantity: 5, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	var notFound *service.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, movementRepo.movements)
	assert.Empty(t, priceRepo.rows)
}
