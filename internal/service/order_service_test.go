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

func buildOrderSvc() (service.OrderService, *stubOrderRepo, *stubProductRepo, *stubMovementRepo) {
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	priceRepo := &stubPriceRepo{}
	orderRepo := newStubOrderRepo()
	stockSvc := service.NewStockService(productRepo, movementRepo, priceRepo, nil, 5)
	svc := service.NewOrderService(orderRepo, productRepo, stockSvc)
	return svc, orderRepo, productRepo, movementRepo
}

func TestCreateOrder_DecrementsStockAndWritesLedger(t *testing.T) {
	svc, orderRepo, productRepo, movementRepo := buildOrderSvc()
	p := seedProduct(productRepo, "Coffee 250g", 100, 10)
	userID := uuid.New()

	resp, err := svc.CreateOrder(context.Background(), userID, dto.CreateOrderRequest{
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 3}},
		TotalAmount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Number)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "300", resp.TotalAmount.String())

	// Stock decremented through the ledger
	assert.Equal(t, 7, productRepo.products[p.ID].StockQuantity)
	require.Len(t, movementRepo.movements, 1)
	m := movementRepo.movements[0]
	assert.Equal(t, model.MovementSale, m.Type)
	assert.Equal(t, 3, m.Quantity)
	assert.Equal(t, 10, m.OldStock)
	assert.Equal(t, 7, m.NewStock)
	assert.Equal(t, "Sale #1", m.Reason)
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, resp.ID, m.ReferenceID.String())

	// Item row freezes the unit price at sale time
	require.Len(t, orderRepo.items, 1)
	assert.Equal(t, "100", orderRepo.items[0].UnitPrice.String())
}

func TestCreateOrder_InsufficientStockRejected(t *testing.T) {
	svc, orderRepo, productRepo, movementRepo := buildOrderSvc()
	p := seedProduct(productRepo, "Tea 100g", 50, 2)

	_, err := svc.CreateOrder(context.Background(), uuid.New(), dto.CreateOrderRequest{
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 5}},
		TotalAmount: decimal.NewFromInt(250),
	})

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, productRepo.products[p.ID].StockQuantity)
	assert.Empty(t, movementRepo.movements)
	assert.Empty(t, orderRepo.items)
}

func TestCreateOrder_UnknownProductRejected(t *testing.T) {
	svc, _, _, _ := buildOrderSvc()

	_, err := svc.CreateOrder(context.Background(), uuid.New(), dto.CreateOrderRequest{
		Items:       []dto.OrderItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		TotalAmount: decimal.NewFromInt(10),
	})
	var notFound *service.ProductNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCreateOrder_MultiItemWritesOneMovementPerLine(t *testing.T) {
	svc, orderRepo, productRepo, movementRepo := buildOrderSvc()
	p1 := seedProduct(productRepo, "Bread", 2, 20)
	p2 := seedProduct(productRepo, "Butter", 3, 15)
	userID := uuid.New()

	resp, err := svc.CreateOrder(context.Background(), userID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: p1.ID.String(), Quantity: 2},
			{ProductID: p2.ID.String(), Quantity: 4},
		},
		TotalAmount: decimal.NewFromInt(16),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Len(t, movementRepo.movements, 2)
	assert.Len(t, orderRepo.items, 2)
	assert.Equal(t, 18, productRepo.products[p1.ID].StockQuantity)
	assert.Equal(t, 11, productRepo.products[p2.ID].StockQuantity)

	for _, m := range movementRepo.movements {
		assert.Equal(t, "Sale #1", m.Reason)
		require.NotNil(t, m.UserID)
		assert.Equal(t, userID, *m.UserID)
	}
}

func TestCreateOrder_TicketNumbersIncrease(t *testing.T) {
	svc, _, productRepo, _ := buildOrderSvc()
	p := seedProduct(productRepo, "Juice 1L", 2, 100)

	for want := 1; want <= 3; want++ {
		resp, err := svc.CreateOrder(context.Background(), uuid.New(), dto.CreateOrderRequest{
			Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
			TotalAmount: decimal.NewFromInt(2),
		})
		require.NoError(t, err)
		assert.Equal(t, want, resp.Number)
	}
}
