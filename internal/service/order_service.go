package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Legeek117/projet-stock/internal/dto"
	"github.com/Legeek117/projet-stock/internal/model"
	"github.com/Legeek117/projet-stock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error)
}

type orderService struct {
	repo        repository.OrderRepository
	productRepo repository.ProductRepository
	stock       StockService
}

func NewOrderService(
	repo repository.OrderRepository,
	productRepo repository.ProductRepository,
	stock StockService,
) OrderService {
	return &orderService{repo: repo, productRepo: productRepo, stock: stock}
}

// CreateOrder records a sale as one all-or-nothing transaction: order header,
// one decrementing movement and one item row per line. A missing product or
// insufficient stock on any line aborts the whole order.
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	type line struct {
		productID uuid.UUID
		quantity  int
	}
	lines := make([]line, 0, len(req.Items))
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		lines = append(lines, line{productID: pid, quantity: item.Quantity})
	}
	// Lock products in a stable order so two concurrent multi-item orders
	// cannot deadlock on each other's rows.
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].productID.String() < lines[j].productID.String()
	})

	var order model.Order
	var movements []*model.StockMovement
	var itemResponses []dto.OrderItemResponse

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		number, err := s.repo.NextNumberTx(tx)
		if err != nil {
			return err
		}

		order = model.Order{
			Number:      number,
			UserID:      userID,
			TotalAmount: req.TotalAmount,
			Status:      model.OrderCompleted,
		}
		if err := s.repo.CreateTx(tx, &order); err != nil {
			return err
		}

		items := make([]model.OrderItem, 0, len(lines))
		for _, l := range lines {
			product, err := s.productRepo.LockByIDTx(tx, l.productID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: l.productID}
				}
				return err
			}

			movement, err := s.stock.ApplyMovementTx(tx, MovementInput{
				ProductID:   l.productID,
				Type:        model.MovementSale,
				Quantity:    l.quantity,
				Reason:      fmt.Sprintf("Sale #%d", number),
				UserID:      &userID,
				ReferenceID: &order.ID,
			})
			if err != nil {
				return err
			}
			movements = append(movements, movement)

			items = append(items, model.OrderItem{
				OrderID:   order.ID,
				ProductID: l.productID,
				Quantity:  l.quantity,
				UnitPrice: product.Price, // frozen at sale time
			})
			itemResponses = append(itemResponses, dto.OrderItemResponse{
				ProductID:   l.productID.String(),
				ProductName: product.Name,
				Quantity:    l.quantity,
				UnitPrice:   product.Price,
			})
		}
		return s.repo.CreateItemsTx(tx, items)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.stock.DispatchLowStockAlerts(ctx, movements...)

	return &dto.OrderResponse{
		ID:          order.ID.String(),
		Number:      order.Number,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		Items:       itemResponses,
		CreatedAt:   order.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, *orderToResponse(&orders[i]))
	}
	return resp, nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.OrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return &dto.OrderResponse{
		ID:          o.ID.String(),
		Number:      o.Number,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		Items:       items,
		CreatedAt:   o.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
