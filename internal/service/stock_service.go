package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Legeek117/projet-stock/internal/dto"
	"github.com/Legeek117/projet-stock/internal/model"
	"github.com/Legeek117/projet-stock/internal/repository"
	"github.com/Legeek117/projet-stock/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementInput describes one stock mutation to apply.
type MovementInput struct {
	ProductID   uuid.UUID
	Type        model.MovementType
	Quantity    int
	Reason      string
	UserID      *uuid.UUID
	ReferenceID *uuid.UUID
}

// StockService is the single choke point through which stock_quantity
// changes. Every change is paired with exactly one ledger row, written in
// the same transaction as the product update.
type StockService interface {
	// ApplyMovementTx applies one movement inside the caller's transaction.
	// Multi-item callers (orders, purchases) invoke it once per line so a
	// failure on any line rolls back the whole operation.
	ApplyMovementTx(tx *gorm.DB, in MovementInput) (*model.StockMovement, error)

	// ApplyMovement wraps ApplyMovementTx in its own transaction and
	// dispatches low-stock alerts after commit.
	ApplyMovement(ctx context.Context, in MovementInput) (*model.StockMovement, error)

	// CreateMovement is the manual adjustment entry point (corrections,
	// breakage, donations).
	CreateMovement(ctx context.Context, userID uuid.UUID, req dto.CreateMovementRequest) (*dto.MovementResponse, error)

	// DispatchLowStockAlerts enqueues an alert for every movement that
	// crossed the threshold downwards. Called by multi-item services after
	// their outer transaction commits; best effort.
	DispatchLowStockAlerts(ctx context.Context, movements ...*model.StockMovement)

	ListMovements(ctx context.Context, filter repository.StockMovementFilter) (*dto.MovementListResponse, error)
	ListPriceHistory(ctx context.Context, productID uuid.UUID, page, limit int) (*dto.PriceHistoryListResponse, error)
	LowStockAlerts(ctx context.Context) ([]dto.LowStockAlertResponse, error)
}

type stockService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	priceRepo    repository.PriceHistoryRepository
	dispatcher   *worker.Dispatcher
	threshold    int
}

func NewStockService(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	priceRepo repository.PriceHistoryRepository,
	dispatcher *worker.Dispatcher,
	lowStockThreshold int,
) StockService {
	return &stockService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		priceRepo:    priceRepo,
		dispatcher:   dispatcher,
		threshold:    lowStockThreshold,
	}
}

// ApplyMovementTx performs the locked read-compute-write-append cycle:
//
//  1. Lock the product row (FOR UPDATE) so concurrent movements against the
//     same product serialize here.
//  2. Resolve the sign from the movement type.
//  3. Compute new stock; reject if it would go negative.
//  4. Write the product counter and append the ledger row.
//
// On any error the caller's transaction must roll back, leaving both the
// counter and the ledger untouched.
func (s *stockService) ApplyMovementTx(tx *gorm.DB, in MovementInput) (*model.StockMovement, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("movement quantity must be positive, got %d", in.Quantity)
	}
	sign, err := in.Type.Sign()
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.LockByIDTx(tx, in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductID: in.ProductID}
		}
		return nil, err
	}

	oldStock := product.StockQuantity
	newStock := oldStock + sign*in.Quantity
	if newStock < 0 {
		return nil, &InsufficientStockError{
			ProductID: in.ProductID,
			Available: oldStock,
			Requested: in.Quantity,
		}
	}

	if err := s.productRepo.UpdateStockTx(tx, in.ProductID, newStock); err != nil {
		return nil, err
	}

	movement := &model.StockMovement{
		ProductID:   in.ProductID,
		UserID:      in.UserID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		OldStock:    oldStock,
		NewStock:    newStock,
		Reason:      in.Reason,
		ReferenceID: in.ReferenceID,
	}
	if err := s.movementRepo.CreateTx(tx, movement); err != nil {
		return nil, err
	}
	movement.Product = product
	return movement, nil
}

func (s *stockService) ApplyMovement(ctx context.Context, in MovementInput) (*model.StockMovement, error) {
	var movement *model.StockMovement
	err := runTx(ctx, s.productRepo.DB(), func(tx *gorm.DB) error {
		var txErr error
		movement, txErr = s.ApplyMovementTx(tx, in)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	s.DispatchLowStockAlerts(ctx, movement)
	return movement, nil
}

func (s *stockService) CreateMovement(ctx context.Context, userID uuid.UUID, req dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}

	movement, err := s.ApplyMovement(ctx, MovementInput{
		ProductID: productID,
		Type:      model.MovementType(req.Type),
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		UserID:    &userID,
	})
	if err != nil {
		return nil, err
	}
	resp := movementToResponse(movement)
	return &resp, nil
}

func (s *stockService) DispatchLowStockAlerts(ctx context.Context, movements ...*model.StockMovement) {
	if s.dispatcher == nil {
		return
	}
	for _, m := range movements {
		if m == nil || m.NewStock >= s.threshold || m.OldStock < s.threshold {
			continue
		}
		name := ""
		if m.Product != nil {
			name = m.Product.Name
		}
		_ = s.dispatcher.EnqueueStockAlert(ctx, worker.StockAlertPayload{
			ProductID:   m.ProductID.String(),
			ProductName: name,
			NewStock:    m.NewStock,
			Threshold:   s.threshold,
		})
	}
}

func (s *stockService) ListMovements(ctx context.Context, filter repository.StockMovementFilter) (*dto.MovementListResponse, error) {
	movements, total, err := s.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, movementToResponse(&movements[i]))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return &dto.MovementListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *stockService) ListPriceHistory(ctx context.Context, productID uuid.UUID, page, limit int) (*dto.PriceHistoryListResponse, error) {
	rows, total, err := s.priceRepo.ListByProduct(ctx, productID, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PriceHistoryResponse, 0, len(rows))
	for _, h := range rows {
		username := ""
		if h.User != nil {
			username = h.User.Username
		}
		items = append(items, dto.PriceHistoryResponse{
			ID:        h.ID.String(),
			ProductID: h.ProductID.String(),
			OldPrice:  h.OldPrice,
			NewPrice:  h.NewPrice,
			Type:      string(h.Type),
			Username:  username,
			CreatedAt: h.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.PriceHistoryListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *stockService) LowStockAlerts(ctx context.Context) ([]dto.LowStockAlertResponse, error) {
	products, err := s.productRepo.ListBelowStock(ctx, s.threshold)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlertResponse, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, dto.LowStockAlertResponse{
			ID:            p.ID.String(),
			Name:          p.Name,
			StockQuantity: p.StockQuantity,
			CategoryName:  p.CategoryName,
		})
	}
	return alerts, nil
}

func movementToResponse(m *model.StockMovement) dto.MovementResponse {
	productName := ""
	if m.Product != nil {
		productName = m.Product.Name
	}
	username := ""
	if m.User != nil {
		username = m.User.Username
	}
	return dto.MovementResponse{
		ID:          m.ID.String(),
		ProductID:   m.ProductID.String(),
		ProductName: productName,
		Username:    username,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		OldStock:    m.OldStock,
		NewStock:    m.NewStock,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
