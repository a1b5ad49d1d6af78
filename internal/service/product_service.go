package service

import (
	"context"
	"errors"

	"github.com/Legeek117/projet-stock/internal/dto"
	"github.com/Legeek117/projet-stock/internal/model"
	"github.com/Legeek117/projet-stock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.StockMovementRepository
	priceRepo    repository.PriceHistoryRepository
	stock        StockService
}

func NewProductService(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.StockMovementRepository,
	priceRepo repository.PriceHistoryRepository,
	stock StockService,
) ProductService {
	return &productService{
		repo:         repo,
		categoryRepo: categoryRepo,
		movementRepo: movementRepo,
		priceRepo:    priceRepo,
		stock:        stock,
	}
}

// Create inserts the product with an initial sale-price history row, and
// when initial stock is non-zero, books it as an "in" movement so the ledger
// starts complete.
func (s *productService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var product model.Product

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		product = model.Product{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
		}
		if req.CategoryName != "" {
			category, err := s.categoryRepo.FindOrCreateTx(tx, req.CategoryName)
			if err != nil {
				return err
			}
			product.CategoryID = &category.ID
			product.CategoryName = category.Name
		}
		if err := s.repo.CreateTx(tx, &product); err != nil {
			return err
		}

		history := &model.PriceHistory{
			ProductID: product.ID,
			NewPrice:  req.Price,
			Type:      model.PriceSale,
			ChangedBy: &userID,
		}
		if err := s.priceRepo.CreateTx(tx, history); err != nil {
			return err
		}

		if req.StockQuantity > 0 {
			_, err := s.stock.ApplyMovementTx(tx, MovementInput{
				ProductID: product.ID,
				Type:      model.MovementIn,
				Quantity:  req.StockQuantity,
				Reason:    "Initial stock",
				UserID:    &userID,
			})
			if err != nil {
				return err
			}
			product.StockQuantity = req.StockQuantity
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	resp := productToResponse(&product)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductID: id}
		}
		return nil, err
	}
	resp := productToResponse(product)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, productToResponse(&products[i]))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

// Update edits the catalog entry in one transaction. A price change inserts
// a sale-price history row; a stock change is routed through the mutation
// engine as an adjustment movement; stock_quantity is never written
// directly from here, so the ledger stays complete.
func (s *productService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var updated *model.Product
	var movement *model.StockMovement

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		product, err := s.repo.LockByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ProductNotFoundError{ProductID: id}
			}
			return err
		}

		if !product.Price.Equal(req.Price) {
			oldPrice := product.Price
			history := &model.PriceHistory{
				ProductID: id,
				OldPrice:  &oldPrice,
				NewPrice:  req.Price,
				Type:      model.PriceSale,
				ChangedBy: &userID,
			}
			if err := s.priceRepo.CreateTx(tx, history); err != nil {
				return err
			}
		}

		if req.StockQuantity != nil && *req.StockQuantity != product.StockQuantity {
			diff := *req.StockQuantity - product.StockQuantity
			movementType := model.MovementAdjustmentIn
			quantity := diff
			if diff < 0 {
				movementType = model.MovementAdjustmentOut
				quantity = -diff
			}
			reason := req.Reason
			if reason == "" {
				reason = "Manual update"
			}
			movement, err = s.stock.ApplyMovementTx(tx, MovementInput{
				ProductID: id,
				Type:      movementType,
				Quantity:  quantity,
				Reason:    reason,
				UserID:    &userID,
			})
			if err != nil {
				return err
			}
		}

		fields := map[string]interface{}{
			"name":        req.Name,
			"description": req.Description,
			"price":       req.Price,
		}
		if err := s.repo.UpdateFieldsTx(tx, id, fields); err != nil {
			return err
		}

		product.Name = req.Name
		product.Description = req.Description
		product.Price = req.Price
		if movement != nil {
			product.StockQuantity = movement.NewStock
		}
		updated = product
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.stock.DispatchLowStockAlerts(ctx, movement)

	resp := productToResponse(updated)
	return &resp, nil
}

// Delete is forbidden while movements reference the product: the audit
// trail must keep its owning row.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ProductNotFoundError{ProductID: id}
		}
		return err
	}
	count, err := s.movementRepo.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProductReferenced
	}
	return s.repo.Delete(ctx, id)
}

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CategoryName:  p.CategoryName,
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
