package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/Legeek117/projet-stock/internal/dto"
	"github.com/Legeek117/projet-stock/internal/model"
	"github.com/Legeek117/projet-stock/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseService interface {
	CreatePurchase(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	ListPurchases(ctx context.Context) ([]dto.PurchaseResponse, error)
}

type purchaseService struct {
	repo      repository.PurchaseRepository
	priceRepo repository.PriceHistoryRepository
	stock     StockService
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	priceRepo repository.PriceHistoryRepository,
	stock StockService,
) PurchaseService {
	return &purchaseService{repo: repo, priceRepo: priceRepo, stock: stock}
}

// CreatePurchase records a supplier delivery: purchase header, one
// incrementing movement per line, and an unconditional purchase-price
// history row per line (the received cost is always part of the audit
// trail, even when unchanged, unlike sale prices, which are only
// recorded on change).
func (s *purchaseService) CreatePurchase(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	type line struct {
		productID uuid.UUID
		quantity  int
		unitPrice decimal.Decimal
	}
	lines := make([]line, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		lines = append(lines, line{productID: pid, quantity: item.Quantity, unitPrice: item.UnitPrice})
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].productID.String() < lines[j].productID.String()
	})

	var supplierID *uuid.UUID
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("invalid supplier_id: %w", err)
		}
		supplierID = &sid
	}

	var purchase model.Purchase
	var itemResponses []dto.PurchaseItemResponse

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		number, err := s.repo.NextNumberTx(tx)
		if err != nil {
			return err
		}

		purchase = model.Purchase{
			Number:      number,
			SupplierID:  supplierID,
			UserID:      userID,
			TotalAmount: total,
		}
		if err := s.repo.CreateTx(tx, &purchase); err != nil {
			return err
		}

		items := make([]model.PurchaseItem, 0, len(lines))
		for _, l := range lines {
			movement, err := s.stock.ApplyMovementTx(tx, MovementInput{
				ProductID:   l.productID,
				Type:        model.MovementIn,
				Quantity:    l.quantity,
				Reason:      fmt.Sprintf("Purchase #%d", number),
				UserID:      &userID,
				ReferenceID: &purchase.ID,
			})
			if err != nil {
				return err
			}

			items = append(items, model.PurchaseItem{
				PurchaseID: purchase.ID,
				ProductID:  l.productID,
				Quantity:   l.quantity,
				UnitPrice:  l.unitPrice,
			})

			history := &model.PriceHistory{
				ProductID: l.productID,
				NewPrice:  l.unitPrice,
				Type:      model.PricePurchase,
				ChangedBy: &userID,
			}
			if err := s.priceRepo.CreateTx(tx, history); err != nil {
				return err
			}

			name := ""
			if movement.Product != nil {
				name = movement.Product.Name
			}
			itemResponses = append(itemResponses, dto.PurchaseItemResponse{
				ProductID:   l.productID.String(),
				ProductName: name,
				Quantity:    l.quantity,
				UnitPrice:   l.unitPrice,
			})
		}
		return s.repo.CreateItemsTx(tx, items)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.PurchaseResponse{
		ID:          purchase.ID.String(),
		Number:      purchase.Number,
		TotalAmount: purchase.TotalAmount,
		Items:       itemResponses,
		CreatedAt:   purchase.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

func (s *purchaseService) ListPurchases(ctx context.Context) ([]dto.PurchaseResponse, error) {
	purchases, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		p := &purchases[i]
		items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
		for _, item := range p.Items {
			name := ""
			if item.Product != nil {
				name = item.Product.Name
			}
			items = append(items, dto.PurchaseItemResponse{
				ProductID:   item.ProductID.String(),
				ProductName: name,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			})
		}
		supplierName := ""
		if p.Supplier != nil {
			supplierName = p.Supplier.Name
		}
		creatorName := ""
		if p.User != nil {
			creatorName = p.User.Username
		}
		resp = append(resp, dto.PurchaseResponse{
			ID:           p.ID.String(),
			Number:       p.Number,
			SupplierName: supplierName,
			CreatorName:  creatorName,
			TotalAmount:  p.TotalAmount,
			Items:        items,
			CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return resp, nil
}
