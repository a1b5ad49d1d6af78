package repository

import (
	"context"

	"github.com/Legeek117/projet-stock/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	CreateTx(tx *gorm.DB, p *model.Purchase) error
	CreateItemsTx(tx *gorm.DB, items []model.PurchaseItem) error
	List(ctx context.Context) ([]model.Purchase, error)
	NextNumberTx(tx *gorm.DB) (int, error)
	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) CreateItemsTx(tx *gorm.DB, items []model.PurchaseItem) error {
	return tx.Create(&items).Error
}

func (r *purchaseRepo) List(ctx context.Context) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Supplier").
		Preload("User").
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) NextNumberTx(tx *gorm.DB) (int, error) {
	var n int
	err := tx.Raw("SELECT nextval('purchase_number_seq')").Scan(&n).Error
	return n, err
}

func (r *purchaseRepo) DB() *gorm.DB { return r.db }
