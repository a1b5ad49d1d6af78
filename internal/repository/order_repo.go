package repository

import (
	"context"

	"github.com/Legeek117/projet-stock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateTx(tx *gorm.DB, o *model.Order) error
	CreateItemsTx(tx *gorm.DB, items []model.OrderItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// NextNumberTx draws the next ticket number from the order sequence,
	// inside the caller's transaction.
	NextNumberTx(tx *gorm.DB) (int, error)

	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) CreateItemsTx(tx *gorm.DB, items []model.OrderItem) error {
	return tx.Create(&items).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) NextNumberTx(tx *gorm.DB) (int, error) {
	var n int
	err := tx.Raw("SELECT nextval('order_number_seq')").Scan(&n).Error
	return n, err
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
