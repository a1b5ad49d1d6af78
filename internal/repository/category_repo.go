package repository

import (
	"context"
	"errors"

	"github.com/Legeek117/projet-stock/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	List(ctx context.Context) ([]model.Category, error)

	// FindOrCreateTx resolves a category by name inside the caller's
	// transaction, creating it when absent.
	FindOrCreateTx(tx *gorm.DB, name string) (*model.Category, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindOrCreateTx(tx *gorm.DB, name string) (*model.Category, error) {
	var c model.Category
	err := tx.Where("name = ?", name).First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c = model.Category{Name: name}
	if err := tx.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
