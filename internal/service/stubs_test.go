package service_test

import (
	"context"
	"time"

	"github.com/Legeek117/projet-stock/internal/dto"
	"github.com/Legeek117/projet-stock/internal/model"
	"github.com/Legeek117/projet-stock/internal/repository"
	"github.com/Legeek117/projet-stock/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Transactions collapse to direct calls
// because the stubs return a nil *gorm.DB; services detect that and run
// the transaction body without a real transaction.

// stubProductRepo is an in-memory ProductRepository.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	return r.CreateTx(nil, p)
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) ListBelowStock(_ context.Context, threshold int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.StockQuantity < threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) LockByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, newStock int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity = newStock
	return nil
}

func (r *stubProductRepo) UpdateFieldsTx(_ *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["name"].(string); ok {
		p.Name = v
	}
	if v, ok := fields["description"].(*string); ok {
		p.Description = v
	}
	if v, ok := fields["price"].(decimal.Decimal); ok {
		p.Price = v
	}
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubMovementRepo records ledger rows in order.
type stubMovementRepo struct {
	movements []*model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter repository.StockMovementFilter) ([]model.StockMovement, int64, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMovementRepo) CountByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	for _, m := range r.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// byProduct returns this product's movements, oldest first.
func (r *stubMovementRepo) byProduct(productID uuid.UUID) []*model.StockMovement {
	var out []*model.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// stubPriceRepo records price history rows in order.
type stubPriceRepo struct {
	rows []*model.PriceHistory
}

func (r *stubPriceRepo) CreateTx(_ *gorm.DB, h *model.PriceHistory) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	h.CreatedAt = time.Now()
	r.rows = append(r.rows, h)
	return nil
}

func (r *stubPriceRepo) ListByProduct(_ context.Context, productID uuid.UUID, _, _ int) ([]model.PriceHistory, int64, error) {
	var out []model.PriceHistory
	for _, h := range r.rows {
		if h.ProductID == productID {
			out = append(out, *h)
		}
	}
	return out, int64(len(out)), nil
}

var _ repository.PriceHistoryRepository = (*stubPriceRepo)(nil)

// stubOrderRepo is an in-memory OrderRepository with its own ticket sequence.
type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
	items  []model.OrderItem
	seq    int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) CreateItemsTx(_ *gorm.DB, items []model.OrderItem) error {
	r.items = append(r.items, items...)
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) NextNumberTx(_ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// stubPurchaseRepo is an in-memory PurchaseRepository.
type stubPurchaseRepo struct {
	purchases []*model.Purchase
	items     []model.PurchaseItem
	seq       int
}

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.purchases = append(r.purchases, p)
	return nil
}

func (r *stubPurchaseRepo) CreateItemsTx(_ *gorm.DB, items []model.PurchaseItem) error {
	r.items = append(r.items, items...)
	return nil
}

func (r *stubPurchaseRepo) List(_ context.Context) ([]model.Purchase, error) {
	out := make([]model.Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPurchaseRepo) NextNumberTx(_ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// stubCategoryRepo resolves categories by name.
type stubCategoryRepo struct {
	categories map[string]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.Name] = c
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) FindOrCreateTx(_ *gorm.DB, name string) (*model.Category, error) {
	if c, ok := r.categories[name]; ok {
		return c, nil
	}
	c := &model.Category{ID: uuid.New(), Name: name}
	r.categories[name] = c
	return c, nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// Helpers

func seedProduct(repo *stubProductRepo, name string, price float64, stock int) *model.Product {
	p := &model.Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         decimal.NewFromFloat(price),
		StockQuantity: stock,
	}
	repo.products[p.ID] = p
	return p
}

func buildStockSvc() (service.StockService, *stubProductRepo, *stubMovementRepo, *stubPriceRepo) {
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	priceRepo := &stubPriceRepo{}
	svc := service.NewStockService(productRepo, movementRepo, priceRepo, nil, 5)
	return svc, productRepo, movementRepo, priceRepo
}
