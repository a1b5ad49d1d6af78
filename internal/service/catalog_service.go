package service

import (
	"context"

	"github.com/Legeek117/projet-stock/internal/dto"
	"github.com/Legeek117/projet-stock/internal/model"
	"github.com/Legeek117/projet-stock/internal/repository"
)

// CatalogService covers the small lookup tables (categories, suppliers).
type CatalogService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	ListSuppliers(ctx context.Context) ([]dto.SupplierResponse, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

func NewCatalogService(categoryRepo repository.CategoryRepository, supplierRepo repository.SupplierRepository) CatalogService {
	return &catalogService{categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

func (s *catalogService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &model.Category{Name: req.Name}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID.String(), Name: c.Name}, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, dto.CategoryResponse{ID: c.ID.String(), Name: c.Name})
	}
	return result, nil
}

func (s *catalogService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier := &model.Supplier{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func (s *catalogService) ListSuppliers(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := s.supplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.SupplierResponse, 0, len(list))
	for i := range list {
		result = append(result, supplierToResponse(&list[i]))
	}
	return result, nil
}

func supplierToResponse(s *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:      s.ID.String(),
		Name:    s.Name,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
	}
}
