package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price" validate:"min=0"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	CategoryName  string          `json:"category_name"`
}

// UpdateProductRequest edits the catalog entry. A stock_quantity different
// from the current value is applied as an adjustment movement, never as a
// direct write; Reason is attached to that movement.
type UpdateProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price" validate:"min=0"`
	StockQuantity *int            `json:"stock_quantity" validate:"omitempty,min=0"`
	Reason        string          `json:"reason"`
}

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	CategoryName  string          `json:"category_name"`
	CreatedAt     string          `json:"created_at"`
}

type ProductFilter struct {
	Name     string
	Category string
	Page     int
	Limit    int
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
