package dto

import "github.com/shopspring/decimal"

// CreateMovementRequest is a manual stock movement (correction, breakage,
// donation). Quantity is always positive; direction comes from Type.
type CreateMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Type      string `json:"type" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Reason    string `json:"reason"`
}

type MovementResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Username    string `json:"username,omitempty"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	OldStock    int    `json:"old_stock"`
	NewStock    int    `json:"new_stock"`
	Reason      string `json:"reason"`
	CreatedAt   string `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type PriceHistoryResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	OldPrice  *decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal  `json:"new_price"`
	Type      string           `json:"type"`
	Username  string           `json:"username,omitempty"`
	CreatedAt string           `json:"created_at"`
}

type PriceHistoryListResponse struct {
	Data  []PriceHistoryResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

type LowStockAlertResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	CategoryName  string `json:"category_name"`
}
