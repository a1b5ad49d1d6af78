package dto

import "github.com/shopspring/decimal"

type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
}

type CreatePurchaseRequest struct {
	SupplierID *string               `json:"supplier_id" validate:"omitempty,uuid"`
	Items      []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PurchaseItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type PurchaseResponse struct {
	ID           string                 `json:"id"`
	Number       int                    `json:"number"`
	SupplierName string                 `json:"supplier_name,omitempty"`
	CreatorName  string                 `json:"creator_name,omitempty"`
	TotalAmount  decimal.Decimal        `json:"total_amount"`
	Items        []PurchaseItemResponse `json:"items"`
	CreatedAt    string                 `json:"created_at"`
}
