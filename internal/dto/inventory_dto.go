package dto

// ReconcileRequest maps product IDs to the physically counted quantity.
type ReconcileRequest struct {
	Counts map[string]int `json:"counts" validate:"required,min=1"`
}

// ReconcileAdjustment describes one applied correction.
type ReconcileAdjustment struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	OldStock  int    `json:"old_stock"`
	NewStock  int    `json:"new_stock"`
}

// ReconcileError reports a product whose adjustment could not be applied.
// Other products' adjustments are unaffected (reconciliation is per-product).
type ReconcileError struct {
	ProductID string `json:"product_id"`
	Detail    string `json:"detail"`
}

type ReconcileResponse struct {
	Applied   []ReconcileAdjustment `json:"applied"`
	Unchanged int                   `json:"unchanged"`
	Errors    []ReconcileError      `json:"errors,omitempty"`
}
