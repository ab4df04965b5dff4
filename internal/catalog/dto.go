package catalog

import "time"

type CreateProductRequest struct {
	Name         string  `json:"name"`
	Category     *string `json:"category,omitempty"`
	MinStock     int     `json:"minStock"`
	OpeningStock int     `json:"openingStock"`
}

// UpdateProductRequest deliberately has no stock field: stock moves only
// through the ledger (receipts, issuances, adjustments).
type UpdateProductRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	MinStock *int    `json:"minStock,omitempty"`
}

type ProductDTO struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Category     *string   `json:"category"`
	MinStock     int       `json:"minStock"`
	CurrentStock int       `json:"currentStock"`
	BelowMinimum bool      `json:"belowMinimum"`
	CreatedAt    time.Time `json:"createdAt"`
}
