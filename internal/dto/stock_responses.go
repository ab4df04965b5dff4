package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Category     *string `json:"category"`
	MinStock     int     `json:"minStock"`
	CurrentStock int     `json:"currentStock"`
	BelowMinimum bool    `json:"belowMinimum"`
}

type ReceiveResponse struct {
	TraceID   string     `json:"traceId"`
	ReceiptID uint       `json:"receiptId"`
	Product   ProductDTO `json:"product"`
	Timestamp time.Time  `json:"timestamp"`
}

type IssueResponse struct {
	TraceID    string     `json:"traceId"`
	IssuanceID uint       `json:"issuanceId"`
	Product    ProductDTO `json:"product"`
	UserName   string     `json:"userName"`
	Timestamp  time.Time  `json:"timestamp"`
}

type AdjustResponse struct {
	TraceID      string     `json:"traceId"`
	AdjustmentID uint       `json:"adjustmentId"`
	Delta        int        `json:"delta"`
	Product      ProductDTO `json:"product"`
	Timestamp    time.Time  `json:"timestamp"`
}

type ReceiptDTO struct {
	ID           uint                `json:"id"`
	ProductID    int                 `json:"productId"`
	ProductName  string              `json:"productName"`
	SupplierID   *int                `json:"supplierId"`
	SupplierName *string             `json:"supplierName"`
	Quantity     int                 `json:"quantity"`
	DocumentType *string             `json:"documentType"`
	DocumentRef  *string             `json:"documentRef"`
	NetPrice     decimal.NullDecimal `json:"netPrice"`
	TaxRate      decimal.NullDecimal `json:"taxRate"`
	TaxAmount    decimal.NullDecimal `json:"taxAmount"`
	GrossPrice   decimal.NullDecimal `json:"grossPrice"`
	CreatedAt    time.Time           `json:"createdAt"`
}

type IssuanceDTO struct {
	ID          uint      `json:"id"`
	ProductID   int       `json:"productId"`
	ProductName string    `json:"productName"`
	UserID      int       `json:"userId"`
	UserName    string    `json:"userName"`
	Quantity    int       `json:"quantity"`
	Note        *string   `json:"note"`
	CreatedAt   time.Time `json:"createdAt"`
}

type StockErrorResponse struct {
	TraceID   string                    `json:"traceId"`
	Status    int                       `json:"status"`
	Code      string                    `json:"code"`
	Message   string                    `json:"message"`
	Details   *InsufficientStockDetails `json:"details,omitempty"`
	Timestamp time.Time                 `json:"timestamp"`
}

type InsufficientStockDetails struct {
	ProductID int `json:"productId"`
	Requested int `json:"requested"`
	Available int `json:"available"`
}
