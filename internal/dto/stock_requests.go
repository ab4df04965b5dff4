package dto

import "github.com/shopspring/decimal"

type ReceiveRequest struct {
	ProductID    int              `json:"productId"`
	Quantity     int              `json:"quantity"`
	SupplierID   *int             `json:"supplierId,omitempty"`
	DocumentType *string          `json:"documentType,omitempty"`
	DocumentRef  *string          `json:"documentRef,omitempty"`
	NetPrice     *decimal.Decimal `json:"netPrice,omitempty"`
	TaxRate      *decimal.Decimal `json:"taxRate,omitempty"`
	TaxAmount    *decimal.Decimal `json:"taxAmount,omitempty"`
	GrossPrice   *decimal.Decimal `json:"grossPrice,omitempty"`
}

type IssueRequest struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	UserID    int     `json:"userId"`
	Note      *string `json:"note,omitempty"`
}

type AdjustRequest struct {
	ProductID int    `json:"productId"`
	NewStock  int    `json:"newStock"`
	UserID    int    `json:"userId"`
	Reason    string `json:"reason"`
}
