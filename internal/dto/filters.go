package dto

import "time"

// ReceiptFilter narrows receipt listings. Nil fields are ignored.
type ReceiptFilter struct {
	ProductID  *int
	SupplierID *int
	DateFrom   *time.Time
	DateTo     *time.Time
}

// IssuanceFilter narrows issuance listings. Nil fields are ignored.
type IssuanceFilter struct {
	ProductID *int
	UserID    *int
	DateFrom  *time.Time
	DateTo    *time.Time
}
