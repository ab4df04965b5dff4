package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is an immutable stock-in ledger entry. Pricing fields are carried
// for audit and reporting only; they play no part in stock arithmetic.
type Receipt struct {
	ID           uint
	ProductID    int
	SupplierID   *int
	Quantity     int
	DocumentType *string
	DocumentRef  *string
	NetPrice     decimal.NullDecimal
	TaxRate      decimal.NullDecimal
	TaxAmount    decimal.NullDecimal
	GrossPrice   decimal.NullDecimal
	CreatedAt    time.Time

	// Denormalized display names, populated by listing queries.
	ProductName  string
	SupplierName *string
}
