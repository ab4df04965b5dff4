package domain

import "time"

// Issuance is an immutable stock-out ledger entry. Its quantity never exceeds
// the product's stock at the instant it was applied.
type Issuance struct {
	ID        uint
	ProductID int
	UserID    int
	Quantity  int
	Note      *string
	CreatedAt time.Time

	ProductName string
	UserName    string
}
