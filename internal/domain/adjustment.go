package domain

import "time"

// Adjustment is an administrative stock correction recorded as a ledger entry
// rather than a direct edit, so the conservation property holds:
// current stock == sum(receipts) - sum(issuances) + sum(adjustment deltas).
type Adjustment struct {
	ID        uint
	ProductID int
	UserID    int
	Delta     int
	Reason    string
	CreatedAt time.Time
}
