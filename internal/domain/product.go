package domain

import "time"

type Product struct {
	ID           int
	Name         string
	Category     *string
	MinStock     int
	CurrentStock int
	CreatedAt    time.Time
}

// CanIssue reports whether quantity units can leave stock without driving it
// negative. The caller must hold the product row lock for the answer to stay
// valid until commit.
func (p Product) CanIssue(quantity int) bool {
	return quantity > 0 && p.CurrentStock >= quantity
}

func (p Product) BelowMinimum() bool {
	return p.CurrentStock <= p.MinStock
}
