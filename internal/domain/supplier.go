package domain

// Supplier is a reference entity owned by vendor management; the ledger only
// needs its identifier and display name.
type Supplier struct {
	ID   int
	Name string
}
