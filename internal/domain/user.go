package domain

// User is a reference entity owned by the identity service.
type User struct {
	ID     int
	Name   string
	Active bool
}
