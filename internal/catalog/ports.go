package catalog

import (
	"context"

	"stockroom/internal/domain"
)

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
	Update(ctx context.Context, id int, req UpdateProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, id int) error
	LowStock(ctx context.Context) ([]domain.Product, error)
}

type Repository interface {
	Insert(ctx context.Context, p domain.Product) (int, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindBelowMinimum(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id int) error
	CountLedgerEntries(ctx context.Context, productID int) (int, error)
}
