package catalog

import (
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
)

type mockRepository struct {
	InsertFunc             func(ctx context.Context, p domain.Product) (int, error)
	FindByIDFunc           func(ctx context.Context, id int) (*domain.Product, error)
	FindAllFunc            func(ctx context.Context) ([]domain.Product, error)
	FindBelowMinimumFunc   func(ctx context.Context) ([]domain.Product, error)
	UpdateFunc             func(ctx context.Context, p domain.Product) error
	DeleteFunc             func(ctx context.Context, id int) error
	CountLedgerEntriesFunc func(ctx context.Context, productID int) (int, error)
}

func (m *mockRepository) Insert(ctx context.Context, p domain.Product) (int, error) {
	return m.InsertFunc(ctx, p)
}

func (m *mockRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockRepository) FindBelowMinimum(ctx context.Context) ([]domain.Product, error) {
	return m.FindBelowMinimumFunc(ctx)
}

func (m *mockRepository) Update(ctx context.Context, p domain.Product) error {
	return m.UpdateFunc(ctx, p)
}

func (m *mockRepository) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockRepository) CountLedgerEntries(ctx context.Context, productID int) (int, error) {
	return m.CountLedgerEntriesFunc(ctx, productID)
}

func strPtr(s string) *string {
	return &s
}

func intPtr(v int) *int {
	return &v
}

func TestService_Create(t *testing.T) {
	var inserted domain.Product
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, p domain.Product) (int, error) {
			inserted = p
			return 7, nil
		},
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return &domain.Product{ID: id, Name: "Detergente", MinStock: 5, CurrentStock: 20}, nil
		},
	}

	svc := NewService(repo)

	product, err := svc.Create(context.Background(), CreateProductRequest{
		Name:         "Detergente",
		MinStock:     5,
		OpeningStock: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, 7, product.ID)
	assert.Equal(t, 20, inserted.CurrentStock)
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.Create(context.Background(), CreateProductRequest{
		Name:         "",
		MinStock:     -1,
		OpeningStock: -5,
	})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Details, 3)
}

func TestService_Create_DuplicateName(t *testing.T) {
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, p domain.Product) (int, error) {
			return 0, &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		},
	}

	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateProductRequest{Name: "Detergente"})

	ce, ok := apperrors.IsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, "a product with that name already exists", ce.Message)
}

func TestService_Update_DoesNotTouchStock(t *testing.T) {
	var updated domain.Product
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return &domain.Product{ID: id, Name: "Detergente", MinStock: 5, CurrentStock: 20}, nil
		},
		UpdateFunc: func(ctx context.Context, p domain.Product) error {
			updated = p
			return nil
		},
	}

	svc := NewService(repo)

	product, err := svc.Update(context.Background(), 1, UpdateProductRequest{
		Name:     strPtr("Detergente concentrado"),
		MinStock: intPtr(8),
	})

	require.NoError(t, err)
	assert.Equal(t, "Detergente concentrado", product.Name)
	assert.Equal(t, 8, product.MinStock)
	assert.Equal(t, 20, updated.CurrentStock)
}

func TestService_Update_EmptyName(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return &domain.Product{ID: id, Name: "Detergente"}, nil
		},
	}

	svc := NewService(repo)

	_, err := svc.Update(context.Background(), 1, UpdateProductRequest{Name: strPtr("")})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestService_Delete_RefusedWithLedgerHistory(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return &domain.Product{ID: id, Name: "Detergente"}, nil
		},
		CountLedgerEntriesFunc: func(ctx context.Context, productID int) (int, error) {
			return 3, nil
		},
		DeleteFunc: func(ctx context.Context, id int) error {
			t.Fatal("delete should not be called")
			return nil
		},
	}

	svc := NewService(repo)

	err := svc.Delete(context.Background(), 1)

	ce, ok := apperrors.IsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, "product has ledger history and cannot be deleted", ce.Message)
}

func TestService_Delete_NoHistory(t *testing.T) {
	deleted := false
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return &domain.Product{ID: id, Name: "Detergente"}, nil
		},
		CountLedgerEntriesFunc: func(ctx context.Context, productID int) (int, error) {
			return 0, nil
		},
		DeleteFunc: func(ctx context.Context, id int) error {
			deleted = true
			return nil
		},
	}

	svc := NewService(repo)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.True(t, deleted)
}

func TestService_Delete_UnknownProduct(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return nil, apperrors.NewNotFoundError("product with id 99 not found")
		},
	}

	svc := NewService(repo)

	err := svc.Delete(context.Background(), 99)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestService_LowStock(t *testing.T) {
	repo := &mockRepository{
		FindBelowMinimumFunc: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{
				{ID: 1, Name: "Detergente", MinStock: 5, CurrentStock: 2},
			}, nil
		},
	}

	svc := NewService(repo)

	products, err := svc.LowStock(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].BelowMinimum())
}
