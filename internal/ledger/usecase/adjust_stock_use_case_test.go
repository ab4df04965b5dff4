package usecase

import (
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stockroom/internal/domain"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/ledger/service"
)

func intPtr(i int) *int {
	return &i
}

// Mock implementations

type mockStockService struct {
	ReceiveFunc func(ctx context.Context, input service.ReceiveInput) (*domain.Receipt, *domain.Product, error)
	IssueFunc   func(ctx context.Context, input service.IssueInput) (*domain.Issuance, *domain.Product, error)
	AdjustFunc  func(ctx context.Context, input service.AdjustInput) (*domain.Adjustment, *domain.Product, error)
}

func (m *mockStockService) Receive(ctx context.Context, input service.ReceiveInput) (*domain.Receipt, *domain.Product, error) {
	return m.ReceiveFunc(ctx, input)
}

func (m *mockStockService) Issue(ctx context.Context, input service.IssueInput) (*domain.Issuance, *domain.Product, error) {
	return m.IssueFunc(ctx, input)
}

func (m *mockStockService) Adjust(ctx context.Context, input service.AdjustInput) (*domain.Adjustment, *domain.Product, error) {
	return m.AdjustFunc(ctx, input)
}

type mockSupplierRepository struct {
	FindByIDFunc func(ctx context.Context, id int) (*domain.Supplier, error)
}

func (m *mockSupplierRepository) FindByID(ctx context.Context, id int) (*domain.Supplier, error) {
	return m.FindByIDFunc(ctx, id)
}

type mockUserRepository struct {
	FindByIDFunc func(ctx context.Context, id int) (*domain.User, error)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func activeUserRepo() *mockUserRepository {
	return &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id int) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Test User", Active: true}, nil
		},
	}
}

func knownSupplierRepo() *mockSupplierRepository {
	return &mockSupplierRepository{
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Supplier, error) {
			return &domain.Supplier{ID: id, Name: "Proveedor A"}, nil
		},
	}
}

func newTestUseCase(svc StockService, supplierRepo SupplierRepository, userRepo UserRepository) *AdjustStockUseCase {
	return NewAdjustStockUseCase(svc, supplierRepo, userRepo, zap.NewNop(), 3)
}

// Tests

func TestReceive_Success(t *testing.T) {
	var gotInput service.ReceiveInput
	svc := &mockStockService{
		ReceiveFunc: func(ctx context.Context, input service.ReceiveInput) (*domain.Receipt, *domain.Product, error) {
			gotInput = input
			return &domain.Receipt{ID: 42, ProductID: input.ProductID, Quantity: input.Quantity},
				&domain.Product{ID: input.ProductID, Name: "Detergente", MinStock: 5, CurrentStock: 30}, nil
		},
	}

	uc := newTestUseCase(svc, knownSupplierRepo(), activeUserRepo())

	resp, err := uc.Receive(context.Background(), dto.ReceiveRequest{
		ProductID:  1,
		Quantity:   10,
		SupplierID: intPtr(3),
	})

	require.NoError(t, err)
	assert.Equal(t, uint(42), resp.ReceiptID)
	assert.Equal(t, 30, resp.Product.CurrentStock)
	assert.False(t, resp.Product.BelowMinimum)
	assert.Equal(t, 1, gotInput.ProductID)
	assert.Equal(t, 10, gotInput.Quantity)
	assert.Equal(t, 3, *gotInput.SupplierID)
}

func TestReceive_NonPositiveQuantity(t *testing.T) {
	svc := &mockStockService{
		ReceiveFunc: func(ctx context.Context, input service.ReceiveInput) (*domain.Receipt, *domain.Product, error) {
			t.Fatal("service should not be called")
			return nil, nil, nil
		},
	}

	uc := newTestUseCase(svc, knownSupplierRepo(), activeUserRepo())

	for _, quantity := range []int{0, -5} {
		resp, err := uc.Receive(context.Background(), dto.ReceiveRequest{ProductID: 1, Quantity: quantity})

		assert.Nil(t, resp)
		ve, ok := apperrors.IsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "quantity", ve.Details[0].Field)
	}
}

func TestReceive_UnknownSupplier(t *testing.T) {
	svc := &mockStockService{
		ReceiveFunc: func(ctx context.Context, input service.ReceiveInput) (*domain.Receipt, *domain.Product, error) {
			t.Fatal("service should not be called")
			return nil, nil, nil
		},
	}
	supplierRepo := &mockSupplierRepository{
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Supplier, error) {
			return nil, apperrors.NewNotFoundError("supplier with id 99 not found")
		},
	}

	uc := newTestUseCase(svc, supplierRepo, activeUserRepo())

	resp, err := uc.Receive(context.Background(), dto.ReceiveRequest{
		ProductID:  1,
		Quantity:   5,
		SupplierID: intPtr(99),
	})

	assert.Nil(t, resp)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestIssue_Success(t *testing.T) {
	svc := &mockStockService{
		IssueFunc: func(ctx context.Context, input service.IssueInput) (*domain.Issuance, *domain.Product, error) {
			return &domain.Issuance{ID: 7, ProductID: input.ProductID, Quantity: input.Quantity},
				&domain.Product{ID: input.ProductID, Name: "Detergente", MinStock: 5, CurrentStock: 5}, nil
		},
	}

	uc := newTestUseCase(svc, knownSupplierRepo(), activeUserRepo())

	resp, err := uc.Issue(context.Background(), dto.IssueRequest{ProductID: 1, Quantity: 25, UserID: 2})

	require.NoError(t, err)
	assert.Equal(t, uint(7), resp.IssuanceID)
	assert.Equal(t, "Test User", resp.UserName)
	assert.Equal(t, 5, resp.Product.CurrentStock)
	assert.True(t, resp.Product.BelowMinimum)
}

func TestIssue_InactiveUser(t *testing.T) {
	svc := &mockStockService{
		IssueFunc: func(ctx context.Context, input service.IssueInput) (*domain.Issuance, *domain.Product, error) {
			t.Fatal("service should not be called")
			return nil, nil, nil
		},
	}
	userRepo := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id int) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Former Employee", Active: false}, nil
		},
	}

	uc := newTestUseCase(svc, knownSupplierRepo(), userRepo)

	resp, err := uc.Issue(context.Background(), dto.IssueRequest{ProductID: 1, Quantity: 1, UserID: 4})

	assert.Nil(t, resp)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestIssue_InsufficientStockPassesThrough(t *testing.T) {
	svc := &mockStockService{
		IssueFunc: func(ctx context.Context, input service.IssueInput) (*domain.Issuance, *domain.Product, error) {
			return nil, nil, apperrors.NewInsufficientStockError(input.ProductID, input.Quantity, 5)
		},
	}

	uc := newTestUseCase(svc, knownSupplierRepo(), activeUserRepo())

	resp, err := uc.Issue(context.Background(), dto.IssueRequest{ProductID: 1, Quantity: 10, UserID: 2})

	assert.Nil(t, resp)
	ise, ok := apperrors.IsInsufficientStockError(err)
	require.True(t, ok)
	assert.Equal(t, 10, ise.Requested)
	assert.Equal(t, 5, ise.Available)
}

func TestIssue_DeadlockRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	svc := &mockStockService{
		IssueFunc: func(ctx context.Context, input service.IssueInput) (*domain.Issuance, *domain.Product, error) {
			attempts++
			if attempts < 3 {
				return nil, nil, &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
			}
			return &domain.Issuance{ID: 1, ProductID: input.ProductID, Quantity: input.Quantity},
				&domain.Product{ID: input.ProductID, CurrentStock: 4}, nil
		},
	}

	uc := newTestUseCase(svc, knownSupplierRepo(), activeUserRepo())

	resp, err := uc.Issue(context.Background(), dto.IssueRequest{ProductID: 1, Quantity: 1, UserID: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 4, resp.Product.CurrentStock)
}

func TestIssue_DeadlockRetriesExhausted(t *testing.T) {
	attempts := 0
	svc := &mockStockService{
		IssueFunc: func(ctx context.Context, input service.IssueInput) (*domain.Issuance, *domain.Product, error) {
			attempts++
			return nil, nil, &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
		},
	}

	uc := newTestUseCase(svc, knownSupplierRepo(), activeUserRepo())

	resp, err := uc.Issue(context.Background(), dto.IssueRequest{ProductID: 1, Quantity: 1, UserID: 2})

	assert.Nil(t, resp)
	assert.Equal(t, 3, attempts)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestIssue_LockWaitTimeoutMapsToConflict(t *testing.T) {
	attempts := 0
	svc := &mockStockService{
		IssueFunc: func(ctx context.Context, input service.IssueInput) (*domain.Issuance, *domain.Product, error) {
			attempts++
			return nil, nil, &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}
		},
	}

	uc := newTestUseCase(svc, knownSupplierRepo(), activeUserRepo())

	resp, err := uc.Issue(context.Background(), dto.IssueRequest{ProductID: 1, Quantity: 1, UserID: 2})

	assert.Nil(t, resp)
	// Lock wait timeouts are not retried internally; the caller owns the retry.
	assert.Equal(t, 1, attempts)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestAdjust_Success(t *testing.T) {
	svc := &mockStockService{
		AdjustFunc: func(ctx context.Context, input service.AdjustInput) (*domain.Adjustment, *domain.Product, error) {
			return &domain.Adjustment{ID: 9, ProductID: input.ProductID, Delta: input.NewStock - 20},
				&domain.Product{ID: input.ProductID, CurrentStock: input.NewStock, MinStock: 5}, nil
		},
	}

	uc := newTestUseCase(svc, knownSupplierRepo(), activeUserRepo())

	resp, err := uc.Adjust(context.Background(), dto.AdjustRequest{
		ProductID: 1,
		NewStock:  17,
		UserID:    2,
		Reason:    "annual inventory count",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(9), resp.AdjustmentID)
	assert.Equal(t, -3, resp.Delta)
	assert.Equal(t, 17, resp.Product.CurrentStock)
}

func TestAdjust_Validation(t *testing.T) {
	svc := &mockStockService{
		AdjustFunc: func(ctx context.Context, input service.AdjustInput) (*domain.Adjustment, *domain.Product, error) {
			t.Fatal("service should not be called")
			return nil, nil, nil
		},
	}

	uc := newTestUseCase(svc, knownSupplierRepo(), activeUserRepo())

	resp, err := uc.Adjust(context.Background(), dto.AdjustRequest{
		ProductID: 0,
		NewStock:  -1,
		UserID:    2,
		Reason:    "",
	})

	assert.Nil(t, resp)
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Details, 3)
}
