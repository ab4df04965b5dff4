package usecase

import (
	"context"
	stderrors "errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockroom/internal/domain"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/ledger/service"
)

const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

type StockService interface {
	Receive(ctx context.Context, input service.ReceiveInput) (*domain.Receipt, *domain.Product, error)
	Issue(ctx context.Context, input service.IssueInput) (*domain.Issuance, *domain.Product, error)
	Adjust(ctx context.Context, input service.AdjustInput) (*domain.Adjustment, *domain.Product, error)
}

type SupplierRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Supplier, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

// AdjustStockUseCase validates adjustment requests, resolves supplier/user
// references before the transaction opens, and retries deadlocked transactions
// from scratch so the stock check always runs against fresh state.
type AdjustStockUseCase struct {
	stockSvc         StockService
	supplierRepo     SupplierRepository
	userRepo         UserRepository
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewAdjustStockUseCase(
	stockSvc StockService,
	supplierRepo SupplierRepository,
	userRepo UserRepository,
	logger *zap.Logger,
	maxRetryAttempts int,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		stockSvc:         stockSvc,
		supplierRepo:     supplierRepo,
		userRepo:         userRepo,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *AdjustStockUseCase) Receive(ctx context.Context, req dto.ReceiveRequest) (*dto.ReceiveResponse, error) {
	if err := validateQuantity(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}

	if req.SupplierID != nil {
		if _, err := uc.supplierRepo.FindByID(ctx, *req.SupplierID); err != nil {
			return nil, err
		}
	}

	input := service.ReceiveInput{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		SupplierID:   req.SupplierID,
		DocumentType: req.DocumentType,
		DocumentRef:  req.DocumentRef,
		NetPrice:     nullDecimal(req.NetPrice),
		TaxRate:      nullDecimal(req.TaxRate),
		TaxAmount:    nullDecimal(req.TaxAmount),
		GrossPrice:   nullDecimal(req.GrossPrice),
	}

	var receipt *domain.Receipt
	var product *domain.Product
	err := uc.withRetry(ctx, "receive", req.ProductID, func() error {
		var err error
		receipt, product, err = uc.stockSvc.Receive(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.ReceiveResponse{
		ReceiptID: receipt.ID,
		Product:   toProductDTO(product),
		Timestamp: receipt.CreatedAt,
	}, nil
}

func (uc *AdjustStockUseCase) Issue(ctx context.Context, req dto.IssueRequest) (*dto.IssueResponse, error) {
	if err := validateQuantity(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.NewValidationError("user is not active", apperrors.ValidationDetail{
			Field:   "userId",
			Message: "acting user must be active",
		})
	}

	input := service.IssueInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UserID:    req.UserID,
		Note:      req.Note,
	}

	var issuance *domain.Issuance
	var product *domain.Product
	err = uc.withRetry(ctx, "issue", req.ProductID, func() error {
		var err error
		issuance, product, err = uc.stockSvc.Issue(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.IssueResponse{
		IssuanceID: issuance.ID,
		Product:    toProductDTO(product),
		UserName:   user.Name,
		Timestamp:  issuance.CreatedAt,
	}, nil
}

func (uc *AdjustStockUseCase) Adjust(ctx context.Context, req dto.AdjustRequest) (*dto.AdjustResponse, error) {
	var details []apperrors.ValidationDetail
	if req.ProductID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
	}
	if req.NewStock < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "newStock",
			Message: "newStock must not be negative",
		})
	}
	if req.Reason == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	if _, err := uc.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	input := service.AdjustInput{
		ProductID: req.ProductID,
		NewStock:  req.NewStock,
		UserID:    req.UserID,
		Reason:    req.Reason,
	}

	var adjustment *domain.Adjustment
	var product *domain.Product
	err := uc.withRetry(ctx, "adjust", req.ProductID, func() error {
		var err error
		adjustment, product, err = uc.stockSvc.Adjust(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.AdjustResponse{
		AdjustmentID: adjustment.ID,
		Delta:        adjustment.Delta,
		Product:      toProductDTO(product),
		Timestamp:    adjustment.CreatedAt,
	}, nil
}

// withRetry re-runs the whole operation on deadlock, never just the commit:
// the stock precondition must be re-checked against fresh state each attempt.
func (uc *AdjustStockUseCase) withRetry(ctx context.Context, op string, productID int, fn func() error) error {
	maxAttempts := uc.maxRetryAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		if isLockWaitTimeout(err) {
			uc.logger.Warn("lock wait timeout",
				zap.String("op", op), zap.Int("productId", productID))
			return apperrors.NewConflictError("product row is locked by another operation, retry")
		}

		if isDeadlockError(err) {
			if attempt < maxAttempts {
				base := backoffs[(attempt-1)%len(backoffs)]
				jitter := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
				time.Sleep(jitter)
				uc.logger.Warn("deadlock detected, retrying",
					zap.String("op", op),
					zap.Int("productId", productID),
					zap.Int("attempt", attempt),
					zap.Int("maxAttempts", maxAttempts),
				)
				continue
			}
			break
		}

		return err
	}

	return apperrors.NewConflictError("max retries exceeded under lock contention")
}

func validateQuantity(productID, quantity int) error {
	var details []apperrors.ValidationDetail
	if productID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
	}
	if quantity <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
		})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDeadlock
	}
	return false
}

func isLockWaitTimeout(err error) bool {
	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrLockWaitTimeout
	}
	return false
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func toProductDTO(p *domain.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		MinStock:     p.MinStock,
		CurrentStock: p.CurrentStock,
		BelowMinimum: p.BelowMinimum(),
	}
}
