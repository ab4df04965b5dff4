package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockroom/internal/domain"
	"stockroom/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.Product, error)
	UpdateStock(ctx context.Context, tx *sql.Tx, id int, newStock int) error
}

type ReceiptRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, receipt domain.Receipt) (uint, error)
}

type IssuanceRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, issuance domain.Issuance) (uint, error)
}

type AdjustmentRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, adj domain.Adjustment) (uint, error)
}

type ReceiveInput struct {
	ProductID    int
	Quantity     int
	SupplierID   *int
	DocumentType *string
	DocumentRef  *string
	NetPrice     decimal.NullDecimal
	TaxRate      decimal.NullDecimal
	TaxAmount    decimal.NullDecimal
	GrossPrice   decimal.NullDecimal
}

type IssueInput struct {
	ProductID int
	Quantity  int
	UserID    int
	Note      *string
}

type AdjustInput struct {
	ProductID int
	NewStock  int
	UserID    int
	Reason    string
}

// StockService is the only component that moves currentStock. Every operation
// runs as one transaction: lock the product row, validate, write the new stock
// level together with its ledger entry, commit. A failed validation rolls the
// whole thing back, leaving stock and ledger untouched.
type StockService struct {
	db             TransactionManager
	productRepo    ProductRepository
	receiptRepo    ReceiptRepository
	issuanceRepo   IssuanceRepository
	adjustmentRepo AdjustmentRepository
	logger         *zap.Logger
	txTimeout      time.Duration
}

func NewStockService(
	db TransactionManager,
	productRepo ProductRepository,
	receiptRepo ReceiptRepository,
	issuanceRepo IssuanceRepository,
	adjustmentRepo AdjustmentRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *StockService {
	return &StockService{
		db:             db,
		productRepo:    productRepo,
		receiptRepo:    receiptRepo,
		issuanceRepo:   issuanceRepo,
		adjustmentRepo: adjustmentRepo,
		logger:         logger,
		txTimeout:      txTimeout,
	}
}

func (s *StockService) Receive(ctx context.Context, input ReceiveInput) (*domain.Receipt, *domain.Product, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, nil, err
	}
	// Rollback is a no-op once the transaction committed.
	defer tx.Rollback()

	product, err := s.productRepo.FindByIDForUpdate(txCtx, tx, input.ProductID)
	if err != nil {
		return nil, nil, err
	}

	newStock := product.CurrentStock + input.Quantity
	if err := s.productRepo.UpdateStock(txCtx, tx, product.ID, newStock); err != nil {
		return nil, nil, err
	}

	receipt := domain.Receipt{
		ProductID:    input.ProductID,
		SupplierID:   input.SupplierID,
		Quantity:     input.Quantity,
		DocumentType: input.DocumentType,
		DocumentRef:  input.DocumentRef,
		NetPrice:     input.NetPrice,
		TaxRate:      input.TaxRate,
		TaxAmount:    input.TaxAmount,
		GrossPrice:   input.GrossPrice,
		CreatedAt:    time.Now().UTC(),
	}

	receiptID, err := s.receiptRepo.Insert(txCtx, tx, receipt)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit receipt", zap.Int("productId", input.ProductID), zap.Error(err))
		return nil, nil, err
	}

	receipt.ID = receiptID
	product.CurrentStock = newStock

	s.logger.Info("stock received",
		zap.Int("productId", product.ID),
		zap.Int("quantity", input.Quantity),
		zap.Int("newStock", newStock),
		zap.Uint("receiptId", receiptID),
	)

	return &receipt, product, nil
}

func (s *StockService) Issue(ctx context.Context, input IssueInput) (*domain.Issuance, *domain.Product, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, nil, err
	}
	defer tx.Rollback()

	product, err := s.productRepo.FindByIDForUpdate(txCtx, tx, input.ProductID)
	if err != nil {
		return nil, nil, err
	}

	// The check must happen under the row lock: the stock read here stays
	// valid until commit, so no concurrent issuance can drive it negative.
	if !product.CanIssue(input.Quantity) {
		s.logger.Warn("issuance rejected",
			zap.Int("productId", product.ID),
			zap.Int("requested", input.Quantity),
			zap.Int("available", product.CurrentStock),
		)
		return nil, nil, errors.NewInsufficientStockError(product.ID, input.Quantity, product.CurrentStock)
	}

	newStock := product.CurrentStock - input.Quantity
	if err := s.productRepo.UpdateStock(txCtx, tx, product.ID, newStock); err != nil {
		return nil, nil, err
	}

	issuance := domain.Issuance{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Quantity:  input.Quantity,
		Note:      input.Note,
		CreatedAt: time.Now().UTC(),
	}

	issuanceID, err := s.issuanceRepo.Insert(txCtx, tx, issuance)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit issuance", zap.Int("productId", input.ProductID), zap.Error(err))
		return nil, nil, err
	}

	issuance.ID = issuanceID
	product.CurrentStock = newStock

	s.logger.Info("stock issued",
		zap.Int("productId", product.ID),
		zap.Int("quantity", input.Quantity),
		zap.Int("newStock", newStock),
		zap.Uint("issuanceId", issuanceID),
	)

	return &issuance, product, nil
}

// Adjust applies an administrative correction as a ledger entry instead of a
// direct edit, so conservation holds across the full history. The target level
// must not be negative.
func (s *StockService) Adjust(ctx context.Context, input AdjustInput) (*domain.Adjustment, *domain.Product, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, nil, err
	}
	defer tx.Rollback()

	product, err := s.productRepo.FindByIDForUpdate(txCtx, tx, input.ProductID)
	if err != nil {
		return nil, nil, err
	}

	delta := input.NewStock - product.CurrentStock
	// Skip the write when the level is unchanged; MySQL reports zero affected
	// rows for no-op updates and the row is already locked anyway.
	if delta != 0 {
		if err := s.productRepo.UpdateStock(txCtx, tx, product.ID, input.NewStock); err != nil {
			return nil, nil, err
		}
	}

	adjustment := domain.Adjustment{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Delta:     delta,
		Reason:    input.Reason,
		CreatedAt: time.Now().UTC(),
	}

	adjustmentID, err := s.adjustmentRepo.Insert(txCtx, tx, adjustment)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit adjustment", zap.Int("productId", input.ProductID), zap.Error(err))
		return nil, nil, err
	}

	adjustment.ID = adjustmentID
	product.CurrentStock = input.NewStock

	s.logger.Info("stock adjusted",
		zap.Int("productId", product.ID),
		zap.Int("delta", delta),
		zap.Int("newStock", input.NewStock),
		zap.Uint("adjustmentId", adjustmentID),
	)

	return &adjustment, product, nil
}
