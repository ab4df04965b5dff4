package ledger

import (
	"database/sql"

	"go.uber.org/zap"

	"stockroom/internal/config"
	"stockroom/internal/ledger/controller"
	"stockroom/internal/ledger/repository"
	"stockroom/internal/ledger/service"
	"stockroom/internal/ledger/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.StockController {
	productRepo := repository.NewMySQLProductRepository(db)
	receiptRepo := repository.NewMySQLReceiptRepository(db)
	issuanceRepo := repository.NewMySQLIssuanceRepository(db)
	adjustmentRepo := repository.NewMySQLAdjustmentRepository(db)
	supplierRepo := repository.NewMySQLSupplierRepository(db)
	userRepo := repository.NewMySQLUserRepository(db)

	stockSvc := service.NewStockService(
		db,
		productRepo,
		receiptRepo,
		issuanceRepo,
		adjustmentRepo,
		logger,
		cfg.Ledger.TxTimeout,
	)

	adjustUC := usecase.NewAdjustStockUseCase(
		stockSvc,
		supplierRepo,
		userRepo,
		logger,
		cfg.Ledger.MaxRetryAttempts,
	)

	listUC := usecase.NewListMovementsUseCase(receiptRepo, issuanceRepo)

	return controller.NewStockController(adjustUC, listUC, logger)
}
