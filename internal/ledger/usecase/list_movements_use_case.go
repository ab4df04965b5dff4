package usecase

import (
	"context"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
)

type ReceiptLister interface {
	List(ctx context.Context, filter dto.ReceiptFilter) ([]domain.Receipt, error)
}

type IssuanceLister interface {
	List(ctx context.Context, filter dto.IssuanceFilter) ([]domain.Issuance, error)
}

// ListMovementsUseCase is the read side of the ledger. It composes filters and
// returns display-ready rows; it is deliberately not transactional, reads are
// for presentation only.
type ListMovementsUseCase struct {
	receiptRepo  ReceiptLister
	issuanceRepo IssuanceLister
}

func NewListMovementsUseCase(receiptRepo ReceiptLister, issuanceRepo IssuanceLister) *ListMovementsUseCase {
	return &ListMovementsUseCase{
		receiptRepo:  receiptRepo,
		issuanceRepo: issuanceRepo,
	}
}

func (uc *ListMovementsUseCase) ListReceipts(ctx context.Context, filter dto.ReceiptFilter) ([]dto.ReceiptDTO, error) {
	if err := validateDateRange(filter.DateFrom, filter.DateTo); err != nil {
		return nil, err
	}

	receipts, err := uc.receiptRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReceiptDTO, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, dto.ReceiptDTO{
			ID:           r.ID,
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			SupplierID:   r.SupplierID,
			SupplierName: r.SupplierName,
			Quantity:     r.Quantity,
			DocumentType: r.DocumentType,
			DocumentRef:  r.DocumentRef,
			NetPrice:     r.NetPrice,
			TaxRate:      r.TaxRate,
			TaxAmount:    r.TaxAmount,
			GrossPrice:   r.GrossPrice,
			CreatedAt:    r.CreatedAt,
		})
	}

	return out, nil
}

func (uc *ListMovementsUseCase) ListIssuances(ctx context.Context, filter dto.IssuanceFilter) ([]dto.IssuanceDTO, error) {
	if err := validateDateRange(filter.DateFrom, filter.DateTo); err != nil {
		return nil, err
	}

	issuances, err := uc.issuanceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.IssuanceDTO, 0, len(issuances))
	for _, i := range issuances {
		out = append(out, dto.IssuanceDTO{
			ID:          i.ID,
			ProductID:   i.ProductID,
			ProductName: i.ProductName,
			UserID:      i.UserID,
			UserName:    i.UserName,
			Quantity:    i.Quantity,
			Note:        i.Note,
			CreatedAt:   i.CreatedAt,
		})
	}

	return out, nil
}

func validateDateRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "dateTo",
			Message: "dateTo must not be before dateFrom",
		})
	}
	return nil
}
