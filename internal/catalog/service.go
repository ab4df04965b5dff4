package catalog

import (
	"context"
	stderrors "errors"

	"github.com/go-sql-driver/mysql"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
)

const mysqlErrDuplicateEntry = 1062

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	var details []apperrors.ValidationDetail
	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}
	if req.MinStock < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "minStock",
			Message: "minStock must not be negative",
		})
	}
	if req.OpeningStock < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "openingStock",
			Message: "openingStock must not be negative",
		})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	p := domain.Product{
		Name:         req.Name,
		Category:     req.Category,
		MinStock:     req.MinStock,
		CurrentStock: req.OpeningStock,
	}

	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, apperrors.NewConflictError("a product with that name already exists")
		}
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Update touches name, category and minimum threshold only. currentStock is
// owned by the ledger; a direct edit here would break conservation.
func (s *service) Update(ctx context.Context, id int, req UpdateProductRequest) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   "name",
				Message: "name must not be empty",
			})
		}
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = req.Category
	}
	if req.MinStock != nil {
		if *req.MinStock < 0 {
			return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   "minStock",
				Message: "minStock must not be negative",
			})
		}
		p.MinStock = *req.MinStock
	}

	if err := s.repo.Update(ctx, *p); err != nil {
		if isDuplicateEntry(err) {
			return nil, apperrors.NewConflictError("a product with that name already exists")
		}
		return nil, err
	}

	return p, nil
}

// Delete refuses while ledger history references the product: the ledger is
// the audit trail and must stay intact.
func (s *service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountLedgerEntries(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflictError("product has ledger history and cannot be deleted")
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) LowStock(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindBelowMinimum(ctx)
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	return false
}
