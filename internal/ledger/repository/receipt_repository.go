package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"stockroom/internal/domain"
	"stockroom/internal/dto"
)

type MySQLReceiptRepository struct {
	db *sql.DB
}

func NewMySQLReceiptRepository(db *sql.DB) *MySQLReceiptRepository {
	return &MySQLReceiptRepository{db: db}
}

func (r *MySQLReceiptRepository) Insert(ctx context.Context, tx *sql.Tx, receipt domain.Receipt) (uint, error) {
	query := `
		INSERT INTO StockReceipt
			(productId, supplierId, quantity, documentType, documentRef,
			 netPrice, taxRate, taxAmount, grossPrice, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		receipt.ProductID, receipt.SupplierID, receipt.Quantity,
		receipt.DocumentType, receipt.DocumentRef,
		receipt.NetPrice, receipt.TaxRate, receipt.TaxAmount, receipt.GrossPrice,
		receipt.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting receipt: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// List returns receipts newest first, with id as the tie-break so ordering is
// stable when timestamps collide at second granularity.
func (r *MySQLReceiptRepository) List(ctx context.Context, filter dto.ReceiptFilter) ([]domain.Receipt, error) {
	var conditions []string
	var args []interface{}

	if filter.ProductID != nil {
		conditions = append(conditions, "r.productId = ?")
		args = append(args, *filter.ProductID)
	}
	if filter.SupplierID != nil {
		conditions = append(conditions, "r.supplierId = ?")
		args = append(args, *filter.SupplierID)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "r.createdAt >= ?")
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "r.createdAt <= ?")
		args = append(args, *filter.DateTo)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.productId, p.name, r.supplierId, s.name,
		       r.quantity, r.documentType, r.documentRef,
		       r.netPrice, r.taxRate, r.taxAmount, r.grossPrice, r.createdAt
		FROM StockReceipt r
		JOIN Product p ON p.id = r.productId
		LEFT JOIN Supplier s ON s.id = r.supplierId
		%s
		ORDER BY r.createdAt DESC, r.id DESC`,
		where,
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying receipts: %w", err)
	}
	defer rows.Close()

	var receipts []domain.Receipt
	for rows.Next() {
		var rec domain.Receipt
		err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.ProductName, &rec.SupplierID, &rec.SupplierName,
			&rec.Quantity, &rec.DocumentType, &rec.DocumentRef,
			&rec.NetPrice, &rec.TaxRate, &rec.TaxAmount, &rec.GrossPrice, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning receipt row: %w", err)
		}
		receipts = append(receipts, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating receipt rows: %w", err)
	}

	return receipts, nil
}
