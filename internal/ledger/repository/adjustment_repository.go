package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockroom/internal/domain"
)

type MySQLAdjustmentRepository struct {
	db *sql.DB
}

func NewMySQLAdjustmentRepository(db *sql.DB) *MySQLAdjustmentRepository {
	return &MySQLAdjustmentRepository{db: db}
}

func (r *MySQLAdjustmentRepository) Insert(ctx context.Context, tx *sql.Tx, adj domain.Adjustment) (uint, error) {
	query := `
		INSERT INTO StockAdjustment (productId, userId, delta, reason, createdAt)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		adj.ProductID, adj.UserID, adj.Delta, adj.Reason, adj.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting adjustment: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLAdjustmentRepository) ListByProduct(ctx context.Context, productID int) ([]domain.Adjustment, error) {
	query := `
		SELECT id, productId, userId, delta, reason, createdAt
		FROM StockAdjustment
		WHERE productId = ?
		ORDER BY createdAt DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []domain.Adjustment
	for rows.Next() {
		var adj domain.Adjustment
		err := rows.Scan(&adj.ID, &adj.ProductID, &adj.UserID, &adj.Delta, &adj.Reason, &adj.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning adjustment row: %w", err)
		}
		adjustments = append(adjustments, adj)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating adjustment rows: %w", err)
	}

	return adjustments, nil
}
