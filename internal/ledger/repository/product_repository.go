package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/errors"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

func (r *MySQLProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `
		SELECT id, name, category, minStock, currentStock, createdAt
		FROM Product
		WHERE id = ?
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.MinStock, &p.CurrentStock, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

// FindByIDForUpdate acquires an exclusive lock on the product row for the
// lifetime of tx. Concurrent adjustments to the same product serialize here;
// other products stay untouched.
func (r *MySQLProductRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.Product, error) {
	query := `
		SELECT id, name, category, minStock, currentStock, createdAt
		FROM Product
		WHERE id = ?
		FOR UPDATE
	`

	var p domain.Product
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.MinStock, &p.CurrentStock, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product for update: %w", err)
	}

	return &p, nil
}

func (r *MySQLProductRepository) UpdateStock(ctx context.Context, tx *sql.Tx, id int, newStock int) error {
	query := `UPDATE Product SET currentStock = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, newStock, id)
	if err != nil {
		return fmt.Errorf("updating product stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	return nil
}
