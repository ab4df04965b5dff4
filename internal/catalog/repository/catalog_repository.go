package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/errors"
)

type MySQLCatalogRepository struct {
	db *sql.DB
}

func NewMySQLCatalogRepository(db *sql.DB) *MySQLCatalogRepository {
	return &MySQLCatalogRepository{db: db}
}

func (r *MySQLCatalogRepository) Insert(ctx context.Context, p domain.Product) (int, error) {
	query := `INSERT INTO Product (name, category, minStock, currentStock) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Category, p.MinStock, p.CurrentStock)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLCatalogRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
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

func (r *MySQLCatalogRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, category, minStock, currentStock, createdAt
		FROM Product
		ORDER BY name ASC
	`

	return r.queryProducts(ctx, query)
}

func (r *MySQLCatalogRepository) FindBelowMinimum(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, category, minStock, currentStock, createdAt
		FROM Product
		WHERE currentStock <= minStock
		ORDER BY name ASC
	`

	return r.queryProducts(ctx, query)
}

func (r *MySQLCatalogRepository) queryProducts(ctx context.Context, query string) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.MinStock, &p.CurrentStock, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

// Update writes the catalog fields only; currentStock is never set here.
// No rows-affected check: MySQL reports zero affected rows when the new values
// equal the old ones, and the caller has already verified the product exists.
func (r *MySQLCatalogRepository) Update(ctx context.Context, p domain.Product) error {
	query := `UPDATE Product SET name = ?, category = ?, minStock = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, p.Name, p.Category, p.MinStock, p.ID)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

func (r *MySQLCatalogRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM Product WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
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

func (r *MySQLCatalogRepository) CountLedgerEntries(ctx context.Context, productID int) (int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM StockReceipt WHERE productId = ?) +
			(SELECT COUNT(*) FROM StockIssuance WHERE productId = ?) +
			(SELECT COUNT(*) FROM StockAdjustment WHERE productId = ?)
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, productID, productID, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting ledger entries: %w", err)
	}

	return count, nil
}
