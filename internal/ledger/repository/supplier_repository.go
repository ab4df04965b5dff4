package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/errors"
)

type MySQLSupplierRepository struct {
	db *sql.DB
}

func NewMySQLSupplierRepository(db *sql.DB) *MySQLSupplierRepository {
	return &MySQLSupplierRepository{db: db}
}

func (r *MySQLSupplierRepository) FindByID(ctx context.Context, id int) (*domain.Supplier, error) {
	query := `SELECT id, name FROM Supplier WHERE id = ?`

	var s domain.Supplier
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("supplier with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying supplier by id: %w", err)
	}

	return &s, nil
}
