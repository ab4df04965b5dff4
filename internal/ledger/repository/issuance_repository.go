package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"stockroom/internal/domain"
	"stockroom/internal/dto"
)

type MySQLIssuanceRepository struct {
	db *sql.DB
}

func NewMySQLIssuanceRepository(db *sql.DB) *MySQLIssuanceRepository {
	return &MySQLIssuanceRepository{db: db}
}

func (r *MySQLIssuanceRepository) Insert(ctx context.Context, tx *sql.Tx, issuance domain.Issuance) (uint, error) {
	query := `
		INSERT INTO StockIssuance (productId, userId, quantity, note, createdAt)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		issuance.ProductID, issuance.UserID, issuance.Quantity, issuance.Note, issuance.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting issuance: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// List returns issuances newest first, id descending on timestamp ties.
func (r *MySQLIssuanceRepository) List(ctx context.Context, filter dto.IssuanceFilter) ([]domain.Issuance, error) {
	var conditions []string
	var args []interface{}

	if filter.ProductID != nil {
		conditions = append(conditions, "i.productId = ?")
		args = append(args, *filter.ProductID)
	}
	if filter.UserID != nil {
		conditions = append(conditions, "i.userId = ?")
		args = append(args, *filter.UserID)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "i.createdAt >= ?")
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "i.createdAt <= ?")
		args = append(args, *filter.DateTo)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT i.id, i.productId, p.name, i.userId, u.name,
		       i.quantity, i.note, i.createdAt
		FROM StockIssuance i
		JOIN Product p ON p.id = i.productId
		JOIN User u ON u.id = i.userId
		%s
		ORDER BY i.createdAt DESC, i.id DESC`,
		where,
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying issuances: %w", err)
	}
	defer rows.Close()

	var issuances []domain.Issuance
	for rows.Next() {
		var iss domain.Issuance
		err := rows.Scan(
			&iss.ID, &iss.ProductID, &iss.ProductName, &iss.UserID, &iss.UserName,
			&iss.Quantity, &iss.Note, &iss.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning issuance row: %w", err)
		}
		issuances = append(issuances, iss)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issuance rows: %w", err)
	}

	return issuances, nil
}
