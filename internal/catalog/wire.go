package catalog

import (
	"database/sql"

	"go.uber.org/zap"

	"stockroom/internal/catalog/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLCatalogRepository(db)
	svc := NewService(repo)
	return NewController(svc, logger)
}
