package mysql

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"stockroom/internal/config"
)

// NewConnection opens the pool. innodb_lock_wait_timeout is set per session
// so a transaction blocked on a product row lock fails within a bounded wait
// instead of hanging; the ledger layer maps that failure to a conflict.
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	lockWaitSeconds := int(cfg.LockWaitTimeout.Seconds())
	if lockWaitSeconds < 1 {
		lockWaitSeconds = 1
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&innodb_lock_wait_timeout=%d",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, lockWaitSeconds,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
