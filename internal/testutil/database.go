package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database.
// Expects a MySQL instance on localhost:3306 with a 'stockroom_test' schema.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/stockroom_test?parseTime=true&innodb_lock_wait_timeout=2"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the pool.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"StockReceipt", "StockIssuance", "StockAdjustment", "Product", "Supplier", "User"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the tests need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createProductTable := `
	CREATE TABLE IF NOT EXISTS Product (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(120) NOT NULL UNIQUE,
		category VARCHAR(120),
		minStock INT NOT NULL DEFAULT 0,
		currentStock INT NOT NULL DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_category (category)
	)`

	createSupplierTable := `
	CREATE TABLE IF NOT EXISTS Supplier (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(120) NOT NULL
	)`

	createUserTable := `
	CREATE TABLE IF NOT EXISTS User (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		active TINYINT(1) NOT NULL DEFAULT 1
	)`

	createReceiptTable := `
	CREATE TABLE IF NOT EXISTS StockReceipt (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		productId INT NOT NULL,
		supplierId INT,
		quantity INT NOT NULL,
		documentType VARCHAR(20),
		documentRef VARCHAR(120),
		netPrice DECIMAL(12,2),
		taxRate DECIMAL(5,2),
		taxAmount DECIMAL(12,2),
		grossPrice DECIMAL(12,2),
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (productId) REFERENCES Product(id),
		INDEX idx_product (productId),
		INDEX idx_supplier (supplierId),
		INDEX idx_created (createdAt)
	)`

	createIssuanceTable := `
	CREATE TABLE IF NOT EXISTS StockIssuance (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		productId INT NOT NULL,
		userId INT NOT NULL,
		quantity INT NOT NULL,
		note VARCHAR(255),
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (productId) REFERENCES Product(id),
		INDEX idx_product (productId),
		INDEX idx_user (userId),
		INDEX idx_created (createdAt)
	)`

	createAdjustmentTable := `
	CREATE TABLE IF NOT EXISTS StockAdjustment (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		productId INT NOT NULL,
		userId INT NOT NULL,
		delta INT NOT NULL,
		reason VARCHAR(255) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (productId) REFERENCES Product(id),
		INDEX idx_product (productId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Product", createProductTable},
		{"Supplier", createSupplierTable},
		{"User", createUserTable},
		{"StockReceipt", createReceiptTable},
		{"StockIssuance", createIssuanceTable},
		{"StockAdjustment", createAdjustmentTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// InsertProduct seeds a product row and returns its id.
func InsertProduct(t *testing.T, db *sql.DB, name string, minStock, currentStock int) int {
	result, err := db.Exec(
		`INSERT INTO Product (name, category, minStock, currentStock) VALUES (?, 'Químicos', ?, ?)`,
		name, minStock, currentStock,
	)
	if err != nil {
		t.Fatalf("failed to insert product: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get product id: %v", err)
	}
	return int(id)
}

// InsertSupplier seeds a supplier row and returns its id.
func InsertSupplier(t *testing.T, db *sql.DB, name string) int {
	result, err := db.Exec(`INSERT INTO Supplier (name) VALUES (?)`, name)
	if err != nil {
		t.Fatalf("failed to insert supplier: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get supplier id: %v", err)
	}
	return int(id)
}

// InsertUser seeds a user row and returns its id.
func InsertUser(t *testing.T, db *sql.DB, name string) int {
	result, err := db.Exec(`INSERT INTO User (name, active) VALUES (?, 1)`, name)
	if err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get user id: %v", err)
	}
	return int(id)
}
