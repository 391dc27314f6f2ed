package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the MySQL test database. Integration tests expect a
// database named 'vitrine_test' on localhost:3306 and skip when it is absent.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/vitrine_test?parseTime=true&charset=utf8mb4&loc=UTC"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables creates the orders table used by the MySQL store.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrders := `
	CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		product_title VARCHAR(200) NOT NULL,
		price VARCHAR(50) NOT NULL,
		size VARCHAR(20) NULL,
		image_url VARCHAR(2048) NULL,
		customer_phone VARCHAR(20) NULL,
		received_at DATETIME(3) NOT NULL,
		processed BOOLEAN NOT NULL DEFAULT FALSE,
		processed_at DATETIME(3) NULL
	)`

	if _, err := db.Exec(createOrders); err != nil {
		t.Fatalf("failed to create orders table: %v", err)
	}
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	if _, err := db.Exec("DELETE FROM orders"); err != nil {
		t.Logf("failed to clean orders table: %v", err)
	}

	db.Close()
}
