// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"spendlog/internal/config"
	"spendlog/internal/database"
)

// SetupTestDB opens a private in-memory SQLite database and prepares the
// schema the same way the sqlite backend does. The connection is closed when
// the test finishes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", nextID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	manager := database.NewManagerFromDB(db, &database.Config{Driver: config.BackendSQLite})
	if err := manager.Prepare(); err != nil {
		t.Fatalf("failed to prepare test database: %v", err)
	}

	t.Cleanup(func() { TeardownTestDB(t, db) })
	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	if err := database.NewManagerFromDB(db, nil).Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
